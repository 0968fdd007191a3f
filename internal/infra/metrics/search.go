package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		searchesStarted,
		searchOutcomes,
		staleResultsDropped,
	)
}

var (
	searchesStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "searches_started_total",
			Help: "Search invocations.",
		},
	)

	searchOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_outcomes_total",
			Help: "Primary jobs-slice outcomes (results/no_results/error).",
		},
		[]string{"outcome"},
	)

	staleResultsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_stale_results_dropped_total",
			Help: "Sub-operation results discarded because a newer search superseded them.",
		},
		[]string{"slice"},
	)
)

func IncSearchStarted()            { searchesStarted.Inc() }
func IncSearchOutcome(o string)    { searchOutcomes.WithLabelValues(norm(o)).Inc() }
func IncStaleDropped(slice string) { staleResultsDropped.WithLabelValues(norm(slice)).Inc() }
