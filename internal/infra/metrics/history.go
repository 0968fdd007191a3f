package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(historyAppends)
}

var historyAppends = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "prompt_history_appends_total",
		Help: "Prompt history append attempts per outcome.",
	},
	[]string{"type", "success"},
)

func IncHistoryAppend(promptType string, success bool) {
	historyAppends.WithLabelValues(norm(promptType), strconv.FormatBool(success)).Inc()
}
