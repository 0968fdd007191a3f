package metrics

import (
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		aiCalls,
		aiCallLatencyMs,
		aiPromptTokens,
	)
}

var (
	aiCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_calls_total",
			Help: "AI provider calls per operation and outcome.",
		},
		[]string{"op", "success"},
	)

	aiCallLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_call_latency_ms",
			Help:    "AI call latency distribution in milliseconds.",
			Buckets: []float64{50, 100, 200, 400, 800, 1600, 3000, 5000, 10000, 30000},
		},
		[]string{"op", "success"},
	)

	aiPromptTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_prompt_tokens",
			Help: "Estimated prompt tokens sent per operation.",
		},
		[]string{"op"},
	)
)

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func ObserveProviderCall(op string, latencyMs int, success bool) {
	ok := strconv.FormatBool(success)
	aiCalls.WithLabelValues(norm(op), ok).Inc()
	aiCallLatencyMs.WithLabelValues(norm(op), ok).Observe(float64(latencyMs))
}

func AddPromptTokens(op string, n int) {
	aiPromptTokens.WithLabelValues(norm(op)).Add(float64(n))
}
