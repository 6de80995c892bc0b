package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AssistRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assist_requests_total",
			Help: "Total number of writing assistance requests by action and outcome",
		},
		[]string{"action", "outcome"},
	)

	AssistRequestDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assist_request_duration_seconds",
			Help:    "Duration of upstream completion calls in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
	)
)
