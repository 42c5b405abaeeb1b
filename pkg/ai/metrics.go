package ai

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

var (
	chatRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rpg_engine_ai_requests_total",
			Help: "Total number of requests to the AI API.",
		},
		[]string{"model", "status"},
	)
	chatRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rpg_engine_ai_request_duration_seconds",
			Help:    "Histogram of AI API request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model"},
	)
	chatTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rpg_engine_ai_tokens_total",
			Help: "Total number of tokens sent to and received from the AI API.",
		},
		[]string{"model", "kind"},
	)
)
