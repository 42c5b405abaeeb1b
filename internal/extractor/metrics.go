package extractor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requeriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rpg_engine_extractor_requeries_total",
			Help: "Total number of corrective requeries sent for malformed update lines.",
		},
		[]string{"attribute"},
	)
	droppedLinesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rpg_engine_extractor_dropped_lines_total",
			Help: "Total number of update lines dropped as unsalvageable.",
		},
		[]string{"attribute"},
	)
)
