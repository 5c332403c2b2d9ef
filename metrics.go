package quadtree

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const methodLabel = "method"

var (
	entryCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "quadtree_entries",
		Help: "The number of entries currently stored, across all trees.",
	})

	insertTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quadtree_inserts",
		Help: "The number of entries inserted.",
	})

	deleteTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quadtree_deletes",
		Help: "The number of entries deleted by region.",
	})

	queryTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quadtree_queries",
		Help: "The number of region queries started.",
	}, []string{
		methodLabel,
	})
)

func methodLabels(method Traversal) prometheus.Labels {
	return prometheus.Labels{methodLabel: method.String()}
}
