package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the child registry.
type Metrics struct {
	ChildrenRegistered prometheus.Counter
	NotesAppended      prometheus.Counter
}

// New creates and registers the child registry metrics.
func New() *Metrics {
	return &Metrics{
		ChildrenRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "carebridge_children_registered_total",
			Help: "Total number of child profiles registered",
		}),
		NotesAppended: promauto.NewCounter(prometheus.CounterOpts{
			Name: "carebridge_behavioral_notes_total",
			Help: "Total number of behavioral notes appended",
		}),
	}
}
