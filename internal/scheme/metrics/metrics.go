package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the scheme catalog and matcher.
type Metrics struct {
	SchemesCreated      prometheus.Counter
	MatchesComputed     prometheus.Counter
	MatchDuration       prometheus.Histogram
	ApplicationsCreated prometheus.Counter
	ApplicationsByState *prometheus.CounterVec
}

// New creates and registers the scheme metrics.
func New() *Metrics {
	return &Metrics{
		SchemesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "carebridge_schemes_created_total",
			Help: "Total number of welfare schemes registered",
		}),
		MatchesComputed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "carebridge_eligibility_matches_total",
			Help: "Total number of eligibility match computations",
		}),
		MatchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "carebridge_eligibility_match_duration_seconds",
			Help:    "Time spent computing one eligibility match",
			Buckets: prometheus.DefBuckets,
		}),
		ApplicationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "carebridge_scheme_applications_total",
			Help: "Total number of scheme applications opened",
		}),
		ApplicationsByState: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "carebridge_scheme_application_transitions_total",
			Help: "Application status transitions by target status",
		}, []string{"status"}),
	}
}
