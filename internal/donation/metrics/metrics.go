package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the donation ledger.
type Metrics struct {
	DonationsRecorded *prometheus.CounterVec
	AmountDonated     *prometheus.CounterVec
}

// New creates and registers the donation metrics.
func New() *Metrics {
	return &Metrics{
		DonationsRecorded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "carebridge_donations_total",
			Help: "Total ledger entries written by fund type",
		}, []string{"fund_type"}),
		AmountDonated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "carebridge_donation_amount_total",
			Help: "Total amount donated by fund type",
		}, []string{"fund_type"}),
	}
}
