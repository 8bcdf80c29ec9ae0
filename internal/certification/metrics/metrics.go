package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	CertificationsIssued prometheus.Counter
	Transfers            prometheus.Counter
	Swaps                prometheus.Counter
	GuardRejections      *prometheus.CounterVec
	OperationDuration    *prometheus.HistogramVec
}

func New() *Metrics {
	return &Metrics{
		CertificationsIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "skillchain_certifications_issued_total",
			Help: "Total number of certifications issued",
		}),
		Transfers: promauto.NewCounter(prometheus.CounterOpts{
			Name: "skillchain_transfers_total",
			Help: "Total number of committed custody transfers (swap legs count individually)",
		}),
		Swaps: promauto.NewCounter(prometheus.CounterOpts{
			Name: "skillchain_swaps_total",
			Help: "Total number of committed bilateral swaps",
		}),
		GuardRejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "skillchain_guard_rejections_total",
			Help: "Operations rejected by a ledger guard, by error code",
		}, []string{"code"}),
		OperationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "skillchain_operation_duration_seconds",
			Help:    "Duration of ledger operations",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"operation"}),
	}
}

func (m *Metrics) IncrementIssued() {
	m.CertificationsIssued.Inc()
}

func (m *Metrics) IncrementTransfers(n int) {
	m.Transfers.Add(float64(n))
}

func (m *Metrics) IncrementSwaps() {
	m.Swaps.Inc()
}

func (m *Metrics) IncrementGuardRejection(code string) {
	m.GuardRejections.WithLabelValues(code).Inc()
}

func (m *Metrics) ObserveOperation(operation string, start time.Time) {
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
