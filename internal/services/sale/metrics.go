package sale

import (
	"time"

	"tixpay/internal/settlement"

	"github.com/prometheus/client_golang/prometheus"
)

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordOperationDuration(string, time.Duration)     {}
func (n *NoopMetricsCollector) RecordSettlement(settlement.PaymentMethod, string) {}
func (n *NoopMetricsCollector) RecordVolume(settlement.Breakdown)                 {}
func (n *NoopMetricsCollector) RecordAudit(AuditStatus)                           {}
func (n *NoopMetricsCollector) RecordReconciliationFailure(settlement.Check)      {}

// PrometheusMetrics exports settlement metrics.
type PrometheusMetrics struct {
	duration       *prometheus.HistogramVec
	settlements    *prometheus.CounterVec
	volume         *prometheus.CounterVec
	audits         *prometheus.CounterVec
	reconciliation *prometheus.CounterVec
}

func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	m := &PrometheusMetrics{
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "settlement_operation_duration_seconds",
				Help:    "Duration of settlement operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		settlements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "settlements_total",
				Help: "Settlements by payment method and outcome",
			},
			[]string{"payment_method", "outcome"},
		),
		volume: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "settlement_volume_cents_total",
				Help: "Settled money by party, in cents",
			},
			[]string{"party"},
		),
		audits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "settlement_audits_total",
				Help: "Audited settlements by status",
			},
			[]string{"status"},
		),
		reconciliation: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "settlement_reconciliation_failures_total",
				Help: "Reconciliation failures by invariant",
			},
			[]string{"check"},
		),
	}
	reg.MustRegister(m.duration, m.settlements, m.volume, m.audits, m.reconciliation)
	return m
}

func (m *PrometheusMetrics) RecordOperationDuration(operation string, duration time.Duration) {
	m.duration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordSettlement(method settlement.PaymentMethod, outcome string) {
	m.settlements.WithLabelValues(string(method), outcome).Inc()
}

func (m *PrometheusMetrics) RecordVolume(b settlement.Breakdown) {
	m.volume.WithLabelValues("customer").Add(float64(b.TotalPaidByCustomerCents))
	m.volume.WithLabelValues("organizer").Add(float64(b.OrganizerPayoutCents))
	m.volume.WithLabelValues("platform").Add(float64(b.NetPlatformGainCents))
}

func (m *PrometheusMetrics) RecordAudit(status AuditStatus) {
	m.audits.WithLabelValues(string(status)).Inc()
}

func (m *PrometheusMetrics) RecordReconciliationFailure(check settlement.Check) {
	m.reconciliation.WithLabelValues(string(check)).Inc()
}
