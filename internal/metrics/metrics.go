// Package metrics exposes Prometheus collectors for the ledger.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "debtledger"

// Metrics holds the collectors. A nil *Metrics is valid and records nothing,
// which keeps tests that do not care about metrics free of setup.
type Metrics struct {
	debtsCreated     *prometheus.CounterVec
	debtsDeleted     prometheus.Counter
	paymentsApplied  *prometheus.CounterVec
	paymentsRejected *prometheus.CounterVec
	rpcDuration      *prometheus.HistogramVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		debtsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "debts_created_total",
			Help:      "Debts created, by kind.",
		}, []string{"kind"}),
		debtsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "debts_deleted_total",
			Help:      "Debts deleted together with their payments.",
		}),
		paymentsApplied: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_applied_total",
			Help:      "Payments applied, by resulting debt status.",
		}, []string{"status"}),
		paymentsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_rejected_total",
			Help:      "Payments rejected by validation, by reason.",
		}, []string{"reason"}),
		rpcDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency, by procedure and result code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure", "code"}),
	}
}

func (m *Metrics) DebtCreated(kind string) {
	if m == nil {
		return
	}
	m.debtsCreated.WithLabelValues(kind).Inc()
}

func (m *Metrics) DebtDeleted() {
	if m == nil {
		return
	}
	m.debtsDeleted.Inc()
}

func (m *Metrics) PaymentApplied(status string) {
	if m == nil {
		return
	}
	m.paymentsApplied.WithLabelValues(status).Inc()
}

func (m *Metrics) PaymentRejected(reason string) {
	if m == nil {
		return
	}
	m.paymentsRejected.WithLabelValues(reason).Inc()
}

// ObserveRPC records one call. code is "ok" or a connect error code name.
func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.rpcDuration.WithLabelValues(procedure, code).Observe(d.Seconds())
}
