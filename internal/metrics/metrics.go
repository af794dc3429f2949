package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service counters on a private registry so tests can
// construct independent instances.
type Metrics struct {
	registry         *prometheus.Registry
	ordersInitiated  prometheus.Counter
	ordersExpired    prometheus.Counter
	paymentsVerified *prometheus.CounterVec
	mintsProcessed   *prometheus.CounterVec
	txSubmissions    *prometheus.CounterVec
}

// New constructs a Metrics registry with all collectors registered.
func New() *Metrics {
	initiated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "streetmint_orders_initiated_total",
		Help: "Total number of mint orders created",
	})

	expired := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "streetmint_orders_expired_total",
		Help: "Pending orders failed by the reaper",
	})

	payments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "streetmint_payments_verified_total",
		Help: "Payment transaction verifications by result",
	}, []string{"result"})

	mints := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "streetmint_mints_processed_total",
		Help: "Mint order processing outcomes by status",
	}, []string{"status"})

	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "streetmint_tx_submissions_total",
		Help: "Payment transaction submissions by outcome",
	}, []string{"outcome"})

	r := prometheus.NewRegistry()
	r.MustRegister(initiated, expired, payments, mints, submissions)

	return &Metrics{
		registry:         r,
		ordersInitiated:  initiated,
		ordersExpired:    expired,
		paymentsVerified: payments,
		mintsProcessed:   mints,
		txSubmissions:    submissions,
	}
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) OrderInitiated() {
	m.ordersInitiated.Inc()
}

func (m *Metrics) OrderExpired() {
	m.ordersExpired.Inc()
}

func (m *Metrics) PaymentVerified(result string) {
	m.paymentsVerified.WithLabelValues(result).Inc()
}

func (m *Metrics) MintProcessed(status string) {
	m.mintsProcessed.WithLabelValues(status).Inc()
}

func (m *Metrics) TxSubmission(outcome string) {
	m.txSubmissions.WithLabelValues(outcome).Inc()
}
