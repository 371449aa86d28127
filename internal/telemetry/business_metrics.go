// Package telemetry holds Prometheus instrumentation for the storefront.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for business-level observability
// of the checkout funnel and cart activity.
type BusinessMetrics struct {
	// Cart
	CartMutations         *prometheus.CounterVec
	CartRefreshes         *prometheus.CounterVec
	StaleSnapshotsDropped prometheus.Counter
	CartValue             prometheus.Histogram

	// Checkout funnel
	CheckoutStarted prometheus.Counter
	CheckoutStep    *prometheus.CounterVec
	AddressRejected prometheus.Counter
	SubmitBlocked   prometheus.Counter
	OrdersCreated   prometheus.Counter
	OrderValue      prometheus.Histogram
	PaymentLaunches *prometheus.CounterVec

	// Reconciliation
	ReconciliationHits   prometheus.Counter
	ReconciliationMisses prometheus.Counter

	// Guest continuation
	ContinuationsSaved    prometheus.Counter
	ContinuationsConsumed prometheus.Counter
	ContinuationsExpired  prometheus.Counter

	// Upstream performance
	UpstreamLatency *prometheus.HistogramVec
}

// NewBusinessMetrics creates and registers all business metrics.
func NewBusinessMetrics(namespace string) *BusinessMetrics {
	if namespace == "" {
		namespace = "padharo"
	}

	subsystem := "business"

	return &BusinessMetrics{
		CartMutations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_mutations_total",
				Help:      "Total cart mutations by kind",
			},
			[]string{"kind"}, // kind: add, increase, decrease, remove, clear
		),
		CartRefreshes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_refreshes_total",
				Help:      "Total cart refreshes by outcome",
			},
			[]string{"outcome"}, // outcome: applied, stale, error
		),
		StaleSnapshotsDropped: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "stale_snapshots_dropped_total",
				Help:      "Total out of order cart snapshots discarded",
			},
		),
		CartValue: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_value_paise",
				Help:      "Cart subtotal distribution in paise",
				Buckets:   []float64{10000, 25000, 50000, 100000, 250000, 500000, 1000000},
			},
		),
		CheckoutStarted: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checkout_started_total",
				Help:      "Total checkout sessions started",
			},
		),
		CheckoutStep: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checkout_step_total",
				Help:      "Total completions of each checkout step",
			},
			[]string{"step"}, // step: address, payment
		),
		AddressRejected: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "address_rejected_total",
				Help:      "Total address confirmations rejected as not serviceable",
			},
		),
		SubmitBlocked: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "submit_blocked_total",
				Help:      "Total order submissions rejected by the in-flight guard",
			},
		),
		OrdersCreated: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_created_total",
				Help:      "Total orders created upstream",
			},
		),
		OrderValue: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_value_paise",
				Help:      "Order value distribution in paise",
				Buckets:   []float64{10000, 25000, 50000, 100000, 250000, 500000, 1000000},
			},
		),
		PaymentLaunches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "payment_launches_total",
				Help:      "Total payment gateway handoffs by outcome",
			},
			[]string{"outcome"}, // outcome: launched, failed
		),
		ReconciliationHits: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "reconciliation_hits_total",
				Help:      "Total gateway returns mapped to an internal order",
			},
		),
		ReconciliationMisses: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "reconciliation_misses_total",
				Help:      "Total gateway returns with no stored order mapping",
			},
		),
		ContinuationsSaved: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "continuations_saved_total",
				Help:      "Total guest checkout continuations saved",
			},
		),
		ContinuationsConsumed: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "continuations_consumed_total",
				Help:      "Total guest checkout continuations restored after login",
			},
		),
		ContinuationsExpired: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "continuations_expired_total",
				Help:      "Total guest checkout continuations discarded as expired",
			},
		),
		UpstreamLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "upstream_request_duration_seconds",
				Help:      "Upstream service request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"service", "outcome"},
		),
	}
}
