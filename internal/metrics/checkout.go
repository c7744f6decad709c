package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "storefront"

// CheckoutMetrics records checkout attempts, outcomes and stock reservations.
type CheckoutMetrics struct {
	attempts     prometheus.Counter
	outcomes     *prometheus.CounterVec
	duration     prometheus.Histogram
	reservations *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	attempts := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_attempts_total",
		Help:      "Checkout transaction attempts, including retries.",
	})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_outcomes_total",
		Help:      "Finished checkouts by outcome code.",
	}, []string{"outcome"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "checkout_duration_seconds",
		Help:      "End to end checkout duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	})
	reservations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stock_reservations_total",
		Help:      "Conditional stock decrements by result.",
	}, []string{"result"})
	reg.MustRegister(attempts, outcomes, duration, reservations)
	return &CheckoutMetrics{
		attempts:     attempts,
		outcomes:     outcomes,
		duration:     duration,
		reservations: reservations,
	}
}

func (c *CheckoutMetrics) IncAttempt() {
	if c == nil || c.attempts == nil {
		return
	}
	c.attempts.Inc()
}

// ObserveOutcome records one finished checkout. Outcome is "committed" or an error code.
func (c *CheckoutMetrics) ObserveOutcome(outcome string, elapsed time.Duration) {
	if c == nil || c.outcomes == nil {
		return
	}
	c.outcomes.WithLabelValues(normalizeLabel(outcome)).Inc()
	c.duration.Observe(elapsed.Seconds())
}

func (c *CheckoutMetrics) IncReservation(ok bool) {
	if c == nil || c.reservations == nil {
		return
	}
	result := "rejected"
	if ok {
		result = "reserved"
	}
	c.reservations.WithLabelValues(result).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
