package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCheckoutMetrics(reg)

	m.IncAttempt()
	m.IncAttempt()
	m.ObserveOutcome("committed", 120*time.Millisecond)
	m.ObserveOutcome("INSUFFICIENT_STOCK", 10*time.Millisecond)
	m.ObserveOutcome("", time.Millisecond)
	m.IncReservation(true)
	m.IncReservation(true)
	m.IncReservation(false)

	assert.InDelta(t, 2, testutil.ToFloat64(m.attempts), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.outcomes.WithLabelValues("committed")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.outcomes.WithLabelValues("INSUFFICIENT_STOCK")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.outcomes.WithLabelValues("unknown")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.reservations.WithLabelValues("reserved")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.reservations.WithLabelValues("rejected")), 0)

	count, err := testutil.GatherAndCount(reg, "storefront_checkout_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCheckoutMetricsNilSafe(t *testing.T) {
	var nilMetrics *CheckoutMetrics
	assert.NotPanics(t, func() {
		nilMetrics.IncAttempt()
		nilMetrics.ObserveOutcome("committed", time.Second)
		nilMetrics.IncReservation(true)
	})

	unregistered := NewCheckoutMetrics(nil)
	assert.NotPanics(t, func() {
		unregistered.IncAttempt()
		unregistered.ObserveOutcome("committed", time.Second)
		unregistered.IncReservation(false)
	})
}
