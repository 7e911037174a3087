package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Metrics counts booking outcomes. Injected as optional so services run
// without a registry in tests.
type Metrics struct {
	bookingsTotal   *prometheus.CounterVec
	bookingFailures *prometheus.CounterVec
	refundsTotal    prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_payments_total",
			Help: "Completed bookings by payment method.",
		}, []string{"method"}),
		bookingFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_failures_total",
			Help: "Failed booking attempts by reason.",
		}, []string{"reason"}),
		refundsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "booking_refunds_total",
			Help: "Refunds processed through the gateway.",
		}),
	}
	reg.MustRegister(m.bookingsTotal, m.bookingFailures, m.refundsTotal)
	return m
}

func (m *Metrics) RecordBooking(method string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(method).Inc()
}

func (m *Metrics) RecordBookingFailure(reason string) {
	if m == nil {
		return
	}
	m.bookingFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) RecordRefund() {
	if m == nil {
		return
	}
	m.refundsTotal.Inc()
}

func provide() *Metrics {
	return New(prometheus.DefaultRegisterer)
}

var Module = fx.Module("observability.metrics",
	fx.Provide(provide),
)
