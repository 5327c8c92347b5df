package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// SchedulingMetrics exposes counters/histograms for protocol numbers, slots and appointments.
type SchedulingMetrics struct {
	protocolsAssigned *prometheus.CounterVec
	protocolRetries   prometheus.Counter
	slotsReturned     prometheus.Histogram
	appointments      *prometheus.CounterVec
	transitions       *prometheus.CounterVec
}

func NewSchedulingMetrics(reg prometheus.Registerer) *SchedulingMetrics {
	m := &SchedulingMetrics{
		protocolsAssigned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nutri",
			Subsystem: "patients",
			Name:      "protocols_assigned_total",
			Help:      "Protocol numbers assigned to patients",
		}, []string{"source"}),
		protocolRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nutri",
			Subsystem: "patients",
			Name:      "protocol_retries_total",
			Help:      "Protocol assignments retried after a unique violation",
		}),
		slotsReturned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "nutri",
			Subsystem: "scheduling",
			Name:      "slots_returned",
			Help:      "Free slots returned per availability query",
			Buckets:   []float64{0, 1, 2, 4, 8, 12, 16, 24, 48},
		}),
		appointments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nutri",
			Subsystem: "scheduling",
			Name:      "appointments_created_total",
			Help:      "Appointments created by type",
		}, []string{"type"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nutri",
			Subsystem: "scheduling",
			Name:      "appointment_transitions_total",
			Help:      "Appointment status changes by target status",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.protocolsAssigned, m.protocolRetries, m.slotsReturned, m.appointments, m.transitions)
	return m
}

func (m *SchedulingMetrics) ObserveProtocolAssigned(source string) {
	if m == nil {
		return
	}
	m.protocolsAssigned.WithLabelValues(source).Inc()
}

func (m *SchedulingMetrics) ObserveProtocolRetry() {
	if m == nil {
		return
	}
	m.protocolRetries.Inc()
}

func (m *SchedulingMetrics) ObserveSlots(n int) {
	if m == nil {
		return
	}
	m.slotsReturned.Observe(float64(n))
}

func (m *SchedulingMetrics) ObserveAppointmentCreated(typ string) {
	if m == nil {
		return
	}
	m.appointments.WithLabelValues(typ).Inc()
}

func (m *SchedulingMetrics) ObserveTransition(status string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(status).Inc()
}

// HTTPMetrics records request latency by route and status.
type HTTPMetrics struct {
	duration *prometheus.HistogramVec
}

func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nutri",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.duration)
	return m
}

func (m *HTTPMetrics) ObserveRequest(method, route string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(seconds)
}
