package metrics

import "github.com/prometheus/client_golang/prometheus"

// AvailabilityMetrics exposes counters/histograms for slot listing and point checks.
type AvailabilityMetrics struct {
	requestsTotal  *prometheus.CounterVec
	slotsReturned  prometheus.Histogram
	cacheTotal     *prometheus.CounterVec
	bookingsTotal  *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

func NewAvailabilityMetrics(reg prometheus.Registerer) *AvailabilityMetrics {
	m := &AvailabilityMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "availability",
			Name:      "requests_total",
			Help:      "Availability queries by operation and result",
		}, []string{"operation", "result"}),
		slotsReturned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "clinic",
			Subsystem: "availability",
			Name:      "slots_returned",
			Help:      "Number of free slots returned per listing",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 48},
		}),
		cacheTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "availability",
			Name:      "cache_total",
			Help:      "Slot cache lookups by outcome",
		}, []string{"outcome"}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "appointments",
			Name:      "bookings_total",
			Help:      "Appointment booking attempts by result",
		}, []string{"result"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clinic",
			Subsystem: "availability",
			Name:      "latency_seconds",
			Help:      "Latency of availability computations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.slotsReturned, m.cacheTotal, m.bookingsTotal, m.requestLatency)
	return m
}

func (m *AvailabilityMetrics) ObserveRequest(operation, result string, seconds float64) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(operation, result).Inc()
	m.requestLatency.WithLabelValues(operation).Observe(seconds)
}

func (m *AvailabilityMetrics) ObserveSlots(count int) {
	if m == nil {
		return
	}
	m.slotsReturned.Observe(float64(count))
}

func (m *AvailabilityMetrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.cacheTotal.WithLabelValues(outcome).Inc()
}

func (m *AvailabilityMetrics) ObserveBooking(result string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(result).Inc()
}
