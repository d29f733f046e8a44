package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint and status code.",
		},
		[]string{"endpoint", "status"},
	)

	bookingEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "booking_events_total",
			Help:      "Booking lifecycle events by type.",
		},
		[]string{"event"},
	)

	cacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "cache_hits_total",
			Help:      "View cache hits by kind.",
		},
		[]string{"kind"},
	)

	cacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "cache_misses_total",
			Help:      "View cache misses by kind.",
		},
		[]string{"kind"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingEvents, cacheHits, cacheMisses)
	})
}

// IncHTTP increments the request counter for an endpoint/status pair.
func IncHTTP(endpoint, status string) {
	httpRequests.WithLabelValues(endpoint, status).Inc()
}

// IncBookingEvent increments the counter for a booking lifecycle event.
func IncBookingEvent(event string) {
	bookingEvents.WithLabelValues(event).Inc()
}

func IncCacheHit(kind string) {
	cacheHits.WithLabelValues(kind).Inc()
}

func IncCacheMiss(kind string) {
	cacheMisses.WithLabelValues(kind).Inc()
}
