package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint and status.",
		},
		[]string{"endpoint", "status"},
	)

	availabilityQueries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "availability_queries_total",
			Help:      "Room availability searches served.",
		},
	)

	reservationsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "reservations_created_total",
			Help:      "Reservations committed by the writer.",
		},
	)

	cacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "availability_cache_hits_total",
			Help:      "Availability cache lookups by outcome.",
		},
		[]string{"outcome"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, availabilityQueries, reservationsCreated, cacheHits)
	})
}

// IncHTTP increments the request counter for an endpoint/status pair.
func IncHTTP(endpoint, status string) {
	httpRequests.WithLabelValues(endpoint, status).Inc()
}

func IncAvailabilityQuery() {
	availabilityQueries.Inc()
}

func IncReservationCreated() {
	reservationsCreated.Inc()
}

// IncCache records a cache lookup outcome, "hit" or "miss".
func IncCache(outcome string) {
	cacheHits.WithLabelValues(outcome).Inc()
}
