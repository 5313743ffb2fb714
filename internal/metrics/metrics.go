package metrics

import (
	"strconv"
	"sync"

	"shareit/internal/events"

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

	bookingTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "booking_transitions_total",
			Help:      "Bookings entering a status.",
		},
		[]string{"status"},
	)

	commentsAdded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "comments_total",
			Help:      "Comments left on items.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingTransitions, commentsAdded)
	})
}

// IncHTTP increments the counter for an endpoint pattern and response code.
func IncHTTP(endpoint string, status int) {
	httpRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
}

// Subscribe wires booking and comment counters to the bus.
func Subscribe(bus *events.EventBus) {
	transitions := map[string]string{
		events.EventBookingCreated:  "WAITING",
		events.EventBookingApproved: "APPROVED",
		events.EventBookingRejected: "REJECTED",
		events.EventBookingCanceled: "CANCELED",
	}
	for eventType, status := range transitions {
		counter := bookingTransitions.WithLabelValues(status)
		bus.Subscribe(eventType, func(*events.Event) error {
			counter.Inc()
			return nil
		})
	}

	bus.Subscribe(events.EventCommentAdded, func(*events.Event) error {
		commentsAdded.Inc()
		return nil
	})
}
