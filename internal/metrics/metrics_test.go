package metrics

import (
	"testing"

	"shareit/internal/events"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestMetrics(t *testing.T) {
	// Register should be safe to call multiple times
	Register()
	Register()

	before := counterValue(t, httpRequests.WithLabelValues("GET /bookings", "200"))
	IncHTTP("GET /bookings", 200)
	assert.Equal(t, before+1, counterValue(t, httpRequests.WithLabelValues("GET /bookings", "200")))
}

func TestSubscribe(t *testing.T) {
	bus := events.NewEventBus()
	Subscribe(bus)

	approved := bookingTransitions.WithLabelValues("APPROVED")
	rejected := bookingTransitions.WithLabelValues("REJECTED")
	approvedBefore := counterValue(t, approved)
	rejectedBefore := counterValue(t, rejected)
	commentsBefore := counterValue(t, commentsAdded)

	require.NoError(t, bus.PublishJSON(events.EventBookingApproved, events.BookingEventPayload{BookingID: 1}))
	require.NoError(t, bus.PublishJSON(events.EventCommentAdded, events.CommentEventPayload{CommentID: 1}))

	assert.Equal(t, approvedBefore+1, counterValue(t, approved))
	assert.Equal(t, rejectedBefore, counterValue(t, rejected))
	assert.Equal(t, commentsBefore+1, counterValue(t, commentsAdded))
}
