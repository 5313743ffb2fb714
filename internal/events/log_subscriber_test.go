package events

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	bus := NewEventBus()
	SubscribeLogger(bus, &logger)

	require.NoError(t, bus.PublishJSON(EventBookingApproved, BookingEventPayload{
		BookingID:   5,
		ItemID:      2,
		BookerID:    3,
		Status:      "APPROVED",
		ChangedByID: 1,
	}))
	assert.Contains(t, buf.String(), `"event":"booking_approved"`)
	assert.Contains(t, buf.String(), `"booking_id":5`)
	assert.Contains(t, buf.String(), `"changed_by_id":1`)

	buf.Reset()
	require.NoError(t, bus.PublishJSON(EventCommentAdded, CommentEventPayload{CommentID: 9, ItemID: 2, AuthorID: 3}))
	assert.Contains(t, buf.String(), `"comment_id":9`)
	assert.Contains(t, buf.String(), "comment event")
}

func TestSubscribeLogger_BadPayload(t *testing.T) {
	logger := zerolog.Nop()
	bus := NewEventBus()
	SubscribeLogger(bus, &logger)

	err := bus.Publish(&Event{Type: EventBookingCreated, Payload: []byte("{not json")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode booking_created")
}
