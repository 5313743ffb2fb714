package events

import (
	"fmt"

	"github.com/rs/zerolog"
)

// SubscribeLogger logs every booking and comment event at Info.
func SubscribeLogger(bus *EventBus, logger *zerolog.Logger) {
	for _, eventType := range []string{
		EventBookingCreated,
		EventBookingApproved,
		EventBookingRejected,
		EventBookingCanceled,
	} {
		bus.Subscribe(eventType, func(event *Event) error {
			var p BookingEventPayload
			if err := event.Decode(&p); err != nil {
				return fmt.Errorf("decode %s: %w", event.Type, err)
			}
			logger.Info().
				Str("event", event.Type).
				Int64("booking_id", p.BookingID).
				Int64("item_id", p.ItemID).
				Int64("booker_id", p.BookerID).
				Int64("changed_by_id", p.ChangedByID).
				Str("status", p.Status).
				Msg("booking event")
			return nil
		})
	}

	bus.Subscribe(EventCommentAdded, func(event *Event) error {
		var p CommentEventPayload
		if err := event.Decode(&p); err != nil {
			return fmt.Errorf("decode %s: %w", event.Type, err)
		}
		logger.Info().
			Str("event", event.Type).
			Int64("comment_id", p.CommentID).
			Int64("item_id", p.ItemID).
			Int64("author_id", p.AuthorID).
			Msg("comment event")
		return nil
	})
}
