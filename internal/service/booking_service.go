package service

import (
	"context"
	"errors"
	"time"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

const msgAlreadyDecided = "Booking already decided"

type BookingService struct {
	bookings domain.BookingRepository
	users    domain.UserRepository
	items    domain.ItemRepository
	eventBus domain.EventPublisher
	clock    domain.Clock
	logger   *zerolog.Logger
}

func NewBookingService(
	bookings domain.BookingRepository,
	users domain.UserRepository,
	items domain.ItemRepository,
	eventBus domain.EventPublisher,
	clock domain.Clock,
	logger *zerolog.Logger,
) *BookingService {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &BookingService{
		bookings: bookings,
		users:    users,
		items:    items,
		eventBus: eventBus,
		clock:    clock,
		logger:   logger,
	}
}

// CreateBooking requests item req.ItemID for requesterID. Overlap with other
// bookings of the same item is not checked.
func (s *BookingService) CreateBooking(ctx context.Context, requesterID int64, req models.CreateBookingRequest) (*models.Booking, error) {
	if err := requireUser(ctx, s.users, requesterID); err != nil {
		return nil, err
	}

	item, err := loadItem(ctx, s.items, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, models.NewInvalidRequest("Item is not available for booking")
	}
	if item.OwnerID == requesterID {
		return nil, models.NewForbidden("Owner cannot book own item")
	}

	if !models.StorableTime(req.Start) || !models.StorableTime(req.End) {
		return nil, models.NewInvalidRequest("Booking time must be within years 1 to 9999 UTC")
	}
	if req.End.Before(req.Start) {
		return nil, models.NewInvalidRequest("Booking start must be before end")
	}
	if req.Start.Equal(req.End) {
		return nil, models.NewInvalidRequest("Booking start must not equal end")
	}

	booking := &models.Booking{
		ItemID:   item.ID,
		ItemName: item.Name,
		OwnerID:  item.OwnerID,
		BookerID: requesterID,
		Start:    req.Start,
		End:      req.End,
		Status:   models.StatusWaiting,
	}
	if err := s.bookings.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("booking_id", booking.ID).
		Int64("item_id", booking.ItemID).
		Int64("booker_id", requesterID).
		Msg("booking created")
	s.publishEvent(events.EventBookingCreated, booking, requesterID)

	return booking, nil
}

// DecideBooking approves or rejects a WAITING booking on behalf of the item owner.
func (s *BookingService) DecideBooking(ctx context.Context, bookingID, requesterID int64, approved bool) (*models.Booking, error) {
	booking, err := loadBooking(ctx, s.bookings, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.OwnerID != requesterID {
		return nil, models.NewForbidden("Only the item owner can decide on a booking")
	}

	next, eventType := models.StatusRejected, events.EventBookingRejected
	if approved {
		next, eventType = models.StatusApproved, events.EventBookingApproved
	}
	if err := s.transition(ctx, booking, next); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("booking_id", booking.ID).
		Str("status", string(booking.Status)).
		Int64("owner_id", requesterID).
		Msg("booking decided")
	s.publishEvent(eventType, booking, requesterID)

	return booking, nil
}

// CancelBooking lets the booker withdraw a booking that is still WAITING.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID, requesterID int64) (*models.Booking, error) {
	booking, err := loadBooking(ctx, s.bookings, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.BookerID != requesterID {
		return nil, models.NewForbidden("Only the booker can cancel a booking")
	}

	if err := s.transition(ctx, booking, models.StatusCanceled); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("booking_id", booking.ID).Msg("booking canceled")
	s.publishEvent(events.EventBookingCanceled, booking, requesterID)

	return booking, nil
}

// transition re-checks WAITING atomically in the store; a lost race reads as already decided.
func (s *BookingService) transition(ctx context.Context, booking *models.Booking, next models.BookingStatus) error {
	if !booking.Status.CanTransitionTo(next) {
		return models.NewInvalidRequest(msgAlreadyDecided)
	}

	now := s.clock.Now()
	err := s.bookings.UpdateBookingStatusIfWaiting(ctx, booking.ID, next, now)
	if errors.Is(err, database.ErrStatusConflict) {
		return models.NewInvalidRequest(msgAlreadyDecided)
	}
	if err != nil {
		return err
	}

	booking.Status = next
	booking.UpdatedAt = now
	return nil
}

// GetBooking is visible to the booker and the item owner only.
func (s *BookingService) GetBooking(ctx context.Context, bookingID, requesterID int64) (*models.Booking, error) {
	booking, err := loadBooking(ctx, s.bookings, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.BookerID != requesterID && booking.OwnerID != requesterID {
		return nil, models.NewForbidden("Booking is visible to its booker and the item owner only")
	}
	return booking, nil
}

// CanCommentAt reports whether userID has any booking of itemID that ended before now.
// Status is not considered: rejected or canceled past bookings also qualify.
func (s *BookingService) CanCommentAt(ctx context.Context, userID, itemID int64, now time.Time) (bool, error) {
	return s.bookings.HasFinishedBooking(ctx, userID, itemID, now)
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking, changedByID int64) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID:   booking.ID,
		ItemID:      booking.ItemID,
		ItemName:    booking.ItemName,
		OwnerID:     booking.OwnerID,
		BookerID:    booking.BookerID,
		Status:      string(booking.Status),
		Start:       booking.Start,
		End:         booking.End,
		ChangedByID: changedByID,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
