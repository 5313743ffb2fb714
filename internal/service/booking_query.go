package service

import (
	"context"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// BookingQueryService lists a user's bookings as booker or as item owner,
// newest start first.
type BookingQueryService struct {
	bookings domain.BookingRepository
	users    domain.UserRepository
	items    domain.ItemRepository
	clock    domain.Clock
	logger   *zerolog.Logger
}

func NewBookingQueryService(
	bookings domain.BookingRepository,
	users domain.UserRepository,
	items domain.ItemRepository,
	clock domain.Clock,
	logger *zerolog.Logger,
) *BookingQueryService {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &BookingQueryService{bookings: bookings, users: users, items: items, clock: clock, logger: logger}
}

func (s *BookingQueryService) ListBookerBookings(ctx context.Context, userID int64, state string, offset, limit int) ([]*models.Booking, error) {
	if err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}

	q, err := s.buildQuery(userID, state, offset, limit)
	if err != nil {
		return nil, err
	}
	return s.bookings.ListBookerBookings(ctx, q)
}

func (s *BookingQueryService) ListOwnerBookings(ctx context.Context, userID int64, state string, offset, limit int) ([]*models.Booking, error) {
	if err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}

	count, err := s.items.CountItemsByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, models.NewNotFound("User has no items")
	}

	q, err := s.buildQuery(userID, state, offset, limit)
	if err != nil {
		return nil, err
	}
	return s.bookings.ListOwnerBookings(ctx, q)
}

// buildQuery validates pagination before the state filter.
func (s *BookingQueryService) buildQuery(userID int64, state string, offset, limit int) (models.BookingQuery, error) {
	page, err := models.NewPage(offset, limit)
	if err != nil {
		return models.BookingQuery{}, err
	}

	parsed, err := models.ParseBookingState(state)
	if err != nil {
		return models.BookingQuery{}, err
	}

	return models.BookingQuery{UserID: userID, State: parsed, Now: s.clock.Now(), Page: page}, nil
}
