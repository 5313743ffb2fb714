package domain

import (
	"context"
	"time"

	"shareit/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UserExists(ctx context.Context, id int64) (bool, error)
	UpdateUser(ctx context.Context, user *models.User) error
	ListUsers(ctx context.Context) ([]*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type ItemRepository interface {
	CreateItem(ctx context.Context, item *models.Item) error
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	GetItemsByOwner(ctx context.Context, ownerID int64) ([]*models.Item, error)
	CountItemsByOwner(ctx context.Context, ownerID int64) (int, error)
	SearchAvailableItems(ctx context.Context, text string) ([]*models.Item, error)
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	// UpdateBookingStatusIfWaiting moves a WAITING booking to status atomically.
	// Returns database.ErrStatusConflict when the booking is no longer WAITING.
	UpdateBookingStatusIfWaiting(ctx context.Context, id int64, status models.BookingStatus, at time.Time) error
	ListBookerBookings(ctx context.Context, q models.BookingQuery) ([]*models.Booking, error)
	ListOwnerBookings(ctx context.Context, q models.BookingQuery) ([]*models.Booking, error)
	GetApprovedBookingsForItems(ctx context.Context, itemIDs []int64) ([]*models.Booking, error)
	HasFinishedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByItems(ctx context.Context, itemIDs []int64) ([]*models.Comment, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// RateLimiter reports whether key may perform one more request in the current window.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// CommentEligibility answers whether userID completed a booking of itemID before now.
type CommentEligibility interface {
	CanCommentAt(ctx context.Context, userID, itemID int64, now time.Time) (bool, error)
}
