package models

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
	StatusCanceled BookingStatus = "CANCELED"
)

// Valid reports whether s is one of the known booking statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusWaiting, StatusApproved, StatusRejected, StatusCanceled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a booking in status s may move to next.
// Only WAITING bookings can be decided or canceled.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s != StatusWaiting {
		return false
	}
	switch next {
	case StatusApproved, StatusRejected, StatusCanceled:
		return true
	}
	return false
}

// Booking holds identifiers only; ItemName and OwnerID are a read-only join
// filled by the store for display and permission checks.
type Booking struct {
	ID        int64         `json:"id"`
	Start     time.Time     `json:"start"`
	End       time.Time     `json:"end"`
	ItemID    int64         `json:"item_id"`
	ItemName  string        `json:"item_name"`
	OwnerID   int64         `json:"owner_id"`
	BookerID  int64         `json:"booker_id"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// StorableTime reports whether t falls in UTC years 1..9999,
// the range the store can keep as a fixed-width timestamp.
func StorableTime(t time.Time) bool {
	y := t.UTC().Year()
	return y >= 1 && y <= 9999
}

type CreateBookingRequest struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

// BookingState is the filter applied when listing a user's bookings.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

// ParseBookingState accepts the filter names case-insensitively.
func ParseBookingState(raw string) (BookingState, error) {
	state := BookingState(strings.ToUpper(strings.TrimSpace(raw)))
	switch state {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return state, nil
	}
	return "", NewInvalidRequest("Unknown state: " + raw)
}

// Page is a page-floor pagination window: Index = offset / limit.
type Page struct {
	Index int
	Size  int
}

// NewPage validates offset and limit and returns the page containing offset.
func NewPage(offset, limit int) (Page, error) {
	if offset < 0 || limit <= 0 {
		return Page{}, NewInvalidRequest("invalid pagination parameters")
	}
	return Page{Index: offset / limit, Size: limit}, nil
}

// Offset is the first row of the page.
func (p Page) Offset() int {
	return p.Index * p.Size
}

// BookingQuery describes one listing request against the store.
type BookingQuery struct {
	UserID int64
	State  BookingState
	Now    time.Time
	Page   Page
}
