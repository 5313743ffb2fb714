package models

import "time"

type Item struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemPatch carries the optional fields of an item update; nil means unchanged.
type ItemPatch struct {
	Name        *string
	Description *string
	Available   *bool
}

// Apply copies the set fields of p onto item.
func (p ItemPatch) Apply(item *Item) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Available != nil {
		item.Available = *p.Available
	}
}

type Comment struct {
	ID         int64     `json:"id"`
	ItemID     int64     `json:"item_id"`
	AuthorID   int64     `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created"`
}

// BookingShort is the compact booking shown next to an item.
type BookingShort struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

func NewBookingShort(b *Booking) *BookingShort {
	if b == nil {
		return nil
	}
	return &BookingShort{ID: b.ID, BookerID: b.BookerID, Start: b.Start, End: b.End}
}

// ItemView is an item with its derived last/next approved bookings and comments.
type ItemView struct {
	Item
	LastBooking *BookingShort `json:"last_booking"`
	NextBooking *BookingShort `json:"next_booking"`
	Comments    []Comment     `json:"comments"`
}

// LastAndNext picks, among approved bookings, the one with the greatest End
// strictly before now and the one with the smallest Start strictly after now.
// Ties keep the earliest element of the input.
func LastAndNext(approved []*Booking, now time.Time) (last, next *Booking) {
	for _, b := range approved {
		if b.End.Before(now) && (last == nil || b.End.After(last.End)) {
			last = b
		}
		if b.Start.After(now) && (next == nil || b.Start.Before(next.Start)) {
			next = b
		}
	}
	return last, next
}
