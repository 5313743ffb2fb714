package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"shareit/internal/models"

	"github.com/go-playground/validator/v10"
)

// Принимаем RFC 3339 и локальный формат без зоны (считается UTC)
var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05"}

func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		if !models.StorableTime(t) {
			return time.Time{}, fmt.Errorf("timestamp %q out of range", raw)
		}
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", raw)
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("invalid field %s: failed %s", fe.Field(), fe.Tag())
	}
	return err.Error()
}

type createUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

type createItemRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Available   *bool  `json:"available" validate:"required"`
}

type updateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type itemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
}

func toItemResponse(i *models.Item) itemResponse {
	return itemResponse{ID: i.ID, Name: i.Name, Description: i.Description, Available: i.Available, OwnerID: i.OwnerID}
}

type bookingShortResponse struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

type commentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

func toCommentResponse(c *models.Comment) commentResponse {
	return commentResponse{ID: c.ID, Text: c.Text, AuthorName: c.AuthorName, Created: c.CreatedAt}
}

type itemViewResponse struct {
	itemResponse
	LastBooking *bookingShortResponse `json:"lastBooking"`
	NextBooking *bookingShortResponse `json:"nextBooking"`
	Comments    []commentResponse     `json:"comments"`
}

func toBookingShort(b *models.BookingShort) *bookingShortResponse {
	if b == nil {
		return nil
	}
	return &bookingShortResponse{ID: b.ID, BookerID: b.BookerID, Start: b.Start, End: b.End}
}

func toItemViewResponse(v *models.ItemView) itemViewResponse {
	resp := itemViewResponse{
		itemResponse: toItemResponse(&v.Item),
		LastBooking:  toBookingShort(v.LastBooking),
		NextBooking:  toBookingShort(v.NextBooking),
		Comments:     make([]commentResponse, 0, len(v.Comments)),
	}
	for i := range v.Comments {
		resp.Comments = append(resp.Comments, toCommentResponse(&v.Comments[i]))
	}
	return resp
}

type commentRequest struct {
	Text string `json:"text"`
}

type createBookingRequest struct {
	ItemID int64  `json:"itemId" validate:"required,gt=0"`
	Start  string `json:"start" validate:"required"`
	End    string `json:"end" validate:"required"`
}

func (r createBookingRequest) toModel() (models.CreateBookingRequest, error) {
	start, err := parseTimestamp(r.Start)
	if err != nil {
		return models.CreateBookingRequest{}, err
	}
	end, err := parseTimestamp(r.End)
	if err != nil {
		return models.CreateBookingRequest{}, err
	}
	return models.CreateBookingRequest{ItemID: r.ItemID, Start: start, End: end}, nil
}

type bookingRef struct {
	ID int64 `json:"id"`
}

type bookingItemRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type bookingResponse struct {
	ID     int64          `json:"id"`
	Start  time.Time      `json:"start"`
	End    time.Time      `json:"end"`
	Status string         `json:"status"`
	Booker bookingRef     `json:"booker"`
	Item   bookingItemRef `json:"item"`
}

func toBookingResponse(b *models.Booking) bookingResponse {
	return bookingResponse{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: string(b.Status),
		Booker: bookingRef{ID: b.BookerID},
		Item:   bookingItemRef{ID: b.ItemID, Name: b.ItemName},
	}
}

func toBookingResponses(bookings []*models.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	return out
}
