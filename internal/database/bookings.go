package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/models"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/doug-martin/goqu/v9/exp"
)

var dialect = goqu.Dialect("sqlite3")

type bookingRow struct {
	ID        int64  `db:"id"`
	ItemID    int64  `db:"item_id"`
	ItemName  string `db:"item_name"`
	OwnerID   int64  `db:"owner_id"`
	BookerID  int64  `db:"booker_id"`
	Start     string `db:"start_time"`
	End       string `db:"end_time"`
	Status    string `db:"status"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

func (r bookingRow) toModel() (*models.Booking, error) {
	b := &models.Booking{
		ID:       r.ID,
		ItemID:   r.ItemID,
		ItemName: r.ItemName,
		OwnerID:  r.OwnerID,
		BookerID: r.BookerID,
		Status:   models.BookingStatus(r.Status),
	}
	var err error
	if b.Start, err = parseTime(r.Start); err != nil {
		return nil, err
	}
	if b.End, err = parseTime(r.End); err != nil {
		return nil, err
	}
	if b.CreatedAt, err = parseTime(r.CreatedAt); err != nil {
		return nil, err
	}
	if b.UpdatedAt, err = parseTime(r.UpdatedAt); err != nil {
		return nil, err
	}
	return b, nil
}

// selectBookings joins the item for its name and owner.
func selectBookings() *goqu.SelectDataset {
	return dialect.From(goqu.T("bookings").As("b")).
		Join(goqu.T("items").As("i"), goqu.On(goqu.I("i.id").Eq(goqu.I("b.item_id")))).
		Select(
			goqu.I("b.id").As("id"),
			goqu.I("b.item_id").As("item_id"),
			goqu.I("i.name").As("item_name"),
			goqu.I("i.owner_id").As("owner_id"),
			goqu.I("b.booker_id").As("booker_id"),
			goqu.I("b.start_time").As("start_time"),
			goqu.I("b.end_time").As("end_time"),
			goqu.I("b.status").As("status"),
			goqu.I("b.created_at").As("created_at"),
			goqu.I("b.updated_at").As("updated_at"),
		).
		Prepared(true)
}

// bookingStateCondition maps a listing filter to its WHERE clause.
// StateAll yields nil: no condition.
func bookingStateCondition(state models.BookingState, now time.Time) (exp.Expression, error) {
	n := formatTime(now)
	switch state {
	case models.StateAll:
		return nil, nil
	case models.StateCurrent:
		return goqu.And(
			goqu.I("b.start_time").Lt(n),
			goqu.I("b.end_time").Gt(n),
		), nil
	case models.StatePast:
		return goqu.I("b.end_time").Lt(n), nil
	case models.StateFuture:
		return goqu.I("b.start_time").Gt(n), nil
	case models.StateWaiting:
		return goqu.I("b.status").Eq(string(models.StatusWaiting)), nil
	case models.StateRejected:
		return goqu.I("b.status").Eq(string(models.StatusRejected)), nil
	default:
		return nil, fmt.Errorf("unsupported booking state %q", state)
	}
}

func (db *DB) queryBookings(ctx context.Context, ds *goqu.SelectDataset) ([]*models.Booking, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build bookings query: %w", err)
	}

	var rows []bookingRow
	if err := db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}

	bookings := make([]*models.Booking, 0, len(rows))
	for _, r := range rows {
		b, err := r.toModel()
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	now := time.Now().UTC()
	if booking.Status == "" {
		booking.Status = models.StatusWaiting
	}
	result, err := db.ExecContext(ctx,
		`INSERT INTO bookings (item_id, booker_id, start_time, end_time, status, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		booking.ItemID,
		booking.BookerID,
		formatTime(booking.Start),
		formatTime(booking.End),
		string(booking.Status),
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	booking.CreatedAt = now
	booking.UpdatedAt = now
	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query, args, err := selectBookings().Where(goqu.I("b.id").Eq(id)).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build booking query: %w", err)
	}

	var row bookingRow
	err = db.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return row.toModel()
}

// UpdateBookingStatusIfWaiting re-checks WAITING in the same statement as the write,
// so of two racing decisions exactly one affects a row.
func (db *DB) UpdateBookingStatusIfWaiting(ctx context.Context, id int64, status models.BookingStatus, at time.Time) error {
	result, err := db.ExecContext(ctx,
		`UPDATE bookings SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		string(status), formatTime(at), id, string(models.StatusWaiting),
	)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrStatusConflict
	}
	return nil
}

func (db *DB) listBookings(ctx context.Context, userCond exp.Expression, q models.BookingQuery) ([]*models.Booking, error) {
	cond, err := bookingStateCondition(q.State, q.Now)
	if err != nil {
		return nil, err
	}

	ds := selectBookings().Where(userCond)
	if cond != nil {
		ds = ds.Where(cond)
	}
	ds = ds.Order(goqu.I("b.start_time").Desc(), goqu.I("b.id").Desc()).
		Limit(uint(q.Page.Size)).
		Offset(uint(q.Page.Offset()))

	return db.queryBookings(ctx, ds)
}

func (db *DB) ListBookerBookings(ctx context.Context, q models.BookingQuery) ([]*models.Booking, error) {
	return db.listBookings(ctx, goqu.I("b.booker_id").Eq(q.UserID), q)
}

func (db *DB) ListOwnerBookings(ctx context.Context, q models.BookingQuery) ([]*models.Booking, error) {
	return db.listBookings(ctx, goqu.I("i.owner_id").Eq(q.UserID), q)
}

// GetApprovedBookingsForItems returns approved bookings of all itemIDs ordered by start ascending.
func (db *DB) GetApprovedBookingsForItems(ctx context.Context, itemIDs []int64) ([]*models.Booking, error) {
	if len(itemIDs) == 0 {
		return []*models.Booking{}, nil
	}
	ds := selectBookings().
		Where(
			goqu.I("b.item_id").In(itemIDs),
			goqu.I("b.status").Eq(string(models.StatusApproved)),
		).
		Order(goqu.I("b.start_time").Asc(), goqu.I("b.id").Asc())
	return db.queryBookings(ctx, ds)
}

// HasFinishedBooking reports whether bookerID has any booking of itemID that ended before now.
// Status is not considered.
func (db *DB) HasFinishedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	var exists bool
	err := db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM bookings WHERE booker_id = ? AND item_id = ? AND end_time < ?)`,
		bookerID, itemID, formatTime(now),
	)
	if err != nil {
		return false, fmt.Errorf("failed to check finished booking: %w", err)
	}
	return exists, nil
}
