package database

import (
	"context"
	"io"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB_ErrorPaths(t *testing.T) {
	logger := zerolog.New(io.Discard)
	db, err := NewDB(":memory:", &logger)
	require.NoError(t, err)
	db.Close() // Close the DB to trigger errors

	ctx := context.Background()
	now := time.Now()
	q := models.BookingQuery{UserID: 1, State: models.StateAll, Now: now, Page: models.Page{Size: 10}}

	t.Run("CreateUser_Error", func(t *testing.T) {
		err := db.CreateUser(ctx, &models.User{Name: "x", Email: "x@example.com"})
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("GetUserByID_Error", func(t *testing.T) {
		_, err := db.GetUserByID(ctx, 1)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("UserExists_Error", func(t *testing.T) {
		_, err := db.UserExists(ctx, 1)
		assert.Error(t, err)
	})

	t.Run("CreateItem_Error", func(t *testing.T) {
		assert.Error(t, db.CreateItem(ctx, &models.Item{Name: "x"}))
	})

	t.Run("GetItemsByOwner_Error", func(t *testing.T) {
		_, err := db.GetItemsByOwner(ctx, 1)
		assert.Error(t, err)
	})

	t.Run("CreateBooking_Error", func(t *testing.T) {
		assert.Error(t, db.CreateBooking(ctx, &models.Booking{Start: now, End: now.Add(time.Hour)}))
	})

	t.Run("UpdateBookingStatus_Error", func(t *testing.T) {
		err := db.UpdateBookingStatusIfWaiting(ctx, 1, models.StatusApproved, now)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrStatusConflict)
	})

	t.Run("ListBookerBookings_Error", func(t *testing.T) {
		_, err := db.ListBookerBookings(ctx, q)
		assert.Error(t, err)
	})

	t.Run("ApprovedBookings_Error", func(t *testing.T) {
		_, err := db.GetApprovedBookingsForItems(ctx, []int64{1})
		assert.Error(t, err)
	})

	t.Run("HasFinishedBooking_Error", func(t *testing.T) {
		_, err := db.HasFinishedBooking(ctx, 1, 1, now)
		assert.Error(t, err)
	})

	t.Run("GetCommentsByItems_Error", func(t *testing.T) {
		_, err := db.GetCommentsByItems(ctx, []int64{1})
		assert.Error(t, err)
	})
}
