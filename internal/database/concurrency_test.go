package database

import (
	"context"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentDecisions(t *testing.T) {
	logger := zerolog.New(io.Discard)
	dbPath := filepath.Join(t.TempDir(), "concurrency.db")
	db, err := NewDB(dbPath, &logger)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	booker := createTestUser(t, db, "booker")
	item := createTestItem(t, db, owner.ID, "Limited Item")
	start := time.Now().UTC().Add(24 * time.Hour)
	booking := createTestBooking(t, db, item.ID, booker.ID, start, start.Add(time.Hour), models.StatusWaiting)

	const numGoroutines = 10
	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	results := make(chan error, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			status := models.StatusApproved
			if id%2 == 1 {
				status = models.StatusRejected
			}
			results <- db.UpdateBookingStatusIfWaiting(ctx, booking.ID, status, time.Now())
		}(i)
	}

	wg.Wait()
	close(results)

	successCount := 0
	conflictCount := 0
	for err := range results {
		switch {
		case err == nil:
			successCount++
		case assert.ErrorIs(t, err, ErrStatusConflict):
			conflictCount++
		}
	}

	assert.Equal(t, 1, successCount, "exactly one decision must win")
	assert.Equal(t, numGoroutines-1, conflictCount)

	got, err := db.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.NotEqual(t, models.StatusWaiting, got.Status)
}
