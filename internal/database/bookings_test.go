package database

import (
	"context"
	"testing"
	"time"

	"github.com/LuckyFay12/shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createBooking(t *testing.T, db *DB, itemID, bookerID int64, start, end time.Time, status models.Status) *models.Booking {
	t.Helper()
	b := &models.Booking{Start: start, End: end, ItemID: itemID, BookerID: bookerID, Status: status}
	require.NoError(t, db.CreateBooking(context.Background(), b))
	return b
}

func TestBookingCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	start := time.Now().Add(time.Hour)
	end := start.Add(24 * time.Hour)

	booking := createBooking(t, db, 1, 2, start, end, models.StatusWaiting)

	got, err := db.GetBookingByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusWaiting, got.Status)
	assert.Equal(t, int64(1), got.ItemID)
	assert.Equal(t, int64(2), got.BookerID)
	// DATETIME round-trips at second precision in UTC
	assert.WithinDuration(t, start.UTC(), got.Start, time.Second)
	assert.WithinDuration(t, end.UTC(), got.End, time.Second)

	_, err = db.GetBookingByID(ctx, 999)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdateBookingStatusFrom(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	booking := createBooking(t, db, 1, 2, now.Add(time.Hour), now.Add(2*time.Hour), models.StatusWaiting)

	err := db.UpdateBookingStatusFrom(ctx, booking.ID, models.StatusWaiting, models.StatusApproved)
	require.NoError(t, err)

	got, err := db.GetBookingByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)

	// Second transition from WAITING loses: the row no longer matches
	err = db.UpdateBookingStatusFrom(ctx, booking.ID, models.StatusWaiting, models.StatusRejected)
	assert.ErrorIs(t, err, ErrStatusConflict)

	// Status stays as the winner left it
	got, err = db.GetBookingByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)
}

func TestBookerWindowQueries(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	past := createBooking(t, db, 1, 5, now.Add(-48*time.Hour), now.Add(-24*time.Hour), models.StatusApproved)
	current := createBooking(t, db, 1, 5, now.Add(-time.Hour), now.Add(time.Hour), models.StatusApproved)
	future := createBooking(t, db, 2, 5, now.Add(24*time.Hour), now.Add(48*time.Hour), models.StatusWaiting)
	createBooking(t, db, 2, 9, now.Add(24*time.Hour), now.Add(48*time.Hour), models.StatusWaiting) // other booker

	all, err := db.GetBookingsByBooker(ctx, 5)
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Newest start first
	assert.Equal(t, future.ID, all[0].ID)
	assert.Equal(t, current.ID, all[1].ID)
	assert.Equal(t, past.ID, all[2].ID)

	got, err := db.GetCurrentBookingsByBooker(ctx, 5, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, current.ID, got[0].ID)

	got, err = db.GetPastBookingsByBooker(ctx, 5, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, past.ID, got[0].ID)

	got, err = db.GetFutureBookingsByBooker(ctx, 5, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, future.ID, got[0].ID)
}

func TestBookerStatusQueries(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	waiting := createBooking(t, db, 1, 5, now.Add(time.Hour), now.Add(2*time.Hour), models.StatusWaiting)
	rejected := createBooking(t, db, 1, 5, now.Add(3*time.Hour), now.Add(4*time.Hour), models.StatusRejected)
	canceled := createBooking(t, db, 1, 5, now.Add(5*time.Hour), now.Add(6*time.Hour), models.StatusCanceled)
	createBooking(t, db, 1, 5, now.Add(7*time.Hour), now.Add(8*time.Hour), models.StatusApproved)

	got, err := db.GetBookingsByBookerAndStatuses(ctx, 5, []models.Status{models.StatusWaiting})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, waiting.ID, got[0].ID)

	// REJECTED groups the legacy CANCELED status in
	got, err = db.GetBookingsByBookerAndStatuses(ctx, 5, models.RejectedStatuses)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, canceled.ID, got[0].ID)
	assert.Equal(t, rejected.ID, got[1].ID)
}

func TestOwnerQueries(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	ownerItem := &models.Item{Name: "Drill", Available: true, OwnerID: 10}
	otherItem := &models.Item{Name: "Saw", Available: true, OwnerID: 11}
	require.NoError(t, db.CreateItem(ctx, ownerItem))
	require.NoError(t, db.CreateItem(ctx, otherItem))

	mine := createBooking(t, db, ownerItem.ID, 5, now.Add(-time.Hour), now.Add(time.Hour), models.StatusApproved)
	createBooking(t, db, otherItem.ID, 5, now.Add(-time.Hour), now.Add(time.Hour), models.StatusApproved)

	all, err := db.GetBookingsByOwner(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, mine.ID, all[0].ID)

	got, err := db.GetCurrentBookingsByOwner(ctx, 10, now)
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = db.GetPastBookingsByOwner(ctx, 10, now)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = db.GetBookingsByOwnerAndStatuses(ctx, 10, []models.Status{models.StatusApproved})
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestNextAndLastBooking(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	itemID := int64(1)

	// No bookings at all: both sides come back nil without error
	next, err := db.GetNextBooking(ctx, itemID, now, []models.Status{models.StatusApproved, models.StatusWaiting})
	require.NoError(t, err)
	assert.Nil(t, next)
	last, err := db.GetLastBooking(ctx, itemID, now, []models.Status{models.StatusApproved})
	require.NoError(t, err)
	assert.Nil(t, last)

	older := createBooking(t, db, itemID, 5, now.Add(-72*time.Hour), now.Add(-48*time.Hour), models.StatusApproved)
	newer := createBooking(t, db, itemID, 6, now.Add(-24*time.Hour), now.Add(-12*time.Hour), models.StatusApproved)
	soon := createBooking(t, db, itemID, 7, now.Add(12*time.Hour), now.Add(24*time.Hour), models.StatusWaiting)
	createBooking(t, db, itemID, 8, now.Add(48*time.Hour), now.Add(72*time.Hour), models.StatusApproved)
	createBooking(t, db, itemID, 9, now.Add(time.Hour), now.Add(2*time.Hour), models.StatusRejected)

	next, err = db.GetNextBooking(ctx, itemID, now, []models.Status{models.StatusApproved, models.StatusWaiting})
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, soon.ID, next.ID)

	last, err = db.GetLastBooking(ctx, itemID, now, []models.Status{models.StatusApproved})
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, newer.ID, last.ID)
	assert.NotEqual(t, older.ID, last.ID)
}

func TestGetBookingsByItemAndBooker(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	createBooking(t, db, 1, 5, now.Add(-2*time.Hour), now.Add(-time.Hour), models.StatusApproved)
	createBooking(t, db, 1, 6, now.Add(-2*time.Hour), now.Add(-time.Hour), models.StatusApproved)
	createBooking(t, db, 2, 5, now.Add(-2*time.Hour), now.Add(-time.Hour), models.StatusApproved)

	got, err := db.GetBookingsByItemAndBooker(ctx, 1, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ItemID)
	assert.Equal(t, int64(5), got[0].BookerID)
}
