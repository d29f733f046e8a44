package service

import (
	"context"
	"testing"
	"time"

	"github.com/LuckyFay12/shareit/internal/cache"
	"github.com/LuckyFay12/shareit/internal/database"
	"github.com/LuckyFay12/shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type itemFixture struct {
	db     *database.DB
	svc    *ItemService
	cache  *cache.MemoryCache
	owner  *models.User
	viewer *models.User
	item   *models.Item
}

func setupItemFixture(t *testing.T) *itemFixture {
	t.Helper()
	db := setupRepo(t)
	logger := zerolog.Nop()
	ctx := context.Background()

	f := &itemFixture{db: db, cache: cache.NewMemoryCache()}
	f.svc = NewItemService(db, f.cache, nil, time.Minute, &logger)

	f.owner = &models.User{Name: "Owner", Email: "owner@example.com"}
	require.NoError(t, db.CreateUser(ctx, f.owner))
	f.viewer = &models.User{Name: "Viewer", Email: "viewer@example.com"}
	require.NoError(t, db.CreateUser(ctx, f.viewer))

	f.item = &models.Item{Name: "Drill", Description: "600W", Available: true, OwnerID: f.owner.ID}
	require.NoError(t, db.CreateItem(ctx, f.item))
	return f
}

func (f *itemFixture) addBooking(t *testing.T, bookerID int64, start, end time.Time, status models.Status) *models.Booking {
	t.Helper()
	b := &models.Booking{Start: start, End: end, ItemID: f.item.ID, BookerID: bookerID, Status: status}
	require.NoError(t, f.db.CreateBooking(context.Background(), b))
	return b
}

func TestItemService_CreateValidatesRequest(t *testing.T) {
	f := setupItemFixture(t)
	ctx := context.Background()

	missing := int64(999)
	_, err := f.svc.Create(ctx, f.owner.ID, &models.Item{Name: "Saw", Description: "Sharp", Available: true, RequestID: &missing})
	assert.ErrorIs(t, err, database.ErrRequestNotFound)

	request := &models.ItemRequest{Description: "need a saw", RequestorID: f.viewer.ID, Created: time.Now()}
	require.NoError(t, f.db.CreateRequest(ctx, request))

	created, err := f.svc.Create(ctx, f.owner.ID, &models.Item{Name: "Saw", Description: "Sharp", Available: true, RequestID: &request.ID})
	require.NoError(t, err)
	require.NotNil(t, created.RequestID)
	assert.Equal(t, request.ID, *created.RequestID)

	_, err = f.svc.Create(ctx, 999, &models.Item{Name: "Saw", Description: "Sharp", Available: true})
	assert.ErrorIs(t, err, database.ErrUserNotFound)
}

func TestItemService_UpdateOwnerOnly(t *testing.T) {
	f := setupItemFixture(t)
	ctx := context.Background()

	_, err := f.svc.Update(ctx, f.viewer.ID, f.item.ID, models.ItemPatch{Name: strPtr("Hacked")})
	assert.ErrorIs(t, err, ErrAccessDenied)

	available := false
	updated, err := f.svc.Update(ctx, f.owner.ID, f.item.ID, models.ItemPatch{Available: &available})
	require.NoError(t, err)
	assert.False(t, updated.Available)
	// Untouched fields survive the patch
	assert.Equal(t, "Drill", updated.Name)
	assert.Equal(t, "600W", updated.Description)
}

func TestItemService_OwnerViewCarriesBookings(t *testing.T) {
	f := setupItemFixture(t)
	ctx := context.Background()
	now := time.Now()

	last := f.addBooking(t, f.viewer.ID, now.Add(-48*time.Hour), now.Add(-24*time.Hour), models.StatusApproved)
	next := f.addBooking(t, f.viewer.ID, now.Add(24*time.Hour), now.Add(48*time.Hour), models.StatusWaiting)
	// Rejected bookings never show up in the aggregation
	f.addBooking(t, f.viewer.ID, now.Add(time.Hour), now.Add(2*time.Hour), models.StatusRejected)

	view, err := f.svc.GetByID(ctx, f.owner.ID, f.item.ID)
	require.NoError(t, err)
	require.NotNil(t, view.LastBooking)
	require.NotNil(t, view.NextBooking)
	assert.Equal(t, last.ID, view.LastBooking.ID)
	assert.Equal(t, next.ID, view.NextBooking.ID)
	assert.Equal(t, f.viewer.ID, view.LastBooking.BookerID)
}

func TestItemService_NonOwnerViewHidesBookings(t *testing.T) {
	f := setupItemFixture(t)
	ctx := context.Background()
	now := time.Now()

	f.addBooking(t, f.viewer.ID, now.Add(-48*time.Hour), now.Add(-24*time.Hour), models.StatusApproved)
	f.addBooking(t, f.viewer.ID, now.Add(24*time.Hour), now.Add(48*time.Hour), models.StatusWaiting)

	view, err := f.svc.GetByID(ctx, f.viewer.ID, f.item.ID)
	require.NoError(t, err)
	assert.Nil(t, view.LastBooking)
	assert.Nil(t, view.NextBooking)
	assert.NotNil(t, view.Comments)

	// Second read is served from the cache
	_, hit := f.cache.Get(ctx, cache.ItemViewKey(f.item.ID))
	assert.True(t, hit)
	view2, err := f.svc.GetByID(ctx, f.viewer.ID, f.item.ID)
	require.NoError(t, err)
	assert.Equal(t, view.ID, view2.ID)
}

func TestItemService_SearchBlankShortCircuits(t *testing.T) {
	f := setupItemFixture(t)
	ctx := context.Background()

	for _, text := range []string{"", "   ", "\t"} {
		items, err := f.svc.Search(ctx, text)
		require.NoError(t, err)
		assert.Empty(t, items)
	}

	items, err := f.svc.Search(ctx, "drill")
	require.NoError(t, err)
	require.Len(t, items, 1)

	// Cached under the normalized key
	_, hit := f.cache.Get(ctx, cache.SearchKey("drill"))
	assert.True(t, hit)
}

func TestItemService_CommentRequiresFinishedRental(t *testing.T) {
	f := setupItemFixture(t)
	ctx := context.Background()
	now := time.Now()

	// No bookings at all
	_, err := f.svc.AddComment(ctx, f.viewer.ID, f.item.ID, "nice drill")
	assert.ErrorIs(t, err, ErrValidation)

	// An ongoing rental is not enough
	f.addBooking(t, f.viewer.ID, now.Add(-time.Hour), now.Add(time.Hour), models.StatusApproved)
	_, err = f.svc.AddComment(ctx, f.viewer.ID, f.item.ID, "nice drill")
	assert.ErrorIs(t, err, ErrValidation)

	// A finished one is
	f.addBooking(t, f.viewer.ID, now.Add(-48*time.Hour), now.Add(-24*time.Hour), models.StatusApproved)
	comment, err := f.svc.AddComment(ctx, f.viewer.ID, f.item.ID, "nice drill")
	require.NoError(t, err)
	assert.Equal(t, "nice drill", comment.Text)
	assert.Equal(t, "Viewer", comment.AuthorName)
	assert.Equal(t, "Drill", comment.ItemName)
	assert.False(t, comment.Created.IsZero())

	comments, err := f.svc.ListComments(ctx, f.item.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
}

func TestItemService_CommentInvalidatesCachedView(t *testing.T) {
	f := setupItemFixture(t)
	ctx := context.Background()
	now := time.Now()

	f.addBooking(t, f.viewer.ID, now.Add(-48*time.Hour), now.Add(-24*time.Hour), models.StatusApproved)

	// Warm the cache with a commentless view
	view, err := f.svc.GetByID(ctx, f.viewer.ID, f.item.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Comments)

	_, err = f.svc.AddComment(ctx, f.viewer.ID, f.item.ID, "nice drill")
	require.NoError(t, err)

	// Invalidation means the next read sees the comment
	view, err = f.svc.GetByID(ctx, f.viewer.ID, f.item.ID)
	require.NoError(t, err)
	require.Len(t, view.Comments, 1)
	assert.Equal(t, "nice drill", view.Comments[0].Text)
}
