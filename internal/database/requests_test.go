package database

import (
	"context"
	"testing"
	"time"

	"github.com/LuckyFay12/shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestQueries(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	older := &models.ItemRequest{Description: "need a drill", RequestorID: 1, Created: base}
	newer := &models.ItemRequest{Description: "need a ladder", RequestorID: 1, Created: base.Add(time.Minute)}
	foreign := &models.ItemRequest{Description: "need a saw", RequestorID: 2, Created: base}
	require.NoError(t, db.CreateRequest(ctx, older))
	require.NoError(t, db.CreateRequest(ctx, newer))
	require.NoError(t, db.CreateRequest(ctx, foreign))

	got, err := db.GetRequestByID(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, "need a drill", got.Description)

	_, err = db.GetRequestByID(ctx, 999)
	assert.ErrorIs(t, err, ErrRequestNotFound)

	// Own requests, newest first
	mine, err := db.GetRequestsByRequestor(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, newer.ID, mine[0].ID)
	assert.Equal(t, older.ID, mine[1].ID)

	// Everyone else's requests
	others, err := db.GetOtherUsersRequests(ctx, 1)
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, foreign.ID, others[0].ID)
}
