package database

import (
	"context"
	"testing"

	"github.com/LuckyFay12/shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCRUD(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	user := &models.User{Name: "Alice", Email: "alice@example.com"}
	err := db.CreateUser(ctx, user)
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	got, err := db.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "alice@example.com", got.Email)

	got.Name = "Alice B"
	err = db.UpdateUser(ctx, got)
	require.NoError(t, err)

	updated, err := db.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)

	err = db.DeleteUser(ctx, user.ID)
	require.NoError(t, err)

	_, err = db.GetUserByID(ctx, user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	_, err := db.GetUserByID(ctx, 42)
	assert.ErrorIs(t, err, ErrUserNotFound)

	err = db.UpdateUser(ctx, &models.User{ID: 42, Name: "x", Email: "x@x.com"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	err = db.DeleteUser(ctx, 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetAllUsers_OrderedByID(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		err := db.CreateUser(ctx, &models.User{Name: name, Email: name + "@example.com"})
		require.NoError(t, err)
	}

	users, err := db.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "first", users[0].Name)
	assert.Equal(t, "third", users[2].Name)
}
