package sqlite

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/tourplan/internal/models"
	"github.com/iudanet/tourplan/internal/server/storage"
)

func setupTestStorage(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	s, err := New(ctx, filepath.Join(t.TempDir(), "tourplan.db"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	cleanup := func() {
		_ = s.Close()
	}

	return s, cleanup
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestUserStorage_CreateUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	tests := []struct {
		wantError error
		user      *models.User
		name      string
	}{
		{
			name: "create new user successfully",
			user: &models.User{
				ID:           uuid.New().String(),
				Username:     "dispatcher",
				PasswordHash: "hash123",
				CreatedAt:    time.Now(),
			},
		},
		{
			name: "create user with last login",
			user: &models.User{
				ID:           uuid.New().String(),
				Username:     "planner",
				PasswordHash: "hash456",
				CreatedAt:    time.Now(),
				LastLogin:    timePtr(time.Now()),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.CreateUser(ctx, tt.user)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			retrieved, err := s.GetUserByUsername(ctx, tt.user.Username)
			require.NoError(t, err)
			assert.Equal(t, tt.user.ID, retrieved.ID)
			assert.Equal(t, tt.user.PasswordHash, retrieved.PasswordHash)
			assert.WithinDuration(t, tt.user.CreatedAt, retrieved.CreatedAt, time.Second)
			assert.Equal(t, tt.user.LastLogin != nil, retrieved.LastLogin != nil)
		})
	}
}

func TestUserStorage_CreateUser_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user1 := &models.User{ID: uuid.New().String(), Username: "duplicate", PasswordHash: "hash1", CreatedAt: time.Now()}
	require.NoError(t, s.CreateUser(ctx, user1))

	user2 := &models.User{ID: uuid.New().String(), Username: "duplicate", PasswordHash: "hash2", CreatedAt: time.Now()}
	err := s.CreateUser(ctx, user2)
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
}

func TestUserStorage_GetUserByUsername_NotFound(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user, err := s.GetUserByUsername(context.Background(), "notfound")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
	assert.Nil(t, user)
}

func TestUserStorage_Updates(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := &models.User{ID: uuid.New().String(), Username: "dispatcher", PasswordHash: "old", CreatedAt: time.Now()}
	require.NoError(t, s.CreateUser(ctx, user))

	require.NoError(t, s.UpdatePassword(ctx, user.ID, "new"))
	loginAt := time.Now().Add(-time.Minute)
	require.NoError(t, s.UpdateLastLogin(ctx, user.ID, loginAt))

	retrieved, err := s.GetUserByUsername(ctx, "dispatcher")
	require.NoError(t, err)
	assert.Equal(t, "new", retrieved.PasswordHash)
	require.NotNil(t, retrieved.LastLogin)
	assert.WithinDuration(t, loginAt, *retrieved.LastLogin, time.Second)

	assert.ErrorIs(t, s.UpdatePassword(ctx, "missing", "x"), storage.ErrUserNotFound)
	assert.ErrorIs(t, s.UpdateLastLogin(ctx, "missing", loginAt), storage.ErrUserNotFound)
}
