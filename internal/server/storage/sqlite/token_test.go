package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codraft/codraft/internal/models"
	"github.com/codraft/codraft/internal/server/storage"
)

func newTestToken(userID string, expiresAt time.Time) *models.RefreshToken {
	return &models.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    userID,
		TokenHash: uuid.New().String(),
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
}

func TestTokenStorage_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	token := newTestToken(userID, time.Now().Add(time.Hour))

	require.NoError(t, s.SaveRefreshToken(ctx, token))

	saved, err := s.GetRefreshToken(ctx, token.TokenHash)
	require.NoError(t, err)
	assert.Equal(t, token.ID, saved.ID)
	assert.Equal(t, userID, saved.UserID)
}

func TestTokenStorage_GetNotFound(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	_, err := s.GetRefreshToken(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)
}

func TestTokenStorage_Delete(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	token := newTestToken(userID, time.Now().Add(time.Hour))
	require.NoError(t, s.SaveRefreshToken(ctx, token))

	require.NoError(t, s.DeleteRefreshToken(ctx, token.TokenHash))

	_, err := s.GetRefreshToken(ctx, token.TokenHash)
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)

	// Повторное удаление — ErrTokenNotFound
	err = s.DeleteRefreshToken(ctx, token.TokenHash)
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)
}

func TestTokenStorage_DeleteUserTokens(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	otherID := createTestUser(t, ctx, s)

	require.NoError(t, s.SaveRefreshToken(ctx, newTestToken(userID, time.Now().Add(time.Hour))))
	require.NoError(t, s.SaveRefreshToken(ctx, newTestToken(userID, time.Now().Add(time.Hour))))
	otherToken := newTestToken(otherID, time.Now().Add(time.Hour))
	require.NoError(t, s.SaveRefreshToken(ctx, otherToken))

	deleted, err := s.DeleteUserTokens(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	// Токены другого пользователя не затронуты
	_, err = s.GetRefreshToken(ctx, otherToken.TokenHash)
	require.NoError(t, err)
}

func TestTokenStorage_DeleteExpiredTokens(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)

	expired := newTestToken(userID, time.Now().Add(-time.Hour))
	active := newTestToken(userID, time.Now().Add(time.Hour))
	require.NoError(t, s.SaveRefreshToken(ctx, expired))
	require.NoError(t, s.SaveRefreshToken(ctx, active))

	deleted, err := s.DeleteExpiredTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, err = s.GetRefreshToken(ctx, expired.TokenHash)
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)
	_, err = s.GetRefreshToken(ctx, active.TokenHash)
	require.NoError(t, err)
}
