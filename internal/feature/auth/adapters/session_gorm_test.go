package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news_backend/internal/feature/auth/domain/entity"
	"news_backend/internal/feature/auth/usecase"
)

var sessionNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func newTestSessionGorm(t *testing.T) (*sessionGorm, uint) {
	t.Helper()
	db := setupTestDB(t)
	u := seedUser(t, db, "a@x.com")
	repo := NewSessionGorm(db)
	repo.now = func() time.Time { return sessionNow }
	return repo, u.ID
}

func seedSession(t *testing.T, repo *sessionGorm, id string, userID uint, createdAt, expiresAt time.Time) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &entity.Session{
		ID:        id,
		UserID:    userID,
		UserAgent: "test-agent",
		IPAddress: "127.0.0.1",
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}), "failed to seed session")
}

func TestSessionGorm_CreateAndFind(t *testing.T) {
	t.Parallel()
	repo, userID := newTestSessionGorm(t)
	ctx := context.Background()

	seedSession(t, repo, "s1", userID, sessionNow, sessionNow.Add(time.Hour))

	got, err := repo.FindByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, "test-agent", got.UserAgent)
	assert.True(t, got.ExpiresAt.Equal(sessionNow.Add(time.Hour)))
	assert.Nil(t, got.RevokedAt)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionGorm_Create_UnknownUser(t *testing.T) {
	t.Parallel()
	repo, _ := newTestSessionGorm(t)

	err := repo.Create(context.Background(), &entity.Session{ID: "s1", UserID: 404, CreatedAt: sessionNow, ExpiresAt: sessionNow.Add(time.Hour)})
	assert.Error(t, err)
}

func TestSessionGorm_Revoke(t *testing.T) {
	t.Parallel()
	repo, userID := newTestSessionGorm(t)
	ctx := context.Background()
	seedSession(t, repo, "s1", userID, sessionNow, sessionNow.Add(time.Hour))

	require.NoError(t, repo.Revoke(ctx, "s1"))
	got, err := repo.FindByID(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, got.IsRevoked())

	assert.NoError(t, repo.Revoke(ctx, "s1"), "revoking twice is fine")
	assert.ErrorIs(t, repo.Revoke(ctx, "missing"), usecase.ErrSessionNotFound)
}

func TestSessionGorm_ActiveSessions(t *testing.T) {
	t.Parallel()
	repo, userID := newTestSessionGorm(t)
	ctx := context.Background()

	seedSession(t, repo, "old", userID, sessionNow.Add(-2*time.Hour), sessionNow.Add(time.Hour))
	seedSession(t, repo, "new", userID, sessionNow.Add(-time.Hour), sessionNow.Add(time.Hour))
	seedSession(t, repo, "expired", userID, sessionNow.Add(-3*time.Hour), sessionNow.Add(-time.Minute))
	seedSession(t, repo, "revoked", userID, sessionNow.Add(-3*time.Hour), sessionNow.Add(time.Hour))
	require.NoError(t, repo.Revoke(ctx, "revoked"))

	active, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "old", active[0].ID)
	assert.Equal(t, "new", active[1].ID)

	count, err := repo.CountByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, repo.DeleteOldestByUserID(ctx, userID))
	_, err = repo.FindByID(ctx, "old")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)

	require.NoError(t, repo.RevokeAllByUserID(ctx, userID))
	count, err = repo.CountByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.NoError(t, repo.DeleteOldestByUserID(ctx, userID), "nothing left to delete")
}

func TestSessionGorm_DeleteExpired(t *testing.T) {
	t.Parallel()
	repo, userID := newTestSessionGorm(t)
	ctx := context.Background()

	seedSession(t, repo, "live", userID, sessionNow, sessionNow.Add(time.Hour))
	seedSession(t, repo, "gone1", userID, sessionNow.Add(-2*time.Hour), sessionNow.Add(-time.Hour))
	seedSession(t, repo, "gone2", userID, sessionNow.Add(-time.Hour), sessionNow)

	n, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = repo.FindByID(ctx, "live")
	assert.NoError(t, err)
}
