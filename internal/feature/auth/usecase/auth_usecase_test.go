package usecase

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"news_backend/internal/feature/auth/domain/entity"
	"news_backend/internal/shared/apperr"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
// It simulates database operations during testing.
type mockUserRepository struct {
	CreateFunc      func(ctx context.Context, user *entity.User) error
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	FindByIDFunc    func(ctx context.Context, id uint) (*entity.User, error)
	DeleteFunc      func(ctx context.Context, id uint) error
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	user.ID = 1
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return &entity.User{ID: id, Name: "user"}, nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// memorySessions is an in-memory SessionRepository.
type memorySessions struct {
	byID map[string]*entity.Session
	now  func() time.Time
	err  error
}

func newMemorySessions(now func() time.Time) *memorySessions {
	return &memorySessions{byID: map[string]*entity.Session{}, now: now}
}

func (m *memorySessions) Create(ctx context.Context, s *entity.Session) error {
	if m.err != nil {
		return m.err
	}
	cp := *s
	m.byID[s.ID] = &cp
	return nil
}

func (m *memorySessions) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.byID[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memorySessions) FindByUserID(ctx context.Context, userID uint) ([]*entity.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*entity.Session
	for _, s := range m.byID {
		if s.UserID == userID && s.IsValid(m.now()) {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memorySessions) Revoke(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	s, ok := m.byID[id]
	if !ok {
		return ErrSessionNotFound
	}
	now := m.now()
	s.RevokedAt = &now
	return nil
}

func (m *memorySessions) RevokeAllByUserID(ctx context.Context, userID uint) error {
	if m.err != nil {
		return m.err
	}
	for id, s := range m.byID {
		if s.UserID == userID {
			if err := m.Revoke(ctx, id); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *memorySessions) DeleteExpired(ctx context.Context) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	var n int64
	for id, s := range m.byID {
		if s.IsExpired(m.now()) {
			delete(m.byID, id)
			n++
		}
	}
	return n, nil
}

func (m *memorySessions) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	active, err := m.FindByUserID(ctx, userID)
	return int64(len(active)), err
}

func (m *memorySessions) DeleteOldestByUserID(ctx context.Context, userID uint) error {
	active, err := m.FindByUserID(ctx, userID)
	if err != nil || len(active) == 0 {
		return err
	}
	delete(m.byID, active[0].ID)
	return nil
}

// mockSigner is a mock implementation of the TokenSigner interface.
type mockSigner struct {
	GenerateTokenFunc func(userID uint, sessionID string, expiresAt time.Time) (string, error)
}

func (m *mockSigner) GenerateToken(userID uint, sessionID string, expiresAt time.Time) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, sessionID, expiresAt)
	}
	return "token-" + sessionID, nil
}

// fixedClock returns a clock that can be moved forward by the test.
func fixedClock(start time.Time) (func() time.Time, func(time.Duration)) {
	now := start
	return func() time.Time { return now }, func(d time.Duration) { now = now.Add(d) }
}

func newTestUsecase(users UserRepository, sessions *memorySessions, clock func() time.Time) *authUsecase {
	uc := NewAuthUsecase(users, sessions, &mockSigner{}, time.Hour)
	uc.now = clock
	return uc
}

func TestNewAuthUsecase_DefaultTTL(t *testing.T) {
	t.Parallel()

	uc := NewAuthUsecase(&mockUserRepository{}, newMemorySessions(time.Now), &mockSigner{}, 0)
	assert.Equal(t, DefaultSessionTTL, uc.sessionTTL)
}

func TestAuthUsecase_Register(t *testing.T) {
	t.Parallel()

	t.Run("successful registration hashes the password", func(t *testing.T) {
		t.Parallel()

		var stored *entity.User
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				stored = user
				user.ID = 7
				return nil
			},
		}
		uc := newTestUsecase(repo, newMemorySessions(time.Now), time.Now)

		id, err := uc.Register(context.Background(), "  Admin ", " A@X.com ", "pw123")

		require.NoError(t, err)
		assert.Equal(t, uint(7), id)
		assert.Equal(t, "Admin", stored.Name)
		assert.Equal(t, "a@x.com", stored.Email)
		assert.NotEqual(t, "pw123", stored.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw123")))
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()

		called := false
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				called = true
				return nil
			},
		}
		uc := newTestUsecase(repo, newMemorySessions(time.Now), time.Now)

		for _, in := range [][3]string{
			{"", "a@x.com", "pw"},
			{"Admin", "  ", "pw"},
			{"Admin", "a@x.com", "   "},
		} {
			_, err := uc.Register(context.Background(), in[0], in[1], in[2])
			assert.ErrorIs(t, err, ErrMissingField)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		}
		assert.False(t, called, "nothing should be stored")
	})

	t.Run("password longer than bcrypt accepts", func(t *testing.T) {
		t.Parallel()

		uc := newTestUsecase(&mockUserRepository{}, newMemorySessions(time.Now), time.Now)
		long := make([]byte, 73)
		for i := range long {
			long[i] = 'p'
		}

		_, err := uc.Register(context.Background(), "Admin", "a@x.com", string(long))
		assert.ErrorIs(t, err, ErrPasswordTooLong)
	})

	t.Run("email taken", func(t *testing.T) {
		t.Parallel()

		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error { return ErrEmailTaken },
		}
		uc := newTestUsecase(repo, newMemorySessions(time.Now), time.Now)

		_, err := uc.Register(context.Background(), "Admin", "a@x.com", "pw123")
		assert.ErrorIs(t, err, ErrEmailTaken)
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("storage failure", func(t *testing.T) {
		t.Parallel()

		dbErr := errors.New("database is locked")
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error { return dbErr },
		}
		uc := newTestUsecase(repo, newMemorySessions(time.Now), time.Now)

		_, err := uc.Register(context.Background(), "Admin", "a@x.com", "pw123")
		assert.ErrorIs(t, err, apperr.ErrStorage)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestAuthUsecase_Authenticate(t *testing.T) {
	t.Parallel()

	hashed, err := bcrypt.GenerateFromPassword([]byte("pw123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &entity.User{ID: 3, Name: "Admin", Email: "a@x.com", PasswordHash: string(hashed)}

	repo := &mockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			if email == user.Email {
				return user, nil
			}
			return nil, ErrUserNotFound
		},
	}
	uc := newTestUsecase(repo, newMemorySessions(time.Now), time.Now)

	tests := []struct {
		name     string
		email    string
		password string
		wantID   uint
		wantErr  error
	}{
		{"correct credentials", "a@x.com", "pw123", 3, nil},
		{"email is case insensitive", "A@X.COM", "pw123", 3, nil},
		{"wrong password", "a@x.com", "pw124", 0, ErrInvalidCredentials},
		{"far wrong password", "a@x.com", "completely-different", 0, ErrInvalidCredentials},
		{"unknown email", "b@x.com", "pw123", 0, ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			id, err := uc.Authenticate(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, apperr.ErrAuthentication)
				assert.Zero(t, id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestAuthUsecase_Authenticate_StorageFailure(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			return nil, errors.New("connection reset")
		},
	}
	uc := newTestUsecase(repo, newMemorySessions(time.Now), time.Now)

	_, err := uc.Authenticate(context.Background(), "a@x.com", "pw123")
	assert.ErrorIs(t, err, apperr.ErrStorage)
}

// TestDummyHash_MatchesDefaultCost keeps the unknown-email path as slow as a real comparison.
func TestDummyHash_MatchesDefaultCost(t *testing.T) {
	t.Parallel()

	cost, err := bcrypt.Cost([]byte(dummyHash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestAuthUsecase_SessionLifecycle(t *testing.T) {
	t.Parallel()

	clock, advance := fixedClock(time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC))
	sessions := newMemorySessions(clock)
	uc := newTestUsecase(&mockUserRepository{}, sessions, clock)
	ctx := context.Background()

	// Anonymous -> Authenticated
	session, token, err := uc.EstablishSession(ctx, 3, SessionMeta{UserAgent: "curl/8", IPAddress: "10.0.0.1"})
	require.NoError(t, err)
	assert.Len(t, session.ID, 64)
	assert.Equal(t, "token-"+session.ID, token)
	assert.Equal(t, clock().Add(time.Hour), session.ExpiresAt)
	assert.Equal(t, "curl/8", session.UserAgent)

	userID, ok, err := uc.CurrentIdentity(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint(3), userID)

	// Authenticated -> Anonymous (logout)
	require.NoError(t, uc.EndSession(ctx, session.ID))
	_, ok, err = uc.CurrentIdentity(ctx, session.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	// Authenticated -> Anonymous (expiry)
	session, _, err = uc.EstablishSession(ctx, 3, SessionMeta{})
	require.NoError(t, err)
	advance(time.Hour)
	_, ok, err = uc.CurrentIdentity(ctx, session.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	// Unknown sessions are anonymous, and ending them is a no-op.
	_, ok, err = uc.CurrentIdentity(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, uc.EndSession(ctx, "missing"))
}

func TestAuthUsecase_EstablishSession_EvictsOldest(t *testing.T) {
	t.Parallel()

	clock, advance := fixedClock(time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC))
	sessions := newMemorySessions(clock)
	uc := newTestUsecase(&mockUserRepository{}, sessions, clock)
	ctx := context.Background()

	var first string
	for i := 0; i < MaxSessionsPerUser+1; i++ {
		s, _, err := uc.EstablishSession(ctx, 3, SessionMeta{})
		require.NoError(t, err)
		if i == 0 {
			first = s.ID
		}
		advance(time.Second)
	}

	active, err := uc.ActiveSessions(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, active, MaxSessionsPerUser)
	_, ok, err := uc.CurrentIdentity(ctx, first)
	require.NoError(t, err)
	assert.False(t, ok, "oldest session should have been evicted")
}

func TestAuthUsecase_EstablishSession_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()

		repo := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) { return nil, ErrUserNotFound },
		}
		uc := newTestUsecase(repo, newMemorySessions(time.Now), time.Now)

		_, _, err := uc.EstablishSession(context.Background(), 9, SessionMeta{})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("session store failure", func(t *testing.T) {
		t.Parallel()

		sessions := newMemorySessions(time.Now)
		sessions.err = errors.New("redis: connection refused")
		uc := newTestUsecase(&mockUserRepository{}, sessions, time.Now)

		_, _, err := uc.EstablishSession(context.Background(), 3, SessionMeta{})
		assert.ErrorIs(t, err, apperr.ErrStorage)

		_, _, err = uc.CurrentIdentity(context.Background(), "abc")
		assert.ErrorIs(t, err, apperr.ErrStorage)
	})

	t.Run("token signing failure", func(t *testing.T) {
		t.Parallel()

		uc := NewAuthUsecase(&mockUserRepository{}, newMemorySessions(time.Now), &mockSigner{
			GenerateTokenFunc: func(uint, string, time.Time) (string, error) {
				return "", errors.New("failed to sign token")
			},
		}, time.Hour)

		_, _, err := uc.EstablishSession(context.Background(), 3, SessionMeta{})
		require.Error(t, err)
		assert.Equal(t, "failed to generate token: failed to sign token", err.Error())
	})
}

func TestAuthUsecase_Me(t *testing.T) {
	t.Parallel()

	uc := newTestUsecase(&mockUserRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
			if id == 3 {
				return &entity.User{ID: 3, Name: "Admin"}, nil
			}
			return nil, ErrUserNotFound
		},
	}, newMemorySessions(time.Now), time.Now)

	user, err := uc.Me(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Admin", user.Name)

	_, err = uc.Me(context.Background(), 4)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthUsecase_DeleteAccount(t *testing.T) {
	t.Parallel()

	clock, _ := fixedClock(time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC))
	sessions := newMemorySessions(clock)
	deleted := uint(0)
	uc := newTestUsecase(&mockUserRepository{
		DeleteFunc: func(ctx context.Context, id uint) error {
			if id != 3 {
				return ErrUserNotFound
			}
			deleted = id
			return nil
		},
	}, sessions, clock)
	ctx := context.Background()

	s, _, err := uc.EstablishSession(ctx, 3, SessionMeta{})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteAccount(ctx, 3))
	assert.Equal(t, uint(3), deleted)
	_, ok, err := uc.CurrentIdentity(ctx, s.ID)
	require.NoError(t, err)
	assert.False(t, ok, "sessions of a deleted user must be revoked")

	assert.ErrorIs(t, uc.DeleteAccount(ctx, 4), ErrUserNotFound)
}

func TestAuthUsecase_DeleteAccount_RevokeFailureKeepsUser(t *testing.T) {
	t.Parallel()

	clock, _ := fixedClock(time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC))
	sessions := newMemorySessions(clock)
	deleted := false
	uc := newTestUsecase(&mockUserRepository{
		DeleteFunc: func(ctx context.Context, id uint) error {
			deleted = true
			return nil
		},
	}, sessions, clock)
	ctx := context.Background()

	s, _, err := uc.EstablishSession(ctx, 3, SessionMeta{})
	require.NoError(t, err)

	sessions.err = errors.New("redis: connection refused")
	err = uc.DeleteAccount(ctx, 3)
	assert.ErrorIs(t, err, apperr.ErrStorage)
	assert.False(t, deleted, "the user must survive when its sessions cannot be revoked")

	sessions.err = nil
	userID, ok, err := uc.CurrentIdentity(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint(3), userID)
}

func TestAuthUsecase_PruneSessions(t *testing.T) {
	t.Parallel()

	clock, advance := fixedClock(time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC))
	sessions := newMemorySessions(clock)
	uc := newTestUsecase(&mockUserRepository{}, sessions, clock)
	ctx := context.Background()

	_, _, err := uc.EstablishSession(ctx, 3, SessionMeta{})
	require.NoError(t, err)
	advance(2 * time.Hour)
	_, _, err = uc.EstablishSession(ctx, 3, SessionMeta{})
	require.NoError(t, err)

	n, err := uc.PruneSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Len(t, sessions.byID, 1)
}
