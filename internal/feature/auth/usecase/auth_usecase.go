package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"news_backend/internal/feature/auth/domain/entity"
	"news_backend/internal/shared/apperr"
)

const (
	// MaxSessionsPerUser caps concurrent logins; the oldest session is evicted beyond it.
	MaxSessionsPerUser = 5

	// DefaultSessionTTL is used when no TTL is configured.
	DefaultSessionTTL = 7 * 24 * time.Hour

	// sessionIDBytes gives a 64-character hex session id.
	sessionIDBytes = 32

	// dummyHash is compared when the email is unknown so both failure paths cost one bcrypt run.
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. Returns ErrEmailTaken for a duplicate email.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves the user with the given email. Returns ErrUserNotFound if absent.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves the user with the given ID. Returns ErrUserNotFound if absent.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Delete removes the user together with everything the user owns.
	// Returns ErrUserNotFound if absent.
	Delete(ctx context.Context, id uint) error
}

// TokenSigner issues the token handed to the client for a session.
type TokenSigner interface {
	GenerateToken(userID uint, sessionID string, expiresAt time.Time) (string, error)
}

// SessionMeta describes the client a session is opened for.
type SessionMeta struct {
	UserAgent string
	IPAddress string
}

// authUsecase implements registration, credential checks and session binding.
type authUsecase struct {
	users      UserRepository
	sessions   SessionRepository
	signer     TokenSigner
	sessionTTL time.Duration
	now        func() time.Time
}

// NewAuthUsecase creates a new authUsecase. A non-positive ttl falls back to DefaultSessionTTL.
func NewAuthUsecase(users UserRepository, sessions SessionRepository, signer TokenSigner, ttl time.Duration) *authUsecase {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &authUsecase{
		users:      users,
		sessions:   sessions,
		signer:     signer,
		sessionTTL: ttl,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// normalizeEmail makes lookups case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with a bcrypt-hashed password and returns its ID.
func (u *authUsecase) Register(ctx context.Context, name, email, password string) (uint, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || strings.TrimSpace(password) == "" {
		return 0, ErrMissingField
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return 0, ErrPasswordTooLong
		}
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Name: name, Email: email, PasswordHash: string(hashed)}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return 0, ErrEmailTaken
		}
		return 0, apperr.Storage(err)
	}
	return user.ID, nil
}

// Authenticate checks an email/password pair and returns the user ID on success.
// A bcrypt comparison runs even when the user does not exist so the failure
// timing does not reveal which emails are registered.
func (u *authUsecase) Authenticate(ctx context.Context, email, password string) (uint, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return 0, apperr.Storage(err)
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.PasswordHash
	}

	// CompareHashAndPassword compares digests in constant time.
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return 0, ErrInvalidCredentials
	}
	return user.ID, nil
}

// EstablishSession opens a server-side session for userID and returns it
// together with the signed token the client presents on later requests.
func (u *authUsecase) EstablishSession(ctx context.Context, userID uint, meta SessionMeta) (*entity.Session, string, error) {
	if _, err := u.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", apperr.Storage(err)
	}

	active, err := u.sessions.CountByUserID(ctx, userID)
	if err != nil {
		return nil, "", apperr.Storage(err)
	}
	if active >= MaxSessionsPerUser {
		if err := u.sessions.DeleteOldestByUserID(ctx, userID); err != nil {
			return nil, "", apperr.Storage(err)
		}
	}

	id, err := generateSessionID()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate session id: %w", err)
	}

	now := u.now()
	session := &entity.Session{
		ID:        id,
		UserID:    userID,
		UserAgent: meta.UserAgent,
		IPAddress: meta.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.sessionTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, "", apperr.Storage(err)
	}

	token, err := u.signer.GenerateToken(userID, session.ID, session.ExpiresAt)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return session, token, nil
}

// EndSession revokes a session. Ending an unknown session is not an error.
func (u *authUsecase) EndSession(ctx context.Context, sessionID string) error {
	if err := u.sessions.Revoke(ctx, sessionID); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return apperr.Storage(err)
	}
	return nil
}

// CurrentIdentity resolves a session to its user. ok is false when the
// session is unknown, revoked or expired.
func (u *authUsecase) CurrentIdentity(ctx context.Context, sessionID string) (uint, bool, error) {
	session, err := u.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return 0, false, nil
		}
		return 0, false, apperr.Storage(err)
	}
	if !session.IsValid(u.now()) {
		return 0, false, nil
	}
	return session.UserID, true, nil
}

// ActiveSessions lists the live sessions of a user, oldest first.
func (u *authUsecase) ActiveSessions(ctx context.Context, userID uint) ([]*entity.Session, error) {
	sessions, err := u.sessions.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return sessions, nil
}

// Me returns the profile of userID.
func (u *authUsecase) Me(ctx context.Context, userID uint) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, apperr.Storage(err)
	}
	return user, nil
}

// DeleteAccount removes a user; the database cascades the delete to the
// user's articles and their comments. Sessions are revoked first so no token
// outlives the account; if that fails the user is left in place.
func (u *authUsecase) DeleteAccount(ctx context.Context, userID uint) error {
	if err := u.sessions.RevokeAllByUserID(ctx, userID); err != nil {
		return apperr.Storage(err)
	}
	if err := u.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUserNotFound
		}
		return apperr.Storage(err)
	}
	return nil
}

// PruneSessions deletes expired sessions and returns how many were removed.
func (u *authUsecase) PruneSessions(ctx context.Context) (int64, error) {
	n, err := u.sessions.DeleteExpired(ctx)
	if err != nil {
		return 0, apperr.Storage(err)
	}
	return n, nil
}

// generateSessionID creates a cryptographically random session identifier.
func generateSessionID() (string, error) {
	b := make([]byte, sessionIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
