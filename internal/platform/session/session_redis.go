// Package session provides the Redis-backed session store.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"news_backend/internal/feature/auth/domain/entity"
	"news_backend/internal/feature/auth/usecase"
)

// DefaultPrefix namespaces every key the store writes.
const DefaultPrefix = "news:session"

// storedSession is the JSON value kept under a session key.
type storedSession struct {
	ID        string     `json:"id"`
	UserID    uint       `json:"user_id"`
	UserAgent string     `json:"user_agent"`
	IPAddress string     `json:"ip_address"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

func (s *storedSession) toEntity() *entity.Session {
	return &entity.Session{
		ID:        s.ID,
		UserID:    s.UserID,
		UserAgent: s.UserAgent,
		IPAddress: s.IPAddress,
		CreatedAt: s.CreatedAt.UTC(),
		ExpiresAt: s.ExpiresAt.UTC(),
		RevokedAt: s.RevokedAt,
	}
}

// SessionRedis implements usecase.SessionRepository using Redis.
// Each session is a key that expires with the session; a per-user set
// indexes the ids and is cleaned lazily when members have expired.
type SessionRedis struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

var _ usecase.SessionRepository = (*SessionRedis)(nil)

// NewSessionRedis creates a SessionRedis. An empty prefix means DefaultPrefix.
func NewSessionRedis(client redis.UniversalClient, prefix string) *SessionRedis {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &SessionRedis{
		client: client,
		prefix: prefix,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *SessionRedis) sessionKey(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

func (r *SessionRedis) userSessionsKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", r.prefix, userID)
}

// Create stores the session with a TTL matching its expiry and indexes it under its user.
func (r *SessionRedis) Create(ctx context.Context, session *entity.Session) error {
	ttl := session.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return errors.New("session already expired")
	}
	data, err := json.Marshal(storedSession{
		ID:        session.ID,
		UserID:    session.UserID,
		UserAgent: session.UserAgent,
		IPAddress: session.IPAddress,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
		RevokedAt: session.RevokedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.sessionKey(session.ID), data, ttl)
		pipe.SAdd(ctx, r.userSessionsKey(session.UserID), session.ID)
		return nil
	})
	return err
}

// FindByID returns usecase.ErrSessionNotFound once the key has expired or been deleted.
func (r *SessionRedis) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	stored, err := r.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return stored.toEntity(), nil
}

func (r *SessionRedis) load(ctx context.Context, id string) (*storedSession, error) {
	data, err := r.client.Get(ctx, r.sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}
	var stored storedSession
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &stored, nil
}

// FindByUserID lists the user's active sessions, oldest first.
func (r *SessionRedis) FindByUserID(ctx context.Context, userID uint) ([]*entity.Session, error) {
	ids, err := r.client.SMembers(ctx, r.userSessionsKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	now := r.now()
	var sessions []*entity.Session
	for _, id := range ids {
		session, err := r.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, usecase.ErrSessionNotFound) {
				r.client.SRem(ctx, r.userSessionsKey(userID), id)
				continue
			}
			return nil, err
		}
		if session.IsValid(now) {
			sessions = append(sessions, session)
		}
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
	return sessions, nil
}

// Revoke stamps RevokedAt and keeps the key until its original expiry.
func (r *SessionRedis) Revoke(ctx context.Context, id string) error {
	stored, err := r.load(ctx, id)
	if err != nil {
		return err
	}
	if stored.RevokedAt != nil {
		return nil
	}
	now := r.now()
	stored.RevokedAt = &now

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return r.client.Set(ctx, r.sessionKey(id), data, redis.KeepTTL).Err()
}

// RevokeAllByUserID revokes every session indexed under the user.
func (r *SessionRedis) RevokeAllByUserID(ctx context.Context, userID uint) error {
	ids, err := r.client.SMembers(ctx, r.userSessionsKey(userID)).Result()
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := r.Revoke(ctx, id); err != nil && !errors.Is(err, usecase.ErrSessionNotFound) {
			return err
		}
	}
	return nil
}

// DeleteExpired drops index entries whose session key Redis has already
// expired and returns how many were dropped.
func (r *SessionRedis) DeleteExpired(ctx context.Context) (int64, error) {
	var removed int64
	iter := r.client.Scan(ctx, 0, r.prefix+":user:*", 100).Iterator()
	for iter.Next(ctx) {
		setKey := iter.Val()
		if _, err := strconv.ParseUint(strings.TrimPrefix(setKey, r.prefix+":user:"), 10, 64); err != nil {
			continue
		}
		ids, err := r.client.SMembers(ctx, setKey).Result()
		if err != nil {
			return removed, err
		}
		for _, id := range ids {
			exists, err := r.client.Exists(ctx, r.sessionKey(id)).Result()
			if err != nil {
				return removed, err
			}
			if exists == 0 {
				n, err := r.client.SRem(ctx, setKey, id).Result()
				if err != nil {
					return removed, err
				}
				removed += n
			}
		}
	}
	return removed, iter.Err()
}

// CountByUserID counts the user's active sessions.
func (r *SessionRedis) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	sessions, err := r.FindByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return int64(len(sessions)), nil
}

// DeleteOldestByUserID deletes the user's oldest active session.
func (r *SessionRedis) DeleteOldestByUserID(ctx context.Context, userID uint) error {
	sessions, err := r.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		return nil
	}
	oldest := sessions[0]

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.sessionKey(oldest.ID))
		pipe.SRem(ctx, r.userSessionsKey(userID), oldest.ID)
		return nil
	})
	return err
}
