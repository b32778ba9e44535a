package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "news_backend/internal/feature/auth/adapters"
	"news_backend/internal/feature/auth/usecase"
	"news_backend/internal/platform/session"
)

// NewSessionRepository returns the Redis session store when a client is
// given and the SQL store otherwise.
func NewSessionRepository(rdb *redis.Client, db *gorm.DB) usecase.SessionRepository {
	if rdb != nil {
		return session.NewSessionRedis(rdb, session.DefaultPrefix)
	}
	return authadapters.NewSessionGorm(db)
}
