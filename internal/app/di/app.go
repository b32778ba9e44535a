package di

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"news_backend/internal/app/config"
	"news_backend/internal/app/router"
	articleadapters "news_backend/internal/feature/articles/adapters"
	articlehandler "news_backend/internal/feature/articles/transport/handler"
	articleusecase "news_backend/internal/feature/articles/usecase"
	authadapters "news_backend/internal/feature/auth/adapters"
	authhandler "news_backend/internal/feature/auth/transport/handler"
	authusecase "news_backend/internal/feature/auth/usecase"
	feedbackadapters "news_backend/internal/feature/feedback/adapters"
	feedbackhandler "news_backend/internal/feature/feedback/transport/handler"
	feedbackusecase "news_backend/internal/feature/feedback/usecase"
	healthhandler "news_backend/internal/platform/http/handler"
	jwtmw "news_backend/internal/platform/jwt"
	"news_backend/internal/shared/ratelimiter"
)

// AuthService is the auth usecase as the wiring code sees it.
type AuthService interface {
	authhandler.AuthUsecase
	jwtmw.IdentityResolver
	PruneSessions(ctx context.Context) (int64, error)
}

// NewAuthService builds the auth usecase on the configured session store.
func NewAuthService(cfg *config.Config, gdb *gorm.DB, rdb *redis.Client) AuthService {
	return authusecase.NewAuthUsecase(
		authadapters.NewUserGorm(gdb),
		NewSessionRepository(rdb, gdb),
		jwtmw.NewSigner(cfg.JWTSecret),
		cfg.SessionTTL,
	)
}

// NewEngine assembles the HTTP application. rdb may be nil.
func NewEngine(cfg *config.Config, gdb *gorm.DB, rdb *redis.Client) (*gin.Engine, error) {
	signer := jwtmw.NewSigner(cfg.JWTSecret)
	authUC := NewAuthService(cfg, gdb, rdb)
	articleUC := articleusecase.NewArticleUsecase(articleadapters.NewArticleGorm(gdb))
	feedbackUC := feedbackusecase.NewFeedbackUsecase(feedbackadapters.NewFeedbackGorm(gdb))

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	deps := map[string]healthhandler.Pinger{"database": sqlDB}
	if rdb != nil {
		deps["redis"] = healthhandler.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	var throttle gin.HandlerFunc
	if cfg.AuthRateLimit > 0 {
		throttle = ratelimiter.NewRateLimiter(cfg.AuthRateLimit, time.Minute).Middleware()
	}

	return router.NewRouter(router.Handlers{
		Auth:     authhandler.NewAuthHandler(authUC, cfg.SecureCookie),
		Articles: articlehandler.NewArticleHandler(articleUC),
		Feedback: feedbackhandler.NewFeedbackHandler(feedbackUC),
		Identity: jwtmw.LoadIdentity(signer, authUC),
		Ready:    healthhandler.Ready(deps),
		Throttle: throttle,
	}, cfg.CORSOrigins), nil
}
