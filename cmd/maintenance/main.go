// Command maintenance removes expired sessions. Run it from cron.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"news_backend/internal/app/config"
	"news_backend/internal/app/di"
	infraredis "news_backend/internal/platform/redis"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	err := run(ctx)
	cancel()
	if err != nil {
		slog.Error("session prune failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	gdb, err := di.NewDatabase(cfg.DB, false)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	var rdb *redisv9.Client
	if cfg.RedisEnabled() {
		if rdb, err = infraredis.NewRedisClient(ctx, cfg.Redis); err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer rdb.Close()
	}

	removed, err := di.NewAuthService(cfg, gdb, rdb).PruneSessions(ctx)
	if err != nil {
		return err
	}
	slog.Info("session prune ok", "removed", removed)
	return nil
}
