package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"news_backend/internal/app/config"
	"news_backend/internal/app/di"
	infraredis "news_backend/internal/platform/redis"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// run serves until SIGINT or SIGTERM. Resources opened here are closed
// before it returns.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	gin.SetMode(cfg.GinMode)

	// db
	gdb, err := di.NewDatabase(cfg.DB, cfg.RunMigrations)
	if err != nil {
		return fmt.Errorf("open %s database: %w", cfg.DB.Driver, err)
	}
	defer func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	// Redis holds sessions when configured; the database is the fallback.
	var rdb *redisv9.Client
	if cfg.RedisEnabled() {
		rdb, err = infraredis.NewRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			slog.Warn("redis unavailable; storing sessions in the database", "addr", cfg.Redis.Addr(), "error", err)
			rdb = nil
		} else {
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close redis client", "error", err)
				}
			}()
		}
	}

	engine, err := di.NewEngine(cfg, gdb, rdb)
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.Addr, "mode", cfg.GinMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return err
	case <-quit:
	}
	slog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	return nil
}
