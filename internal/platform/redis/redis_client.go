// Package redis connects to the Redis server holding sessions.
package redis

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds the connection settings. An empty Host disables Redis.
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns host:port, defaulting the port to 6379.
func (c Config) Addr() string {
	port := c.Port
	if port == "" {
		port = "6379"
	}
	return net.JoinHostPort(c.Host, port)
}

// pingTimeout bounds the startup connectivity check.
const pingTimeout = 3 * time.Second

// NewRedisClient opens a client and checks it with PING.
func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	addr := cfg.Addr()
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		slog.Error("redis connection failed", "address", addr, "error", err)
		return nil, err
	}

	slog.Info("redis connection successful", "address", addr)
	return rdb, nil
}
