package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vybhavgg-ship-it/InstaCordChat/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisConnection opens and pings the Redis client used for
// presence, pub/sub and rate limiting
func NewRedisConnection(cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("Redis connection established", "addr", rdb.Options().Addr)
	return rdb, nil
}
