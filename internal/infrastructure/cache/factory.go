package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sereci/sirepre/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewRedisClient connects to Redis and verifies the connection with PING.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr(), err)
	}
	return client, nil
}

// NewVenueCache returns a Redis backed cache when client is set and an
// in-memory one otherwise. In-memory caches are per process, which is fine
// for venues since they only change through imports.
func NewVenueCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) VenueCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if client != nil {
		logger.Info("using Redis venue cache", zap.Duration("ttl", ttl))
		return NewRedisVenueCache(client, ttl)
	}
	logger.Info("using in-memory venue cache", zap.Duration("ttl", ttl))
	return NewInMemoryVenueCache(ttl)
}
