package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist remembers revoked token IDs (jti) until the token would
// have expired on its own. Logout revokes the access token; a refresh
// revokes the refresh token it consumed.
type TokenBlacklist interface {
	AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

const blacklistKeyPrefix = "sirepre:token:revoked:"

// RedisTokenBlacklist shares revocations between server instances.
type RedisTokenBlacklist struct {
	client *redis.Client
}

func NewRedisTokenBlacklist(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client}
}

func (b *RedisTokenBlacklist) AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, blacklistKeyPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoking token %s: %w", jti, err)
	}
	return nil
}

func (b *RedisTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("checking token %s: %w", jti, err)
	}
	return n == 1, nil
}

// InMemoryTokenBlacklist is the single-instance fallback used without
// Redis. Expired entries are pruned whenever the set doubles in size.
type InMemoryTokenBlacklist struct {
	mu        sync.Mutex
	revoked   map[string]time.Time
	pruneSize int
	now       func() time.Time
}

func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{revoked: make(map[string]time.Time), pruneSize: 64, now: time.Now}
}

func (b *InMemoryTokenBlacklist) AddToBlacklist(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	b.revoked[jti] = now.Add(ttl)
	if len(b.revoked) >= b.pruneSize {
		for id, until := range b.revoked {
			if !now.Before(until) {
				delete(b.revoked, id)
			}
		}
		b.pruneSize = max(2*len(b.revoked), 64)
	}
	return nil
}

func (b *InMemoryTokenBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	until, ok := b.revoked[jti]
	return ok && b.now().Before(until), nil
}

var (
	_ TokenBlacklist = (*RedisTokenBlacklist)(nil)
	_ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
)
