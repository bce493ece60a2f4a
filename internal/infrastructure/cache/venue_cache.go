package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sereci/sirepre/internal/domain/registration"
)

// VenueCache caches the full venue list served to the public form.
type VenueCache interface {
	// Get returns the cached list and whether it was present
	Get(ctx context.Context) ([]registration.Venue, bool, error)
	Set(ctx context.Context, venues []registration.Venue) error
	Invalidate(ctx context.Context) error
}

const venueListKey = "sirepre:venues:all"

// RedisVenueCache stores the venue list as one JSON value.
type RedisVenueCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisVenueCache creates a Redis venue cache.
func NewRedisVenueCache(client *redis.Client, ttl time.Duration) *RedisVenueCache {
	return &RedisVenueCache{client: client, ttl: ttl}
}

// Get implements VenueCache.
func (c *RedisVenueCache) Get(ctx context.Context) ([]registration.Venue, bool, error) {
	raw, err := c.client.Get(ctx, venueListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read venue cache: %w", err)
	}
	var venues []registration.Venue
	if err := json.Unmarshal(raw, &venues); err != nil {
		// a corrupt entry is treated as a miss and overwritten by the caller
		return nil, false, nil
	}
	return venues, true, nil
}

// Set implements VenueCache.
func (c *RedisVenueCache) Set(ctx context.Context, venues []registration.Venue) error {
	raw, err := json.Marshal(venues)
	if err != nil {
		return fmt.Errorf("failed to encode venues: %w", err)
	}
	if err := c.client.Set(ctx, venueListKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write venue cache: %w", err)
	}
	return nil
}

// Invalidate implements VenueCache.
func (c *RedisVenueCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, venueListKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate venue cache: %w", err)
	}
	return nil
}

// InMemoryVenueCache keeps the venue list in process memory.
type InMemoryVenueCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	venues  []registration.Venue
	expires time.Time
	now     func() time.Time
}

// NewInMemoryVenueCache creates an in-memory venue cache.
func NewInMemoryVenueCache(ttl time.Duration) *InMemoryVenueCache {
	return &InMemoryVenueCache{ttl: ttl, now: time.Now}
}

// Get implements VenueCache.
func (c *InMemoryVenueCache) Get(_ context.Context) ([]registration.Venue, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.venues == nil || !c.now().Before(c.expires) {
		return nil, false, nil
	}
	out := make([]registration.Venue, len(c.venues))
	copy(out, c.venues)
	return out, true, nil
}

// Set implements VenueCache.
func (c *InMemoryVenueCache) Set(_ context.Context, venues []registration.Venue) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.venues = make([]registration.Venue, len(venues))
	copy(c.venues, venues)
	c.expires = c.now().Add(c.ttl)
	return nil
}

// Invalidate implements VenueCache.
func (c *InMemoryVenueCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.venues = nil
	return nil
}

var (
	_ VenueCache = (*RedisVenueCache)(nil)
	_ VenueCache = (*InMemoryVenueCache)(nil)
)
