package integration

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sereci/sirepre/internal/domain/registration"
	"github.com/sereci/sirepre/internal/infrastructure/auth"
	"github.com/sereci/sirepre/internal/infrastructure/cache"
	"github.com/sereci/sirepre/internal/infrastructure/config"
	"github.com/sereci/sirepre/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// newRedis starts a throwaway Redis and connects through the production
// client factory.
func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "Failed to start Redis container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	client, err := cache.NewRedisClient(config.RedisConfig{Host: host, Port: port.Int()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisBackedComponents(t *testing.T) {
	client := newRedis(t)
	ctx := context.Background()

	t.Run("venue cache", func(t *testing.T) {
		c := cache.NewVenueCache(client, time.Minute, nil)
		_, ok, err := c.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok)

		v, err := registration.NewVenue("LP-010", "Colegio Don Bosco")
		require.NoError(t, err)
		require.NoError(t, c.Set(ctx, []registration.Venue{*v}))

		got, ok, err := c.Get(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Colegio Don Bosco", got[0].Nombre)

		require.NoError(t, c.Invalidate(ctx))
		_, ok, _ = c.Get(ctx)
		assert.False(t, ok)
	})

	t.Run("token blacklist", func(t *testing.T) {
		bl := auth.NewRedisTokenBlacklist(client)
		require.NoError(t, bl.AddToBlacklist(ctx, "jti-1", time.Minute))

		listed, err := bl.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, listed)

		listed, err = bl.IsBlacklisted(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, listed)
	})

	t.Run("rate limiter is shared between instances", func(t *testing.T) {
		a := middleware.NewRedisRateLimiter(client, 2, time.Minute)
		b := middleware.NewRedisRateLimiter(client, 2, time.Minute)

		res, err := a.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		res, err = b.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, res.Allowed)

		res, err = a.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.False(t, res.Allowed)
		assert.Greater(t, res.RetryAfter, time.Duration(0))

		res, err = b.Allow(ctx, "10.0.0.2")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	})
}
