package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	bl := NewInMemoryTokenBlacklist()
	bl.now = func() time.Time { return now }

	require.NoError(t, bl.AddToBlacklist(ctx, "jti-1", time.Minute))
	require.NoError(t, bl.AddToBlacklist(ctx, "jti-zero", 0))

	listed, err := bl.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, listed)

	listed, _ = bl.IsBlacklisted(ctx, "jti-zero")
	assert.False(t, listed, "an already expired token is not stored")
	listed, _ = bl.IsBlacklisted(ctx, "unknown")
	assert.False(t, listed)

	now = now.Add(time.Minute)
	listed, _ = bl.IsBlacklisted(ctx, "jti-1")
	assert.False(t, listed, "entries lapse with the token")
}

func TestInMemoryTokenBlacklist_Prunes(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	bl := NewInMemoryTokenBlacklist()
	bl.now = func() time.Time { return now }

	for i := range 63 {
		require.NoError(t, bl.AddToBlacklist(ctx, fmt.Sprintf("old-%d", i), time.Second))
	}
	now = now.Add(time.Hour)
	require.NoError(t, bl.AddToBlacklist(ctx, "fresh", time.Minute))

	assert.Len(t, bl.revoked, 1)
	listed, _ := bl.IsBlacklisted(ctx, "fresh")
	assert.True(t, listed)
}
