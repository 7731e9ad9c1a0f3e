package cooldown

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	t.Run("no cooldown by default", func(t *testing.T) {
		_, ok, err := store.DeniedUntil(ctx, "200000000000000001")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("active cooldown is reported", func(t *testing.T) {
		until := time.Now().Add(14 * 24 * time.Hour)
		require.NoError(t, store.MarkDenied(ctx, "200000000000000001", until))

		got, ok, err := store.DeniedUntil(ctx, "200000000000000001")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, until, got)
	})

	t.Run("expired cooldown clears on read", func(t *testing.T) {
		require.NoError(t, store.MarkDenied(ctx, "200000000000000002", time.Now().Add(-time.Minute)))

		_, ok, err := store.DeniedUntil(ctx, "200000000000000002")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
