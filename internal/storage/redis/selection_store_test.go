package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T, opts ...Option) (*miniredis.Miniredis, *SelectionStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewSelectionStore(client, opts...)
}

func TestSelectionStore_SetGetClear(t *testing.T) {
	mr, store := setupTestStore(t)
	ctx := context.Background()

	_, ok, err := store.GetSelection(ctx, "user-1")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.SetSelection(ctx, "user-1", "evt-42"))
	require.True(t, mr.Exists("ctf:event-selection:user-1"))

	value, ok, err := store.GetSelection(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "evt-42", value)

	_, ok, err = store.GetSelection(ctx, "user-2")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.ClearSelection(ctx, "user-1"))
	_, ok, err = store.GetSelection(ctx, "user-1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSelectionStore_TTLAndPrefix(t *testing.T) {
	mr, store := setupTestStore(t, WithKeyPrefix("test:"), WithTTL(time.Hour))
	ctx := context.Background()

	require.NoError(t, store.SetSelection(ctx, "anonymous", "all"))
	require.True(t, mr.Exists("test:anonymous"))
	require.Equal(t, time.Hour, mr.TTL("test:anonymous"))

	mr.FastForward(2 * time.Hour)
	_, ok, err := store.GetSelection(ctx, "anonymous")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSelectionStore_ConnectionError(t *testing.T) {
	mr, store := setupTestStore(t)
	mr.Close()

	_, _, err := store.GetSelection(context.Background(), "user-1")
	require.Error(t, err)
	require.Error(t, store.Ping(context.Background()))
}
