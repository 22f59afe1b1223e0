package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	cacheerrors "github.com/gozephyr/snapcache/errors"
)

// Redis tests run only against a real server, e.g.
// SNAPCACHE_TEST_REDIS_URL=redis://localhost:6379/0 go test ./store/...
func redisTestStore(t *testing.T) Store {
	t.Helper()
	url := os.Getenv("SNAPCACHE_TEST_REDIS_URL")
	if url == "" {
		t.Skip("SNAPCACHE_TEST_REDIS_URL not set")
	}

	cfg := DefaultRedisConfig(url)
	cfg.Key = "snapcache:test:" + t.Name()
	cfg.ConnectTimeout = 5 * time.Second

	s, err := DialRedis(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := redisTestStore(t)

	snap := testSnapshot(t)
	require.NoError(t, s.Save(ctx, snap))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, SnapshotVersion, loaded.Version)
	require.Len(t, loaded.Entries, 2)
}

func TestRedisStoreLoadMissing(t *testing.T) {
	ctx := context.Background()
	s := redisTestStore(t)

	_, err := s.Load(ctx)
	require.True(t, cacheerrors.IsNoSnapshot(err))
}

func TestDialRedisValidation(t *testing.T) {
	ctx := context.Background()

	_, err := DialRedis(ctx, nil, nil)
	require.Error(t, err)

	_, err = DialRedis(ctx, DefaultRedisConfig("not-a-url"), nil)
	require.Error(t, err)
}
