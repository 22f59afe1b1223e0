package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapError(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		require.NoError(t, WrapError("Get", "key1", nil))
	})

	t.Run("wraps with key", func(t *testing.T) {
		err := WrapError("Get", "key1", ErrKeyNotFound)
		require.Error(t, err)
		require.Contains(t, err.Error(), "Get")
		require.Contains(t, err.Error(), "key1")
		require.True(t, errors.Is(err, ErrKeyNotFound))
	})

	t.Run("wraps without key", func(t *testing.T) {
		err := WrapError("Clear", nil, ErrCacheClosed)
		require.Error(t, err)
		require.NotContains(t, err.Error(), "key=")
	})
}

func TestErrorTypes(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorType
	}{
		{ErrKeyNotFound, ErrorTypeCache},
		{ErrCacheClosed, ErrorTypeCache},
		{ErrInvalidKey, ErrorTypeValidation},
		{ErrInvalidSize, ErrorTypeValidation},
		{ErrInvalidTTL, ErrorTypeValidation},
		{ErrNoStore, ErrorTypeValidation},
		{ErrNoSnapshot, ErrorTypeStore},
		{ErrSnapshotCorrupt, ErrorTypeStore},
		{ErrStoreError, ErrorTypeStore},
	}
	for _, tc := range cases {
		wrapped := WrapError("Op", nil, tc.err)
		require.True(t, IsErrorType(wrapped, tc.want), "error %v should be %s", tc.err, tc.want)
	}

	// Unknown errors default to the cache category.
	wrapped := WrapError("Op", nil, fmt.Errorf("boom"))
	require.True(t, IsErrorType(wrapped, ErrorTypeCache))
}

func TestErrorHelpers(t *testing.T) {
	require.True(t, IsKeyNotFound(WrapError("Get", "k", ErrKeyNotFound)))
	require.True(t, IsNoSnapshot(WrapError("Load", nil, ErrNoSnapshot)))
	require.True(t, IsSnapshotCorrupt(WrapError("Load", nil, ErrSnapshotCorrupt)))
	require.True(t, IsCacheClosed(WrapError("Set", "k", ErrCacheClosed)))
	require.False(t, IsKeyNotFound(WrapError("Set", "k", ErrInvalidKey)))
	require.True(t, IsCacheError(WrapError("Set", "k", ErrInvalidKey)))
	require.False(t, IsCacheError(errors.New("plain")))
}

func TestCacheErrorIs(t *testing.T) {
	a := NewCacheError(ErrorTypeCache, "Get", "k", ErrKeyNotFound)
	b := NewCacheError(ErrorTypeCache, "Get", "other", ErrKeyNotFound)
	c := NewCacheError(ErrorTypeCache, "Has", "k", ErrKeyNotFound)

	require.True(t, errors.Is(a, b))
	require.False(t, errors.Is(a, c))
}
