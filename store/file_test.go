package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	cacheerrors "github.com/gozephyr/snapcache/errors"
)

func testSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Millisecond)
	snap := NewSnapshot("writer-1")
	snap.Entries = []SnapshotEntry{
		{
			Key:        "alpha",
			Value:      json.RawMessage(`"one"`),
			CreatedAt:  now,
			LastAccess: now,
		},
		{
			Key:        "beta",
			Value:      json.RawMessage(`{"n":2}`),
			CreatedAt:  now,
			ExpiresAt:  now.Add(time.Hour),
			LastAccess: now.Add(time.Second),
		},
	}
	return snap
}

func TestFileStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.json")

	s, err := NewFileStore(DefaultFileConfig(path), nil)
	require.NoError(t, err)

	snap := testSnapshot(t)
	require.NoError(t, s.Save(ctx, snap))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, SnapshotVersion, loaded.Version)
	require.Equal(t, "writer-1", loaded.WriterID)
	require.Len(t, loaded.Entries, 2)
	require.Equal(t, "alpha", loaded.Entries[0].Key)
	require.JSONEq(t, `"one"`, string(loaded.Entries[0].Value))
	require.True(t, loaded.Entries[0].ExpiresAt.IsZero())
	require.False(t, loaded.Entries[1].ExpiresAt.IsZero())

	// No temp file may remain after a save.
	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err))
}

func TestFileStoreSaveReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.json")

	s, err := NewFileStore(DefaultFileConfig(path), nil)
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, testSnapshot(t)))

	second := NewSnapshot("writer-2")
	second.Entries = []SnapshotEntry{{
		Key:        "gamma",
		Value:      json.RawMessage(`3`),
		CreatedAt:  time.Now(),
		LastAccess: time.Now(),
	}}
	require.NoError(t, s.Save(ctx, second))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "writer-2", loaded.WriterID)
	require.Len(t, loaded.Entries, 1)
	require.Equal(t, "gamma", loaded.Entries[0].Key)
}

func TestFileStoreLoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")
	s, err := NewFileStore(DefaultFileConfig(path), nil)
	require.NoError(t, err)

	_, err = s.Load(context.Background())
	require.Error(t, err)
	require.True(t, cacheerrors.IsNoSnapshot(err))
}

func TestFileStoreLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	s, err := NewFileStore(DefaultFileConfig(path), nil)
	require.NoError(t, err)

	_, err = s.Load(context.Background())
	require.True(t, cacheerrors.IsNoSnapshot(err))
}

func TestFileStoreLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := NewFileStore(DefaultFileConfig(path), nil)
	require.NoError(t, err)

	_, err = s.Load(context.Background())
	require.Error(t, err)
	require.True(t, cacheerrors.IsSnapshotCorrupt(err))
}

func TestFileStoreLoadInvalidShape(t *testing.T) {
	// Valid JSON but not a snapshot.
	path := filepath.Join(t.TempDir(), "shape.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"foo":"bar"}`), 0o644))

	s, err := NewFileStore(DefaultFileConfig(path), nil)
	require.NoError(t, err)

	_, err = s.Load(context.Background())
	require.True(t, cacheerrors.IsSnapshotCorrupt(err))
}

func TestFileStoreCompression(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.json.gz")

	cfg := DefaultFileConfig(path)
	cfg.Compress = true
	s, err := NewFileStore(cfg, nil)
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, testSnapshot(t)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, len(raw) > 2 && raw[0] == 0x1f && raw[1] == 0x8b, "file should be gzip compressed")

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Entries, 2)

	// A store without compression configured still reads the gzip file.
	plain, err := NewFileStore(DefaultFileConfig(path), nil)
	require.NoError(t, err)
	loaded, err = plain.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Entries, 2)
}

func TestNewFileStoreValidation(t *testing.T) {
	_, err := NewFileStore(nil, nil)
	require.Error(t, err)

	_, err = NewFileStore(&FileConfig{}, nil)
	require.Error(t, err)
}
