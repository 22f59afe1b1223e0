package store

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"

	cacheerrors "github.com/gozephyr/snapcache/errors"
)

// gzip magic bytes, used to detect compressed snapshots on load so a store
// reconfigured between runs can still read its old file.
var gzipMagic = []byte{0x1f, 0x8b}

// FileConfig holds file-based snapshot storage configuration
type FileConfig struct {
	// Path is the snapshot file location
	Path string

	// Compress enables gzip compression of the snapshot
	Compress bool

	// FileMode is the permission mode for the snapshot file
	FileMode os.FileMode
}

// DefaultFileConfig returns a FileConfig with sensible defaults
func DefaultFileConfig(path string) *FileConfig {
	return &FileConfig{
		Path:     path,
		Compress: false,
		FileMode: 0o644,
	}
}

// fileStore implements the Store interface using a single snapshot file
// with atomic replace semantics.
type fileStore struct {
	config *FileConfig
	codec  Codec
}

// NewFileStore creates a new file-based snapshot store
func NewFileStore(config *FileConfig, codec Codec) (Store, error) {
	if config == nil || config.Path == "" {
		return nil, cacheerrors.WrapError("NewFileStore", nil, cacheerrors.ErrStoreError)
	}
	if config.FileMode == 0 {
		config.FileMode = 0o644
	}
	if codec == nil {
		codec = DefaultCodec()
	}

	if err := os.MkdirAll(filepath.Dir(config.Path), 0o755); err != nil {
		return nil, cacheerrors.WrapError("NewFileStore", nil, cacheerrors.ErrStoreError)
	}

	return &fileStore{config: config, codec: codec}, nil
}

// Save writes the snapshot to a temporary file and atomically renames it
// over the final path, so a reader never observes a half-written file.
func (f *fileStore) Save(ctx context.Context, snap *Snapshot) error {
	if err := ctx.Err(); err != nil {
		return cacheerrors.WrapError("Save", nil, cacheerrors.ErrStoreError)
	}

	data, err := f.codec.Encode(snap)
	if err != nil {
		return cacheerrors.WrapError("Save", nil, err)
	}

	if f.config.Compress {
		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		if _, err := gz.Write(data); err != nil {
			return cacheerrors.WrapError("Save", nil, cacheerrors.ErrStoreError)
		}
		if err := gz.Close(); err != nil {
			return cacheerrors.WrapError("Save", nil, cacheerrors.ErrStoreError)
		}
		data = buf.Bytes()
	}

	tempPath := f.config.Path + ".tmp"
	if err := os.WriteFile(tempPath, data, f.config.FileMode); err != nil {
		return cacheerrors.WrapError("Save", nil, cacheerrors.ErrStoreError)
	}

	if err := os.Rename(tempPath, f.config.Path); err != nil {
		_ = os.Remove(tempPath)
		return cacheerrors.WrapError("Save", nil, cacheerrors.ErrStoreError)
	}

	return nil
}

// Load reads and decodes the snapshot file. A missing or empty file means
// no snapshot; an unreadable one is reported as corrupt.
func (f *fileStore) Load(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, cacheerrors.WrapError("Load", nil, cacheerrors.ErrStoreError)
	}

	data, err := os.ReadFile(f.config.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, cacheerrors.WrapError("Load", nil, cacheerrors.ErrNoSnapshot)
		}
		return nil, cacheerrors.WrapError("Load", nil, cacheerrors.ErrStoreError)
	}
	if len(data) == 0 {
		// An interrupted first save can leave an empty file behind.
		return nil, cacheerrors.WrapError("Load", nil, cacheerrors.ErrNoSnapshot)
	}

	if bytes.HasPrefix(data, gzipMagic) {
		gz, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, cacheerrors.WrapError("Load", nil, cacheerrors.ErrSnapshotCorrupt)
		}
		decompressed, err := io.ReadAll(gz)
		if err != nil {
			return nil, cacheerrors.WrapError("Load", nil, cacheerrors.ErrSnapshotCorrupt)
		}
		if err := gz.Close(); err != nil {
			return nil, cacheerrors.WrapError("Load", nil, cacheerrors.ErrSnapshotCorrupt)
		}
		data = decompressed
	}

	return f.codec.Decode(data)
}

// Close implements the Store interface
func (f *fileStore) Close(ctx context.Context) error {
	return nil
}
