package store

import (
	"context"
	"sync"

	cacheerrors "github.com/gozephyr/snapcache/errors"
)

// memoryStore implements the Store interface in process memory. It is the
// backend of choice for tests; snapshots still pass through the codec so a
// round trip exercises real serialization.
type memoryStore struct {
	mu    sync.RWMutex
	codec Codec
	data  []byte
}

// NewMemoryStore creates a new in-memory snapshot store
func NewMemoryStore(codec Codec) Store {
	if codec == nil {
		codec = DefaultCodec()
	}
	return &memoryStore{codec: codec}
}

// Save implements the Store interface
func (m *memoryStore) Save(ctx context.Context, snap *Snapshot) error {
	if err := ctx.Err(); err != nil {
		return cacheerrors.WrapError("Save", nil, cacheerrors.ErrStoreError)
	}

	data, err := m.codec.Encode(snap)
	if err != nil {
		return cacheerrors.WrapError("Save", nil, err)
	}

	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
	return nil
}

// Load implements the Store interface
func (m *memoryStore) Load(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, cacheerrors.WrapError("Load", nil, cacheerrors.ErrStoreError)
	}

	m.mu.RLock()
	data := m.data
	m.mu.RUnlock()

	if data == nil {
		return nil, cacheerrors.WrapError("Load", nil, cacheerrors.ErrNoSnapshot)
	}
	return m.codec.Decode(data)
}

// Close implements the Store interface
func (m *memoryStore) Close(ctx context.Context) error {
	m.mu.Lock()
	m.data = nil
	m.mu.Unlock()
	return nil
}
