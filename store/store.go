// Package store provides snapshot storage backends for the cache.
// A backend persists one versioned snapshot of the full cache contents and
// hands it back at startup; it never interprets individual values.
package store

import (
	"context"
	"encoding/json"
	"time"

	cacheerrors "github.com/gozephyr/snapcache/errors"
)

// SnapshotVersion is the current snapshot format version tag.
const SnapshotVersion = "1.0"

// Snapshot is a complete serialized copy of the cache contents at a point
// in time. Entries are listed least recently used first so that replaying
// them in order reconstructs the recency order.
type Snapshot struct {
	Version  string          `json:"version"`
	SavedAt  time.Time       `json:"saved_at"`
	WriterID string          `json:"writer_id,omitempty"`
	Entries  []SnapshotEntry `json:"entries"`
}

// SnapshotEntry is one cached entry with its full metadata. The value is
// kept opaque; the cache marshals and unmarshals it at the boundary.
type SnapshotEntry struct {
	Key        string          `json:"key"`
	Value      json.RawMessage `json:"value"`
	CreatedAt  time.Time       `json:"created_at"`
	ExpiresAt  time.Time       `json:"expires_at,omitzero"`
	LastAccess time.Time       `json:"last_access"`
}

// NewSnapshot creates an empty snapshot stamped with the current version,
// save time, and the writing instance's id.
func NewSnapshot(writerID string) *Snapshot {
	return &Snapshot{
		Version:  SnapshotVersion,
		SavedAt:  time.Now(),
		WriterID: writerID,
		Entries:  make([]SnapshotEntry, 0),
	}
}

// Validate checks the top-level shape of a decoded snapshot.
func (s *Snapshot) Validate() error {
	if s == nil || s.Version == "" || s.Entries == nil {
		return cacheerrors.ErrSnapshotCorrupt
	}
	return nil
}

// Store defines the save/load contract for snapshot storage backends.
// Save must be atomic: a concurrent reader never observes a partial
// snapshot. Load returns errors.ErrNoSnapshot when no prior snapshot
// exists and wraps errors.ErrSnapshotCorrupt when one exists but cannot
// be decoded.
type Store interface {
	// Save writes the snapshot durably, replacing any previous one
	Save(ctx context.Context, snap *Snapshot) error

	// Load reads the most recent snapshot
	Load(ctx context.Context) (*Snapshot, error)

	// Close releases any resources used by the store
	Close(ctx context.Context) error
}

// Codec serializes snapshots for a storage backend.
type Codec interface {
	Encode(snap *Snapshot) ([]byte, error)
	Decode(data []byte) (*Snapshot, error)
}

// JSONCodec encodes snapshots as JSON. Indented output keeps snapshot
// files diffable.
type JSONCodec struct {
	Indent bool
}

// DefaultCodec returns the codec backends use when none is supplied.
func DefaultCodec() Codec {
	return JSONCodec{Indent: true}
}

// Encode implements Codec
func (c JSONCodec) Encode(snap *Snapshot) ([]byte, error) {
	if c.Indent {
		return json.MarshalIndent(snap, "", "  ")
	}
	return json.Marshal(snap)
}

// Decode implements Codec
func (c JSONCodec) Decode(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, cacheerrors.WrapError("Decode", nil, cacheerrors.ErrSnapshotCorrupt)
	}
	if err := snap.Validate(); err != nil {
		return nil, cacheerrors.WrapError("Decode", nil, err)
	}
	return &snap, nil
}
