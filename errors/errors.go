// Package errors provides error types and utilities for the cache package.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeCache represents cache-specific errors
	ErrorTypeCache ErrorType = "cache"
	// ErrorTypeStore represents snapshot storage errors
	ErrorTypeStore ErrorType = "store"
	// ErrorTypeValidation represents validation errors
	ErrorTypeValidation ErrorType = "validation"
)

// Common error types
var (
	// Cache errors
	ErrCacheClosed = errors.New("cache is closed")
	ErrKeyNotFound = errors.New("key not found")

	// Validation errors
	ErrInvalidKey  = errors.New("key must be a non-empty string")
	ErrInvalidSize = errors.New("max size must be greater than 0")
	ErrInvalidTTL  = errors.New("invalid TTL value")
	ErrNoStore     = errors.New("persistence enabled without a snapshot store")

	// Store errors
	ErrNoSnapshot      = errors.New("no snapshot present")
	ErrSnapshotCorrupt = errors.New("snapshot is corrupt")
	ErrStoreError      = errors.New("store operation failed")
)

// CacheError represents a cache operation error
type CacheError struct {
	Op      string
	Key     any
	Err     error
	ErrType ErrorType
}

// determineErrorType determines the error type based on the error
func determineErrorType(err error) ErrorType {
	switch {
	case errors.Is(err, ErrCacheClosed) || errors.Is(err, ErrKeyNotFound):
		return ErrorTypeCache
	case errors.Is(err, ErrInvalidKey) || errors.Is(err, ErrInvalidSize) ||
		errors.Is(err, ErrInvalidTTL) || errors.Is(err, ErrNoStore):
		return ErrorTypeValidation
	case errors.Is(err, ErrNoSnapshot) || errors.Is(err, ErrSnapshotCorrupt) ||
		errors.Is(err, ErrStoreError):
		return ErrorTypeStore
	default:
		return ErrorTypeCache
	}
}

// Error implements the error interface
func (e *CacheError) Error() string {
	if e.Key != nil {
		return fmt.Sprintf("%s: %s: key=%v: %v", e.ErrType, e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.ErrType, e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *CacheError) Unwrap() error {
	return e.Err
}

// Is reports whether the target error is of the same type as the receiver
func (e *CacheError) Is(target error) bool {
	t, ok := target.(*CacheError)
	if !ok {
		return false
	}
	return e.ErrType == t.ErrType && e.Op == t.Op && errors.Is(e.Err, t.Err)
}

// NewCacheError creates a new CacheError
func NewCacheError(errType ErrorType, op string, key any, err error) error {
	return &CacheError{
		ErrType: errType,
		Op:      op,
		Key:     key,
		Err:     err,
	}
}

// WrapError wraps an error with operation context
func WrapError(op string, key any, err error) error {
	if err == nil {
		return nil
	}
	return NewCacheError(determineErrorType(err), op, key, err)
}

// IsCacheError checks if an error is a CacheError
func IsCacheError(err error) bool {
	var cacheErr *CacheError
	return errors.As(err, &cacheErr)
}

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	var cacheErr *CacheError
	if errors.As(err, &cacheErr) {
		return cacheErr.ErrType == errType
	}
	return false
}

// IsKeyNotFound checks if the error is a key not found error
func IsKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}

// IsNoSnapshot checks if the error reports an absent snapshot
func IsNoSnapshot(err error) bool {
	return errors.Is(err, ErrNoSnapshot)
}

// IsSnapshotCorrupt checks if the error reports an unreadable snapshot
func IsSnapshotCorrupt(err error) bool {
	return errors.Is(err, ErrSnapshotCorrupt)
}

// IsCacheClosed checks if the error is a cache closed error
func IsCacheClosed(err error) bool {
	return errors.Is(err, ErrCacheClosed)
}
