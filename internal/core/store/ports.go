package store

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by Get when the key has no value.
// Callers treat it as "record absent", never as a failure.
var ErrKeyNotFound = errors.New("key not found")

// Store defines the persisted key-value store port.
// Feature repositories marshal versioned JSON records into it; the backing
// implementation (Redis here) is interchangeable.
type Store interface {
	// Get retrieves the value stored under key.
	// Returns ErrKeyNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under key with the specified TTL.
	// TTL of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the value stored under key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping checks if the store is reachable.
	Ping(ctx context.Context) error

	// Close closes the store connection.
	Close() error
}
