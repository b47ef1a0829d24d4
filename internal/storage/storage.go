// Package storage provides the per-session key/value store that holds cart and
// notification state between requests.
package storage

import (
	"context"
	"errors"
)

// ErrEmptySessionID is returned when a store is opened without a session id.
var ErrEmptySessionID = errors.New("session id is required")

// KV is a string key/value store scoped to one session.
type KV interface {
	// Get returns the value stored under key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// Backend opens session-scoped stores.
type Backend interface {
	// Open returns the store of the given session.
	Open(sessionID string) (KV, error)

	// Close releases resources held by the backend.
	Close() error
}
