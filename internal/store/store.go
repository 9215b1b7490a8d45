package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when a key is missing or has expired.
var ErrNotFound = errors.New("not found")

// Store is a small expiring key-value store backing the persisted session
// mirror. Implementations must treat expired entries as absent.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	// Set writes value under key; it expires ttl after now.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete removes key. Removing a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// Entry is a stored value together with its expiry.
type Entry struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the entry is no longer valid at now.
func (e Entry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}
