package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/zalando/go-keyring"
)

const serviceName = "accountctl"

// KeyringStore persists session entries in the OS keyring
// (macOS Keychain, Windows Credential Manager, or Linux Secret Service).
// Each value is wrapped in a JSON Entry so it can carry an expiry.
type KeyringStore struct {
	service string
	now     func() time.Time
}

// NewKeyringStore returns a new KeyringStore.
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{service: serviceName, now: time.Now}
}

// Get returns the value for key, or ErrNotFound when it is missing or expired.
// Expired entries are removed on read.
func (k *KeyringStore) Get(ctx context.Context, key string) (string, error) {
	data, err := keyring.Get(k.service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load %s from keyring: %w", key, err)
	}

	var entry Entry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		return "", fmt.Errorf("failed to unmarshal %s entry: %w", key, err)
	}
	if entry.Expired(k.now()) {
		_ = k.Delete(ctx, key)
		return "", ErrNotFound
	}
	return entry.Value, nil
}

// Set stores value under key in the OS keyring with the given ttl.
func (k *KeyringStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	data, err := json.Marshal(Entry{Value: value, ExpiresAt: k.now().Add(ttl).UTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal %s entry: %w", key, err)
	}
	if err := keyring.Set(k.service, key, string(data)); err != nil {
		return fmt.Errorf("failed to save %s to keyring: %w", key, err)
	}
	return nil
}

// Delete removes key from the OS keyring.
func (k *KeyringStore) Delete(ctx context.Context, key string) error {
	err := keyring.Delete(k.service, key)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete %s from keyring: %w", key, err)
	}
	return nil
}

// Close is a no-op; the keyring holds no open handles.
func (k *KeyringStore) Close() error {
	return nil
}
