package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lu-zhengda/accountctl/internal/store"
)

// Get returns the value stored under key. Missing and expired entries yield
// store.ErrNotFound; an expired row is deleted on the way out.
func (s *DB) Get(ctx context.Context, key string) (string, error) {
	var (
		value     string
		expiresAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM session_entries WHERE key = ?`, key,
	).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", store.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get entry %s: %w", key, err)
	}

	entry := store.Entry{Value: value, ExpiresAt: time.Unix(0, expiresAt)}
	if entry.Expired(s.now()) {
		if err := s.Delete(ctx, key); err != nil {
			return "", err
		}
		return "", store.ErrNotFound
	}
	return entry.Value, nil
}

// Set inserts or replaces the entry for key, expiring ttl from now.
func (s *DB) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	now := s.now()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session_entries (key, value, expires_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value      = excluded.value,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at`,
		key, value, now.Add(ttl).UnixNano(), now.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to set entry %s: %w", key, err)
	}
	return nil
}

// Delete removes the entry for key.
func (s *DB) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session_entries WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", key, err)
	}
	return nil
}

// PurgeExpired removes every expired entry and returns how many were dropped.
func (s *DB) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM session_entries WHERE expires_at <= ?`, s.now().UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired entries: %w", err)
	}
	return res.RowsAffected()
}

var _ store.Store = (*DB)(nil)
