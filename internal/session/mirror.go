// Package session persists a best-effort copy of the session token and
// profile so the account view can render immediately on start. The copy is
// never authoritative: any successful server response replaces it.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lu-zhengda/accountctl/internal/domain"
	"github.com/lu-zhengda/accountctl/internal/store"
)

// Storage keys.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// DefaultTTL is how long mirrored entries live.
const DefaultTTL = 7 * 24 * time.Hour

// Mirror reads and writes the token and profile through a store.Store.
type Mirror struct {
	store store.Store
	ttl   time.Duration
	log   zerolog.Logger
}

// NewMirror returns a Mirror over s. A non-positive ttl uses DefaultTTL.
func NewMirror(s store.Store, ttl time.Duration, log zerolog.Logger) *Mirror {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Mirror{
		store: s,
		ttl:   ttl,
		log:   log.With().Str("component", "session").Logger(),
	}
}

// Load returns whatever the mirror holds. Missing, expired, unreadable and
// unparseable entries all come back as absent.
func (m *Mirror) Load(ctx context.Context) domain.Session {
	var s domain.Session

	token, err := m.store.Get(ctx, KeyToken)
	switch {
	case err == nil:
		s.Token = token
	case !errors.Is(err, store.ErrNotFound):
		m.log.Warn().Err(err).Msg("failed to read persisted token")
	}

	raw, err := m.store.Get(ctx, KeyUser)
	switch {
	case err == nil:
		var p domain.Profile
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			m.log.Debug().Err(err).Msg("ignoring unparseable persisted profile")
			break
		}
		s.Profile = &p
	case !errors.Is(err, store.ErrNotFound):
		m.log.Warn().Err(err).Msg("failed to read persisted profile")
	}

	return s
}

// SaveToken writes the token with a fresh expiry.
func (m *Mirror) SaveToken(ctx context.Context, token string) error {
	if err := m.store.Set(ctx, KeyToken, token, m.ttl); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	return nil
}

// SaveProfile serializes p and writes it with a fresh expiry.
func (m *Mirror) SaveProfile(ctx context.Context, p *domain.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	if err := m.store.Set(ctx, KeyUser, string(data), m.ttl); err != nil {
		return fmt.Errorf("failed to persist profile: %w", err)
	}
	return nil
}

// Clear removes both the token and the profile.
func (m *Mirror) Clear(ctx context.Context) error {
	return errors.Join(
		m.store.Delete(ctx, KeyToken),
		m.store.Delete(ctx, KeyUser),
	)
}
