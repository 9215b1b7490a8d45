package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/lu-zhengda/accountctl/internal/domain"
	"github.com/lu-zhengda/accountctl/internal/provider"
	"github.com/lu-zhengda/accountctl/internal/session"
)

var (
	ErrMissingField     = errors.New("identifier and password are required")
	ErrNoToken          = errors.New("sign-in response carried no token")
	ErrNotLoggedIn      = errors.New("not logged in")
	ErrSignInInProgress = errors.New("sign-in already in progress")
)

// signInForm is the login form as submitted.
type signInForm struct {
	Identifier string `validate:"required"`
	Password   string `validate:"required"`
}

// AccountService runs the account flows against the remote service and
// keeps the persisted mirror in step. The caller owns the domain.Session;
// the service only returns new values for it.
type AccountService struct {
	provider provider.AccountProvider
	mirror   *session.Mirror
	validate *validator.Validate
	log      zerolog.Logger

	signingIn atomic.Bool
}

// NewAccountService creates an AccountService.
func NewAccountService(p provider.AccountProvider, m *session.Mirror, log zerolog.Logger) *AccountService {
	return &AccountService{
		provider: p,
		mirror:   m,
		validate: validator.New(),
		log:      log.With().Str("component", "account").Logger(),
	}
}

// Restore reads the persisted mirror without touching the network. A
// restored token is trusted optimistically until a refresh says otherwise.
func (s *AccountService) Restore(ctx context.Context) domain.Session {
	sess := s.mirror.Load(ctx)
	s.log.Debug().
		Bool("token", sess.Authenticated()).
		Bool("profile", sess.Profile != nil).
		Msg("restored session from mirror")
	return sess
}

// RefreshProfile fetches the authoritative profile and rewrites the mirror.
// Failures are logged and returned; callers keep whatever they already show.
func (s *AccountService) RefreshProfile(ctx context.Context, token string) (*domain.Profile, error) {
	if token == "" {
		return nil, ErrNotLoggedIn
	}
	profile, err := s.provider.Me(ctx, token)
	if err != nil {
		s.log.Error().Err(err).Msg("profile refresh failed")
		return nil, fmt.Errorf("failed to refresh profile: %w", err)
	}
	if err := s.mirror.SaveProfile(ctx, profile); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist refreshed profile")
	}
	return profile, nil
}

// SignIn validates the form, submits it and persists what the service
// issues. Only one sign-in may be in flight at a time.
func (s *AccountService) SignIn(ctx context.Context, identifier, password string) (domain.Session, error) {
	form := signInForm{Identifier: strings.TrimSpace(identifier), Password: password}
	if err := s.validate.Struct(form); err != nil {
		return domain.Session{}, ErrMissingField
	}

	if !s.signingIn.CompareAndSwap(false, true) {
		return domain.Session{}, ErrSignInInProgress
	}
	defer s.signingIn.Store(false)

	creds := domain.NewCredentials(identifier, password)
	log := s.log.With().Str("kind", creds.Kind().String()).Logger()

	res, err := s.provider.SignIn(ctx, creds)
	if err != nil {
		log.Error().Err(err).Msg("sign-in failed")
		return domain.Session{}, fmt.Errorf("failed to sign in: %w", err)
	}
	if res.Token == "" {
		log.Warn().Msg("sign-in succeeded without a token")
		return domain.Session{}, ErrNoToken
	}

	sess := domain.Session{Token: res.Token, Profile: res.User}
	if err := s.mirror.SaveToken(ctx, res.Token); err != nil {
		log.Warn().Err(err).Msg("failed to persist token")
	}
	if res.User != nil {
		if err := s.mirror.SaveProfile(ctx, res.User); err != nil {
			log.Warn().Err(err).Msg("failed to persist profile")
		}
	}
	log.Info().Msg("signed in")
	return sess, nil
}

// DeleteAccount deletes the account behind token and clears the mirror.
// Confirmation is the caller's responsibility. On any failure the mirror is
// left untouched.
func (s *AccountService) DeleteAccount(ctx context.Context, token string) error {
	if token == "" {
		return ErrNotLoggedIn
	}
	if err := s.provider.DeleteAccount(ctx, token); err != nil {
		s.log.Error().Err(err).Msg("account deletion failed")
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if err := s.mirror.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear persisted session")
	}
	s.log.Info().Msg("account deleted")
	return nil
}
