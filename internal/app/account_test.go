package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lu-zhengda/accountctl/internal/domain"
	"github.com/lu-zhengda/accountctl/internal/provider"
	"github.com/lu-zhengda/accountctl/internal/session"
	"github.com/lu-zhengda/accountctl/internal/store"
	"github.com/lu-zhengda/accountctl/internal/store/sqlite"
)

// ---- fake provider ----

type fakeProvider struct {
	SignInRet *provider.SignInResult
	SignInErr error
	// signInGate, when set, blocks SignIn until closed.
	signInGate chan struct{}
	signInSeen chan struct{}

	MeRet *domain.Profile
	MeErr error

	DeleteErr error

	SignInCalls int
	MeCalls     int
	DeleteCalls int

	LastCreds domain.Credentials
	LastToken string
}

func (f *fakeProvider) SignIn(ctx context.Context, creds domain.Credentials) (*provider.SignInResult, error) {
	f.SignInCalls++
	f.LastCreds = creds
	if f.signInSeen != nil {
		close(f.signInSeen)
	}
	if f.signInGate != nil {
		<-f.signInGate
	}
	return f.SignInRet, f.SignInErr
}

func (f *fakeProvider) Me(ctx context.Context, token string) (*domain.Profile, error) {
	f.MeCalls++
	f.LastToken = token
	return f.MeRet, f.MeErr
}

func (f *fakeProvider) DeleteAccount(ctx context.Context, token string) error {
	f.DeleteCalls++
	f.LastToken = token
	return f.DeleteErr
}

// ---- helpers ----

func setup(t *testing.T, p *fakeProvider) (*AccountService, *sqlite.DB) {
	t.Helper()
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mirror := session.NewMirror(db, session.DefaultTTL, zerolog.Nop())
	return NewAccountService(p, mirror, zerolog.Nop()), db
}

func stored(t *testing.T, db *sqlite.DB, key string) (string, bool) {
	t.Helper()
	v, err := db.Get(context.Background(), key)
	if errors.Is(err, store.ErrNotFound) {
		return "", false
	}
	require.NoError(t, err)
	return v, true
}

// ---- sign-in ----

func TestSignIn_Success(t *testing.T) {
	p := &fakeProvider{SignInRet: &provider.SignInResult{Token: "t1", User: &domain.Profile{Name: "A"}}}
	svc, db := setup(t, p)

	sess, err := svc.SignIn(context.Background(), "a@b.co", "pw")
	require.NoError(t, err)
	assert.True(t, sess.Authenticated())
	assert.Equal(t, "t1", sess.Token)
	require.NotNil(t, sess.Profile)
	assert.Equal(t, "A", sess.Profile.Name)

	token, ok := stored(t, db, session.KeyToken)
	require.True(t, ok)
	assert.Equal(t, "t1", token)

	user, ok := stored(t, db, session.KeyUser)
	require.True(t, ok)
	assert.JSONEq(t, `{"name":"A"}`, user)

	assert.Equal(t, domain.KindEmail, p.LastCreds.Kind())
}

func TestSignIn_PhoneIdentifier(t *testing.T) {
	p := &fakeProvider{SignInRet: &provider.SignInResult{Token: "t1"}}
	svc, db := setup(t, p)

	sess, err := svc.SignIn(context.Background(), " +628123456 ", "pw")
	require.NoError(t, err)
	assert.Nil(t, sess.Profile)

	require.IsType(t, domain.PhoneCredentials{}, p.LastCreds)
	assert.Equal(t, "+628123456", p.LastCreds.Identifier())

	_, ok := stored(t, db, session.KeyUser)
	assert.False(t, ok, "no profile should be persisted when none was returned")
}

func TestSignIn_MissingFieldsNoNetwork(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		password   string
	}{
		{"empty password", "a@b.co", ""},
		{"empty identifier", "", "pw"},
		{"both empty", "", ""},
		{"blank identifier", "   ", "pw"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{}
			svc, _ := setup(t, p)

			_, err := svc.SignIn(context.Background(), tt.identifier, tt.password)
			assert.ErrorIs(t, err, ErrMissingField)
			assert.Equal(t, 0, p.SignInCalls)
			assert.Equal(t, NoticeFillIn, SignInNotice(err))
		})
	}
}

func TestSignIn_NoTokenSetsNoState(t *testing.T) {
	p := &fakeProvider{SignInRet: &provider.SignInResult{User: &domain.Profile{Name: "A"}}}
	svc, db := setup(t, p)

	sess, err := svc.SignIn(context.Background(), "a@b.co", "pw")
	assert.ErrorIs(t, err, ErrNoToken)
	assert.False(t, sess.Authenticated())
	assert.Nil(t, sess.Profile)
	assert.Equal(t, NoticeLoginFailed, SignInNotice(err))

	_, ok := stored(t, db, session.KeyToken)
	assert.False(t, ok)
	_, ok = stored(t, db, session.KeyUser)
	assert.False(t, ok)
}

func TestSignIn_Rejected(t *testing.T) {
	p := &fakeProvider{SignInErr: &provider.StatusError{Op: "sign-in", StatusCode: 401}}
	svc, db := setup(t, p)

	sess, err := svc.SignIn(context.Background(), "a@b.co", "pw")
	assert.ErrorIs(t, err, provider.ErrRejected)
	assert.False(t, sess.Authenticated())
	assert.Equal(t, NoticeCheckInput, SignInNotice(err))

	_, ok := stored(t, db, session.KeyToken)
	assert.False(t, ok)
}

func TestSignIn_Unavailable(t *testing.T) {
	p := &fakeProvider{SignInErr: fmt.Errorf("sign-in: %w", provider.ErrUnavailable)}
	svc, _ := setup(t, p)

	_, err := svc.SignIn(context.Background(), "a@b.co", "pw")
	assert.ErrorIs(t, err, provider.ErrUnavailable)
	assert.Equal(t, NoticeTryLater, SignInNotice(err))
}

func TestSignIn_SingleFlight(t *testing.T) {
	p := &fakeProvider{
		SignInRet:  &provider.SignInResult{Token: "t1"},
		signInGate: make(chan struct{}),
		signInSeen: make(chan struct{}),
	}
	svc, _ := setup(t, p)

	done := make(chan error, 1)
	go func() {
		_, err := svc.SignIn(context.Background(), "a@b.co", "pw")
		done <- err
	}()

	select {
	case <-p.signInSeen:
	case <-time.After(2 * time.Second):
		t.Fatal("first sign-in never reached the provider")
	}

	_, err := svc.SignIn(context.Background(), "a@b.co", "pw")
	assert.ErrorIs(t, err, ErrSignInInProgress)

	close(p.signInGate)
	require.NoError(t, <-done)

	// The guard is released once the attempt concludes.
	p.signInGate, p.signInSeen = nil, nil
	_, err = svc.SignIn(context.Background(), "a@b.co", "pw")
	assert.NoError(t, err)
	assert.Equal(t, 2, p.SignInCalls)
}

// ---- restore / refresh ----

func TestRestore(t *testing.T) {
	svc, db := setup(t, &fakeProvider{})
	ctx := context.Background()

	assert.False(t, svc.Restore(ctx).Authenticated())

	require.NoError(t, db.Set(ctx, session.KeyToken, "t1", time.Hour))
	require.NoError(t, db.Set(ctx, session.KeyUser, `{"name":"Cached"}`, time.Hour))

	sess := svc.Restore(ctx)
	assert.Equal(t, "t1", sess.Token)
	require.NotNil(t, sess.Profile)
	assert.Equal(t, "Cached", sess.Profile.Name)
}

func TestRefreshProfile_Success(t *testing.T) {
	p := &fakeProvider{MeRet: &domain.Profile{Name: "Fresh"}}
	svc, db := setup(t, p)

	profile, err := svc.RefreshProfile(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "Fresh", profile.Name)
	assert.Equal(t, "t1", p.LastToken)

	user, ok := stored(t, db, session.KeyUser)
	require.True(t, ok)
	assert.JSONEq(t, `{"name":"Fresh"}`, user)
}

func TestRefreshProfile_FailureKeepsMirror(t *testing.T) {
	p := &fakeProvider{MeErr: provider.ErrUnavailable}
	svc, db := setup(t, p)
	ctx := context.Background()
	require.NoError(t, db.Set(ctx, session.KeyUser, `{"name":"Cached"}`, time.Hour))

	_, err := svc.RefreshProfile(ctx, "t1")
	assert.ErrorIs(t, err, provider.ErrUnavailable)

	user, ok := stored(t, db, session.KeyUser)
	require.True(t, ok)
	assert.JSONEq(t, `{"name":"Cached"}`, user)
}

func TestRefreshProfile_NoToken(t *testing.T) {
	p := &fakeProvider{}
	svc, _ := setup(t, p)

	_, err := svc.RefreshProfile(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Equal(t, 0, p.MeCalls)
}

// ---- delete ----

func TestDeleteAccount_Success(t *testing.T) {
	p := &fakeProvider{}
	svc, db := setup(t, p)
	ctx := context.Background()
	require.NoError(t, db.Set(ctx, session.KeyToken, "t1", time.Hour))
	require.NoError(t, db.Set(ctx, session.KeyUser, `{"name":"A"}`, time.Hour))

	require.NoError(t, svc.DeleteAccount(ctx, "t1"))
	assert.Equal(t, "t1", p.LastToken)

	_, ok := stored(t, db, session.KeyToken)
	assert.False(t, ok)
	_, ok = stored(t, db, session.KeyUser)
	assert.False(t, ok)
}

func TestDeleteAccount_NotLoggedIn(t *testing.T) {
	p := &fakeProvider{}
	svc, _ := setup(t, p)

	err := svc.DeleteAccount(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Equal(t, 0, p.DeleteCalls)
	assert.Equal(t, NoticeLoginRequired, DeleteNotice(err))
}

func TestDeleteAccount_FailureKeepsSession(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantNotice string
	}{
		{"rejected", &provider.StatusError{Op: "delete-account", StatusCode: 500}, NoticeDeleteFailed},
		{"unavailable", fmt.Errorf("delete-account: %w", provider.ErrUnavailable), NoticeGenericError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{DeleteErr: tt.err}
			svc, db := setup(t, p)
			ctx := context.Background()
			require.NoError(t, db.Set(ctx, session.KeyToken, "t1", time.Hour))

			err := svc.DeleteAccount(ctx, "t1")
			require.Error(t, err)
			assert.Equal(t, tt.wantNotice, DeleteNotice(err))

			token, ok := stored(t, db, session.KeyToken)
			assert.True(t, ok)
			assert.Equal(t, "t1", token)
		})
	}
}
