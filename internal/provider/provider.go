package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/lu-zhengda/accountctl/internal/domain"
)

var (
	// ErrRejected matches any non-2xx response from the account service.
	ErrRejected = errors.New("request rejected")
	// ErrUnavailable wraps transport failures (no connectivity, DNS, timeouts).
	ErrUnavailable = errors.New("service unavailable")
	// ErrBadResponse wraps bodies that could not be decoded.
	ErrBadResponse = errors.New("malformed response")
)

// StatusError reports a non-2xx status. The response body is not inspected.
type StatusError struct {
	Op         string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *StatusError) Is(target error) bool {
	return target == ErrRejected
}

// SignInResult is the data section of a successful sign-in response.
// Token may be empty when the service answers 2xx without issuing one.
type SignInResult struct {
	Token string          `json:"token"`
	User  *domain.Profile `json:"user,omitempty"`
}

// AccountProvider is the remote account service.
type AccountProvider interface {
	SignIn(ctx context.Context, creds domain.Credentials) (*SignInResult, error)
	Me(ctx context.Context, token string) (*domain.Profile, error)
	DeleteAccount(ctx context.Context, token string) error
}
