// Package httpapi talks to the account service's JSON API.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"

	"github.com/lu-zhengda/accountctl/internal/domain"
	"github.com/lu-zhengda/accountctl/internal/provider"
)

const (
	pathSignIn        = "/api/auth/sign-in"
	pathMe            = "/api/auth/me"
	pathDeleteAccount = "/api/auth/delete-account"
)

var errMissingToken = errors.New("missing bearer token")

// Client implements provider.AccountProvider over HTTP.
type Client struct {
	baseURL   *url.URL
	transport http.RoundTripper
	timeout   time.Duration
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithTransport replaces the base round tripper. It is still wrapped for
// tracing and bearer auth.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.transport = rt }
}

// WithTimeout bounds every request. Zero leaves timing to the network stack.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New creates a Client for the service rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base url: %w", err)
	}
	c := &Client{
		baseURL:   u,
		transport: http.DefaultTransport,
		userAgent: "accountctl",
	}
	for _, opt := range opts {
		opt(c)
	}
	c.transport = otelhttp.NewTransport(c.transport)
	return c, nil
}

// SignIn exchanges credentials for a token and, when the service sends one,
// a profile.
func (c *Client) SignIn(ctx context.Context, creds domain.Credentials) (*provider.SignInResult, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sign-in request: %w", err)
	}

	req, cancel, err := c.newRequest(ctx, http.MethodPost, pathSignIn, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer cancel()
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(c.plainClient(), req, "sign-in")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	result, err := decodeData[*provider.SignInResult](resp.Body, "sign-in")
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = &provider.SignInResult{}
	}
	return result, nil
}

// Me fetches the authoritative profile, bypassing HTTP caches.
func (c *Client) Me(ctx context.Context, token string) (*domain.Profile, error) {
	if token == "" {
		return nil, fmt.Errorf("me: %w", errMissingToken)
	}

	req, cancel, err := c.newRequest(ctx, http.MethodGet, pathMe, nil)
	if err != nil {
		return nil, err
	}
	defer cancel()
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.do(c.bearerClient(token), req, "me")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	profile, err := decodeData[*domain.Profile](resp.Body, "me")
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("me: %w: no profile in response", provider.ErrBadResponse)
	}
	return profile, nil
}

// DeleteAccount irreversibly deletes the account the token belongs to.
func (c *Client) DeleteAccount(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("delete-account: %w", errMissingToken)
	}

	req, cancel, err := c.newRequest(ctx, http.MethodDelete, pathDeleteAccount, nil)
	if err != nil {
		return err
	}
	defer cancel()

	resp, err := c.do(c.bearerClient(token), req, "delete-account")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, context.CancelFunc, error) {
	cancel := context.CancelFunc(func() {})
	if c.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path).String(), body)
	if err != nil {
		cancel()
		return nil, nil, fmt.Errorf("failed to build %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, cancel, nil
}

func (c *Client) plainClient() *http.Client {
	return &http.Client{Transport: c.transport}
}

func (c *Client) bearerClient(token string) *http.Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	return &http.Client{Transport: &oauth2.Transport{Source: src, Base: c.transport}}
}

// envelope is the service's success wrapper: {"data": ...}.
type envelope[T any] struct {
	Data T `json:"data"`
}

// do sends req and returns the response when its status is 2xx. The caller
// closes the body.
func (c *Client) do(hc *http.Client, req *http.Request, op string) (*http.Response, error) {
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, provider.ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, &provider.StatusError{Op: op, StatusCode: resp.StatusCode}
	}
	return resp, nil
}

// decodeData reads the data section of a success envelope.
func decodeData[T any](r io.Reader, op string) (T, error) {
	var env envelope[T]
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		var zero T
		return zero, fmt.Errorf("%s: %w: %w", op, provider.ErrBadResponse, err)
	}
	return env.Data, nil
}

var _ provider.AccountProvider = (*Client)(nil)
