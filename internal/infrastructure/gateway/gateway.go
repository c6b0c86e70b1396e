// Package gateway is the sole outbound channel to the backend API. Every
// request carries the stored credential as a bearer header; every response
// is inspected for auth-relevant status codes before the result reaches
// the caller. Interception augments failures, it never swallows them.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/qmsagent/console/internal/api/metrics"
	"github.com/qmsagent/console/internal/core/domain"
	"github.com/qmsagent/console/internal/core/ports"
)

const defaultTimeout = 30 * time.Second

// Client wraps an http.Client with a fixed base URL, a bounded timeout,
// credential attachment and response interception.
type Client struct {
	base  string
	http  *http.Client
	store ports.CredentialStore
	nav   ports.Navigator
	log   zerolog.Logger

	// redirecting is the redirect guard: the first 401 in an unauthorized
	// episode wins the login navigation, concurrent ones are no-ops.
	redirecting atomic.Bool
}

// New builds a gateway client. A non-positive timeout falls back to the
// 30s default.
func New(baseURL string, timeout time.Duration, store ports.CredentialStore, nav ports.Navigator, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		store: store,
		nav:   nav,
		log:   log,
		http: &http.Client{
			Timeout:   timeout,
			Transport: &bearerTransport{store: store, next: http.DefaultTransport},
		},
	}
}

// BaseURL returns the backend base address the client was built with.
func (c *Client) BaseURL() string {
	return c.base
}

// ResetRedirectGuard re-arms the login navigation. Called when the
// application returns to the login surface, so the next unauthorized
// episode can navigate again.
func (c *Client) ResetRedirectGuard() {
	c.redirecting.Store(false)
}

// GetJSON performs a GET against path (relative to the base URL) and
// decodes a 2xx JSON body into out. out may be nil to discard the body.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, out)
}

func (c *Client) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, nil)
	if err != nil {
		return fmt.Errorf("gateway: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.GatewayResponsesTotal.WithLabelValues("network_error").Inc()
		c.log.Error().Err(err).Str("path", path).Msg("backend unreachable")
		return fmt.Errorf("%w: %v", domain.ErrNetworkUnreachable, err)
	}
	defer resp.Body.Close()

	if err := c.intercept(ctx, resp, path); err != nil {
		return err
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("gateway: decode %s: %w", path, err)
	}
	return nil
}

// intercept inspects the response status and runs the side effects the
// session contract requires. The returned error, when non-nil, is what the
// caller sees; the underlying failure is never suppressed.
func (c *Client) intercept(ctx context.Context, resp *http.Response, path string) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		metrics.GatewayResponsesTotal.WithLabelValues("4xx").Inc()
		c.handleUnauthorized(ctx, path)
		return fmt.Errorf("%s: %w", path, domain.ErrInvalidCredential)

	case resp.StatusCode == http.StatusForbidden:
		metrics.GatewayResponsesTotal.WithLabelValues("4xx").Inc()
		c.log.Warn().Str("path", path).Msg("access forbidden")
		return fmt.Errorf("%s: %w", path, domain.ErrForbidden)

	case resp.StatusCode >= http.StatusInternalServerError:
		metrics.GatewayResponsesTotal.WithLabelValues("5xx").Inc()
		c.log.Error().Str("path", path).Int("status", resp.StatusCode).Msg("backend server error")
		return fmt.Errorf("%s: %w", path, domain.ErrServer)

	case resp.StatusCode >= http.StatusBadRequest:
		metrics.GatewayResponsesTotal.WithLabelValues("4xx").Inc()
		return fmt.Errorf("gateway: %s returned %s", path, resp.Status)
	}

	metrics.GatewayResponsesTotal.WithLabelValues("2xx").Inc()
	return nil
}

// handleUnauthorized purges the credential and performs the guarded login
// navigation. The purge is idempotent; the navigation happens at most once
// per unauthorized episode, and never while already at the login surface.
func (c *Client) handleUnauthorized(ctx context.Context, path string) {
	metrics.GatewayUnauthorizedTotal.Inc()
	if err := c.store.Remove(ctx); err != nil {
		c.log.Error().Err(err).Msg("purge credential after 401")
	}

	if c.nav.AtLogin() {
		return
	}
	if c.redirecting.CompareAndSwap(false, true) {
		c.log.Info().Str("path", path).Msg("unauthorized, navigating to login")
		c.nav.ToLogin()
		return
	}
	metrics.GatewayRedirectsSuppressedTotal.Inc()
	c.log.Debug().Str("path", path).Msg("unauthorized, login navigation already pending")
}

// bearerTransport attaches the stored credential to every outbound request.
// The store read is local and non-blocking; a read failure degrades to an
// unauthenticated request rather than blocking the call.
type bearerTransport struct {
	store ports.CredentialStore
	next  http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cred, err := t.store.Get(req.Context())
	if err == nil && cred != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+cred)
	}
	return t.next.RoundTrip(req)
}
