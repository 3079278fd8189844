// Package gateway is the single choke point for every call to the remote
// API. It attaches the bearer credential, unwraps payloads, and turns a 401
// into a session-invalidated signal handled by one top-level subscriber.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"backoffice/internal/domain"
	"backoffice/internal/platform/metrics"
	"backoffice/pkg/sentinel"
)

const userAgent = "backoffice-console/1.0"

// CredentialSource yields the current bearer token, or "" when anonymous.
// The session layer owns the credential; the gateway only reads it, once per
// request.
type CredentialSource interface {
	Token(ctx context.Context) string
}

// Client issues JSON requests against the backend. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	creds   CredentialSource
	log     *slog.Logger
	metrics *metrics.Metrics

	// onInvalidated runs synchronously, before the 401 error is returned to
	// the caller, so IsAuthenticated flips in the same tick the error
	// propagates. Registered once at wiring time.
	onInvalidated func(context.Context)
}

// Option configures optional collaborators.
type Option func(*Client)

// WithMetrics records request outcomes on the given collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New builds a gateway client. The transport is instrumented so traces cover
// every remote call.
func New(baseURL string, timeout time.Duration, creds CredentialSource, log *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		creds: creds,
		log:   log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnSessionInvalidated registers the single subscriber that performs the
// credential teardown when the backend rejects the token. The gateway itself
// stays free of storage and navigation concerns.
func (c *Client) OnSessionInvalidated(fn func(context.Context)) {
	c.onInvalidated = fn
}

// Get retrieves a resource. Query may be nil. The response payload is
// decoded into out; pass nil to discard it.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post creates a resource.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put replaces a resource.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete removes a resource. The backend expects identifying fields in the
// request body for several remove endpoints, so a body is allowed here.
func (c *Client) Delete(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.roundTrip(req, out)
}

// newRequest builds a request with the shared headers: bearer credential
// when present, a request id, and the client identity.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.creds.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) roundTrip(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(req.Method, "error")
		return fmt.Errorf("%s %s: %w: %v", req.Method, req.URL.Path, sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(req, resp)
	}

	c.observe(req.Method, "ok")
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	// Some endpoints legitimately return null or an empty body (for example
	// the cart of a user who never added anything). Leave out untouched.
	if len(bytes.TrimSpace(payload)) == 0 || string(bytes.TrimSpace(payload)) == "null" {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// fail turns a non-2xx response into an APIError and, for a rejected
// credential, fires the session-invalidated signal before returning. A single
// in-flight request failing with 401 invalidates the entire session.
func (c *Client) fail(req *http.Request, resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	payload, err := io.ReadAll(resp.Body)
	if err == nil && len(payload) > 0 {
		var notes []domain.Notification
		if json.Unmarshal(payload, &notes) == nil {
			apiErr.Notifications = notes
		}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.observe(req.Method, "unauthorized")
		c.log.WarnContext(req.Context(), "credential rejected, tearing down session",
			"method", req.Method,
			"path", req.URL.Path,
		)
		if c.metrics != nil {
			c.metrics.ObserveSessionInvalidation()
		}
		if c.onInvalidated != nil {
			c.onInvalidated(req.Context())
		}
		return apiErr
	}

	c.observe(req.Method, "error")
	return apiErr
}

func (c *Client) observe(method, outcome string) {
	if c.metrics != nil {
		c.metrics.ObserveRequest(method, outcome)
	}
}
