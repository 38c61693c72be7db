// Package apiclient is the request pipeline every outbound call passes
// through. The request stage injects the resolved tenant and credential
// headers and opens a trace span; the response stage closes the span and
// normalizes all failures into the Error taxonomy. The pipeline never
// retries; retry policy belongs to callers.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"gatehouse/internal/errtrack"
	"gatehouse/internal/session"
	"gatehouse/internal/tenant/identify"
	"gatehouse/internal/tracing"
)

// HeaderTenant carries the resolved tenant id on every call.
const HeaderTenant = "X-Tenant-Id"

const defaultTimeout = 15 * time.Second

// Client wraps an *http.Client with the tenant/credential/tracing stages.
type Client struct {
	base     *url.URL
	http     *http.Client
	sessions session.Store
	host     string
	tracer   tracing.Tracer
	reporter errtrack.Reporter
	log      *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying transport.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithSessionStore provides the persisted credential source for header
// injection. Without one, calls go out untagged.
func WithSessionStore(s session.Store) Option {
	return func(c *Client) { c.sessions = s }
}

// WithHost sets the browsing host used to derive a tenant key when no
// session carries one.
func WithHost(host string) Option {
	return func(c *Client) { c.host = host }
}

// WithTracer sets the span emitter for the pipeline.
func WithTracer(t tracing.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

// WithReporter sets the error-tracking collaborator failures are reported to.
func WithReporter(r errtrack.Reporter) Option {
	return func(c *Client) { c.reporter = r }
}

// WithLogger sets the structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a pipeline client for the given base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	c := &Client{
		base:     base,
		http:     &http.Client{Timeout: defaultTimeout},
		tracer:   tracing.NewNoop(),
		reporter: errtrack.NewNoop(),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the address calls are resolved against.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// RequestOption adjusts a single call.
type RequestOption func(*http.Request)

// WithHeader sets one header on this call only, overriding any value the
// pipeline would inject for the same key.
func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) { r.Header.Set(key, value) }
}

// Get issues a GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodGet, path, nil, out, opts)
}

// Post issues a POST with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPost, path, body, out, opts)
}

// Put issues a PUT with a JSON body and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPut, path, body, out, opts)
}

// Patch issues a PATCH with a JSON body and decodes the response into out.
func (c *Client) Patch(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPatch, path, body, out, opts)
}

// Delete issues a DELETE and decodes the JSON response into out.
func (c *Client) Delete(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodDelete, path, nil, out, opts)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, opts []RequestOption) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	tenantID := c.injectIdentity(req)
	for _, opt := range opts {
		opt(req)
	}

	// One span per in-flight call; the span variable is owned by this
	// invocation, so concurrent calls to the same route cannot collide.
	spanCtx, span := c.tracer.Start(ctx, method+" "+path,
		tracing.String(tracing.AttrTenantID, tenantID),
		tracing.String(tracing.AttrBaseURL, c.base.String()),
	)

	resp, err := c.http.Do(req.WithContext(spanCtx))
	if err != nil {
		apiErr := c.classifyTransportError(ctx, err)
		span.End(apiErr)
		c.reporter.Capture(ctx, apiErr)
		return apiErr
	}
	defer resp.Body.Close()

	payload, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		apiErr := networkError(readErr)
		span.End(apiErr)
		c.reporter.Capture(ctx, apiErr)
		return apiErr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := fromResponse(resp, payload)
		span.SetAttributes(tracing.Int64(tracing.AttrStatus, int64(resp.StatusCode)))
		span.End(apiErr)
		c.reporter.Capture(ctx, apiErr)
		return apiErr
	}

	span.SetAttributes(tracing.Int64(tracing.AttrStatus, int64(resp.StatusCode)))
	span.End(nil)

	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	target := c.base.JoinPath(path).String()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// injectIdentity resolves the tenant id and credential for this call and
// sets the corresponding headers. The persisted session wins; the
// host-derived tenant key is the fallback. Empty values are never sent.
// It returns the resolved tenant id for span tagging.
func (c *Client) injectIdentity(req *http.Request) string {
	var stored *session.Session
	if c.sessions != nil {
		s, err := c.sessions.GetUser()
		if err != nil {
			c.log.WarnContext(req.Context(), "failed to read persisted session",
				"error", err,
			)
		} else {
			stored = s
		}
	}

	tenantID := ""
	if stored != nil {
		tenantID = stored.TenantID
	}
	if tenantID == "" && c.host != "" {
		tenantID = identify.Identify(c.host, "")
	}
	if tenantID != "" {
		req.Header.Set(HeaderTenant, tenantID)
	}

	if stored != nil && stored.Token != "" {
		req.Header.Set("Authorization", "Bearer "+stored.Token)
	}
	return tenantID
}

// classifyTransportError maps a failure where no response was received.
// Caller-initiated cancellation gets the dedicated 499 variant so UI can
// tell "navigated away" from "server unreachable".
func (c *Client) classifyTransportError(ctx context.Context, err error) *Error {
	if errors.Is(err, context.Canceled) || ctx.Err() == context.Canceled {
		return cancelled()
	}
	return networkError(err)
}
