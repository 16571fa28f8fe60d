// Package api implements the low-level HTTP client for the tracker
// backend: bearer injection, JSON round trips, and translation of error
// responses into the application's error taxonomy.
package api

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

	"github.com/sohakim/gagyebu/internal/common"
	"github.com/sohakim/gagyebu/internal/session"
)

// Client talks to the tracker backend. All methods are safe for
// concurrent use.
type Client struct {
	session    session.Session
	httpClient *http.Client
	baseURL    string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client for the API rooted at baseURL. The session
// provides the bearer credential for authenticated calls.
func NewClient(baseURL string, sess session.Session, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: sess,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Query holds URL query parameters. Empty values are treated as absent
// and never sent, matching the backend's filter contract.
type Query map[string]string

func (q Query) encode() string {
	values := url.Values{}
	for k, v := range q {
		if v == "" {
			continue
		}
		values.Set(k, v)
	}
	return values.Encode()
}

// Get performs an authenticated GET and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, q Query, out any) error {
	return c.do(ctx, http.MethodGet, path, q, nil, out, true)
}

// Post performs an authenticated POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, true)
}

// PostAnon performs an unauthenticated POST, used by signup, login, and
// the social token exchange.
func (c *Client) PostAnon(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, false)
}

// Patch performs an authenticated PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out, true)
}

// Delete performs an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, true)
}

func (c *Client) do(ctx context.Context, method, path string, q Query, body, out any, authed bool) error {
	u := c.baseURL + path
	if encoded := q.encode(); encoded != "" {
		u += "?" + encoded
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		token, err := c.session.Token(ctx)
		if err != nil {
			return fmt.Errorf("failed to resolve credential: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	slog.Debug("api request", "method", method, "path", path, "query", q.encode())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &common.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &common.TransportError{Err: err}
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &common.TransportError{Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

// decodeError turns a non-2xx response into a taxonomy error. The
// backend's message is preserved verbatim: a JSON body's detail field if
// present, otherwise the raw body text.
func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)
	detail := errorDetail(resp.Header.Get("Content-Type"), data)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &common.AuthError{Detail: detail}
	case http.StatusNotFound:
		if detail == "" {
			return common.ErrNotFound
		}
		return fmt.Errorf("%s: %w", detail, common.ErrNotFound)
	default:
		return &common.APIError{StatusCode: resp.StatusCode, Detail: detail}
	}
}

func errorDetail(contentType string, data []byte) string {
	if !strings.Contains(contentType, "application/json") {
		return strings.TrimSpace(string(data))
	}

	var parsed map[string]json.RawMessage
	if err := json.Unmarshal(data, &parsed); err != nil {
		return strings.TrimSpace(string(data))
	}
	if raw, ok := parsed["detail"]; ok {
		var detail string
		if err := json.Unmarshal(raw, &detail); err == nil {
			return detail
		}
	}
	return strings.TrimSpace(string(data))
}
