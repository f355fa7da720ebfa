// Package api provides the single authenticated request path shared by the
// session manager and every resource controller. All calls attach the
// x-auth-token header when a token is held, decode the backend's JSON error
// envelope, and surface a 401 as ErrUnauthorized so callers can escalate it
// to a forced logout.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ErrUnauthorized marks an authorization failure (HTTP 401) on any call.
// Detect it with errors.Is regardless of which operation produced it.
var ErrUnauthorized = errors.New("api: unauthorized")

// Error is a non-2xx response from the backend. Msg carries the backend's
// `msg` field when the error body had one, otherwise it is empty and callers
// fall back to a per-operation message.
type Error struct {
	Code int
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("api: %d: %s", e.Code, e.Msg)
	}
	return fmt.Sprintf("api: unexpected status %d", e.Code)
}

// Is reports ErrUnauthorized for 401 responses so errors.Is works across
// the whole call tree.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Code == http.StatusUnauthorized
}

// Message extracts the backend's message from err, falling back to the
// given per-operation default.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Msg != "" {
		return apiErr.Msg
	}
	return fallback
}

// errorEnvelope is the backend's JSON error body. msg is optional.
type errorEnvelope struct {
	Msg string `json:"msg"`
}

// Client issues JSON requests against the repair shop backend. The token is
// written only by the session manager; controllers read it implicitly
// through the shared Client.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// New returns a Client for the given base URL. Timeouts are left to the
// transport; zero means the http package default.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken replaces the held token. An empty string clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the held token, empty when unauthenticated.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// BaseURL returns the backend base URL the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET and decodes the 2xx response body into out.
func (c *Client) Get(path string, out any) error {
	return c.do(http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body and decodes the response into out
// when out is non-nil.
func (c *Client) Post(path string, body, out any) error {
	return c.do(http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body and decodes the response into out when
// out is non-nil.
func (c *Client) Put(path string, body, out any) error {
	return c.do(http.MethodPut, path, body, out)
}

// Delete issues a DELETE. The backend's `{msg}` body is discarded.
func (c *Client) Delete(path string) error {
	return c.do(http.MethodDelete, path, nil, nil)
}

// do is the shared dispatch core. Every authenticated call in the program
// funnels through here, which is what makes the 401 escalation rule a
// single check instead of one per screen.
func (c *Client) do(method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("x-auth-token", token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope errorEnvelope
		// A missing or malformed error body is fine; msg stays empty.
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		return &Error{Code: resp.StatusCode, Msg: envelope.Msg}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("api: decoding response: %w", err)
		}
	}
	return nil
}
