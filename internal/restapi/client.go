// Package restapi implements the Resource Client: generic CRUD over the
// mock REST backend's /recipes, /users, and /favorites resources. The
// backend is a json-server-style document store; it matches categorical
// query params exactly and has no full-text search, so the free-text
// query is applied client-side.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.RecipeStore    = (*Client)(nil)
	_ domain.FavoritesStore = (*Client)(nil)
)

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client (used by tests).
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// Client talks to the backend resource store.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// NewClient creates a resource client for the backend at baseURL
// (e.g. "http://localhost:3001").
func NewClient(baseURL string, log *logger.Logger, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Ping verifies the backend is reachable. Called once at startup so a
// missing server surfaces as one clear error instead of a failure on
// every later operation.
func (c *Client) Ping(ctx context.Context) error {
	var out []domain.Recipe
	if err := c.do(ctx, http.MethodGet, "/recipes", nil, &out); err != nil {
		return fmt.Errorf("restapi: backend not reachable at %s: %w", c.baseURL, err)
	}
	return nil
}

// do performs one request. A nil body sends no payload; a nil out
// discards the response body. 404 maps to domain.ErrNotFound; any other
// non-2xx status is a transport failure.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("restapi: marshal body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("restapi: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("restapi: %s %s", method, path)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("restapi: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("restapi: %s %s: backend returned %s: %s", method, path, resp.Status, strings.TrimSpace(string(msg)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("restapi: decode %s %s response: %w", method, path, err)
	}
	return nil
}
