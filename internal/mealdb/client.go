// Package mealdb is the Catalog Provider adapter for TheMealDB, the
// public read-only recipe API. Everything leaving this package is already
// converted to the canonical domain.Recipe shape; TheMealDB's field names
// (strMeal, strIngredient1..20, ...) never cross the boundary.
package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// DefaultBaseURL is TheMealDB's free-tier API root.
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

// Compile-time interface check.
var _ domain.CatalogProvider = (*Client)(nil)

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

// Client talks to TheMealDB.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// NewClient creates a catalog client. Pass DefaultBaseURL outside tests.
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

// meal is one raw TheMealDB document. The ingredient/measure columns are
// numbered rather than repeated, so the document is decoded as a loose
// map and read through field().
type meal map[string]any

func (m meal) field(key string) string {
	v, _ := m[key].(string)
	return v
}

// envelope is the common {"meals": [...]} wrapper. "Not found" is
// {"meals": null}, not an HTTP 404.
type envelope struct {
	Meals []meal `json:"meals"`
}

func (c *Client) fetch(ctx context.Context, path string) ([]meal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("mealdb: create request: %w", err)
	}

	c.log.Debug("mealdb: GET %s", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mealdb: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("mealdb: GET %s: API returned %s", path, resp.Status)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("mealdb: decode %s response: %w", path, err)
	}
	return env.Meals, nil
}

// Random fetches one random catalog recipe.
func (c *Client) Random(ctx context.Context) (*domain.Recipe, error) {
	meals, err := c.fetch(ctx, "/random.php")
	if err != nil {
		return nil, err
	}
	if len(meals) == 0 {
		return nil, fmt.Errorf("mealdb: random returned no meal")
	}
	return convertMeal(meals[0]), nil
}

// Search fetches catalog recipes whose name matches the term.
func (c *Client) Search(ctx context.Context, term string) ([]domain.Recipe, error) {
	meals, err := c.fetch(ctx, "/search.php?s="+url.QueryEscape(term))
	if err != nil {
		return nil, err
	}
	out := make([]domain.Recipe, 0, len(meals))
	for _, m := range meals {
		out = append(out, *convertMeal(m))
	}
	return out, nil
}

// Categories lists the catalog's category names.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	meals, err := c.fetch(ctx, "/list.php?c=list")
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(meals))
	for _, m := range meals {
		if name := m.field("strCategory"); name != "" {
			out = append(out, name)
		}
	}
	return out, nil
}

// ByCategory lists the namespaced ids of recipes in a category. The
// filter endpoint only returns summaries (id, name, thumbnail); full
// recipes require a Lookup per id.
func (c *Client) ByCategory(ctx context.Context, category string) ([]string, error) {
	meals, err := c.fetch(ctx, "/filter.php?c="+url.QueryEscape(category))
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(meals))
	for _, m := range meals {
		if raw := m.field("idMeal"); raw != "" {
			out = append(out, domain.ExternalIDPrefix+raw)
		}
	}
	return out, nil
}

// Lookup fetches a full catalog recipe by namespaced id. A missing meal
// is domain.ErrNotFound.
func (c *Client) Lookup(ctx context.Context, id string) (*domain.Recipe, error) {
	raw := strings.TrimPrefix(id, domain.ExternalIDPrefix)
	meals, err := c.fetch(ctx, "/lookup.php?i="+url.QueryEscape(raw))
	if err != nil {
		return nil, err
	}
	if len(meals) == 0 {
		return nil, domain.ErrNotFound
	}
	return convertMeal(meals[0]), nil
}
