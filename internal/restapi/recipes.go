package restapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hammamikhairi/cookbook/internal/domain"
)

// NewLocalID generates a fresh id for a locally created recipe. The "r_"
// prefix distinguishes local ids from the catalog's "meal_" namespace.
func NewLocalID() string {
	return fmt.Sprintf("r_%d_%s", time.Now().UnixMilli(), strings.Split(uuid.NewString(), "-")[0])
}

// List returns local recipes matching the filter. Categorical constraints
// are pushed to the backend as exact-match query params; the free-text
// query is applied here because the backend cannot search.
func (c *Client) List(ctx context.Context, filter domain.FilterState) ([]domain.Recipe, error) {
	params := url.Values{}
	if v := strings.TrimSpace(filter.Cuisine); v != "" {
		params.Set("cuisine", v)
	}
	if v := strings.TrimSpace(filter.Category); v != "" {
		params.Set("category", v)
	}
	if v := strings.TrimSpace(filter.Difficulty); v != "" {
		params.Set("difficulty", v)
	}

	path := "/recipes"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var items []domain.Recipe
	if err := c.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}

	if q := strings.ToLower(strings.TrimSpace(filter.Query)); q != "" {
		matched := items[:0]
		for _, r := range items {
			if strings.Contains(strings.ToLower(r.Title), q) ||
				strings.Contains(strings.ToLower(r.Description), q) {
				matched = append(matched, r)
			}
		}
		items = matched
	}

	for i := range items {
		items[i].Origin = domain.OriginLocal
	}
	c.log.Debug("restapi: listed %d recipes", len(items))
	return items, nil
}

// Get returns one recipe by id, or domain.ErrNotFound.
func (c *Client) Get(ctx context.Context, id string) (*domain.Recipe, error) {
	var r domain.Recipe
	if err := c.do(ctx, http.MethodGet, "/recipes/"+url.PathEscape(id), nil, &r); err != nil {
		return nil, err
	}
	r.Origin = domain.OriginLocal
	return &r, nil
}

// Create persists a new recipe. The id and creation time are assigned
// here; CreatedBy must already be set by the caller.
func (c *Client) Create(ctx context.Context, r *domain.Recipe) (*domain.Recipe, error) {
	doc := *r
	doc.ID = NewLocalID()
	doc.CreatedAt = time.Now().UTC()

	var created domain.Recipe
	if err := c.do(ctx, http.MethodPost, "/recipes", &doc, &created); err != nil {
		return nil, err
	}
	created.Origin = domain.OriginLocal
	c.log.Info("restapi: created recipe %s (%q)", created.ID, created.Title)
	return &created, nil
}

// Update applies a partial patch. An unknown id is a failure
// (domain.ErrNotFound), since callers only patch recipes they just read.
func (c *Client) Update(ctx context.Context, id string, patch domain.RecipePatch) (*domain.Recipe, error) {
	var updated domain.Recipe
	if err := c.do(ctx, http.MethodPatch, "/recipes/"+url.PathEscape(id), &patch, &updated); err != nil {
		return nil, err
	}
	updated.Origin = domain.OriginLocal
	c.log.Info("restapi: updated recipe %s", id)
	return &updated, nil
}

// Delete removes a recipe by id.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/recipes/"+url.PathEscape(id), nil, nil); err != nil {
		return err
	}
	c.log.Info("restapi: deleted recipe %s", id)
	return nil
}

// ListByOwner returns the recipes created by the given user.
func (c *Client) ListByOwner(ctx context.Context, userID string) ([]domain.Recipe, error) {
	params := url.Values{}
	params.Set("createdBy", userID)

	var items []domain.Recipe
	if err := c.do(ctx, http.MethodGet, "/recipes?"+params.Encode(), nil, &items); err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Origin = domain.OriginLocal
	}
	return items, nil
}
