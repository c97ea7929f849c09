package restapi

import (
	"context"
	"net/http"

	"github.com/hammamikhairi/cookbook/internal/domain"
)

// Index reads the whole favorites document. A backend that has never
// stored favorites returns an empty document, not an error.
func (c *Client) Index(ctx context.Context) (domain.FavoritesIndex, error) {
	var idx domain.FavoritesIndex
	if err := c.do(ctx, http.MethodGet, "/favorites", nil, &idx); err != nil {
		return nil, err
	}
	if idx == nil {
		idx = make(domain.FavoritesIndex)
	}
	return idx, nil
}

// ReplaceIndex replaces the whole favorites document. There is no
// per-field patch on this resource; see the favorites package for the
// concurrency consequences.
func (c *Client) ReplaceIndex(ctx context.Context, idx domain.FavoritesIndex) error {
	return c.do(ctx, http.MethodPut, "/favorites", idx, nil)
}
