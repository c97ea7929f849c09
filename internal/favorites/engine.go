// Package favorites manages per-user favorite marks over the shared
// backend favorites document.
package favorites

import (
	"context"
	"errors"
	"sort"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Engine toggles and lists favorites. Every toggle is a read-modify-write
// of the whole favorites document: fetch the index, flip one membership
// bit, write the index back. Two clients toggling concurrently can lose
// one of the writes; the backend offers no per-field patch on this
// resource, so the last full write wins and the single-user reference
// deployment accepts that.
type Engine struct {
	store   domain.FavoritesStore
	recipes domain.RecipeStore
	catalog domain.CatalogProvider
	log     *logger.Logger
}

// NewEngine creates a favorites engine.
func NewEngine(store domain.FavoritesStore, recipes domain.RecipeStore, catalog domain.CatalogProvider, log *logger.Logger) *Engine {
	return &Engine{store: store, recipes: recipes, catalog: catalog, log: log}
}

// Toggle flips the user's favorite mark on a recipe and returns the
// persisted state: true when the recipe is now favorited. The returned
// bit reflects the index that was actually written, not the caller's
// expectation.
func (e *Engine) Toggle(ctx context.Context, userID, recipeID string) (bool, error) {
	idx, err := e.store.Index(ctx)
	if err != nil {
		return false, err
	}

	next := !idx.Has(userID, recipeID)
	idx.Set(userID, recipeID, next)

	if err := e.store.ReplaceIndex(ctx, idx); err != nil {
		return false, err
	}
	e.log.Debug("favorites: user %s %s %s", userID, verb(next), recipeID)
	return next, nil
}

func verb(favorited bool) string {
	if favorited {
		return "favorited"
	}
	return "unfavorited"
}

// IsFavorite reports whether the user has favorited the recipe. A user
// with no favorites entry reads as all-false, not as an error.
func (e *Engine) IsFavorite(ctx context.Context, userID, recipeID string) (bool, error) {
	idx, err := e.store.Index(ctx)
	if err != nil {
		return false, err
	}
	return idx.Has(userID, recipeID), nil
}

// Marked returns the user's favorited ids as a membership set, read in a
// single index fetch. Listings consult the set per row instead of calling
// IsFavorite once per rendered recipe.
func (e *Engine) Marked(ctx context.Context, userID string) (map[string]bool, error) {
	idx, err := e.store.Index(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(idx[userID]))
	for id, on := range idx[userID] {
		if on {
			set[id] = true
		}
	}
	return set, nil
}

// List resolves the user's favorited ids to full recipes. Local ids are
// fetched from the recipe store, namespaced catalog ids from the
// provider. Resolution is best-effort per id: a favorite pointing at a
// deleted or unreachable recipe is logged and skipped, never failing the
// whole listing. Results are sorted by id so repeated listings are
// stable.
func (e *Engine) List(ctx context.Context, userID string) ([]domain.Recipe, error) {
	idx, err := e.store.Index(ctx)
	if err != nil {
		return nil, err
	}

	favIDs := idx.IDs(userID)
	sort.Strings(favIDs)

	out := make([]domain.Recipe, 0, len(favIDs))
	for _, id := range favIDs {
		r, err := e.resolve(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				e.log.Debug("favorites: %s no longer exists, skipping", id)
			} else {
				e.log.Warn("favorites: resolving %s failed, skipping: %v", id, err)
			}
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (e *Engine) resolve(ctx context.Context, id string) (*domain.Recipe, error) {
	if domain.IsExternalID(id) {
		return e.catalog.Lookup(ctx, id)
	}
	return e.recipes.Get(ctx, id)
}
