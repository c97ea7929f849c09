package app

import (
	"context"

	"github.com/hammamikhairi/cookbook/internal/domain"
)

// Create validates and persists a new recipe owned by the signed-in
// user. The created recipe goes to the front of the local cache so it
// appears first in the aggregate immediately.
func (a *App) Create(ctx context.Context, r *domain.Recipe) (*domain.Recipe, error) {
	user := a.auth.Current()
	if user == nil {
		return nil, domain.ErrNotSignedIn
	}
	if err := domain.ValidateRecipe(r); err != nil {
		return nil, err
	}

	r.CreatedBy = user.ID
	r.Origin = domain.OriginLocal

	created, err := a.recipes.Create(ctx, r)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.local = append([]domain.Recipe{*created}, a.local...)
	a.mu.Unlock()

	a.log.Info("app: created recipe %s (%s)", created.ID, created.Title)
	return created, nil
}

// Update applies a partial edit to a recipe the signed-in user owns. The
// patched result is validated as a whole before anything is sent, so an
// edit can never make a stored recipe invalid.
func (a *App) Update(ctx context.Context, id string, patch domain.RecipePatch) (*domain.Recipe, error) {
	current, err := a.editable(ctx, id)
	if err != nil {
		return nil, err
	}

	preview := applyPatch(*current, patch)
	if err := domain.ValidateRecipe(&preview); err != nil {
		return nil, err
	}

	updated, err := a.recipes.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	for i := range a.local {
		if a.local[i].ID == id {
			a.local[i] = *updated
			break
		}
	}
	a.mu.Unlock()

	a.log.Info("app: updated recipe %s", id)
	return updated, nil
}

// Delete removes a recipe the signed-in user owns.
func (a *App) Delete(ctx context.Context, id string) error {
	if _, err := a.editable(ctx, id); err != nil {
		return err
	}
	if err := a.recipes.Delete(ctx, id); err != nil {
		return err
	}

	a.mu.Lock()
	for i := range a.local {
		if a.local[i].ID == id {
			a.local = append(a.local[:i], a.local[i+1:]...)
			break
		}
	}
	a.mu.Unlock()

	a.log.Info("app: deleted recipe %s", id)
	return nil
}

// Mine lists the signed-in user's own recipes.
func (a *App) Mine(ctx context.Context) ([]domain.Recipe, error) {
	user := a.auth.Current()
	if user == nil {
		return nil, domain.ErrNotSignedIn
	}
	return a.recipes.ListByOwner(ctx, user.ID)
}

// editable resolves a recipe and enforces the mutation guards: a session
// must exist, external recipes are never editable, and only the owner may
// touch a local one. The id-prefix check runs before any fetch so an
// external id is rejected without a network call.
func (a *App) editable(ctx context.Context, id string) (*domain.Recipe, error) {
	user := a.auth.Current()
	if user == nil {
		return nil, domain.ErrNotSignedIn
	}
	if domain.IsExternalID(id) {
		return nil, domain.ErrExternalRecipe
	}

	r, err := a.Recipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.IsExternal() {
		return nil, domain.ErrExternalRecipe
	}
	if !r.Editable(user.ID) {
		return nil, domain.ErrNotOwner
	}
	return r, nil
}

// applyPatch merges a patch onto a copy of the recipe, mirroring the
// backend's PATCH semantics so validation sees the exact post-update
// document.
func applyPatch(r domain.Recipe, p domain.RecipePatch) domain.Recipe {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.ImageURL != nil {
		r.ImageURL = *p.ImageURL
	}
	if p.Cuisine != nil {
		r.Cuisine = *p.Cuisine
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.Difficulty != nil {
		r.Difficulty = *p.Difficulty
	}
	if p.PrepTime != nil {
		r.PrepTime = *p.PrepTime
	}
	if p.CookTime != nil {
		r.CookTime = *p.CookTime
	}
	if p.Servings != nil {
		r.Servings = *p.Servings
	}
	if p.Ingredients != nil {
		r.Ingredients = p.Ingredients
	}
	if p.Steps != nil {
		r.Steps = p.Steps
	}
	return r
}
