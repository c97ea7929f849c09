package app

import (
	"context"

	"github.com/hammamikhairi/cookbook/internal/domain"
)

// Session passthroughs. The command layer talks only to App; auth is an
// internal collaborator.

// Current returns the signed-in user, or nil.
func (a *App) Current() *domain.User { return a.auth.Current() }

// SignedIn reports whether a user is signed in.
func (a *App) SignedIn() bool { return a.auth.SignedIn() }

// Login authenticates and establishes the session.
func (a *App) Login(ctx context.Context, email, password string) (*domain.User, error) {
	return a.auth.Login(ctx, email, password)
}

// Register creates an account and signs it in.
func (a *App) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	return a.auth.Register(ctx, name, email, password)
}

// Logout ends the session. The browse state stays; favorites and
// mutations simply become unavailable.
func (a *App) Logout() error { return a.auth.Logout() }

// ToggleFavorite flips the signed-in user's favorite mark on a recipe and
// returns the persisted state.
func (a *App) ToggleFavorite(ctx context.Context, recipeID string) (bool, error) {
	user := a.auth.Current()
	if user == nil {
		return false, domain.ErrNotSignedIn
	}
	return a.favs.Toggle(ctx, user.ID, recipeID)
}

// IsFavorite reports whether the signed-in user has favorited the recipe.
// Without a session every recipe reads as not favorited.
func (a *App) IsFavorite(ctx context.Context, recipeID string) (bool, error) {
	user := a.auth.Current()
	if user == nil {
		return false, nil
	}
	return a.favs.IsFavorite(ctx, user.ID, recipeID)
}

// FavoriteMarks returns the signed-in user's favorited ids as one
// membership set, for marking a whole listing from a single fetch.
// Without a session the set is empty.
func (a *App) FavoriteMarks(ctx context.Context) (map[string]bool, error) {
	user := a.auth.Current()
	if user == nil {
		return map[string]bool{}, nil
	}
	return a.favs.Marked(ctx, user.ID)
}

// Favorites lists the signed-in user's favorited recipes, resolved to
// full documents.
func (a *App) Favorites(ctx context.Context) ([]domain.Recipe, error) {
	user := a.auth.Current()
	if user == nil {
		return nil, domain.ErrNotSignedIn
	}
	return a.favs.List(ctx, user.ID)
}
