package domain

import "context"

// RecipeStore is the local mutable recipe resource. The reference
// implementation speaks REST to the mock backend; tests use an in-memory
// double.
type RecipeStore interface {
	// List returns recipes matching the filter. Implementations may push
	// categorical filters to the backend but must apply the free-text
	// query themselves (the backend has no full-text search).
	List(ctx context.Context, filter FilterState) ([]Recipe, error)
	// Get returns a recipe by id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Recipe, error)
	// Create persists a new recipe and returns it with id, owner, and
	// creation time assigned.
	Create(ctx context.Context, r *Recipe) (*Recipe, error)
	// Update applies a partial patch and returns the updated recipe.
	// ErrNotFound for an unknown id is a failure here, not a null result.
	Update(ctx context.Context, id string, patch RecipePatch) (*Recipe, error)
	// Delete removes a recipe by id.
	Delete(ctx context.Context, id string) error
	// ListByOwner returns the recipes created by the given user.
	ListByOwner(ctx context.Context, userID string) ([]Recipe, error)
}

// CatalogProvider is the external read-only recipe source. Everything it
// returns is already converted to the canonical Recipe shape with
// namespaced ids and OriginExternal set.
type CatalogProvider interface {
	// Random fetches one random catalog recipe.
	Random(ctx context.Context) (*Recipe, error)
	// Search fetches catalog recipes matching the term.
	Search(ctx context.Context, term string) ([]Recipe, error)
	// Categories lists the catalog's category names.
	Categories(ctx context.Context) ([]string, error)
	// ByCategory lists the catalog ids (already namespaced) of recipes in
	// a category. The category endpoint only returns summaries; full
	// recipes require a Lookup per id.
	ByCategory(ctx context.Context, category string) ([]string, error)
	// Lookup fetches a full catalog recipe by namespaced id, or
	// ErrNotFound.
	Lookup(ctx context.Context, id string) (*Recipe, error)
}

// FavoritesStore reads and replaces the shared favorites document. There
// is no per-field patch; toggles are read-modify-write over the whole
// index and therefore subject to a lost-update race across concurrent
// callers (see the favorites package).
type FavoritesStore interface {
	Index(ctx context.Context) (FavoritesIndex, error)
	ReplaceIndex(ctx context.Context, idx FavoritesIndex) error
}

// UserStore is the backend users resource.
type UserStore interface {
	// FindByCredentials returns the user matching email+password, or
	// ErrInvalidCredentials.
	FindByCredentials(ctx context.Context, email, password string) (*User, error)
	// FindByEmail returns the user with the given email, or ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*User, error)
	// Create registers a new user.
	Create(ctx context.Context, u *User, password string) (*User, error)
}

// CredentialStore is the opaque persistent slot holding the signed-in
// user between runs. Read once at startup to decide the initial
// authentication state.
type CredentialStore interface {
	Get() (*User, error)
	Set(u *User) error
	Clear() error
}
