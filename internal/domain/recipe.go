// Package domain defines the core types and interfaces for the recipe
// catalog. All other packages depend on domain; domain depends on nothing.
package domain

import (
	"strings"
	"time"
)

// Origin marks which source a recipe came from. Local recipes live in the
// mutable backend store and can be edited or deleted by their owner.
// External recipes are materialized on demand from the third-party catalog
// and are always read-only.
type Origin int

const (
	// OriginLocal — owned by the application's own resource store.
	OriginLocal Origin = iota
	// OriginExternal — sourced read-only from the third-party catalog.
	OriginExternal
)

// ExternalIDPrefix namespaces catalog-provider ids so they can never
// collide with locally generated ones. The prefix is the wire-level
// convention; Origin is the structural signal eligibility checks use.
const ExternalIDPrefix = "meal_"

// ExternalCreatedBy is the sentinel owner recorded on converted catalog
// recipes in place of a real user id.
const ExternalCreatedBy = "mealdb"

// Recipe is the one canonical recipe shape. Provider-specific field names
// never leak past the conversion boundary in the mealdb package.
type Recipe struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	ImageURL    string       `json:"imageUrl"`
	Cuisine     string       `json:"cuisine"`
	Category    string       `json:"category"`
	Difficulty  string       `json:"difficulty"`
	PrepTime    int          `json:"prepTime"`
	CookTime    int          `json:"cookTime"`
	Servings    int          `json:"servings"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []string     `json:"steps"`
	CreatedBy   string       `json:"createdBy"`
	CreatedAt   time.Time    `json:"createdAt"`

	// Origin is derived at the source boundary and never serialized.
	Origin Origin `json:"-"`
}

// Ingredient is a single ingredient with a free-text quantity
// ("2 cups", "1 tbsp", "a pinch").
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// IsExternal reports whether the recipe came from the third-party catalog.
// Falls back to the id prefix for recipes that crossed a boundary which
// didn't set Origin (e.g. a raw backend document).
func (r *Recipe) IsExternal() bool {
	return r.Origin == OriginExternal || IsExternalID(r.ID)
}

// IsExternalID reports whether a bare id belongs to the external catalog
// namespace.
func IsExternalID(id string) bool {
	return strings.HasPrefix(id, ExternalIDPrefix)
}

// Editable reports whether the given user may edit or delete this recipe.
// External recipes are never editable, even if CreatedBy happens to match.
func (r *Recipe) Editable(userID string) bool {
	if r.IsExternal() {
		return false
	}
	return userID != "" && r.CreatedBy == userID
}

// RecipePatch is a partial recipe update. Nil fields are left unchanged
// by the backend's PATCH merge.
type RecipePatch struct {
	Title       *string      `json:"title,omitempty"`
	Description *string      `json:"description,omitempty"`
	ImageURL    *string      `json:"imageUrl,omitempty"`
	Cuisine     *string      `json:"cuisine,omitempty"`
	Category    *string      `json:"category,omitempty"`
	Difficulty  *string      `json:"difficulty,omitempty"`
	PrepTime    *int         `json:"prepTime,omitempty"`
	CookTime    *int         `json:"cookTime,omitempty"`
	Servings    *int         `json:"servings,omitempty"`
	Ingredients []Ingredient `json:"ingredients,omitempty"`
	Steps       []string     `json:"steps,omitempty"`
}

// FilterState holds the active search and categorical constraints.
// Empty or whitespace-only values mean "no constraint".
type FilterState struct {
	Query      string
	Cuisine    string
	Category   string
	Difficulty string
}

// IsZero reports whether no constraint is active.
func (f FilterState) IsZero() bool {
	return strings.TrimSpace(f.Query) == "" &&
		strings.TrimSpace(f.Cuisine) == "" &&
		strings.TrimSpace(f.Category) == "" &&
		strings.TrimSpace(f.Difficulty) == ""
}

// Suggested values for the create/edit forms and filter menus. The store
// does not enforce these; free-text values round-trip fine.
var (
	Cuisines     = []string{"Italian", "Indian", "Mexican", "Chinese", "American", "Thai", "French"}
	Categories   = []string{"Breakfast", "Lunch", "Dinner", "Dessert", "Snack"}
	Difficulties = []string{"Easy", "Medium", "Hard"}
)
