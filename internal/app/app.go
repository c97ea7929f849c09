// Package app holds the explicit application state and orchestrates the
// browse pipeline: refresh sources, aggregate, filter, paginate. All
// eligibility and validation guards live here so the view layer stays
// thin.
package app

import (
	"context"
	"sync"

	"github.com/hammamikhairi/cookbook/internal/auth"
	"github.com/hammamikhairi/cookbook/internal/catalog"
	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/favorites"
	"github.com/hammamikhairi/cookbook/internal/logger"
	"github.com/hammamikhairi/cookbook/internal/mealdb"
)

// Harvester acquires the external half of the aggregate.
type Harvester interface {
	Harvest(ctx context.Context, target int) ([]domain.Recipe, error)
}

// Option configures the App.
type Option func(*App)

// WithPageSize overrides the recipes-per-page count.
func WithPageSize(n int) Option {
	return func(a *App) {
		if n > 0 {
			a.pageSize = n
		}
	}
}

// WithHarvestTarget overrides how many external recipes are harvested.
func WithHarvestTarget(n int) Option {
	return func(a *App) {
		if n > 0 {
			a.harvestTarget = n
		}
	}
}

// App is the application-state container: the signed-in session, both
// recipe sources, and the active filter and page. State mutations and the
// derived view go through the mutex so background refreshes and the
// command loop never race.
type App struct {
	auth    *auth.Service
	recipes domain.RecipeStore
	catalog domain.CatalogProvider
	harvest Harvester
	favs    *favorites.Engine
	log     *logger.Logger

	pageSize      int
	harvestTarget int

	mu       sync.Mutex
	local    []domain.Recipe
	external []domain.Recipe
	filter   domain.FilterState
	page     int
}

// New wires the application together.
func New(authSvc *auth.Service, recipes domain.RecipeStore, provider domain.CatalogProvider, harvest Harvester, favs *favorites.Engine, log *logger.Logger, opts ...Option) *App {
	a := &App{
		auth:          authSvc,
		recipes:       recipes,
		catalog:       provider,
		harvest:       harvest,
		favs:          favs,
		log:           log,
		pageSize:      catalog.DefaultPageSize,
		harvestTarget: mealdb.DefaultHarvestTarget,
		page:          1,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// View is everything the display needs to render the current page.
type View struct {
	Page    catalog.Page
	Window  catalog.Window
	Filter  domain.FilterState
	Matched int // recipes matching the filter, across all pages
	Total   int // recipes in the aggregate before filtering
}

// Refresh reloads the local store and, on first call, harvests the
// external catalog. A harvest failure degrades to a local-only aggregate
// rather than failing the refresh.
func (a *App) Refresh(ctx context.Context) error {
	local, err := a.recipes.List(ctx, domain.FilterState{})
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.local = local
	needHarvest := a.external == nil
	a.mu.Unlock()

	if needHarvest {
		a.RefreshCatalog(ctx)
	}
	return nil
}

// RefreshCatalog re-harvests the external catalog. Failures are logged;
// the previous harvest (possibly empty) stays in place.
func (a *App) RefreshCatalog(ctx context.Context) {
	external, err := a.harvest.Harvest(ctx, a.harvestTarget)
	if err != nil {
		a.log.Warn("app: catalog harvest failed, browsing local recipes only: %v", err)
		external = []domain.Recipe{}
	}

	a.mu.Lock()
	a.external = external
	a.mu.Unlock()
}

// CurrentView runs the browse pipeline over the cached sources. The page
// number is re-clamped on every call because filter edits and deletions
// shrink the result set underneath it.
func (a *App) CurrentView() View {
	a.mu.Lock()
	defer a.mu.Unlock()

	aggregate := catalog.Aggregate(a.local, a.external)
	filtered := catalog.Filter(aggregate, a.filter)

	pg := catalog.Paginate(filtered, a.page, a.pageSize)
	a.page = catalog.ClampPage(a.page, pg.TotalPages)
	if a.page != pg.Number {
		pg = catalog.Paginate(filtered, a.page, a.pageSize)
	}

	return View{
		Page:    pg,
		Window:  catalog.PageWindow(pg.Number, pg.TotalPages),
		Filter:  a.filter,
		Matched: len(filtered),
		Total:   len(aggregate),
	}
}

// Filter returns the active filter state.
func (a *App) Filter() domain.FilterState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.filter
}

// SetFilter replaces the whole filter and resets to the first page.
func (a *App) SetFilter(f domain.FilterState) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.filter = f
	a.page = 1
}

// SetQuery updates the free-text query, keeping the categorical
// constraints, and resets to the first page.
func (a *App) SetQuery(q string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.filter.Query = q
	a.page = 1
}

// ClearFilter drops every constraint and resets to the first page.
func (a *App) ClearFilter() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.filter = domain.FilterState{}
	a.page = 1
}

// GoToPage jumps to a page, clamped to the current result set.
func (a *App) GoToPage(n int) {
	v := a.CurrentView()
	a.mu.Lock()
	defer a.mu.Unlock()
	a.page = catalog.ClampPage(n, v.Page.TotalPages)
}

// NextPage advances one page, clamped.
func (a *App) NextPage() {
	v := a.CurrentView()
	a.GoToPage(v.Page.Number + 1)
}

// PrevPage goes back one page, clamped.
func (a *App) PrevPage() {
	v := a.CurrentView()
	a.GoToPage(v.Page.Number - 1)
}

// Recipe resolves a recipe by id: the cached aggregate first, then the
// owning source.
func (a *App) Recipe(ctx context.Context, id string) (*domain.Recipe, error) {
	a.mu.Lock()
	for _, r := range catalog.Aggregate(a.local, a.external) {
		if r.ID == id {
			a.mu.Unlock()
			return &r, nil
		}
	}
	a.mu.Unlock()

	if domain.IsExternalID(id) {
		return a.catalog.Lookup(ctx, id)
	}
	return a.recipes.Get(ctx, id)
}

// Discover searches the external catalog directly, bypassing the local
// aggregate.
func (a *App) Discover(ctx context.Context, term string) ([]domain.Recipe, error) {
	return a.catalog.Search(ctx, term)
}
