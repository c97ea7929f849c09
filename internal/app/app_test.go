package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/hammamikhairi/cookbook/internal/auth"
	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/favorites"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// memStore is an in-memory RecipeStore that mimics the backend's list
// semantics: categorical filters applied, free-text query ignored.
type memStore struct {
	mu      sync.Mutex
	recipes []domain.Recipe
	nextID  int
	creates int
}

var _ domain.RecipeStore = (*memStore)(nil)

func (m *memStore) List(ctx context.Context, f domain.FilterState) ([]domain.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Recipe, len(m.recipes))
	copy(out, m.recipes)
	return out, nil
}

func (m *memStore) Get(ctx context.Context, id string) (*domain.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.recipes {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memStore) Create(ctx context.Context, r *domain.Recipe) (*domain.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	m.nextID++
	created := *r
	created.ID = fmt.Sprintf("r_%d", m.nextID)
	m.recipes = append(m.recipes, created)
	return &created, nil
}

func (m *memStore) Update(ctx context.Context, id string, p domain.RecipePatch) (*domain.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.recipes {
		if m.recipes[i].ID == id {
			m.recipes[i] = applyPatch(m.recipes[i], p)
			r := m.recipes[i]
			return &r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.recipes {
		if m.recipes[i].ID == id {
			m.recipes = append(m.recipes[:i], m.recipes[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memStore) ListByOwner(ctx context.Context, userID string) ([]domain.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Recipe
	for _, r := range m.recipes {
		if r.CreatedBy == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type stubCatalog struct {
	recipes map[string]domain.Recipe
}

var _ domain.CatalogProvider = (*stubCatalog)(nil)

func (s *stubCatalog) Random(ctx context.Context) (*domain.Recipe, error) {
	return nil, errors.New("not used")
}

func (s *stubCatalog) Search(ctx context.Context, term string) ([]domain.Recipe, error) {
	var out []domain.Recipe
	for _, r := range s.recipes {
		out = append(out, r)
	}
	return out, nil
}

func (s *stubCatalog) Categories(ctx context.Context) ([]string, error) { return nil, nil }

func (s *stubCatalog) ByCategory(ctx context.Context, c string) ([]string, error) { return nil, nil }

func (s *stubCatalog) Lookup(ctx context.Context, id string) (*domain.Recipe, error) {
	r, ok := s.recipes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

type stubHarvester struct {
	recipes []domain.Recipe
	err     error
}

func (s *stubHarvester) Harvest(ctx context.Context, target int) ([]domain.Recipe, error) {
	return s.recipes, s.err
}

type memFavStore struct {
	idx domain.FavoritesIndex
}

func (m *memFavStore) Index(ctx context.Context) (domain.FavoritesIndex, error) {
	if m.idx == nil {
		m.idx = make(domain.FavoritesIndex)
	}
	return m.idx, nil
}

func (m *memFavStore) ReplaceIndex(ctx context.Context, idx domain.FavoritesIndex) error {
	m.idx = idx
	return nil
}

type memUsers struct {
	byEmail map[string]domain.User
	pass    map[string]string
}

func (m *memUsers) FindByCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	u, ok := m.byEmail[email]
	if !ok || m.pass[email] != password {
		return nil, domain.ErrInvalidCredentials
	}
	return &u, nil
}

func (m *memUsers) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) Create(ctx context.Context, u *domain.User, password string) (*domain.User, error) {
	created := domain.User{ID: "u_" + u.Name, Name: u.Name, Email: u.Email}
	m.byEmail[u.Email] = created
	m.pass[u.Email] = password
	return &created, nil
}

type fixture struct {
	app     *App
	store   *memStore
	catalog *stubCatalog
	harvest *stubHarvester
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)

	store := &memStore{}
	cat := &stubCatalog{recipes: map[string]domain.Recipe{}}
	harv := &stubHarvester{}

	creds, err := auth.NewFileCredentials(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("NewFileCredentials: %v", err)
	}
	users := &memUsers{
		byEmail: map[string]domain.User{
			"alice@example.com": {ID: "u_alice", Name: "Alice", Email: "alice@example.com"},
		},
		pass: map[string]string{"alice@example.com": "hunter2"},
	}
	authSvc := auth.NewService(users, creds, log)
	favs := favorites.NewEngine(&memFavStore{}, store, cat, log)

	return &fixture{
		app:     New(authSvc, store, cat, harv, favs, log, opts...),
		store:   store,
		catalog: cat,
		harvest: harv,
	}
}

func (f *fixture) signIn(t *testing.T) {
	t.Helper()
	if _, err := f.app.Login(context.Background(), "alice@example.com", "hunter2"); err != nil {
		t.Fatalf("Login: %v", err)
	}
}

func validRecipe(title string) *domain.Recipe {
	return &domain.Recipe{
		Title:       title,
		Description: "a test dish",
		ImageURL:    "https://example.com/dish.jpg",
		Cuisine:     "Italian",
		Category:    "Dinner",
		Difficulty:  "Easy",
		Ingredients: []domain.Ingredient{{Name: "salt", Quantity: "1 tsp"}},
		Steps:       []string{"mix", "serve"},
	}
}

func TestCreateAppearsFirst(t *testing.T) {
	f := newFixture(t)
	f.signIn(t)
	ctx := context.Background()

	if _, err := f.app.Create(ctx, validRecipe("older")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	created, err := f.app.Create(ctx, validRecipe("newest"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	v := f.app.CurrentView()
	if len(v.Page.Items) == 0 || v.Page.Items[0].ID != created.ID {
		t.Fatalf("newest recipe not first in view: %+v", v.Page.Items)
	}
	if created.CreatedBy != "u_alice" {
		t.Errorf("CreatedBy = %q, want u_alice", created.CreatedBy)
	}
}

func TestCreateInvalidRejectedBeforeStore(t *testing.T) {
	f := newFixture(t)
	f.signIn(t)

	r := validRecipe("no ingredients")
	r.Ingredients = nil

	_, err := f.app.Create(context.Background(), r)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if f.store.creates != 0 {
		t.Fatal("invalid recipe reached the store")
	}
}

func TestCreateRequiresSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.app.Create(context.Background(), validRecipe("anon"))
	if !errors.Is(err, domain.ErrNotSignedIn) {
		t.Fatalf("err = %v, want ErrNotSignedIn", err)
	}
}

func TestExternalRecipeNeverEditable(t *testing.T) {
	f := newFixture(t)
	f.signIn(t)
	ctx := context.Background()

	// CreatedBy matches the signed-in user, which must not matter.
	f.catalog.recipes["meal_7"] = domain.Recipe{
		ID: "meal_7", Title: "Catalog Dish", CreatedBy: "u_alice",
		Origin: domain.OriginExternal,
	}

	title := "hijack"
	if _, err := f.app.Update(ctx, "meal_7", domain.RecipePatch{Title: &title}); !errors.Is(err, domain.ErrExternalRecipe) {
		t.Errorf("Update err = %v, want ErrExternalRecipe", err)
	}
	if err := f.app.Delete(ctx, "meal_7"); !errors.Is(err, domain.ErrExternalRecipe) {
		t.Errorf("Delete err = %v, want ErrExternalRecipe", err)
	}
}

func TestUpdateRequiresOwnership(t *testing.T) {
	f := newFixture(t)
	f.signIn(t)
	ctx := context.Background()

	f.store.recipes = append(f.store.recipes, domain.Recipe{
		ID: "r_other", Title: "Someone Else's", Description: "d",
		ImageURL:    "https://example.com/x.png",
		Ingredients: []domain.Ingredient{{Name: "x"}}, Steps: []string{"s"},
		CreatedBy: "u_bob",
	})

	title := "mine now"
	if _, err := f.app.Update(ctx, "r_other", domain.RecipePatch{Title: &title}); !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
}

func TestUpdateValidatesPatchedResult(t *testing.T) {
	f := newFixture(t)
	f.signIn(t)
	ctx := context.Background()

	created, err := f.app.Create(ctx, validRecipe("sound"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	empty := ""
	_, err = f.app.Update(ctx, created.ID, domain.RecipePatch{Title: &empty})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestDeleteRemovesFromView(t *testing.T) {
	f := newFixture(t)
	f.signIn(t)
	ctx := context.Background()

	created, err := f.app.Create(ctx, validRecipe("doomed"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := f.app.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	v := f.app.CurrentView()
	for _, r := range v.Page.Items {
		if r.ID == created.ID {
			t.Fatal("deleted recipe still in view")
		}
	}
}

func TestFilterChangeResetsPage(t *testing.T) {
	f := newFixture(t, WithPageSize(2))
	f.signIn(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := f.app.Create(ctx, validRecipe(fmt.Sprintf("dish %d", i))); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	f.app.GoToPage(3)
	if v := f.app.CurrentView(); v.Page.Number != 3 {
		t.Fatalf("page = %d, want 3", v.Page.Number)
	}

	f.app.SetQuery("dish")
	if v := f.app.CurrentView(); v.Page.Number != 1 {
		t.Fatalf("page after filter change = %d, want 1", v.Page.Number)
	}
}

func TestPageClampsWhenResultsShrink(t *testing.T) {
	f := newFixture(t, WithPageSize(2))
	f.signIn(t)
	ctx := context.Background()

	var last *domain.Recipe
	for i := 0; i < 5; i++ {
		r, err := f.app.Create(ctx, validRecipe(fmt.Sprintf("dish %d", i)))
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		last = r
	}

	f.app.GoToPage(3)
	if err := f.app.Delete(ctx, last.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	v := f.app.CurrentView()
	if v.Page.Number != 2 || len(v.Page.Items) == 0 {
		t.Fatalf("page = %d with %d items, want clamped non-empty page 2", v.Page.Number, len(v.Page.Items))
	}
}

func TestRefreshMergesHarvest(t *testing.T) {
	f := newFixture(t)
	f.harvest.recipes = []domain.Recipe{
		{ID: "meal_1", Title: "Harvested", Origin: domain.OriginExternal},
	}
	f.store.recipes = []domain.Recipe{{ID: "r_1", Title: "Local"}}

	if err := f.app.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	v := f.app.CurrentView()
	if v.Total != 2 {
		t.Fatalf("aggregate total = %d, want 2", v.Total)
	}
	// Local recipes come before external ones.
	if v.Page.Items[0].ID != "r_1" || v.Page.Items[1].ID != "meal_1" {
		t.Fatalf("order = %v", v.Page.Items)
	}
}

func TestRefreshSurvivesHarvestFailure(t *testing.T) {
	f := newFixture(t)
	f.harvest.err = errors.New("mealdb down")
	f.store.recipes = []domain.Recipe{{ID: "r_1", Title: "Local"}}

	if err := f.app.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if v := f.app.CurrentView(); v.Total != 1 {
		t.Fatalf("total = %d, want local-only 1", v.Total)
	}
}

func TestToggleFavoriteRequiresSession(t *testing.T) {
	f := newFixture(t)

	if _, err := f.app.ToggleFavorite(context.Background(), "r_1"); !errors.Is(err, domain.ErrNotSignedIn) {
		t.Fatalf("err = %v, want ErrNotSignedIn", err)
	}
	fav, err := f.app.IsFavorite(context.Background(), "r_1")
	if err != nil || fav {
		t.Fatalf("IsFavorite without session = (%v, %v), want (false, nil)", fav, err)
	}
}

func TestFavoriteRoundTripThroughApp(t *testing.T) {
	f := newFixture(t)
	f.signIn(t)
	ctx := context.Background()

	created, err := f.app.Create(ctx, validRecipe("favorite me"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	on, err := f.app.ToggleFavorite(ctx, created.ID)
	if err != nil || !on {
		t.Fatalf("ToggleFavorite = (%v, %v), want (true, nil)", on, err)
	}

	favs, err := f.app.Favorites(ctx)
	if err != nil {
		t.Fatalf("Favorites: %v", err)
	}
	if len(favs) != 1 || favs[0].ID != created.ID {
		t.Fatalf("favorites = %v, want [%s]", favs, created.ID)
	}
}

func TestFavoriteMarksCoverWholeListing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Without a session every row reads as unmarked, without an error.
	marks, err := f.app.FavoriteMarks(ctx)
	if err != nil || len(marks) != 0 {
		t.Fatalf("FavoriteMarks without session = (%v, %v), want (empty, nil)", marks, err)
	}

	f.signIn(t)
	first, err := f.app.Create(ctx, validRecipe("marked"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := f.app.Create(ctx, validRecipe("unmarked"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.app.ToggleFavorite(ctx, first.ID); err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}

	marks, err = f.app.FavoriteMarks(ctx)
	if err != nil {
		t.Fatalf("FavoriteMarks: %v", err)
	}
	if !marks[first.ID] || marks[second.ID] {
		t.Fatalf("marks = %v, want only %s", marks, first.ID)
	}
}

func TestMineListsOwnRecipesOnly(t *testing.T) {
	f := newFixture(t)
	f.signIn(t)
	ctx := context.Background()

	f.store.recipes = append(f.store.recipes, domain.Recipe{ID: "r_bob", CreatedBy: "u_bob"})
	if _, err := f.app.Create(ctx, validRecipe("mine")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	mine, err := f.app.Mine(ctx)
	if err != nil {
		t.Fatalf("Mine: %v", err)
	}
	if len(mine) != 1 || mine[0].CreatedBy != "u_alice" {
		t.Fatalf("mine = %v, want only u_alice's", mine)
	}
}
