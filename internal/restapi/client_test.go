package restapi

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
	"github.com/hammamikhairi/cookbook/internal/server"
)

// The client is exercised against the real mock backend router, not
// canned responses, so both sides of the resource contract are covered
// at once.
func testClient(t *testing.T) *Client {
	t.Helper()
	store, err := server.NewStore("")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	log := logger.New(logger.LevelOff, nil)
	srv := httptest.NewServer(server.NewServer(store, log).Router())
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, log)
}

func sample(title string) *domain.Recipe {
	return &domain.Recipe{
		Title:       title,
		Description: "test description",
		ImageURL:    "https://example.com/pic.jpg",
		Cuisine:     "Italian",
		Category:    "Dinner",
		Difficulty:  "Easy",
		PrepTime:    5,
		CookTime:    10,
		Servings:    2,
		Ingredients: []domain.Ingredient{{Name: "salt", Quantity: "1 tsp"}},
		Steps:       []string{"cook"},
		CreatedBy:   "u_1",
	}
}

func TestCreateAssignsLocalID(t *testing.T) {
	c := testClient(t)
	ctx := context.Background()

	created, err := c.Create(ctx, sample("Pasta"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !strings.HasPrefix(created.ID, "r_") {
		t.Fatalf("id = %q, want r_ prefix", created.ID)
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("CreatedAt not assigned")
	}
	if created.Origin != domain.OriginLocal {
		t.Fatal("Origin not marked local")
	}
}

func TestGetRoundTrip(t *testing.T) {
	c := testClient(t)
	ctx := context.Background()

	created, err := c.Create(ctx, sample("Pasta"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := c.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "Pasta" || len(got.Ingredients) != 1 {
		t.Fatalf("round-trip mangled recipe: %+v", got)
	}
}

func TestGetMissingIsNotFound(t *testing.T) {
	c := testClient(t)

	_, err := c.Get(context.Background(), "r_missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListAppliesQueryClientSide(t *testing.T) {
	c := testClient(t)
	ctx := context.Background()

	if _, err := c.Create(ctx, sample("Spaghetti Carbonara")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := c.Create(ctx, sample("Tacos")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := c.List(ctx, domain.FilterState{Query: "SPAGHETTI"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Spaghetti Carbonara" {
		t.Fatalf("query match: got %v", got)
	}
}

func TestListPushesCategoricalFilters(t *testing.T) {
	c := testClient(t)
	ctx := context.Background()

	mexican := sample("Tacos")
	mexican.Cuisine = "Mexican"
	if _, err := c.Create(ctx, mexican); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := c.Create(ctx, sample("Pasta")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := c.List(ctx, domain.FilterState{Cuisine: "Mexican"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Tacos" {
		t.Fatalf("cuisine filter: got %v", got)
	}
}

func TestUpdatePatchesOnlyGivenFields(t *testing.T) {
	c := testClient(t)
	ctx := context.Background()

	created, err := c.Create(ctx, sample("Original"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	title := "Renamed"
	updated, err := c.Update(ctx, created.ID, domain.RecipePatch{Title: &title})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Fatalf("title = %q", updated.Title)
	}
	if updated.Description != created.Description || updated.Cuisine != created.Cuisine {
		t.Fatalf("patch clobbered untouched fields: %+v", updated)
	}
}

func TestUpdateMissingIsNotFound(t *testing.T) {
	c := testClient(t)

	title := "nope"
	_, err := c.Update(context.Background(), "r_missing", domain.RecipePatch{Title: &title})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteThenGone(t *testing.T) {
	c := testClient(t)
	ctx := context.Background()

	created, err := c.Create(ctx, sample("Doomed"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := c.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err after delete = %v, want ErrNotFound", err)
	}
}

func TestListByOwner(t *testing.T) {
	c := testClient(t)
	ctx := context.Background()

	mine := sample("Mine")
	if _, err := c.Create(ctx, mine); err != nil {
		t.Fatalf("Create: %v", err)
	}
	other := sample("Theirs")
	other.CreatedBy = "u_2"
	if _, err := c.Create(ctx, other); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := c.ListByOwner(ctx, "u_1")
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Mine" {
		t.Fatalf("got %v, want only u_1's", got)
	}
}

func TestUsersCreateAndAuthenticate(t *testing.T) {
	c := testClient(t)
	ctx := context.Background()

	u, err := c.Users().Create(ctx, &domain.User{Name: "Alice", Email: "alice@example.com"}, "hunter2")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if !strings.HasPrefix(u.ID, "u_") {
		t.Fatalf("user id = %q, want u_ prefix", u.ID)
	}

	found, err := c.Users().FindByCredentials(ctx, "alice@example.com", "hunter2")
	if err != nil {
		t.Fatalf("FindByCredentials: %v", err)
	}
	if found.ID != u.ID {
		t.Fatalf("found %q, want %q", found.ID, u.ID)
	}

	if _, err := c.Users().FindByCredentials(ctx, "alice@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v, want ErrInvalidCredentials", err)
	}

	if _, err := c.Users().FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown email err = %v, want ErrNotFound", err)
	}
}

func TestFavoritesDocumentRoundTrip(t *testing.T) {
	c := testClient(t)
	ctx := context.Background()

	idx, err := c.Index(ctx)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if len(idx) != 0 {
		t.Fatalf("fresh index = %v, want empty", idx)
	}

	idx.Set("u_1", "r_1", true)
	if err := c.ReplaceIndex(ctx, idx); err != nil {
		t.Fatalf("ReplaceIndex: %v", err)
	}

	again, err := c.Index(ctx)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if !again.Has("u_1", "r_1") {
		t.Fatalf("favorites lost: %v", again)
	}
}

func TestPingUnreachableBackend(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	c := NewClient("http://127.0.0.1:1", log)

	if err := c.Ping(context.Background()); err == nil {
		t.Fatal("expected error pinging unreachable backend")
	}
}
