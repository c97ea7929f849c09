package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hammamikhairi/cookbook/internal/domain"
)

// userRecord is a stored user. Unlike the client side, the server keeps
// the password; this is the mock json-server contract, not real auth.
type userRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// database is the whole backing document, one JSON file on disk.
type database struct {
	Recipes   []domain.Recipe       `json:"recipes"`
	Users     []userRecord          `json:"users"`
	Favorites domain.FavoritesIndex `json:"favorites"`
}

// Store is the file-backed document store: the database loads once on
// boot and every mutation rewrites the file. Plenty for a mock backend;
// all access goes through the mutex.
type Store struct {
	mu   sync.Mutex
	path string // empty means memory-only
	db   database
}

// NewStore loads the database file, or starts empty when the file does
// not exist yet. An empty path keeps the store memory-only (tests).
func NewStore(path string) (*Store, error) {
	s := &Store{path: path, db: database{Favorites: domain.FavoritesIndex{}}}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("server: read database: %w", err)
	}
	if err := json.Unmarshal(data, &s.db); err != nil {
		return nil, fmt.Errorf("server: parse database: %w", err)
	}
	if s.db.Favorites == nil {
		s.db.Favorites = domain.FavoritesIndex{}
	}
	return s, nil
}

// persist writes the database back to disk. Callers hold the mutex.
func (s *Store) persist() error {
	if s.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(&s.db, "", "  ")
	if err != nil {
		return fmt.Errorf("server: encode database: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("server: create database dir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("server: write database: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// recipeQuery are the supported list constraints, all ANDed.
type recipeQuery struct {
	q          string
	cuisine    string
	category   string
	difficulty string
	createdBy  string
}

// ListRecipes returns recipes matching the query.
func (s *Store) ListRecipes(query recipeQuery) []domain.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Recipe, 0, len(s.db.Recipes))
	for _, r := range s.db.Recipes {
		if matches(&r, query) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r *domain.Recipe, q recipeQuery) bool {
	if q.q != "" {
		needle := strings.ToLower(q.q)
		if !strings.Contains(strings.ToLower(r.Title), needle) &&
			!strings.Contains(strings.ToLower(r.Description), needle) {
			return false
		}
	}
	if q.cuisine != "" && !strings.EqualFold(r.Cuisine, q.cuisine) {
		return false
	}
	if q.category != "" && !strings.EqualFold(r.Category, q.category) {
		return false
	}
	if q.difficulty != "" && !strings.EqualFold(r.Difficulty, q.difficulty) {
		return false
	}
	if q.createdBy != "" && r.CreatedBy != q.createdBy {
		return false
	}
	return true
}

// GetRecipe returns a recipe by id.
func (s *Store) GetRecipe(id string) (*domain.Recipe, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.db.Recipes {
		if r.ID == id {
			return &r, true
		}
	}
	return nil, false
}

// AddRecipe stores a new recipe.
func (s *Store) AddRecipe(r domain.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.db.Recipes = append(s.db.Recipes, r)
	return s.persist()
}

// PatchRecipe merges raw JSON fields onto the stored recipe, the same
// shallow merge json-server performs.
func (s *Store) PatchRecipe(id string, patch map[string]json.RawMessage) (*domain.Recipe, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.db.Recipes {
		if s.db.Recipes[i].ID != id {
			continue
		}

		// Merge at the document level so unknown fields are ignored and
		// absent fields stay untouched.
		doc, err := json.Marshal(&s.db.Recipes[i])
		if err != nil {
			return nil, true, err
		}
		var merged map[string]json.RawMessage
		if err := json.Unmarshal(doc, &merged); err != nil {
			return nil, true, err
		}
		for k, v := range patch {
			if k == "id" {
				continue
			}
			merged[k] = v
		}
		remarshaled, err := json.Marshal(merged)
		if err != nil {
			return nil, true, err
		}
		var updated domain.Recipe
		if err := json.Unmarshal(remarshaled, &updated); err != nil {
			return nil, true, fmt.Errorf("server: invalid patch: %w", err)
		}

		s.db.Recipes[i] = updated
		r := updated
		return &r, true, s.persist()
	}
	return nil, false, nil
}

// DeleteRecipe removes a recipe by id.
func (s *Store) DeleteRecipe(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.db.Recipes {
		if s.db.Recipes[i].ID == id {
			s.db.Recipes = append(s.db.Recipes[:i], s.db.Recipes[i+1:]...)
			return true, s.persist()
		}
	}
	return false, nil
}

// ListUsers returns users matching the given constraints; empty values
// match everything.
func (s *Store) ListUsers(email, password string) []userRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]userRecord, 0)
	for _, u := range s.db.Users {
		if email != "" && !strings.EqualFold(u.Email, email) {
			continue
		}
		if password != "" && u.Password != password {
			continue
		}
		out = append(out, u)
	}
	return out
}

// AddUser stores a new user.
func (s *Store) AddUser(u userRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.db.Users = append(s.db.Users, u)
	return s.persist()
}

// Favorites returns a copy of the favorites document.
func (s *Store) Favorites() domain.FavoritesIndex {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(domain.FavoritesIndex, len(s.db.Favorites))
	for user, set := range s.db.Favorites {
		cp := make(map[string]bool, len(set))
		for id, v := range set {
			cp[id] = v
		}
		out[user] = cp
	}
	return out
}

// ReplaceFavorites swaps in a whole new favorites document.
func (s *Store) ReplaceFavorites(idx domain.FavoritesIndex) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx == nil {
		idx = domain.FavoritesIndex{}
	}
	s.db.Favorites = idx
	return s.persist()
}
