package server

import (
	"time"

	"github.com/hammamikhairi/cookbook/internal/domain"
)

// Seed populates an empty store with a demo account and a couple of
// starter recipes so a fresh install has something to browse. A store
// with any existing users or recipes is left alone.
func (s *Store) Seed() error {
	s.mu.Lock()
	empty := len(s.db.Users) == 0 && len(s.db.Recipes) == 0
	s.mu.Unlock()
	if !empty {
		return nil
	}

	if err := s.AddUser(userRecord{
		ID:       "u_demo",
		Name:     "Demo Chef",
		Email:    "demo@cookbook.dev",
		Password: "demo1234",
	}); err != nil {
		return err
	}

	created := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	seedRecipes := []domain.Recipe{
		{
			ID:          "r_seed_carbonara",
			Title:       "Spaghetti Carbonara",
			Description: "Classic Roman pasta with eggs, pecorino, and guanciale.",
			ImageURL:    "https://images.unsplash.com/photo-1612874742237-6526221588e3",
			Cuisine:     "Italian",
			Category:    "Dinner",
			Difficulty:  "Medium",
			PrepTime:    10,
			CookTime:    20,
			Servings:    4,
			Ingredients: []domain.Ingredient{
				{Name: "spaghetti", Quantity: "400g"},
				{Name: "guanciale", Quantity: "150g"},
				{Name: "eggs", Quantity: "4"},
				{Name: "pecorino romano", Quantity: "100g"},
				{Name: "black pepper", Quantity: "to taste"},
			},
			Steps: []string{
				"Boil the spaghetti in salted water",
				"Crisp the guanciale in a cold pan brought to heat",
				"Whisk eggs with grated pecorino and pepper",
				"Toss the drained pasta with guanciale off the heat",
				"Fold in the egg mixture until glossy and serve",
			},
			CreatedBy: "u_demo",
			CreatedAt: created,
		},
		{
			ID:          "r_seed_shakshuka",
			Title:       "Shakshuka",
			Description: "Eggs poached in a spiced tomato and pepper sauce.",
			ImageURL:    "https://images.unsplash.com/photo-1590412200988-a436970781fa",
			Cuisine:     "Middle Eastern",
			Category:    "Breakfast",
			Difficulty:  "Easy",
			PrepTime:    10,
			CookTime:    25,
			Servings:    2,
			Ingredients: []domain.Ingredient{
				{Name: "eggs", Quantity: "4"},
				{Name: "canned tomatoes", Quantity: "400g"},
				{Name: "red bell pepper", Quantity: "1"},
				{Name: "onion", Quantity: "1"},
				{Name: "cumin", Quantity: "1 tsp"},
				{Name: "paprika", Quantity: "1 tsp"},
			},
			Steps: []string{
				"Soften the onion and pepper in olive oil",
				"Add spices and tomatoes, simmer until thick",
				"Make wells and crack in the eggs",
				"Cover and cook until the whites set",
				"Serve with crusty bread",
			},
			CreatedBy: "u_demo",
			CreatedAt: created.Add(24 * time.Hour),
		},
	}

	for _, r := range seedRecipes {
		if err := s.AddRecipe(r); err != nil {
			return err
		}
	}
	return nil
}
