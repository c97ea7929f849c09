package domain

import (
	"errors"
	"strings"
	"testing"
)

func validTestRecipe() *Recipe {
	return &Recipe{
		Title:       "Test",
		Description: "desc",
		ImageURL:    "https://example.com/dish.jpg",
		Ingredients: []Ingredient{{Name: "salt", Quantity: "1 tsp"}},
		Steps:       []string{"cook"},
	}
}

func TestValidateRecipeOK(t *testing.T) {
	if err := ValidateRecipe(validTestRecipe()); err != nil {
		t.Fatalf("valid recipe rejected: %v", err)
	}
}

func TestValidateRecipeProblems(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Recipe)
		problem string
	}{
		{"missing title", func(r *Recipe) { r.Title = "  " }, "title"},
		{"missing description", func(r *Recipe) { r.Description = "" }, "description"},
		{"missing image", func(r *Recipe) { r.ImageURL = "" }, "image URL"},
		{"no ingredients", func(r *Recipe) { r.Ingredients = nil }, "ingredient"},
		{"unnamed ingredient", func(r *Recipe) { r.Ingredients = []Ingredient{{Quantity: "1"}} }, "no name"},
		{"no steps", func(r *Recipe) { r.Steps = nil }, "step"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validTestRecipe()
			tt.mutate(r)

			err := ValidateRecipe(r)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			found := false
			for _, p := range verr.Problems {
				if strings.Contains(p, tt.problem) {
					found = true
				}
			}
			if !found {
				t.Errorf("problems %v do not mention %q", verr.Problems, tt.problem)
			}
		})
	}
}

func TestValidateRecipeCollectsAllProblems(t *testing.T) {
	err := ValidateRecipe(&Recipe{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if len(verr.Problems) < 5 {
		t.Fatalf("got %d problems, want every missing field reported: %v", len(verr.Problems), verr.Problems)
	}
}

func TestValidateImageURL(t *testing.T) {
	tests := []struct {
		url string
		ok  bool
	}{
		{"https://example.com/dish.jpg", true},
		{"https://example.com/dish.webp", true},
		{"https://images.unsplash.com/photo-123", true},
		{"https://i.imgur.com/abc", true},
		{"", false},
		{"not a url", false},
		{"https://example.com/page.html", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			problem := ValidateImageURL(tt.url)
			if ok := problem == ""; ok != tt.ok {
				t.Errorf("ValidateImageURL(%q) = %q, want ok=%v", tt.url, problem, tt.ok)
			}
		})
	}
}
