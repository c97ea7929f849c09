package mealdb

import (
	"fmt"
	"strings"
	"time"

	"github.com/hammamikhairi/cookbook/internal/domain"
)

// maxIngredients is TheMealDB's fixed column count: every meal document
// carries strIngredient1..20 / strMeasure1..20, blank when unused.
const maxIngredients = 20

// maxSteps caps the instruction split; TheMealDB instructions are one
// free-text blob and the tail sentences are usually serving notes.
const maxSteps = 8

// convertMeal is the single conversion point from TheMealDB's document
// shape to the canonical Recipe. Converted recipes are read-only: the id
// is namespaced, CreatedBy is the provider sentinel, and Origin is
// external. CreatedAt records materialization time — catalog recipes are
// never persisted, so they have no stored creation time.
func convertMeal(m meal) *domain.Recipe {
	var ingredients []domain.Ingredient
	for i := 1; i <= maxIngredients; i++ {
		name := strings.TrimSpace(m.field(fmt.Sprintf("strIngredient%d", i)))
		if name == "" {
			continue
		}
		quantity := strings.TrimSpace(m.field(fmt.Sprintf("strMeasure%d", i)))
		if quantity == "" {
			quantity = "1"
		}
		ingredients = append(ingredients, domain.Ingredient{Name: name, Quantity: quantity})
	}

	var steps []string
	for _, s := range strings.Split(m.field("strInstructions"), ".") {
		if s = strings.TrimSpace(s); s != "" {
			steps = append(steps, s)
		}
		if len(steps) == maxSteps {
			break
		}
	}

	cuisine := m.field("strArea")
	if cuisine == "" {
		cuisine = "International"
	}
	category := m.field("strCategory")
	if category == "" {
		category = "Dinner"
	}

	return &domain.Recipe{
		ID:          domain.ExternalIDPrefix + m.field("idMeal"),
		Title:       m.field("strMeal"),
		Description: fmt.Sprintf("%s %s dish", cuisine, category),
		ImageURL:    m.field("strMealThumb"),
		Cuisine:     cuisine,
		Category:    category,
		Difficulty:  "Medium",
		PrepTime:    15,
		CookTime:    30,
		Servings:    4,
		Ingredients: ingredients,
		Steps:       steps,
		CreatedBy:   domain.ExternalCreatedBy,
		CreatedAt:   time.Now().UTC(),
		Origin:      domain.OriginExternal,
	}
}
