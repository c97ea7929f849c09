package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hammamikhairi/cookbook/internal/domain"
)

// Guided multi-step input. While a form is active the run loop routes
// every line here instead of the parser. "cancel" aborts (handled by the
// caller), "." finishes a list step, "-" keeps the current value when
// editing.

const (
	listEnd     = "."
	keepCurrent = "-"
)

type promptStep struct {
	key   string
	label string
	list  bool
}

type form struct {
	steps  []promptStep
	idx    int
	values map[string]string
	lists  map[string][]string
	submit func(ctx context.Context, f *form)
}

func (a *cliApp) startForm(f *form) {
	f.values = make(map[string]string)
	f.lists = make(map[string][]string)
	a.form = f
	a.promptCurrent()
}

func (a *cliApp) promptCurrent() {
	step := a.form.steps[a.form.idx]
	a.ui.PrintHint(step.label)
}

func (a *cliApp) feedForm(ctx context.Context, input string) {
	f := a.form
	step := f.steps[f.idx]

	if step.list {
		switch input {
		case listEnd:
			// fall through to advance
		case keepCurrent:
			if len(f.lists[step.key]) == 0 {
				f.values[step.key] = keepCurrent
			}
		default:
			f.lists[step.key] = append(f.lists[step.key], input)
			return
		}
	} else {
		f.values[step.key] = input
	}

	f.idx++
	if f.idx < len(f.steps) {
		a.promptCurrent()
		return
	}

	a.form = nil
	f.submit(ctx, f)
}

// value returns the entered value, or fallback when the user kept the
// current one.
func (f *form) value(key, fallback string) string {
	v := f.values[key]
	if v == "" || v == keepCurrent {
		return fallback
	}
	return v
}

func (f *form) intValue(key string, fallback int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(f.values[key])); err == nil && n >= 0 {
		return n
	}
	return fallback
}

// parseIngredients turns "name: quantity" lines into ingredients; a line
// without a colon gets quantity "1".
func parseIngredients(lines []string) []domain.Ingredient {
	out := make([]domain.Ingredient, 0, len(lines))
	for _, l := range lines {
		name, quantity := l, "1"
		if i := strings.IndexByte(l, ':'); i >= 0 {
			name = strings.TrimSpace(l[:i])
			quantity = strings.TrimSpace(l[i+1:])
		}
		if name == "" {
			continue
		}
		out = append(out, domain.Ingredient{Name: name, Quantity: quantity})
	}
	return out
}

// ── Session forms ────────────────────────────────────────────────

func (a *cliApp) startLoginForm() {
	if a.app.SignedIn() {
		a.ui.PrintHint("Already signed in. 'logout' first to switch accounts.")
		return
	}
	a.startForm(&form{
		steps: []promptStep{
			{key: "email", label: "Email:"},
			{key: "password", label: "Password:"},
		},
		submit: func(ctx context.Context, f *form) {
			u, err := a.app.Login(ctx, f.values["email"], f.values["password"])
			if err != nil {
				if errors.Is(err, domain.ErrInvalidCredentials) {
					a.ui.PrintError("Invalid email or password.")
				} else {
					a.ui.PrintError(fmt.Sprintf("Login failed: %v", err))
				}
				return
			}
			a.ui.PrintLine(fmt.Sprintf("Welcome back, %s!", u.Name))
		},
	})
}

func (a *cliApp) startRegisterForm() {
	if a.app.SignedIn() {
		a.ui.PrintHint("Already signed in. 'logout' first to create another account.")
		return
	}
	a.startForm(&form{
		steps: []promptStep{
			{key: "name", label: "Name:"},
			{key: "email", label: "Email:"},
			{key: "password", label: "Password:"},
		},
		submit: func(ctx context.Context, f *form) {
			u, err := a.app.Register(ctx, f.values["name"], f.values["email"], f.values["password"])
			if err != nil {
				if errors.Is(err, domain.ErrEmailTaken) {
					a.ui.PrintError("That email is already registered. Try 'login'.")
				} else {
					a.ui.PrintError(fmt.Sprintf("Registration failed: %v", err))
				}
				return
			}
			a.ui.PrintLine(fmt.Sprintf("Welcome, %s! You're signed in.", u.Name))
		},
	})
}

// ── Recipe forms ─────────────────────────────────────────────────

func (a *cliApp) startAddForm() {
	if !a.app.SignedIn() {
		a.ui.PrintHint("Sign in first ('login') to create recipes.")
		return
	}
	a.ui.PrintHeading("New recipe (type 'cancel' to abort)")
	a.startForm(&form{
		steps: []promptStep{
			{key: "title", label: "Title:"},
			{key: "description", label: "Description:"},
			{key: "imageUrl", label: "Image URL:"},
			{key: "cuisine", label: "Cuisine (e.g. " + strings.Join(domain.Cuisines[:3], ", ") + "):"},
			{key: "category", label: "Category (" + strings.Join(domain.Categories, ", ") + "):"},
			{key: "difficulty", label: "Difficulty (" + strings.Join(domain.Difficulties, ", ") + "):"},
			{key: "prepTime", label: "Prep minutes:"},
			{key: "cookTime", label: "Cook minutes:"},
			{key: "servings", label: "Servings:"},
			{key: "ingredients", label: "Ingredients, one per line as 'name: quantity' ('.' to finish):", list: true},
			{key: "steps", label: "Steps, one per line ('.' to finish):", list: true},
		},
		submit: func(ctx context.Context, f *form) {
			r := &domain.Recipe{
				Title:       f.values["title"],
				Description: f.values["description"],
				ImageURL:    f.values["imageUrl"],
				Cuisine:     f.value("cuisine", "International"),
				Category:    f.value("category", "Dinner"),
				Difficulty:  f.value("difficulty", "Medium"),
				PrepTime:    f.intValue("prepTime", 0),
				CookTime:    f.intValue("cookTime", 0),
				Servings:    f.intValue("servings", 1),
				Ingredients: parseIngredients(f.lists["ingredients"]),
				Steps:       f.lists["steps"],
			}

			created, err := a.app.Create(ctx, r)
			if err != nil {
				a.printMutationError(err, "Creating")
				return
			}
			a.ui.PrintLine(fmt.Sprintf("Created %q (%s).", created.Title, created.ID))
			a.showList(ctx)
		},
	})
}

func (a *cliApp) startEditForm(ctx context.Context, ref string) {
	id, ok := a.resolveID(ref)
	if !ok {
		a.ui.PrintError(fmt.Sprintf("No recipe %q on this page.", ref))
		return
	}

	current, err := a.app.Recipe(ctx, id)
	if err != nil {
		a.printMutationError(err, "Loading")
		return
	}
	if current.IsExternal() {
		a.ui.PrintHint("Catalog recipes are read-only.")
		return
	}

	cur := *current
	a.ui.PrintHeading(fmt.Sprintf("Editing %q ('-' keeps the current value, 'cancel' aborts)", cur.Title))
	a.startForm(&form{
		steps: []promptStep{
			{key: "title", label: fmt.Sprintf("Title [%s]:", cur.Title)},
			{key: "description", label: fmt.Sprintf("Description [%s]:", cur.Description)},
			{key: "imageUrl", label: fmt.Sprintf("Image URL [%s]:", cur.ImageURL)},
			{key: "cuisine", label: fmt.Sprintf("Cuisine [%s]:", cur.Cuisine)},
			{key: "category", label: fmt.Sprintf("Category [%s]:", cur.Category)},
			{key: "difficulty", label: fmt.Sprintf("Difficulty [%s]:", cur.Difficulty)},
			{key: "prepTime", label: fmt.Sprintf("Prep minutes [%d]:", cur.PrepTime)},
			{key: "cookTime", label: fmt.Sprintf("Cook minutes [%d]:", cur.CookTime)},
			{key: "servings", label: fmt.Sprintf("Servings [%d]:", cur.Servings)},
			{key: "ingredients", label: fmt.Sprintf("Ingredients as 'name: quantity', %d currently ('-' keeps them, '.' to finish):", len(cur.Ingredients)), list: true},
			{key: "steps", label: fmt.Sprintf("Steps, %d currently ('-' keeps them, '.' to finish):", len(cur.Steps)), list: true},
		},
		submit: func(ctx context.Context, f *form) {
			patch := domain.RecipePatch{}
			setString := func(key string, dst **string) {
				if v := f.values[key]; v != "" && v != keepCurrent {
					*dst = &v
				}
			}
			setInt := func(key string, dst **int) {
				if v := f.values[key]; v != "" && v != keepCurrent {
					if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n >= 0 {
						*dst = &n
					}
				}
			}
			setString("title", &patch.Title)
			setString("description", &patch.Description)
			setString("imageUrl", &patch.ImageURL)
			setString("cuisine", &patch.Cuisine)
			setString("category", &patch.Category)
			setString("difficulty", &patch.Difficulty)
			setInt("prepTime", &patch.PrepTime)
			setInt("cookTime", &patch.CookTime)
			setInt("servings", &patch.Servings)
			if lines := f.lists["ingredients"]; len(lines) > 0 {
				patch.Ingredients = parseIngredients(lines)
			}
			if lines := f.lists["steps"]; len(lines) > 0 {
				patch.Steps = lines
			}

			updated, err := a.app.Update(ctx, id, patch)
			if err != nil {
				a.printMutationError(err, "Updating")
				return
			}
			a.ui.PrintLine(fmt.Sprintf("Updated %q.", updated.Title))
		},
	})
}
