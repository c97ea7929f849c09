package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError reports one or more invalid recipe fields. It is always
// produced before any network call; a recipe that fails validation is
// never partially submitted.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid recipe: %s", strings.Join(e.Problems, "; "))
}

// imageExtensions and imageHosts are the heuristics for "looks like an
// image URL". Deliberately loose: the backend never fetches the image.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg"}

var imageHosts = []string{"unsplash.com", "images.", "imgur", "googleusercontent.com", "gstatic.com", "google.com"}

// ValidateImageURL returns a human-readable problem string for an
// unacceptable image URL, or "" when the URL is fine.
func ValidateImageURL(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "image URL is required"
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "image URL is not a valid URL"
	}
	lower := strings.ToLower(raw)
	for _, ext := range imageExtensions {
		if strings.Contains(lower, ext) {
			return ""
		}
	}
	for _, host := range imageHosts {
		if strings.Contains(lower, host) {
			return ""
		}
	}
	return "image URL does not look like an image"
}

// ValidateRecipe checks the fields a user supplies on create/edit.
// Returns nil or a *ValidationError listing every problem found.
func ValidateRecipe(r *Recipe) error {
	var problems []string

	if strings.TrimSpace(r.Title) == "" {
		problems = append(problems, "title is required")
	}
	if strings.TrimSpace(r.Description) == "" {
		problems = append(problems, "description is required")
	}
	if p := ValidateImageURL(r.ImageURL); p != "" {
		problems = append(problems, p)
	}
	if len(r.Ingredients) == 0 {
		problems = append(problems, "at least one ingredient is required")
	}
	for i, ing := range r.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			problems = append(problems, fmt.Sprintf("ingredient %d has no name", i+1))
		}
	}
	if len(r.Steps) == 0 {
		problems = append(problems, "at least one step is required")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
