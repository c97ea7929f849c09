package catalog

import (
	"strings"

	"github.com/hammamikhairi/cookbook/internal/domain"
)

// Filter narrows the aggregate to recipes matching every active
// constraint. The free-text query matches as a case-insensitive substring
// of title or description; categorical constraints match by trimmed
// case-insensitive equality. Empty constraints match everything. Relative
// order of the input is preserved.
func Filter(recipes []domain.Recipe, state domain.FilterState) []domain.Recipe {
	query := strings.ToLower(strings.TrimSpace(state.Query))
	cuisine := normalize(state.Cuisine)
	category := normalize(state.Category)
	difficulty := normalize(state.Difficulty)

	out := make([]domain.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if query != "" &&
			!strings.Contains(strings.ToLower(r.Title), query) &&
			!strings.Contains(strings.ToLower(r.Description), query) {
			continue
		}
		if cuisine != "" && normalize(r.Cuisine) != cuisine {
			continue
		}
		if category != "" && normalize(r.Category) != category {
			continue
		}
		if difficulty != "" && normalize(r.Difficulty) != difficulty {
			continue
		}
		out = append(out, r)
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
