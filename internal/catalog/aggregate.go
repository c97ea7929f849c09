// Package catalog implements the client-side pipeline that merges the two
// recipe sources into one consistent, searchable, paginated view:
//
//	local + external → Aggregate → Filter → Paginate → view
//
// Every function here is pure: no caching, no mutation of inputs, stable
// ordering. The caller decides what to retain between invocations.
package catalog

import "github.com/hammamikhairi/cookbook/internal/domain"

// Aggregate concatenates local recipes then external recipes,
// deduplicating by id. Id namespacing should make collisions impossible,
// but if the same id does appear in both lists the local (first-seen)
// entry wins. Returns a fresh slice each call.
func Aggregate(local, external []domain.Recipe) []domain.Recipe {
	out := make([]domain.Recipe, 0, len(local)+len(external))
	seen := make(map[string]struct{}, len(local)+len(external))

	for _, lst := range [][]domain.Recipe{local, external} {
		for _, r := range lst {
			if _, dup := seen[r.ID]; dup {
				continue
			}
			seen[r.ID] = struct{}{}
			out = append(out, r)
		}
	}
	return out
}
