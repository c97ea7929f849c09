package mealdb

import (
	"context"
	"errors"
	"sync"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Harvest defaults. Each category costs one summary request plus one
// lookup per candidate, so the per-category bound keeps the request
// count proportional to the target instead of the catalog size.
const (
	DefaultHarvestTarget = 24
	DefaultPerCategory   = 4
	lookupWorkers        = 4
)

// HarvesterOption configures the Harvester.
type HarvesterOption func(*Harvester)

// WithPerCategory bounds how many lookups are attempted per category.
func WithPerCategory(n int) HarvesterOption {
	return func(h *Harvester) {
		if n > 0 {
			h.perCategory = n
		}
	}
}

// Harvester acquires a bounded set of external recipes for the aggregate:
// enumerate all categories, look up a few full recipes per category until
// the target count is reached, then top up with random fetches if the
// categories under-supplied. Every sub-fetch outcome is collected as a
// tagged result; a failed lookup is logged and skipped, never aborting
// its siblings.
type Harvester struct {
	provider    domain.CatalogProvider
	log         *logger.Logger
	perCategory int
}

// NewHarvester creates a harvester over the given provider.
func NewHarvester(provider domain.CatalogProvider, log *logger.Logger, opts ...HarvesterOption) *Harvester {
	h := &Harvester{
		provider:    provider,
		log:         log,
		perCategory: DefaultPerCategory,
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// lookupResult tags one sub-fetch outcome with the id it was for.
type lookupResult struct {
	id     string
	recipe *domain.Recipe
	err    error
}

// Harvest fetches up to target external recipes, deduplicated by
// converted id. Partial failures are tolerated; an error is returned
// whenever not a single recipe could be fetched.
func (h *Harvester) Harvest(ctx context.Context, target int) ([]domain.Recipe, error) {
	if target <= 0 {
		target = DefaultHarvestTarget
	}

	ids, err := h.collectCandidates(ctx, target)
	if err != nil {
		h.log.Warn("mealdb: category enumeration failed, falling back to random: %v", err)
	}

	out := h.lookupAll(ctx, ids)

	// Top up with random fetches when categories under-supplied. Each
	// random draw can collide with an already-harvested recipe, so allow
	// a few extra attempts before giving up.
	if len(out) < target {
		out = h.topUpRandom(ctx, out, target)
	}

	if len(out) == 0 {
		if err != nil {
			return nil, err
		}
		return nil, errors.New("mealdb: harvest: no recipes could be fetched")
	}
	h.log.Info("mealdb: harvested %d external recipes (target %d)", len(out), target)
	return out, nil
}

// collectCandidates walks the category list and gathers up to target
// candidate ids, bounded per category.
func (h *Harvester) collectCandidates(ctx context.Context, target int) ([]string, error) {
	categories, err := h.provider.Categories(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, target)
	var ids []string
	for _, cat := range categories {
		if len(ids) >= target {
			break
		}
		catIDs, err := h.provider.ByCategory(ctx, cat)
		if err != nil {
			h.log.Warn("mealdb: listing category %q failed, skipping: %v", cat, err)
			continue
		}
		taken := 0
		for _, id := range catIDs {
			if taken == h.perCategory || len(ids) >= target {
				break
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
			taken++
		}
	}
	return ids, nil
}

// lookupAll resolves candidate ids to full recipes through a bounded
// fan-out, joining the tagged results in candidate order.
func (h *Harvester) lookupAll(ctx context.Context, ids []string) []domain.Recipe {
	if len(ids) == 0 {
		return nil
	}

	jobs := make(chan string)
	results := make(chan lookupResult, len(ids))

	var wg sync.WaitGroup
	workers := lookupWorkers
	if len(ids) < workers {
		workers = len(ids)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				r, err := h.provider.Lookup(ctx, id)
				results <- lookupResult{id: id, recipe: r, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, id := range ids {
			select {
			case jobs <- id:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	byID := make(map[string]domain.Recipe, len(ids))
	for res := range results {
		if res.err != nil {
			h.log.Warn("mealdb: lookup %s failed, skipping: %v", res.id, res.err)
			continue
		}
		byID[res.id] = *res.recipe
	}

	// Rejoin in candidate order so the aggregate is deterministic for a
	// given candidate list.
	out := make([]domain.Recipe, 0, len(byID))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			out = append(out, r)
		}
	}
	return out
}

func (h *Harvester) topUpRandom(ctx context.Context, out []domain.Recipe, target int) []domain.Recipe {
	seen := make(map[string]struct{}, len(out))
	for _, r := range out {
		seen[r.ID] = struct{}{}
	}

	attempts := 2 * (target - len(out))
	for i := 0; i < attempts && len(out) < target; i++ {
		if ctx.Err() != nil {
			break
		}
		r, err := h.provider.Random(ctx)
		if err != nil {
			h.log.Warn("mealdb: random fetch failed, skipping: %v", err)
			continue
		}
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, *r)
	}
	return out
}
