package catalog

import "github.com/hammamikhairi/cookbook/internal/domain"

// DefaultPageSize is the grid size the view renders per page.
const DefaultPageSize = 24

// WindowSize is the maximum number of page controls shown at once.
const WindowSize = 5

// Page is one slice of the filtered result set.
type Page struct {
	Items      []domain.Recipe
	Number     int
	TotalPages int
}

// Paginate slices the filtered set into fixed-size pages. totalPages is
// at least 1 even for an empty set. An out-of-range page yields an empty
// item list, never a panic; callers are expected to clamp the page number
// with ClampPage whenever the filtered set changes size.
func Paginate(filtered []domain.Recipe, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	totalPages := (len(filtered) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	p := Page{Items: []domain.Recipe{}, Number: page, TotalPages: totalPages}

	start := (page - 1) * pageSize
	if page < 1 || start >= len(filtered) {
		return p
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	p.Items = filtered[start:end]
	return p
}

// ClampPage clamps a page number into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Window is the bounded, boundary-aware set of page controls the view
// renders for navigation. Pages is always contiguous and contains exactly
// min(WindowSize, totalPages) numbers. First/last controls and ellipsis
// markers cover the pages outside the window.
type Window struct {
	Pages     []int
	ShowFirst bool // page 1 is outside the window
	GapBefore bool // ellipsis between 1 and the window
	ShowLast  bool // the last page is outside the window
	GapAfter  bool // ellipsis between the window and the last page
}

// PageWindow computes the navigation window centered on current, shifted
// left/right near the boundaries so it always shows the full window size
// when enough pages exist.
func PageWindow(current, totalPages int) Window {
	if totalPages < 1 {
		totalPages = 1
	}
	current = ClampPage(current, totalPages)

	size := WindowSize
	if totalPages < size {
		size = totalPages
	}

	start := current - size/2
	if start < 1 {
		start = 1
	}
	if start+size-1 > totalPages {
		start = totalPages - size + 1
	}

	w := Window{Pages: make([]int, size)}
	for i := range w.Pages {
		w.Pages[i] = start + i
	}

	first := w.Pages[0]
	last := w.Pages[size-1]
	w.ShowFirst = first > 1
	w.GapBefore = first > 2
	w.ShowLast = last < totalPages
	w.GapAfter = last < totalPages-1
	return w
}
