// Package view turns a cache snapshot plus per-section view state into
// plain view models. Nothing here writes or talks to the backend.
package view

// DefaultPageSize is the page length of the handover and task lists.
const DefaultPageSize = 50

// Page is one page of a list.
type Page[T any] struct {
	Items      []T
	Page       int
	Total      int
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

// Paginate slices items into 1-indexed pages of size. The page number is
// not clamped: out-of-range pages yield an empty slice.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(items)
	totalPages := (total + size - 1) / size

	p := Page[T]{
		Page:       page,
		Total:      total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
		Items:      []T{},
	}
	if page < 1 {
		return p
	}

	start := (page - 1) * size
	if start >= total {
		return p
	}
	end := start + size
	if end > total {
		end = total
	}
	p.Items = items[start:end]
	return p
}
