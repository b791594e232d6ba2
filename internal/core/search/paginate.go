package search

// =============================================================================
// Pagination
// =============================================================================

// Pagination defaults.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Bounds returns the half-open slice bounds [start, end) of a 1-indexed
// page over total items.
//
// When the page starts past the end, start == end == total and the page is
// empty. page and pageSize must be at least 1.
//
// Example:
//
//	Bounds(1, 10, 25) // 0, 10
//	Bounds(3, 10, 25) // 20, 25
//	Bounds(4, 10, 25) // 25, 25
func Bounds(page, pageSize, total int) (start, end int) {
	if total <= 0 || page-1 > (total-1)/pageSize {
		return total, total
	}
	start = (page - 1) * pageSize
	end = total
	if pageSize < total-start {
		end = start + pageSize
	}
	return start, end
}

// Paginate returns the page of items for (page, pageSize), preserving order.
// A page past the end is empty, not an error. The result never aliases items.
func Paginate[T any](items []T, page, pageSize int) []T {
	start, end := Bounds(page, pageSize, len(items))
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
