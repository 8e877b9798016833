package grievance

// PageSize is the number of grievances shown per page.
const PageSize = 10

// Paginate returns the page-th slice of items, page being zero-based.
// Pages past the end are empty.
func Paginate[T any](items []T, page, size int) []T {
	if size <= 0 || page < 0 {
		return nil
	}
	start := page * size
	if start >= len(items) {
		return nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// PageCount returns how many pages of size are needed for n items.
func PageCount(n, size int) int {
	if size <= 0 || n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// DisplayIndex is the one-based position of the local-th row on page.
func DisplayIndex(page, size, local int) int {
	return page*size + local + 1
}
