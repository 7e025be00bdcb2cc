package browse

import "triviabrowse/internal/domain"

// PageNumbers returns the selectable pages 1..ceil(total/pageSize).
// A non-positive pageSize falls back to domain.PageSize.
func PageNumbers(total, pageSize int) []int {
	if pageSize <= 0 {
		pageSize = domain.PageSize
	}
	if total <= 0 {
		return nil
	}
	count := (total + pageSize - 1) / pageSize
	pages := make([]int, count)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}
