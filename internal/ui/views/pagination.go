package views

import (
	"fmt"
	"strings"
)

// RenderPagination renders the page strip with the current page marked.
// It returns "" when there is nothing to page through.
func (r *Renderer) RenderPagination(pages []int, current int) string {
	if len(pages) == 0 {
		return ""
	}
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		label := fmt.Sprintf(" %d ", p)
		if p == current {
			parts = append(parts, r.styles.PageActive.Render(label))
		} else {
			parts = append(parts, r.styles.PageInactive.Render(label))
		}
	}
	return r.styles.Dim.Render("Pages ") + strings.Join(parts, "")
}
