package logic

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"triviabrowse/internal/domain"
)

// CategoryMatch is one category offered by the picker
type CategoryMatch struct {
	ID   int
	Name string
}

// MatchCategories narrows categories to those fuzzily matching query, best
// first. An empty query returns every category in id order.
func MatchCategories(query string, cats domain.Categories) []CategoryMatch {
	ids := cats.IDs()
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]CategoryMatch, 0, len(ids))
		for _, id := range ids {
			out = append(out, CategoryMatch{ID: id, Name: cats[id]})
		}
		return out
	}

	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = cats[id]
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	out := make([]CategoryMatch, 0, len(ranks))
	for _, r := range ranks {
		id := ids[r.OriginalIndex]
		out = append(out, CategoryMatch{ID: id, Name: cats[id]})
	}
	return out
}
