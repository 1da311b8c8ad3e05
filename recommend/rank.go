package recommend

import (
	"fmt"
	"sort"

	"assessrec/catalog"
)

// Match pairs a catalog item with its similarity score. Index is the item's
// original catalog position, kept so ties stay in catalog order.
type Match struct {
	Item  catalog.Item
	Index int
	Score float64
}

// Rank sorts all items by score descending, collapses duplicate names down to
// their best-scoring row, and returns at most topN matches. The sort is
// stable, so equal scores keep their original catalog order, and the
// post-sort dedup therefore keeps the highest score for each name with ties
// broken by catalog position.
func Rank(items []catalog.Item, scores []float64, topN int) ([]Match, error) {
	if topN <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTopN, topN)
	}
	if len(items) != len(scores) {
		return nil, fmt.Errorf("%d items but %d scores", len(items), len(scores))
	}

	matches := make([]Match, len(items))
	for i, item := range items {
		matches[i] = Match{Item: item, Index: i, Score: scores[i]}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	seen := make(map[string]struct{}, len(matches))
	deduped := matches[:0]
	for _, m := range matches {
		if _, ok := seen[m.Item.Name]; ok {
			continue
		}
		seen[m.Item.Name] = struct{}{}
		deduped = append(deduped, m)
		if len(deduped) == topN {
			break
		}
	}

	return deduped, nil
}
