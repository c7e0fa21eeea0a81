package domain

import (
	"cmp"
	"slices"
	"strings"
)

// Sort orders results in place over the whole merged list and returns it.
// The sort is stable, so ties keep merge order. Unknown fields leave the
// order untouched; an empty order means descending.
func Sort(results []Result, by SortField, order SortOrder) []Result {
	compare := comparator(by)
	if compare == nil {
		return results
	}
	if order != SortAsc {
		asc := compare
		compare = func(a, b Result) int { return asc(b, a) }
	}
	slices.SortStableFunc(results, compare)
	return results
}

func comparator(by SortField) func(a, b Result) int {
	switch by {
	case SortRelevance, "":
		return func(a, b Result) int { return cmp.Compare(Score(a), Score(b)) }
	case SortCreatedAt:
		return func(a, b Result) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case SortUpdatedAt:
		return func(a, b Result) int { return a.LastUpdated().Compare(b.LastUpdated()) }
	case SortName, SortTitle:
		return func(a, b Result) int { return strings.Compare(a.Title, b.Title) }
	default:
		return nil
	}
}
