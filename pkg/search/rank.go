package search

import "sort"

// DefaultLimit is how many solutions Rank keeps when no limit is given.
const DefaultLimit = 5

// Rank orders solutions by ascending score, keeping discovery order among
// equal scores, and keeps at most limit of them (DefaultLimit when limit <= 0).
// The input slice is left untouched.
func Rank(solutions []Solution, limit int) []Solution {
	if limit <= 0 {
		limit = DefaultLimit
	}
	out := make([]Solution, len(solutions))
	copy(out, solutions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score < out[j].Score
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
