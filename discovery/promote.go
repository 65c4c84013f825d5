package discovery

import "sort"

// promote keeps candidates with count >= min_runs and sorts the rest by
// count descending, ties broken by ascending start position.
func promote(results []stage1Result, params Params) []stage1Result {
	var kept []stage1Result
	for _, r := range results {
		if r.count >= params.MinRuns {
			kept = append(kept, r)
		}
	}
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].count != kept[j].count {
			return kept[i].count > kept[j].count
		}
		return kept[i].window.startIdx < kept[j].window.startIdx
	})
	return kept
}
