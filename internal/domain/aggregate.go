package domain

import (
	"cmp"
	"slices"
)

// YearCount is one bar of the yearly chart.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// AggregateByYear counts events per year, ascending by year. Only years
// present in the subset appear.
func AggregateByYear(subset []Event) []YearCount {
	counts := make(map[int]int)
	for _, e := range subset {
		counts[e.Year]++
	}

	out := make([]YearCount, 0, len(counts))
	for year, n := range counts {
		out = append(out, YearCount{Year: year, Count: n})
	}
	slices.SortFunc(out, func(a, b YearCount) int { return cmp.Compare(a.Year, b.Year) })
	return out
}
