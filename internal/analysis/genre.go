package analysis

import (
	"sort"

	"github.com/TobiSchelling/streamdash/internal/dataset"
)

// GenreCount is one entry of a GenreSummary.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// GenreSummary maps genre to occurrences, held in first-appearance order.
type GenreSummary []GenreCount

// GenreDistribution counts titles per distinct genre value. Every record is
// counted, so the counts always sum to len(titles).
func GenreDistribution(titles []dataset.Title) GenreSummary {
	index := make(map[string]int)
	summary := make(GenreSummary, 0)
	for _, t := range titles {
		i, ok := index[t.Genre]
		if !ok {
			i = len(summary)
			index[t.Genre] = i
			summary = append(summary, GenreCount{Genre: t.Genre})
		}
		summary[i].Count++
	}
	return summary
}

// Total returns the sum of all counts.
func (s GenreSummary) Total() int {
	total := 0
	for _, g := range s {
		total += g.Count
	}
	return total
}

// ByCount returns a copy sorted by count descending, ties in first-appearance order.
func (s GenreSummary) ByCount() GenreSummary {
	sorted := make(GenreSummary, len(s))
	copy(sorted, s)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Count > sorted[j].Count })
	return sorted
}
