package analysis

import (
	"math"
	"sort"

	"github.com/TobiSchelling/streamdash/internal/dataset"
)

// DefaultTopN is the ranking length used by the dashboard.
const DefaultTopN = 10

// SortKey selects the column TopN ranks by.
type SortKey int

const (
	ByVotes SortKey = iota
	ByRating
)

func (k SortKey) String() string {
	switch k {
	case ByVotes:
		return dataset.ColVotes
	case ByRating:
		return dataset.ColRating
	default:
		return "unknown"
	}
}

// TopN returns the first n titles ordered by key, descending. The sort is
// stable so tied titles keep their source order; NaN ratings sort last.
// The input slice is not modified.
func TopN(titles []dataset.Title, key SortKey, n int) []dataset.Title {
	ranked := make([]dataset.Title, len(titles))
	copy(ranked, titles)

	sort.SliceStable(ranked, func(i, j int) bool {
		return greater(ranked[i], ranked[j], key)
	})

	if n < 0 {
		n = 0
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func greater(a, b dataset.Title, key SortKey) bool {
	switch key {
	case ByRating:
		if math.IsNaN(a.Rating) {
			return false
		}
		if math.IsNaN(b.Rating) {
			return true
		}
		return a.Rating > b.Rating
	default:
		return a.Votes > b.Votes
	}
}
