package analysis

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/TobiSchelling/streamdash/internal/dataset"
)

// DescribedColumns are the numeric columns summarised by default.
var DescribedColumns = []string{dataset.ColRating, dataset.ColVotes}

// Summary holds descriptive statistics for one numeric column. Every field
// except Count is NaN when the column has no values.
type Summary struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Q50    float64
	Q75    float64
	Max    float64
}

// Describe computes count, mean, sample standard deviation, min, quartiles
// and max for each requested column, skipping NaN cells.
func Describe(titles []dataset.Title, columns ...string) ([]Summary, error) {
	if len(columns) == 0 {
		columns = DescribedColumns
	}

	summaries := make([]Summary, 0, len(columns))
	for _, col := range columns {
		values, err := Values(titles, col)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, Summarize(col, values))
	}
	return summaries, nil
}

// Values extracts a numeric column, dropping NaN cells and missing votes.
func Values(titles []dataset.Title, column string) ([]float64, error) {
	values := make([]float64, 0, len(titles))
	for _, t := range titles {
		var v float64
		switch column {
		case dataset.ColRating:
			v = t.Rating
		case dataset.ColVotes:
			v = float64(t.Votes)
			if t.VotesMissing {
				v = math.NaN()
			}
		case dataset.ColYear:
			v = float64(t.Year)
		default:
			return nil, fmt.Errorf("column %q is not numeric", column)
		}
		if !math.IsNaN(v) {
			values = append(values, v)
		}
	}
	return values, nil
}

// Summarize computes the statistics for values, which must be NaN-free.
func Summarize(column string, values []float64) Summary {
	s := Summary{Column: column, Count: len(values)}
	if len(values) == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	s.Mean = stat.Mean(sorted, nil)
	s.Std = math.NaN()
	if len(sorted) > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	s.Min = floats.Min(sorted)
	s.Max = floats.Max(sorted)
	s.Q25 = Percentile(sorted, 0.25)
	s.Q50 = Percentile(sorted, 0.50)
	s.Q75 = Percentile(sorted, 0.75)
	return s
}

// Percentile returns the p-th quantile (0..1) of ascending-sorted values,
// interpolating linearly between the two closest ranks. Empty input gives NaN.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}

	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	if lo < 0 {
		return sorted[0]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
