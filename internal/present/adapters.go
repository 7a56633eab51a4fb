package present

import (
	"fmt"
	"math"
	"strconv"

	"github.com/TobiSchelling/streamdash/internal/analysis"
	"github.com/TobiSchelling/streamdash/internal/dataset"
)

const tickAngle = -45

// GenrePie charts genre counts, largest slice first.
func GenrePie(summary analysis.GenreSummary) Chart {
	c := Chart{Kind: Pie, Title: "Distribution of Genres on Netflix"}
	for i, g := range summary.ByCount() {
		c.Points = append(c.Points, Point{
			Label:     g.Genre,
			AxisLabel: g.Genre,
			Value:     float64(g.Count),
			Color:     Categorical(i),
		})
	}
	return c
}

// GenreTable lists genre counts, largest first.
func GenreTable(summary analysis.GenreSummary) Table {
	t := Table{Columns: []string{"Genre", "Count"}}
	for _, g := range summary.ByCount() {
		t.Rows = append(t.Rows, []string{g.Genre, strconv.Itoa(g.Count)})
	}
	return t
}

// TopStreamedChart bars votes per title. Long titles are truncated on the axis.
func TopStreamedChart(top []dataset.Title) Chart {
	c := rankedBars(top, "Top 10 Most Streamed Titles", "Votes", func(t dataset.Title) float64 {
		return float64(t.Votes)
	})
	for i := range c.Points {
		c.Points[i].AxisLabel = TruncateLabel(c.Points[i].Label)
	}
	return c
}

// TopStreamedTable shows the ranked titles with full names.
func TopStreamedTable(top []dataset.Title) Table {
	t := Table{Columns: []string{"title", "year", "genre", "votes"}}
	for _, r := range top {
		t.Rows = append(t.Rows, []string{r.Title, strconv.Itoa(r.Year), r.Genre, strconv.FormatInt(r.Votes, 10)})
	}
	return t
}

// TopPopularChart bars rating per title.
func TopPopularChart(top []dataset.Title) Chart {
	return rankedBars(top, "Top 10 Most Popular Titles", "Rating", func(t dataset.Title) float64 {
		return t.Rating
	})
}

// TopPopularTable shows the ranked titles with their rating.
func TopPopularTable(top []dataset.Title) Table {
	t := Table{Columns: []string{"title", "year", "genre", "rating"}}
	for _, r := range top {
		t.Rows = append(t.Rows, []string{r.Title, strconv.Itoa(r.Year), r.Genre, FormatNumber(r.Rating)})
	}
	return t
}

// rankedBars builds a bar chart coloured by value. Titles whose value is NaN
// are left off the chart.
func rankedBars(top []dataset.Title, title, yLabel string, value func(dataset.Title) float64) Chart {
	c := Chart{Kind: Bar, Title: title, XLabel: "Title", YLabel: yLabel, TickAngle: tickAngle}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, t := range top {
		if v := value(t); !math.IsNaN(v) {
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}

	for _, t := range top {
		v := value(t)
		if math.IsNaN(v) {
			continue
		}
		c.Points = append(c.Points, Point{
			Label:     t.Title,
			AxisLabel: t.Title,
			Value:     v,
			Color:     Scale(v, lo, hi),
		})
	}
	return c
}

// StatsTable lays out summaries like a describe() table: one row per
// statistic, one column per summarised column.
func StatsTable(summaries []analysis.Summary) Table {
	t := Table{Columns: []string{""}}
	for _, s := range summaries {
		t.Columns = append(t.Columns, s.Column)
	}

	rows := []struct {
		name string
		get  func(analysis.Summary) string
	}{
		{"count", func(s analysis.Summary) string { return strconv.Itoa(s.Count) }},
		{"mean", func(s analysis.Summary) string { return FormatStat(s.Mean) }},
		{"std", func(s analysis.Summary) string { return FormatStat(s.Std) }},
		{"min", func(s analysis.Summary) string { return FormatStat(s.Min) }},
		{"25%", func(s analysis.Summary) string { return FormatStat(s.Q25) }},
		{"50%", func(s analysis.Summary) string { return FormatStat(s.Q50) }},
		{"75%", func(s analysis.Summary) string { return FormatStat(s.Q75) }},
		{"max", func(s analysis.Summary) string { return FormatStat(s.Max) }},
	}
	for _, r := range rows {
		row := []string{r.name}
		for _, s := range summaries {
			row = append(row, r.get(s))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// HistogramChart charts the bins of one column.
func HistogramChart(column string, bins []analysis.Bin) Chart {
	c := Chart{
		Kind:   Histogram,
		Title:  fmt.Sprintf("Distribution of %s", column),
		XLabel: column,
		YLabel: "count",
		Points: []Point{},
	}
	for _, b := range bins {
		c.Points = append(c.Points, Point{
			Label:     fmt.Sprintf("%.4g-%.4g", b.Lo, b.Hi),
			AxisLabel: fmt.Sprintf("%.4g", b.Lo),
			Value:     float64(b.Count),
			Color:     Plasma[0],
		})
	}
	return c
}

// FormatNumber prints v with the fewest digits that round-trip, NaN as "NaN".
func FormatNumber(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatStat prints a statistic with six decimals, NaN as "NaN".
func FormatStat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
