// Package present turns aggregation results into chart specs and table payloads.
package present

import (
	"unicode/utf8"
)

// Kind is the chart type.
type Kind string

const (
	Pie       Kind = "pie"
	Bar       Kind = "bar"
	Histogram Kind = "histogram"
)

const (
	maxAxisLabel  = 50
	truncatedKeep = 47
	ellipsis      = "..."
)

// Point is one slice, bar or bin. AxisLabel is what the axis shows; Label
// keeps the untruncated text.
type Point struct {
	Label     string  `json:"label"`
	AxisLabel string  `json:"axis_label"`
	Value     float64 `json:"value"`
	Color     string  `json:"color"`
}

// Chart is a renderer-independent chart description.
type Chart struct {
	Kind      Kind    `json:"kind"`
	Title     string  `json:"title"`
	XLabel    string  `json:"x_label,omitempty"`
	YLabel    string  `json:"y_label,omitempty"`
	TickAngle int     `json:"tick_angle,omitempty"`
	Points    []Point `json:"points"`
}

// Table is a display table with a fixed column order.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// TruncateLabel shortens labels longer than 50 characters to their first 47
// characters followed by "...".
func TruncateLabel(s string) string {
	if utf8.RuneCountInString(s) <= maxAxisLabel {
		return s
	}
	runes := []rune(s)
	return string(runes[:truncatedKeep]) + ellipsis
}
