// Package chart draws present.Chart specs as SVG with go-chart.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/TobiSchelling/streamdash/internal/present"
)

const (
	width  = 900
	height = 560

	// histogram axes show every n-th bin label
	histogramLabelEvery = 5
)

// ErrNoData is returned for specs without points.
var ErrNoData = errors.New("chart has no data")

// RenderSVG draws spec as a standalone SVG document.
func RenderSVG(spec present.Chart) ([]byte, error) {
	if len(spec.Points) == 0 {
		return nil, ErrNoData
	}

	var buf bytes.Buffer
	var err error
	switch spec.Kind {
	case present.Pie:
		err = pieChart(spec).Render(gochart.SVG, &buf)
	case present.Bar, present.Histogram:
		err = barChart(spec).Render(gochart.SVG, &buf)
	default:
		return nil, fmt.Errorf("unsupported chart kind %q", spec.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("rendering %s chart: %w", spec.Kind, err)
	}
	return buf.Bytes(), nil
}

func pieChart(spec present.Chart) gochart.PieChart {
	values := make([]gochart.Value, 0, len(spec.Points))
	for _, p := range spec.Points {
		values = append(values, gochart.Value{
			Label: p.AxisLabel,
			Value: p.Value,
			Style: gochart.Style{
				FillColor:   color(p.Color),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1,
				FontColor:   drawing.ColorWhite,
			},
		})
	}
	return gochart.PieChart{
		Title:  spec.Title,
		Width:  width,
		Height: height,
		Values: values,
	}
}

func barChart(spec present.Chart) gochart.BarChart {
	bars := make([]gochart.Value, 0, len(spec.Points))
	maxValue := 0.0
	for i, p := range spec.Points {
		label := p.AxisLabel
		if spec.Kind == present.Histogram && i%histogramLabelEvery != 0 {
			label = ""
		}
		bars = append(bars, gochart.Value{
			Label: label,
			Value: p.Value,
			Style: gochart.Style{
				FillColor:   color(p.Color),
				StrokeColor: color(p.Color),
				StrokeWidth: 1,
			},
		})
		maxValue = math.Max(maxValue, p.Value)
	}
	if maxValue <= 0 {
		maxValue = 1
	}

	barWidth, spacing := barGeometry(len(bars))
	return gochart.BarChart{
		Title:  spec.Title,
		Width:  width,
		Height: height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 20, Right: 20, Bottom: 170},
		},
		BarWidth:   barWidth,
		BarSpacing: spacing,
		XAxis: gochart.Style{
			TextRotationDegrees: float64(spec.TickAngle),
		},
		YAxis: gochart.YAxis{
			Name:  spec.YLabel,
			Range: &gochart.ContinuousRange{Min: 0, Max: maxValue * 1.05},
		},
		Bars: bars,
	}
}

// barGeometry fits n bars into the plot width.
func barGeometry(n int) (barWidth, spacing int) {
	slot := (width - 140) / n
	barWidth = slot * 3 / 4
	if barWidth < 2 {
		barWidth = 2
	}
	spacing = slot - barWidth
	if spacing < 1 {
		spacing = 1
	}
	return barWidth, spacing
}

// color decodes "#rgb" or "#rrggbb"; anything else draws black.
func color(hex string) drawing.Color {
	switch len(strings.TrimPrefix(hex, "#")) {
	case 3, 6:
		return drawing.ColorFromHex(hex)
	default:
		return drawing.ColorBlack
	}
}
