// Package chart draws the historical comparison as an SVG image for clients
// that don't run the page's JavaScript chart.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"nzpt/internal/stats"
)

var (
	billsColor = color.RGBA{R: 189, G: 95, B: 255, A: 255}
	daysColor  = color.RGBA{R: 37, G: 99, B: 235, A: 255}
)

// ErrMismatchedSeries is returned when the chart arrays are not the same length.
var ErrMismatchedSeries = errors.New("chart series lengths differ")

// Size of the rendered image.
const (
	Width  = 8 * vg.Inch
	Height = 4 * vg.Inch
)

// SVG renders both percentage series against the term labels.
func SVG(c stats.Chart) ([]byte, error) {
	n := len(c.Labels)
	if len(c.BillsPercent) != n || len(c.DaysPercent) != n {
		return nil, ErrMismatchedSeries
	}

	p := plot.New()
	p.Title.Text = "Urgency by Parliament"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.BackgroundColor = color.White
	p.Y.Label.Text = "Percent"
	p.Y.Min = 0
	p.Y.Max = 100
	p.Legend.Top = true

	if n > 0 {
		p.NominalX(c.Labels...)
		p.X.Min = -0.5
		p.X.Max = float64(n) - 0.5

		if err := addSeries(p, "Bills under urgency", c.BillsPercent, billsColor); err != nil {
			return nil, err
		}
		if err := addSeries(p, "Sitting days in urgency", c.DaysPercent, daysColor); err != nil {
			return nil, err
		}
	}
	p.Add(plotter.NewGrid())

	wt, err := p.WriterTo(Width, Height, "svg")
	if err != nil {
		return nil, fmt.Errorf("create svg writer: %w", err)
	}

	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write svg: %w", err)
	}
	return buf.Bytes(), nil
}

func addSeries(p *plot.Plot, name string, values []float64, clr color.Color) error {
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i] = plotter.XY{X: float64(i), Y: v}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = clr
	line.Width = vg.Points(2)

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.Color = clr
	scatter.Radius = vg.Points(3)
	scatter.Shape = draw.CircleGlyph{}

	p.Add(line, scatter)
	p.Legend.Add(name, line, scatter)
	return nil
}
