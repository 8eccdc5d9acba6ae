// Package chart renders composition reports as SVG charts.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/baditaflorin/go_sequence_tools/internal/core/domain"
)

// ErrNoWindows is returned when there is nothing to plot.
var ErrNoWindows = errors.New("composition has no windows to plot")

// GCWindowSVG draws the GC percentage of each window, with the window mean as
// a dashed reference line.
func GCWindowSVG(c domain.Composition) ([]byte, error) {
	if len(c.WindowGC) == 0 {
		return nil, ErrNoWindows
	}

	p := plot.New()
	p.Title.Text = "GC Content per Window"
	p.X.Label.Text = fmt.Sprintf("Position (bp, window = %d)", c.Window)
	p.Y.Label.Text = "GC Content (%)"
	p.Y.Min = 0
	p.Y.Max = 100
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(c.WindowGC))
	for i, v := range c.WindowGC {
		// Plot each window at its start coordinate, 1-based.
		pts[i].X = float64(i*c.Window + 1)
		pts[i].Y = v
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = color.RGBA{B: 200, A: 255}
	line.LineStyle.Width = vg.Points(2)
	p.Add(line)
	p.Legend.Add("GC %", line)

	last := pts[len(pts)-1].X
	mean, err := plotter.NewLine(plotter.XYs{{X: 1, Y: c.WindowMean}, {X: last, Y: c.WindowMean}})
	if err != nil {
		return nil, err
	}
	mean.Color = color.RGBA{R: 255, G: 100, B: 100, A: 255}
	mean.Width = vg.Points(1)
	mean.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(mean)
	p.Legend.Add("Mean", mean)
	p.Legend.Top = true

	var buf bytes.Buffer
	writer, err := p.WriterTo(10*vg.Inch, 4*vg.Inch, "svg")
	if err != nil {
		return nil, err
	}
	if _, err := writer.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
