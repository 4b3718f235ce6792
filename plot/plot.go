// Package plot renders a voltammogram as a two panel PNG: the applied
// potential against time on the left and the current against potential on
// the right.
package plot

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/floats"
	gonumplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Errors returned by Render.
var (
	ErrLength = errors.New("plot: paired series must have equal length")
	ErrEmpty  = errors.New("plot: nothing to plot")
)

// axisPadding is the fraction of the data range added on each side.
const axisPadding = 0.1

// Panels holds the two paired series.
type Panels struct {
	Title string // prefixed to both panel titles

	// Left panel.
	Time      []float64 // s
	Potential []float64 // V

	// Right panel.
	SweepPotential []float64 // V
	Current        []float64 // A
}

type config struct {
	width  vg.Length
	height vg.Length
}

// Option configures Render.
type Option func(*config)

// WithSize sets the image size (default 12 x 5 inches).
func WithSize(width, height vg.Length) Option {
	return func(cfg *config) {
		if width > 0 && height > 0 {
			cfg.width = width
			cfg.height = height
		}
	}
}

// Render draws p as PNG into w.
func Render(w io.Writer, p Panels, opts ...Option) error {
	cfg := config{width: 12 * vg.Inch, height: 5 * vg.Inch}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if len(p.Time) != len(p.Potential) || len(p.SweepPotential) != len(p.Current) {
		return ErrLength
	}
	if len(p.Time) == 0 || len(p.Current) == 0 {
		return ErrEmpty
	}

	left, err := panel(titleFor(p.Title, "E vs. t"), "t / s", "E / V", p.Time, p.Potential)
	if err != nil {
		return err
	}
	right, err := panel(titleFor(p.Title, "i vs. E"), "E / V", "i / A", p.SweepPotential, p.Current)
	if err != nil {
		return err
	}

	img := vgimg.New(cfg.width, cfg.height)
	dc := draw.New(img)

	tiles := draw.Tiles{Rows: 1, Cols: 2, PadX: vg.Millimeter, PadY: vg.Millimeter}
	canvases := gonumplot.Align([][]*gonumplot.Plot{{left, right}}, tiles, dc)
	left.Draw(canvases[0][0])
	right.Draw(canvases[0][1])

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return fmt.Errorf("plot: encode png: %w", err)
	}
	return nil
}

func panel(title, xLabel, yLabel string, x, y []float64) (*gonumplot.Plot, error) {
	p := gonumplot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	xy := make(plotter.XYs, len(x))
	for i := range x {
		xy[i].X = x[i]
		xy[i].Y = y[i]
	}

	line, err := plotter.NewLine(xy)
	if err != nil {
		return nil, fmt.Errorf("plot: %s: %w", title, err)
	}
	p.Add(line)

	p.X.Min, p.X.Max = paddedRange(x)
	p.Y.Min, p.Y.Max = paddedRange(y)
	return p, nil
}

// paddedRange returns the data range widened by axisPadding on each side.
// A flat series gets a unit-relative range around its value.
func paddedRange(v []float64) (lo, hi float64) {
	lo, hi = floats.Min(v), floats.Max(v)
	span := hi - lo
	if span == 0 {
		span = max(1e-12, 2*math.Abs(lo))
	}
	return lo - span*axisPadding, hi + span*axisPadding
}

func titleFor(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + ": " + name
}
