package plot

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"testing"

	"gonum.org/v1/plot/vg"
)

func panels() Panels {
	return Panels{
		Title:          "CV simulation",
		Time:           []float64{0, 1, 2, 3, 4},
		Potential:      []float64{0, 0.1, 0.2, 0.1, 0},
		SweepPotential: []float64{0, 0.1, 0.2, 0.1, 0},
		Current:        []float64{0, 5e-6, 5e-6, -5e-6, -5e-6},
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, panels(), WithSize(6*vg.Inch, 3*vg.Inch)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	cfg, err := png.DecodeConfig(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if cfg.Width <= cfg.Height {
		t.Fatalf("image is %dx%d, want a landscape layout", cfg.Width, cfg.Height)
	}
}

func TestRenderErrors(t *testing.T) {
	p := panels()
	p.Current = p.Current[:3]
	if err := Render(&bytes.Buffer{}, p); !errors.Is(err, ErrLength) {
		t.Fatalf("mismatched lengths error = %v", err)
	}

	if err := Render(&bytes.Buffer{}, Panels{}); !errors.Is(err, ErrEmpty) {
		t.Fatalf("empty panels error = %v", err)
	}

	p = panels()
	p.Current[1] = math.NaN()
	if err := Render(&bytes.Buffer{}, p); err == nil {
		t.Fatal("expected error for NaN current")
	}
}

func TestPaddedRange(t *testing.T) {
	tests := []struct {
		in     []float64
		lo, hi float64
	}{
		{[]float64{0, 10}, -1, 11},
		{[]float64{-0.65, 0.85, 0}, -0.8, 1},
		{[]float64{2, 2}, 1.6, 2.4},
	}
	for _, tt := range tests {
		lo, hi := paddedRange(tt.in)
		if math.Abs(lo-tt.lo) > 1e-12 || math.Abs(hi-tt.hi) > 1e-12 {
			t.Fatalf("paddedRange(%v) = %v, %v, want %v, %v", tt.in, lo, hi, tt.lo, tt.hi)
		}
	}

	lo, hi := paddedRange([]float64{0})
	if !(lo < 0 && hi > 0) {
		t.Fatalf("paddedRange(0) = %v, %v", lo, hi)
	}
}
