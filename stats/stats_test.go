package stats

import (
	"math"
	"testing"

	"github.com/MoonshinetheP/oscilloscope-reader/internal/testutil"
)

const tolerance = 1e-12

func TestSummarizeEmpty(t *testing.T) {
	if s := Summarize(nil, 1); s != (Summary{}) {
		t.Fatalf("Summarize(nil) = %+v, want zero", s)
	}
}

func TestSummarize(t *testing.T) {
	trace := []float64{0, 2, 1, -1, -3, 0, -1, 2}
	s := Summarize(trace, 0.5)

	if s.Length != 8 {
		t.Fatalf("Length = %d, want 8", s.Length)
	}
	if math.Abs(s.Mean-0) > tolerance {
		t.Fatalf("Mean = %v, want 0", s.Mean)
	}
	if want := math.Sqrt(20.0 / 8); math.Abs(s.RMS-want) > tolerance {
		t.Fatalf("RMS = %v, want %v", s.RMS, want)
	}
	if math.Abs(s.StdDev-s.RMS) > tolerance {
		t.Fatalf("StdDev = %v, want RMS of a zero-mean trace %v", s.StdDev, s.RMS)
	}
	if s.Max != 2 || s.MaxPos != 1 || s.Min != -3 || s.MinPos != 4 {
		t.Fatalf("extrema = %v@%d %v@%d", s.Max, s.MaxPos, s.Min, s.MinPos)
	}
	if s.Peak != 3 || s.Range != 5 {
		t.Fatalf("Peak = %v, Range = %v", s.Peak, s.Range)
	}
	if s.ZeroCrossings != 2 {
		t.Fatalf("ZeroCrossings = %d, want 2", s.ZeroCrossings)
	}

	// Trapezoids: (0+2)+(2+1)+(1-1)+(-1-3)+(-3+0)+(0-1)+(-1+2) = -2, times dt/2.
	if math.Abs(s.Charge-(-0.5)) > tolerance {
		t.Fatalf("Charge = %v, want -0.5", s.Charge)
	}
}

func TestSummarizeWithoutTimeBase(t *testing.T) {
	s := Summarize([]float64{1, 1, 1}, 0)
	if s.Charge != 0 {
		t.Fatalf("Charge = %v, want 0 without a time base", s.Charge)
	}
}

func TestChargeOfStaircase(t *testing.T) {
	// A geometric decay 1, r, r², ... sums to 1/(1-r); both ends of the
	// trace are at rest, so the trapezoids add up to the plain sum.
	trace := testutil.StaircaseCurrent(200, 5, 1, 0.5)
	got := Charge(trace, 1e-3)
	if math.Abs(got-5*2*1e-3) > 1e-9 {
		t.Fatalf("Charge = %v, want %v", got, 5*2*1e-3)
	}
	if Charge(trace[:1], 1) != 0 {
		t.Fatal("single sample must carry no charge")
	}
}
