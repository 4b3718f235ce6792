package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the largest sample-wise deviation between two traces,
// for comparisons that report the deviation rather than the first offending
// index.
func MaxAbsDiff(got, want []float64) (float64, error) {
	if len(got) != len(want) {
		return 0, fmt.Errorf("trace lengths differ: %d vs %d", len(got), len(want))
	}
	worst := 0.0
	for i, g := range got {
		worst = math.Max(worst, math.Abs(g-want[i]))
	}
	return worst, nil
}

// RequireIntsWithin fails t if got and want differ in length or if any
// index pair is more than slack apart.
func RequireIntsWithin(t *testing.T, got, want []int, slack int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if d := got[i] - want[i]; d > slack || d < -slack {
			t.Fatalf("index %d: got %d, want %d (slack %d)", i, got[i], want[i], slack)
		}
	}
}
