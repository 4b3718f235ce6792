package core

import (
	"math"
	"testing"
)

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
	if !NearlyEqual(0, 0, 0) {
		t.Fatal("expected zeros to be equal with default epsilon")
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1.5) {
		t.Fatal("1.5 should be finite")
	}
	if IsFinite(math.NaN()) || IsFinite(math.Inf(1)) || IsFinite(math.Inf(-1)) {
		t.Fatal("NaN and Inf must not be finite")
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		places int32
		want   float64
	}{
		{name: "tie down to even", value: 2.5, places: 0, want: 2},
		{name: "tie up to even", value: 3.5, places: 0, want: 4},
		{name: "three places", value: 0.12345, places: 3, want: 0.123},
		{name: "decimal tie to even", value: 0.0625, places: 3, want: 0.062},
		{name: "decimal tie up", value: 0.0635, places: 3, want: 0.064},
		{name: "window", value: 0.85 - (-0.65), places: 3, want: 1.5},
		{name: "float noise", value: 0.1 + 0.2, places: 9, want: 0.3},
		{name: "negative", value: -0.0005, places: 3, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round(tt.value, tt.places)
			if got != tt.want {
				t.Fatalf("Round(%v, %d) = %v, want %v", tt.value, tt.places, got, tt.want)
			}
		})
	}
}

func TestRoundNonFinite(t *testing.T) {
	if !math.IsNaN(Round(math.NaN(), 3)) {
		t.Fatal("NaN should pass through")
	}
	if !math.IsInf(Round(math.Inf(1), 3), 1) {
		t.Fatal("+Inf should pass through")
	}
}

func TestRoundInt(t *testing.T) {
	tests := []struct {
		value float64
		want  int
	}{
		{2.5, 2},
		{3.5, 4},
		{-2.5, -2},
		{4.4999, 4},
		{250.0000001, 250},
	}
	for _, tt := range tests {
		if got := RoundInt(tt.value); got != tt.want {
			t.Fatalf("RoundInt(%v) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestRoundSlice(t *testing.T) {
	x := []float64{0.1 + 0.2, 0.123456789, 1.0000000004, -0.3000000004}
	RoundSlice(x, 9)
	want := []float64{0.3, 0.123456789, 1, -0.3}
	for i := range want {
		if x[i] != want[i] {
			t.Fatalf("x[%d] = %v, want %v", i, x[i], want[i])
		}
	}
}

func TestLinspace(t *testing.T) {
	t.Run("endpoints", func(t *testing.T) {
		got := Linspace(0, 1, 5)
		want := []float64{0, 0.25, 0.5, 0.75, 1}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("got[%d] = %v, want %v", i, got[i], want[i])
			}
		}
	})

	t.Run("exact stop", func(t *testing.T) {
		got := Linspace(0.1, 0.7, 7)
		if got[len(got)-1] != 0.7 {
			t.Fatalf("last = %v, want 0.7", got[len(got)-1])
		}
		if got[0] != 0.1 {
			t.Fatalf("first = %v, want 0.1", got[0])
		}
	})

	t.Run("descending", func(t *testing.T) {
		got := Linspace(0.4, 0, 5)
		RoundSlice(got, 9)
		want := []float64{0.4, 0.3, 0.2, 0.1, 0}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("got[%d] = %v, want %v", i, got[i], want[i])
			}
		}
	})

	t.Run("single", func(t *testing.T) {
		got := Linspace(2, 3, 1)
		if len(got) != 1 || got[0] != 2 {
			t.Fatalf("Linspace(2, 3, 1) = %v, want [2]", got)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if got := Linspace(2, 3, 0); len(got) != 0 {
			t.Fatalf("Linspace(2, 3, 0) = %v, want empty", got)
		}
	})

	t.Run("constant", func(t *testing.T) {
		got := Linspace(1.5, 1.5, 4)
		for i, v := range got {
			if v != 1.5 {
				t.Fatalf("got[%d] = %v, want 1.5", i, v)
			}
		}
	})
}
