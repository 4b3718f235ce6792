// Package core holds the numeric primitives shared by the waveform
// generators, the simulator and the detectors.
package core

import (
	"math"

	"github.com/shopspring/decimal"
)

const defaultEpsilon = 1e-12

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Round rounds x to the given number of decimal places, resolving ties to
// the even neighbour. The tie is decided on the shortest decimal
// representation of x, so Round(0.0625, 3) is 0.062 and Round(0.0635, 3)
// is 0.064.
//
// Use Round for scalar derivations; RoundSlice is the cheaper variant for
// long sample channels.
func Round(x float64, places int32) float64 {
	if !IsFinite(x) {
		return x
	}

	f, _ := decimal.NewFromFloat(x).RoundBank(places).Float64()
	return f
}

// RoundInt rounds x to the nearest integer, ties to even.
func RoundInt(x float64) int {
	return int(math.RoundToEven(x))
}

// RoundSlice rounds every element of x in place to the given number of
// decimal places by scaling, rounding half to even and scaling back.
func RoundSlice(x []float64, places int) {
	scale := math.Pow(10, float64(places))
	for i, v := range x {
		x[i] = math.RoundToEven(v*scale) / scale
	}
}

// Linspace returns num evenly spaced values over [start, stop]. The last
// value is exactly stop when num > 1; a single value is start. Values are
// computed as start + i*step so repeated calls reproduce bit for bit.
func Linspace(start, stop float64, num int) []float64 {
	if num <= 0 {
		return []float64{}
	}

	out := make([]float64, num)
	if num == 1 {
		out[0] = start
		return out
	}

	div := float64(num - 1)
	delta := stop - start
	step := delta / div

	if step == 0 {
		for i := range out {
			out[i] = float64(i)/div*delta + start
		}
	} else {
		for i := range out {
			out[i] = float64(i)*step + start
		}
	}

	out[num-1] = stop
	return out
}
