// Package stats summarizes current traces.
package stats

import (
	"math"

	"gonum.org/v1/gonum/integrate"
)

// Summary holds the statistics of a current trace.
type Summary struct {
	Length        int
	Mean          float64
	RMS           float64
	StdDev        float64 // population standard deviation
	Max           float64
	MaxPos        int
	Min           float64
	MinPos        int
	Peak          float64 // max(|Max|, |Min|)
	Range         float64 // Max - Min
	Charge        float64 // trapezoidal integral of the trace over time (C)
	ZeroCrossings int     // sign reversals, one per scan direction change of a capacitive response
}

// Summarize computes the summary of trace in a single pass. dt is the
// sample spacing in seconds; when it is not positive Charge is left at 0.
func Summarize(trace []float64, dt float64) Summary {
	n := len(trace)
	if n == 0 {
		return Summary{}
	}

	var (
		mean   float64
		m2     float64
		sumSq  float64
		maxVal = trace[0]
		maxPos int
		minVal = trace[0]
		minPos int
		zc     int
		prev   float64
	)

	for i, x := range trace {
		// Welford update.
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)

		sumSq += x * x

		if x > maxVal {
			maxVal = x
			maxPos = i
		}
		if x < minVal {
			minVal = x
			minPos = i
		}

		// Zeros do not reset the sign, so a rest sample between segments
		// of opposite sign still counts as one reversal.
		if x != 0 {
			if prev*x < 0 {
				zc++
			}
			prev = x
		}
	}

	nf := float64(n)
	s := Summary{
		Length:        n,
		Mean:          mean,
		RMS:           math.Sqrt(sumSq / nf),
		StdDev:        math.Sqrt(m2 / nf),
		Max:           maxVal,
		MaxPos:        maxPos,
		Min:           minVal,
		MinPos:        minPos,
		Peak:          math.Max(math.Abs(maxVal), math.Abs(minVal)),
		Range:         maxVal - minVal,
		ZeroCrossings: zc,
	}

	if dt > 0 && n > 1 {
		s.Charge = Charge(trace, dt)
	}

	return s
}

// Charge integrates trace over time with the trapezoidal rule. It returns 0
// for fewer than two samples.
func Charge(trace []float64, dt float64) float64 {
	if len(trace) < 2 {
		return 0
	}
	x := make([]float64, len(trace))
	for i := range x {
		x[i] = float64(i) * dt
	}
	return integrate.Trapezoidal(x, trace)
}
