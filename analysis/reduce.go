package analysis

import (
	"gonum.org/v1/gonum/stat"

	"github.com/MoonshinetheP/oscilloscope-reader/core"
)

// MovingAverage returns the mean of trace[a:a+window] for a = 0, step,
// 2*step, ... while the window fits.
func MovingAverage(trace []float64, window, step int) ([]float64, error) {
	if window < 1 || window > len(trace) {
		return nil, ErrWindow
	}
	if step < 1 {
		return nil, ErrStep
	}

	out := make([]float64, 0, (len(trace)-window)/step+1)
	for a := 0; a <= len(trace)-window; a += step {
		out = append(out, stat.Mean(trace[a:a+window], nil))
	}
	return out, nil
}

// CurrentSampling returns one value per step delimited by consecutive
// boundaries: the mean of the last max(1, round(alpha*len)) samples of the
// step.
func CurrentSampling(trace []float64, boundaries []int, alpha float64) ([]float64, error) {
	if !core.IsFinite(alpha) || alpha <= 0 || alpha > 1 {
		return nil, ErrAlpha
	}
	for i, b := range boundaries {
		if b < 0 || b > len(trace) || (i > 0 && b <= boundaries[i-1]) {
			return nil, ErrBoundaries
		}
	}
	if len(boundaries) < 2 {
		return []float64{}, nil
	}

	out := make([]float64, len(boundaries)-1)
	for i := range out {
		step := trace[boundaries[i]:boundaries[i+1]]
		k := max(1, core.RoundInt(alpha*float64(len(step))))
		out[i] = stat.Mean(step[len(step)-k:], nil)
	}
	return out, nil
}

// Align returns potentials rotated right by shift samples, so that
// out[i] = potentials[i-shift] modulo the length. A negative shift rotates
// left.
func Align(potentials []float64, shift int) []float64 {
	n := len(potentials)
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	s := shift % n
	if s < 0 {
		s += n
	}
	copy(out[s:], potentials[:n-s])
	copy(out[:s], potentials[n-s:])
	return out
}
