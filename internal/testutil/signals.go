package testutil

import (
	"math/rand"
)

// StaircaseCurrent returns an idealized staircase charging trace: one
// resting sample of 0 followed by steps blocks of interval samples, each
// starting at peak and decaying geometrically by ratio per sample. Step p
// starts at sample p*interval+1.
func StaircaseCurrent(interval, steps int, peak, ratio float64) []float64 {
	out := make([]float64, 1+interval*steps)
	for p := range steps {
		v := peak
		for m := range interval {
			out[p*interval+1+m] = v
			v *= ratio
		}
	}
	return out
}

// InjectSpike returns a copy of trace with the sample at pos set to value.
func InjectSpike(trace []float64, pos int, value float64) []float64 {
	out := make([]float64, len(trace))
	copy(out, trace)
	if pos >= 0 && pos < len(out) {
		out[pos] = value
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// AddNoise returns trace plus deterministic noise of the given amplitude.
func AddNoise(trace []float64, seed int64, amplitude float64) []float64 {
	noise := DeterministicNoise(seed, amplitude, len(trace))
	for i, v := range trace {
		noise[i] += v
	}
	return noise
}
