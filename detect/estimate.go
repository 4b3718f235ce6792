package detect

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// EstimateInterval estimates the step interval of trace in samples from
// the autocorrelation of its mean-removed magnitude. The lobe around lag
// zero is skipped and the strongest lag up to maxLag is returned. A
// non-positive maxLag searches up to half the trace length.
func EstimateInterval(trace []float64, maxLag int) (int, error) {
	n := len(trace)
	if n < 4 {
		return 0, ErrInsufficientData
	}
	if maxLag <= 0 || maxLag > n/2 {
		maxLag = n / 2
	}

	ac, err := autocorrelate(magnitude(trace))
	if err != nil {
		return 0, err
	}

	k := 1
	for k <= maxLag && ac[k] < ac[k-1] {
		k++
	}
	if k > maxLag {
		return 0, ErrInsufficientData
	}

	return k + floats.MaxIdx(ac[k:maxLag+1]), nil
}

// autocorrelate returns the linear autocorrelation of x with its mean
// removed, for lags 0..len(x)-1.
func autocorrelate(x []float64) ([]float64, error) {
	n := len(x)
	size := nextPowerOf2(2 * n)

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("detect: failed to create FFT plan: %w", err)
	}

	mean := stat.Mean(x, nil)
	in := make([]complex128, size)
	for i, v := range x {
		in[i] = complex(v-mean, 0)
	}

	spec := make([]complex128, size)
	if err := plan.Forward(spec, in); err != nil {
		return nil, fmt.Errorf("detect: forward FFT failed: %w", err)
	}
	for i, c := range spec {
		spec[i] = complex(real(c)*real(c)+imag(c)*imag(c), 0)
	}

	out := make([]complex128, size)
	if err := plan.Inverse(out, spec); err != nil {
		return nil, fmt.Errorf("detect: inverse FFT failed: %w", err)
	}

	ac := make([]float64, n)
	for i := range ac {
		ac[i] = real(out[i])
	}
	return ac, nil
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << int(math.Ceil(math.Log2(float64(n))))
}
