package detect

import (
	"math"
	"slices"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// IntervalResult is the outcome of interval detection.
type IntervalResult struct {
	Interval   int   // refined window width in samples
	Boundaries []int // sample after each detected step peak, ascending
	Diffs      []int // spacing between consecutive boundaries
}

// Detect finds the step boundaries of trace given a nominal interval in
// samples. The coarse pass uses the nominal width; the fine pass rescans
// with the smallest spacing that survived the coarse drift filter.
func (d *Detector) Detect(trace []float64, interval int) (IntervalResult, error) {
	if interval < 1 {
		return IntervalResult{}, ErrInvalidInterval
	}
	if len(trace) < interval {
		return IntervalResult{}, ErrInsufficientData
	}

	mag := magnitude(trace)

	coarse := scanPeaks(mag, interval)
	d.cfg.logger.Debug("coarse pass",
		zap.Int("width", interval),
		zap.Int("candidates", len(coarse)),
	)
	if len(coarse) < 2 {
		return IntervalResult{}, ErrInsufficientData
	}

	kept := d.rejectDrift(coarse)
	if len(kept) < 2 {
		return IntervalResult{}, ErrAllRejected
	}

	return d.finePass(mag, slices.Min(differences(kept)))
}

// FinePass rescans trace with the given window width and applies the drift
// filter once.
func (d *Detector) FinePass(trace []float64, width int) (IntervalResult, error) {
	if width < 1 {
		return IntervalResult{}, ErrInvalidInterval
	}
	if len(trace) < width {
		return IntervalResult{}, ErrInsufficientData
	}
	return d.finePass(magnitude(trace), width)
}

func (d *Detector) finePass(mag []float64, width int) (IntervalResult, error) {
	fine := scanPeaks(mag, width)
	d.cfg.logger.Debug("fine pass",
		zap.Int("width", width),
		zap.Int("candidates", len(fine)),
	)
	if len(fine) < 2 {
		return IntervalResult{}, ErrInsufficientData
	}

	kept := d.rejectDrift(fine)
	if len(kept) < 2 {
		return IntervalResult{}, ErrAllRejected
	}

	return IntervalResult{
		Interval:   width,
		Boundaries: kept,
		Diffs:      differences(kept),
	}, nil
}

// scanPeaks returns, for every complete window of the given width, the
// index following the window maximum. Ties resolve to the earliest sample.
func scanPeaks(mag []float64, width int) []int {
	n := len(mag)
	peaks := make([]int, 0, n/width)
	for ix := 0; ix < n-width+1; ix += width {
		peaks = append(peaks, ix+floats.MaxIdx(mag[ix:ix+width])+1)
	}
	return peaks
}

// rejectDrift drops every boundary whose spacing from its predecessor in
// the candidate sequence is below factor times the mean spacing. Spacings
// are taken from the candidates as given, not recomputed after a removal.
func (d *Detector) rejectDrift(bounds []int) []int {
	diffs := differences(bounds)
	spacing := make([]float64, len(diffs))
	for i, v := range diffs {
		spacing[i] = float64(v)
	}
	limit := d.cfg.factor * stat.Mean(spacing, nil)

	kept := make([]int, 1, len(bounds))
	kept[0] = bounds[0]
	for j, diff := range diffs {
		if float64(diff) < limit {
			d.cfg.logger.Debug("rejected boundary",
				zap.Int("boundary", bounds[j+1]),
				zap.Int("spacing", diff),
				zap.Float64("limit", limit),
			)
			continue
		}
		kept = append(kept, bounds[j+1])
	}
	return kept
}

func differences(x []int) []int {
	if len(x) < 2 {
		return nil
	}
	out := make([]int, len(x)-1)
	for i := range out {
		out[i] = x[i+1] - x[i]
	}
	return out
}

func magnitude(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = math.Abs(v)
	}
	return out
}
