package detect

import (
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// VertexResult locates the scan direction reversals in a window-minimum
// series. Lower and Upper are series indices, or -1 when no candidate
// crossed the threshold.
type VertexResult struct {
	Lower int
	Upper int

	// Every candidate in scan order; the selected vertex is the first.
	LowerCandidates []int
	UpperCandidates []int
}

// WindowMinima returns the minimum of every complete non-overlapping
// window of trace together with the index following each minimum.
func WindowMinima(trace []float64, width int) ([]float64, []int, error) {
	if width < 1 {
		return nil, nil, ErrInvalidInterval
	}
	n := len(trace)
	if n < width {
		return nil, nil, ErrInsufficientData
	}

	values := make([]float64, 0, n/width)
	positions := make([]int, 0, n/width)
	for ix := 0; ix < n-width+1; ix += width {
		at := floats.MinIdx(trace[ix : ix+width])
		values = append(values, trace[ix+at])
		positions = append(positions, ix+at+1)
	}
	return values, positions, nil
}

// DetectVertices scans the first difference of series. A rise of at least
// the vertex threshold at index j marks a lower vertex at j, a fall of at
// least the threshold an upper vertex at j.
//
// When more than one candidate of the same kind is found the first one is
// selected and the result is returned together with ErrAmbiguous.
func (d *Detector) DetectVertices(series []float64) (VertexResult, error) {
	if len(series) < 2 {
		return VertexResult{}, ErrInsufficientData
	}

	res := VertexResult{Lower: -1, Upper: -1}
	thr := d.cfg.threshold
	for j := range len(series) - 1 {
		diff := series[j+1] - series[j]
		switch {
		case diff >= thr:
			res.LowerCandidates = append(res.LowerCandidates, j)
		case diff <= -thr:
			res.UpperCandidates = append(res.UpperCandidates, j)
		}
	}

	if len(res.LowerCandidates) > 0 {
		res.Lower = res.LowerCandidates[0]
	}
	if len(res.UpperCandidates) > 0 {
		res.Upper = res.UpperCandidates[0]
	}

	if len(res.LowerCandidates) > 1 || len(res.UpperCandidates) > 1 {
		d.cfg.logger.Warn("ambiguous vertex",
			zap.Ints("lower_candidates", res.LowerCandidates),
			zap.Ints("upper_candidates", res.UpperCandidates),
			zap.Int("lower", res.Lower),
			zap.Int("upper", res.Upper),
		)
		return res, ErrAmbiguous
	}

	return res, nil
}
