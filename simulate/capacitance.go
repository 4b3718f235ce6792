package simulate

import (
	"fmt"
	"math"

	"github.com/MoonshinetheP/oscilloscope-reader/core"
	"github.com/MoonshinetheP/oscilloscope-reader/waveform"
	"github.com/cwbudde/algo-vecmath"
)

// Default circuit parameters.
const (
	DefaultCapacitance = 5e-5 // F
	DefaultResistance  = 500  // ohm
)

// Capacitance is an ideal RC cell.
type Capacitance struct {
	cd float64
	ru float64
}

// NewCapacitance returns a cell with double-layer capacitance cd (F) and
// uncompensated resistance ru (ohm).
func NewCapacitance(cd, ru float64) (*Capacitance, error) {
	if !core.IsFinite(cd) || cd <= 0 {
		return nil, ErrCapacitance
	}
	if !core.IsFinite(ru) || ru <= 0 {
		return nil, ErrResistance
	}
	return &Capacitance{cd: cd, ru: ru}, nil
}

// Capacitance returns Cd in F.
func (c *Capacitance) Capacitance() float64 { return c.cd }

// Resistance returns Ru in ohm.
func (c *Capacitance) Resistance() float64 { return c.ru }

// TimeConstant returns Ru·Cd in seconds.
func (c *Capacitance) TimeConstant() float64 { return c.ru * c.cd }

// Simulate computes the current response to wf. The trace is aligned
// sample for sample with wf; the first sample carries no current.
func (c *Capacitance) Simulate(wf *waveform.Waveform) (*Trace, error) {
	if wf == nil {
		return nil, ErrNilWaveform
	}

	var current []float64
	switch wf.Kind {
	case waveform.Linear:
		current = c.linear(wf)
	case waveform.Staircase:
		current = c.staircase(wf)
	default:
		return nil, fmt.Errorf("simulate: %w", waveform.ErrUnknownKind)
	}

	return &Trace{Waveform: wf, Current: current}, nil
}

// linear fills each segment with the charging curve of a constant-rate
// sweep, restarted at the segment's first sample.
func (c *Capacitance) linear(wf *waveform.Waveform) []float64 {
	current := make([]float64, wf.Len())

	longest := 0
	for _, seg := range wf.Segments {
		longest = max(longest, seg.Samples)
	}

	rate := wf.Spec.ScanRate * c.cd
	tau := c.TimeConstant()
	base := make([]float64, longest)
	for m := range base {
		base[m] = rate * (1 - math.Exp(-wf.Time[m]/tau))
	}

	for _, seg := range wf.Segments {
		vecmath.ScaleBlock(current[seg.Offset:seg.Offset+seg.Samples], base[:seg.Samples], seg.Direction.Sign())
	}

	return current
}

// staircase superposes the step decays of each segment. The accumulator of
// a segment never sees the steps of a later segment, so the accumulator of
// the longest segment holds every shorter one as a prefix and is computed
// once.
func (c *Capacitance) staircase(wf *waveform.Waveform) []float64 {
	current := make([]float64, wf.Len())
	interval := wf.Timing.Interval

	longest := 0
	for _, seg := range wf.Segments {
		longest = max(longest, seg.Steps)
	}

	acc := superpose(c.decay(wf, longest*interval), longest, interval)

	for _, seg := range wf.Segments {
		vecmath.ScaleBlock(current[seg.Offset:seg.Offset+seg.Samples], acc[:seg.Samples], seg.Direction.Sign())
	}

	return current
}

// decay returns the response to a single step of |dE| over the first n
// samples of the waveform's time base.
func (c *Capacitance) decay(wf *waveform.Waveform, n int) []float64 {
	amp := math.Abs(wf.Spec.StepSize) / c.ru
	tau := c.TimeConstant()

	kernel := make([]float64, n)
	for m := range kernel {
		kernel[m] = amp * math.Exp(-wf.Time[m]/tau)
	}
	return kernel
}

// superpose adds steps delayed copies of kernel, one every interval
// samples, in step order.
func superpose(kernel []float64, steps, interval int) []float64 {
	n := len(kernel)
	acc := make([]float64, n)
	for p := range steps {
		start := p * interval
		vecmath.AddBlockInPlace(acc[start:], kernel[:n-start])
	}
	return acc
}
