package waveform

import (
	"math"

	"github.com/MoonshinetheP/oscilloscope-reader/core"
)

// maxSampleFrequency keeps the 9-decimal sample delta non-zero.
const maxSampleFrequency = 1e9

// Spec describes a cyclic sweep. Potentials are in V, the scan rate in V/s
// and the sampling frequency in Sa/s.
type Spec struct {
	InitialPotential float64 // start potential
	UpperVertex      float64 // most positive potential
	LowerVertex      float64 // most negative potential
	StepSize         float64 // signed step potential; the sign is the initial scan direction
	ScanRate         float64
	ScanCount        int

	// SampleFrequency is the oscilloscope sampling frequency. Zero selects
	// the natural frequency |ScanRate/StepSize|.
	SampleFrequency float64
}

// NaturalFrequency returns |ScanRate/StepSize|, the sampling frequency at
// which every step lasts exactly one sample.
func (s Spec) NaturalFrequency() float64 {
	return math.Abs(s.ScanRate / s.StepSize)
}

// Validate checks the sweep invariants and returns the first violation.
func (s Spec) Validate() error {
	for _, v := range []float64{s.InitialPotential, s.UpperVertex, s.LowerVertex, s.StepSize, s.ScanRate, s.SampleFrequency} {
		if !core.IsFinite(v) {
			return ErrNonFinite
		}
	}

	if s.UpperVertex <= s.LowerVertex {
		return ErrVertexOrder
	}

	if s.InitialPotential < s.LowerVertex || s.InitialPotential > s.UpperVertex {
		return ErrStartOutsideWindow
	}

	if s.StepSize == 0 {
		return ErrZeroStep
	}

	// Rounded like Timing.Window: a 0.3 V step fits the 0.7-0.4 V window.
	if math.Abs(s.StepSize) > core.Round(s.UpperVertex-s.LowerVertex, 3) {
		return ErrStepTooLarge
	}

	if s.InitialPotential == s.LowerVertex && s.StepSize < 0 {
		return ErrStepDirection
	}

	if s.InitialPotential == s.UpperVertex && s.StepSize > 0 {
		return ErrStepDirection
	}

	if s.ScanRate <= 0 {
		return ErrScanRate
	}

	if s.ScanCount < 1 {
		return ErrScanCount
	}

	if s.SampleFrequency != 0 {
		natural := s.NaturalFrequency()
		if s.SampleFrequency < 0 || s.SampleFrequency > maxSampleFrequency {
			return ErrSampleFrequency
		}
		if s.SampleFrequency < natural && !core.NearlyEqual(s.SampleFrequency, natural, 1e-9) {
			return ErrSampleFrequency
		}
	} else if s.NaturalFrequency() > maxSampleFrequency {
		return ErrSampleFrequency
	}

	return nil
}

// Timing holds the quantities derived from a Spec. It has no identity of
// its own; recompute it whenever the Spec changes.
type Timing struct {
	SampleFrequency float64 // resolved sampling frequency (Sa/s)
	SampleDelta     float64 // 1/SampleFrequency rounded to 9 d.p. (s)
	Interval        int     // samples per staircase step

	Window      float64 // UpperVertex-LowerVertex rounded to 3 d.p.
	UpperWindow float64 // UpperVertex-InitialPotential rounded to 3 d.p.
	LowerWindow float64 // InitialPotential-LowerVertex rounded to 3 d.p.

	// Step counts per window, used by the staircase generator.
	Steps      int
	UpperSteps int
	LowerSteps int

	// Fine sample counts per window, used by the linear generator.
	Points      int
	UpperPoints int
	LowerPoints int

	Duration float64 // total experiment time rounded to 6 d.p. (s)
}

// Timing validates s and derives its timing. Partial windows get their own
// step and point counts; they are never taken from the full window.
func (s Spec) Timing() (Timing, error) {
	if err := s.Validate(); err != nil {
		return Timing{}, err
	}

	freq := s.SampleFrequency
	if freq == 0 {
		freq = s.NaturalFrequency()
	}

	absStep := math.Abs(s.StepSize)
	perVolt := float64(core.RoundInt(freq / s.ScanRate))

	t := Timing{
		SampleFrequency: freq,
		SampleDelta:     core.Round(1/freq, 9),
		Interval:        core.RoundInt(math.Abs(s.StepSize/s.ScanRate) * freq),
		Window:          core.Round(s.UpperVertex-s.LowerVertex, 3),
		UpperWindow:     core.Round(s.UpperVertex-s.InitialPotential, 3),
		LowerWindow:     core.Round(s.InitialPotential-s.LowerVertex, 3),
	}

	t.Steps = core.RoundInt(t.Window / absStep)
	t.UpperSteps = core.RoundInt(t.UpperWindow / absStep)
	t.LowerSteps = core.RoundInt(t.LowerWindow / absStep)

	t.Points = core.RoundInt(t.Window * perVolt)
	t.UpperPoints = core.RoundInt(t.UpperWindow * perVolt)
	t.LowerPoints = core.RoundInt(t.LowerWindow * perVolt)

	if s.startsAtVertex() {
		t.Duration = core.Round(2*float64(s.ScanCount)*t.Window/s.ScanRate, 6)
	} else {
		t.Duration = core.Round(float64(s.ScanCount)*(t.UpperWindow+t.Window+t.LowerWindow)/s.ScanRate, 6)
	}

	if t.SampleDelta == 0 || t.Interval < 1 || t.Steps < 1 || t.Points < 1 {
		return Timing{}, ErrResolution
	}

	return t, nil
}

func (s Spec) startsAtVertex() bool {
	return s.InitialPotential == s.LowerVertex || s.InitialPotential == s.UpperVertex
}
