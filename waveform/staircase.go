package waveform

import "math"

// GenerateStaircase generates the CSV waveform. The step-level potentials
// follow the same segment layout as the linear waveform, discretized by the
// step size, and every step is held for Timing.Interval samples.
func GenerateStaircase(s Spec) (*Waveform, error) {
	t, err := s.Timing()
	if err != nil {
		return nil, err
	}
	return staircase(s, t), nil
}

func staircase(s Spec, t Timing) *Waveform {
	segs := layout(s, t.Steps, t.UpperSteps, t.LowerSteps)
	inc := math.Abs(s.StepSize)

	nSteps := 1
	for _, seg := range segs {
		nSteps += seg.Steps
	}

	steps := make([]float64, 1, nSteps)
	steps[0] = s.InitialPotential

	for i := range segs {
		seg := &segs[i]
		seg.Offset = 1 + (len(steps)-1)*t.Interval
		seg.Samples = seg.Steps * t.Interval
		steps = append(steps, seg.values(inc)...)
	}

	n := 1 + (len(steps)-1)*t.Interval
	potential := make([]float64, n)
	potential[0] = steps[0]
	for i := 1; i < len(steps); i++ {
		hold := potential[(i-1)*t.Interval+1 : i*t.Interval+1]
		for k := range hold {
			hold[k] = steps[i]
		}
	}

	return &Waveform{
		Kind:      Staircase,
		Spec:      s,
		Timing:    t,
		Segments:  segs,
		Time:      timeBase(n, t.SampleDelta),
		Potential: potential,
		Steps:     steps,
	}
}
