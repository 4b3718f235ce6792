package waveform

import "github.com/MoonshinetheP/oscilloscope-reader/core"

// GenerateLinear generates the CV waveform: one potential per fine
// discretization step, with no interpolation between samples.
func GenerateLinear(s Spec) (*Waveform, error) {
	t, err := s.Timing()
	if err != nil {
		return nil, err
	}
	return linear(s, t), nil
}

func linear(s Spec, t Timing) *Waveform {
	segs := layout(s, t.Points, t.UpperPoints, t.LowerPoints)
	inc := t.Window / float64(t.Points)

	n := 1
	for _, seg := range segs {
		n += seg.Steps
	}

	potential := make([]float64, 1, n)
	potential[0] = s.InitialPotential

	for i := range segs {
		seg := &segs[i]
		seg.Offset = len(potential)
		seg.Samples = seg.Steps
		potential = append(potential, seg.values(inc)...)
	}

	return &Waveform{
		Kind:      Linear,
		Spec:      s,
		Timing:    t,
		Segments:  segs,
		Time:      timeBase(len(potential), t.SampleDelta),
		Potential: potential,
		Steps:     potential,
	}
}

// timeBase returns n sample times i*dt rounded to 9 d.p.
func timeBase(n int, dt float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) * dt
	}
	core.RoundSlice(out, 9)
	return out
}

func linspaceRounded(start, stop float64, num int) []float64 {
	v := core.Linspace(start, stop, num)
	core.RoundSlice(v, 9)
	return v
}
