// Package waveform builds the idealized potential programmes applied by a
// potentiostat during cyclic linear voltammetry (CV) and cyclic staircase
// voltammetry (CSV).
//
// A sweep is described by a Spec. Spec.Timing validates it and derives the
// window widths, point counts and sample timing shared by both generators.
// The generators are independent functions over the same segment layout:
//
//   - Linear emits one potential per fine discretization step.
//   - Staircase emits one potential per step and holds it for Interval
//     oscilloscope samples.
//
// # Usage
//
//	s := waveform.Spec{
//	    InitialPotential: 0, UpperVertex: 0.5, LowerVertex: 0,
//	    StepSize: 0.002, ScanRate: 0.1, ScanCount: 1,
//	    SampleFrequency: 2000,
//	}
//	wf, err := waveform.Generate(s, waveform.Staircase)
//	if err != nil {
//	    return err
//	}
//	for r := range wf.Records() {
//	    fmt.Println(r.Index, r.Time, r.Potential)
//	}
//
// # Staircase sample ownership
//
// Sample 0 holds the initial potential at t = 0. Step i (1-based) owns the
// samples (i-1)*Interval+1 through i*Interval; its last sample is taken at
// the transition instant i*Interval*SampleDelta. A staircase with N steps
// therefore has 1 + N*Interval samples and a strictly increasing time
// channel.
package waveform
