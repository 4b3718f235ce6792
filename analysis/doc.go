// Package analysis reduces a recorded current trace against the waveform
// that produced it.
//
// The potential channel is not recorded by the oscilloscope. It is taken
// from the generated waveform and shifted so that its first step lines up
// with the first step detected in the trace. The current is then reported
// raw, as a moving average, or sampled once per step over the final alpha
// fraction of the step.
package analysis
