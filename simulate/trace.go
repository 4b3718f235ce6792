package simulate

import (
	"iter"

	"github.com/MoonshinetheP/oscilloscope-reader/waveform"
)

// Trace is a simulated current response aligned with its waveform.
type Trace struct {
	Waveform *waveform.Waveform
	Current  []float64 // A
}

// Record is one sample of a simulated trace.
type Record struct {
	Index     int
	Time      float64
	Potential float64
	Current   float64
}

// Len returns the number of samples.
func (t *Trace) Len() int {
	return len(t.Current)
}

// Records returns the samples in ascending index order. The sequence can be
// ranged over any number of times.
func (t *Trace) Records() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		wf := t.Waveform
		for i, cur := range t.Current {
			r := Record{Index: i, Time: wf.Time[i], Potential: wf.Potential[i], Current: cur}
			if !yield(r) {
				return
			}
		}
	}
}
