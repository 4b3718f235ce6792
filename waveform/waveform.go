package waveform

import (
	"fmt"
	"iter"
	"strings"
)

// Kind selects the waveform generator.
type Kind int

// Waveform kinds.
const (
	Linear    Kind = iota // cyclic linear voltammetry (CV)
	Staircase             // cyclic staircase voltammetry (CSV)
)

// String returns the conventional technique label, "CV" or "CSV".
func (k Kind) String() string {
	switch k {
	case Linear:
		return "CV"
	case Staircase:
		return "CSV"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses a technique label. It accepts "CV"/"linear" and
// "CSV"/"staircase" in any case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cv", "linear":
		return Linear, nil
	case "csv", "staircase":
		return Staircase, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k != Linear && k != Staircase {
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseKind.
func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Waveform is a generated potential programme. It is immutable once
// generated; callers must not modify its slices.
type Waveform struct {
	Kind     Kind
	Spec     Spec
	Timing   Timing
	Segments []Segment

	Time      []float64 // seconds, strictly increasing
	Potential []float64 // volts, aligned with Time

	// Steps is the step-level potential sequence starting with the initial
	// potential. For a linear waveform every sample is a step.
	Steps []float64
}

// Record is one sample of a waveform.
type Record struct {
	Index     int
	Time      float64
	Potential float64
}

// Generate builds the waveform of the given kind for s.
func Generate(s Spec, kind Kind) (*Waveform, error) {
	switch kind {
	case Linear:
		return GenerateLinear(s)
	case Staircase:
		return GenerateStaircase(s)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}
}

// Len returns the number of samples.
func (w *Waveform) Len() int {
	return len(w.Potential)
}

// Interval returns the number of samples each step occupies.
func (w *Waveform) Interval() int {
	if w.Kind == Staircase {
		return w.Timing.Interval
	}
	return 1
}

// StepStart returns the index of the first sample of step i, where step 0
// is the initial potential.
func (w *Waveform) StepStart(i int) int {
	if w.Kind != Staircase || i == 0 {
		return i
	}
	return (i-1)*w.Timing.Interval + 1
}

// Records returns the samples in ascending index order. The sequence can be
// ranged over any number of times.
func (w *Waveform) Records() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for i := range w.Potential {
			if !yield(Record{Index: i, Time: w.Time[i], Potential: w.Potential[i]}) {
				return
			}
		}
	}
}
