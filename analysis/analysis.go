package analysis

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/MoonshinetheP/oscilloscope-reader/detect"
	"github.com/MoonshinetheP/oscilloscope-reader/waveform"
)

// Mode selects the reduction applied by Analyze.
type Mode int

// Reduction modes.
const (
	ModeRaw Mode = iota
	ModeMovingAverage
	ModeCurrentSampling
)

func (m Mode) String() string {
	switch m {
	case ModeRaw:
		return "raw"
	case ModeMovingAverage:
		return "moving-average"
	case ModeCurrentSampling:
		return "current-sampling"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "raw", "moving-average"/"ma" or "current-sampling"/"cs".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "raw", "":
		return ModeRaw, nil
	case "moving-average", "ma":
		return ModeMovingAverage, nil
	case "current-sampling", "cs":
		return ModeCurrentSampling, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrMode, s)
	}
}

// Options parameterizes Analyze.
type Options struct {
	Mode   Mode
	Window int     // moving average window in samples
	Step   int     // moving average stride in samples
	Alpha  float64 // sampled fraction of each step
}

// DefaultOptions returns raw mode with a 1000 sample window, a stride of
// 100 and alpha 0.5.
func DefaultOptions() Options {
	return Options{Mode: ModeRaw, Window: 1000, Step: 100, Alpha: 0.5}
}

// Result is a reduced trace.
type Result struct {
	Mode        Mode
	Description string

	// Step detection, staircase waveforms only.
	Steps    detect.IntervalResult
	Shift    int // samples the expected potentials were rotated by
	Vertices detect.VertexResult

	// Ambiguous reports that vertex detection found several candidates.
	Ambiguous bool

	Potentials []float64
	Currents   []float64
}

// Record is one reduced sample.
type Record struct {
	Index     int
	Potential float64
	Current   float64
}

// Records returns the reduced samples in order. The sequence can be ranged
// over any number of times.
func (r *Result) Records() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for i, cur := range r.Currents {
			if !yield(Record{Index: i, Potential: r.Potentials[i], Current: cur}) {
				return
			}
		}
	}
}

// Analyze reduces trace, recorded while wf was applied. For a staircase
// waveform the steps are detected with det and the expected potentials are
// aligned to the first detected step; a linear waveform is used as is.
func Analyze(trace []float64, wf *waveform.Waveform, det *detect.Detector, opts Options) (*Result, error) {
	if wf == nil || det == nil {
		return nil, ErrNilInput
	}
	if len(trace) == 0 {
		return nil, ErrEmptyTrace
	}

	res := &Result{Mode: opts.Mode}
	potentials := wf.Potential

	if wf.Kind == waveform.Staircase {
		steps, err := det.Detect(trace, wf.Interval())
		if err != nil {
			return nil, fmt.Errorf("analysis: %w", err)
		}
		res.Steps = steps
		res.Shift = steps.Boundaries[0] - (wf.StepStart(1) + 1)
		potentials = Align(potentials, res.Shift)

		minima, _, err := detect.WindowMinima(trace, steps.Interval)
		if err != nil {
			return nil, fmt.Errorf("analysis: %w", err)
		}
		res.Vertices, err = det.DetectVertices(minima)
		switch {
		case errors.Is(err, detect.ErrAmbiguous):
			res.Ambiguous = true
		case err != nil:
			return nil, fmt.Errorf("analysis: %w", err)
		}
	}

	switch opts.Mode {
	case ModeRaw:
		n := min(len(trace), len(potentials))
		res.Description = "no formatting"
		res.Currents = trace[:n]
		res.Potentials = potentials[:n]

	case ModeMovingAverage:
		cur, err := MovingAverage(trace, opts.Window, opts.Step)
		if err != nil {
			return nil, err
		}
		pot := make([]float64, 0, len(cur))
		for i := range cur {
			a := i * opts.Step
			if a >= len(potentials) {
				break
			}
			pot = append(pot, potentials[a])
		}
		res.Description = fmt.Sprintf("a moving average using a %d window and %d steps", opts.Window, opts.Step)
		res.Currents = cur[:len(pot)]
		res.Potentials = pot

	case ModeCurrentSampling:
		if wf.Kind != waveform.Staircase {
			return nil, ErrLinearSample
		}
		// Boundaries mark the sample after each step's onset.
		starts := make([]int, len(res.Steps.Boundaries), len(res.Steps.Boundaries)+1)
		for i, b := range res.Steps.Boundaries {
			starts[i] = b - 1
		}
		last := starts[len(starts)-1]
		if closing := min(len(trace), last+res.Steps.Interval); closing > last {
			starts = append(starts, closing)
		}
		cur, err := CurrentSampling(trace, starts, opts.Alpha)
		if err != nil {
			return nil, err
		}
		pot := make([]float64, 0, len(cur))
		for _, s := range starts[:len(cur)] {
			if s >= len(potentials) {
				break
			}
			pot = append(pot, potentials[s])
		}
		res.Description = fmt.Sprintf("current sampling using an alpha of %g", opts.Alpha)
		res.Currents = cur[:len(pot)]
		res.Potentials = pot

	default:
		return nil, fmt.Errorf("%w: %v", ErrMode, opts.Mode)
	}

	return res, nil
}
