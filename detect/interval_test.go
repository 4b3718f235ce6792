package detect

import (
	"errors"
	"math"
	"slices"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/MoonshinetheP/oscilloscope-reader/internal/testutil"
	"github.com/MoonshinetheP/oscilloscope-reader/simulate"
	"github.com/MoonshinetheP/oscilloscope-reader/waveform"
)

func mustDetector(t *testing.T, opts ...Option) *Detector {
	t.Helper()
	d, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return d
}

func simulatedStaircase(t *testing.T, s waveform.Spec) (*waveform.Waveform, []float64) {
	t.Helper()
	return simulatedStaircaseOn(t, s, 5e-5, 10)
}

func simulatedStaircaseOn(t *testing.T, s waveform.Spec, cd, ru float64) (*waveform.Waveform, []float64) {
	t.Helper()
	wf, err := waveform.GenerateStaircase(s)
	if err != nil {
		t.Fatalf("GenerateStaircase() error = %v", err)
	}
	c, err := simulate.NewCapacitance(cd, ru)
	if err != nil {
		t.Fatalf("NewCapacitance() error = %v", err)
	}
	tr, err := c.Simulate(wf)
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	return wf, tr.Current
}

func TestNewOptions(t *testing.T) {
	d := mustDetector(t)
	if d.PeakRejectionFactor() != 0.5 || d.VertexThreshold() != 0.5 {
		t.Fatalf("defaults = %v, %v", d.PeakRejectionFactor(), d.VertexThreshold())
	}

	d = mustDetector(t, WithPeakRejectionFactor(0.3), WithVertexThreshold(2), WithLogger(nil), nil)
	if d.PeakRejectionFactor() != 0.3 || d.VertexThreshold() != 2 {
		t.Fatalf("configured = %v, %v", d.PeakRejectionFactor(), d.VertexThreshold())
	}

	tests := []struct {
		name string
		opt  Option
		want error
	}{
		{"zero factor", WithPeakRejectionFactor(0), ErrInvalidFactor},
		{"factor above one", WithPeakRejectionFactor(1.5), ErrInvalidFactor},
		{"nan factor", WithPeakRejectionFactor(math.NaN()), ErrInvalidFactor},
		{"negative threshold", WithVertexThreshold(-1), ErrInvalidThreshold},
		{"infinite threshold", WithVertexThreshold(math.Inf(1)), ErrInvalidThreshold},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opt); !errors.Is(err, tt.want) {
				t.Fatalf("New() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDetectRoundTrip(t *testing.T) {
	specs := map[string]waveform.Spec{
		"lower start": {InitialPotential: 0, UpperVertex: 0.5, LowerVertex: 0, StepSize: 0.05, ScanRate: 0.5, ScanCount: 2, SampleFrequency: 200},
		"between":     {InitialPotential: 0.2, UpperVertex: 0.5, LowerVertex: 0, StepSize: 0.05, ScanRate: 0.5, ScanCount: 1, SampleFrequency: 200},
		"upper start": {InitialPotential: 0.5, UpperVertex: 0.5, LowerVertex: 0, StepSize: -0.05, ScanRate: 0.5, ScanCount: 1, SampleFrequency: 200},
		// 20 ms steps: the default time constant outlasts each step.
		"short steps": {InitialPotential: 0, UpperVertex: 0.1, LowerVertex: 0, StepSize: 0.002, ScanRate: 0.1, ScanCount: 1, SampleFrequency: 2500},
	}
	circuits := map[string]struct{ cd, ru float64 }{
		"fast":    {5e-5, 10},
		"default": {simulate.DefaultCapacitance, simulate.DefaultResistance},
	}

	for name, s := range specs {
		for circuit, c := range circuits {
			t.Run(name+"/"+circuit, func(t *testing.T) {
				wf, trace := simulatedStaircaseOn(t, s, c.cd, c.ru)

				res, err := mustDetector(t).Detect(trace, wf.Interval())
				if err != nil {
					t.Fatalf("Detect() error = %v", err)
				}
				if res.Interval != wf.Interval() {
					t.Fatalf("Interval = %d, want %d", res.Interval, wf.Interval())
				}

				want := make([]int, len(wf.Steps)-1)
				for i := range want {
					want[i] = wf.StepStart(i + 1)
				}
				testutil.RequireIntsWithin(t, res.Boundaries, want, 1)
			})
		}
	}
}

func TestDetectCorrectsShortNominalInterval(t *testing.T) {
	trace := testutil.StaircaseCurrent(10, 30, 1, 0.3)

	res, err := mustDetector(t).Detect(trace, 7)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if res.Interval != 10 {
		t.Fatalf("Interval = %d, want 10", res.Interval)
	}

	want := make([]int, 30)
	for p := range want {
		want[p] = p*10 + 2
	}
	testutil.RequireIntsWithin(t, res.Boundaries, want, 0)
	for i, d := range res.Diffs {
		if d != 10 {
			t.Fatalf("Diffs[%d] = %d, want 10", i, d)
		}
	}
}

func TestDetectRejectsInjectedSpike(t *testing.T) {
	clean := testutil.StaircaseCurrent(10, 20, 1, 0.3)
	trace := testutil.InjectSpike(clean, 59, 5)

	det := mustDetector(t)
	ref, err := det.Detect(clean, 10)
	if err != nil {
		t.Fatalf("Detect(clean) error = %v", err)
	}

	res, err := det.Detect(trace, 10)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if len(res.Boundaries) > len(ref.Boundaries) {
		t.Fatalf("spike added boundaries: %d > %d", len(res.Boundaries), len(ref.Boundaries))
	}
	for _, b := range res.Boundaries {
		near := slices.ContainsFunc(ref.Boundaries, func(r int) bool { return b >= r-2 && b <= r+2 })
		if !near {
			t.Fatalf("boundary %d is not near any step start %v", b, ref.Boundaries)
		}
	}
	for i, d := range res.Diffs {
		if d < 5 {
			t.Fatalf("Diffs[%d] = %d survived the drift filter", i, d)
		}
	}
}

func TestRejectDriftRemovesLaterBoundary(t *testing.T) {
	d := mustDetector(t)

	got := d.rejectDrift([]int{2, 12, 14, 22, 32})
	want := []int{2, 12, 22, 32}
	if !slices.Equal(got, want) {
		t.Fatalf("rejectDrift() = %v, want %v", got, want)
	}

	// Spacings come from the candidates as given.
	got = d.rejectDrift([]int{0, 10, 11, 12, 22})
	want = []int{0, 10, 22}
	if !slices.Equal(got, want) {
		t.Fatalf("rejectDrift() = %v, want %v", got, want)
	}
}

func TestFinePassIdempotent(t *testing.T) {
	s := waveform.Spec{InitialPotential: 0, UpperVertex: 0.5, LowerVertex: 0, StepSize: 0.05, ScanRate: 0.5, ScanCount: 2, SampleFrequency: 200}
	_, trace := simulatedStaircase(t, s)
	noisy := testutil.AddNoise(trace, 11, 1e-6)

	d := mustDetector(t)
	for _, tc := range []struct {
		trace   []float64
		nominal int
	}{
		{trace, 17},
		{noisy, 20},
	} {
		tr := tc.trace
		res, err := d.Detect(tr, tc.nominal)
		if err != nil {
			t.Fatalf("Detect() error = %v", err)
		}

		again, err := d.FinePass(tr, res.Interval)
		if err != nil {
			t.Fatalf("FinePass() error = %v", err)
		}
		if !slices.Equal(again.Boundaries, res.Boundaries) {
			t.Fatalf("FinePass() = %v, want %v", again.Boundaries, res.Boundaries)
		}
		if kept := d.rejectDrift(res.Boundaries); !slices.Equal(kept, res.Boundaries) {
			t.Fatalf("refined boundaries lost %d entries on refiltering", len(res.Boundaries)-len(kept))
		}
	}
}

func TestDetectErrors(t *testing.T) {
	d := mustDetector(t)
	trace := testutil.StaircaseCurrent(10, 1, 1, 0.5)

	tests := []struct {
		name     string
		trace    []float64
		interval int
		want     error
	}{
		{"zero interval", trace, 0, ErrInvalidInterval},
		{"shorter than interval", trace[:5], 10, ErrInsufficientData},
		{"single window", trace, 10, ErrInsufficientData},
		{"empty", nil, 1, ErrInsufficientData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := d.Detect(tt.trace, tt.interval)
			if !errors.Is(err, tt.want) || !errors.Is(err, ErrDetection) {
				t.Fatalf("Detect() error = %v, want %v", err, tt.want)
			}
			if res.Boundaries != nil {
				t.Fatalf("partial result returned: %+v", res)
			}
		})
	}

	if _, err := d.FinePass(trace, 0); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("FinePass(0) error = %v", err)
	}
	if _, err := d.FinePass(trace, 50); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("FinePass(50) error = %v", err)
	}
}

func TestDetectLogsRejections(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	d := mustDetector(t, WithLogger(zap.New(core)))

	if _, err := d.Detect(testutil.StaircaseCurrent(10, 30, 1, 0.3), 7); err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if logs.FilterMessage("coarse pass").Len() != 1 || logs.FilterMessage("fine pass").Len() != 1 {
		t.Fatalf("pass logs = %v", logs.All())
	}
	if logs.FilterMessage("rejected boundary").Len() == 0 {
		t.Fatal("expected rejected boundary logs")
	}
}
