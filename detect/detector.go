package detect

import (
	"go.uber.org/zap"

	"github.com/MoonshinetheP/oscilloscope-reader/core"
)

const (
	defaultPeakRejectionFactor = 0.5
	defaultVertexThreshold     = 0.5
)

type config struct {
	factor    float64
	threshold float64
	logger    *zap.Logger
}

func defaultConfig() config {
	return config{
		factor:    defaultPeakRejectionFactor,
		threshold: defaultVertexThreshold,
		logger:    zap.NewNop(),
	}
}

// Option configures a [Detector].
type Option func(*config) error

// WithPeakRejectionFactor sets the drift filter factor (default 0.5). A
// boundary whose spacing from its predecessor is below factor times the
// mean spacing is discarded.
func WithPeakRejectionFactor(factor float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(factor) || factor <= 0 || factor > 1 {
			return ErrInvalidFactor
		}
		cfg.factor = factor
		return nil
	}
}

// WithVertexThreshold sets the minimum jump in the window-minimum series
// that counts as a vertex (default 0.5, in trace units).
func WithVertexThreshold(threshold float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(threshold) || threshold <= 0 {
			return ErrInvalidThreshold
		}
		cfg.threshold = threshold
		return nil
	}
}

// WithLogger sets the logger for pass statistics and rejected candidates.
// A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) error {
		if logger == nil {
			logger = zap.NewNop()
		}
		cfg.logger = logger
		return nil
	}
}

// Detector locates step boundaries and vertices. It holds no per-run state
// and is safe for concurrent use.
type Detector struct {
	cfg config
}

// New returns a detector configured by opts.
func New(opts ...Option) (*Detector, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &Detector{cfg: cfg}, nil
}

// PeakRejectionFactor returns the drift filter factor.
func (d *Detector) PeakRejectionFactor() float64 { return d.cfg.factor }

// VertexThreshold returns the vertex threshold.
func (d *Detector) VertexThreshold() float64 { return d.cfg.threshold }
