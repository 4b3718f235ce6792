// Package config holds the user-facing configuration of a run: the sweep,
// the simulated cell and the detector tuning.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/MoonshinetheP/oscilloscope-reader/core"
	"github.com/MoonshinetheP/oscilloscope-reader/detect"
	"github.com/MoonshinetheP/oscilloscope-reader/simulate"
	"github.com/MoonshinetheP/oscilloscope-reader/waveform"
)

// Config is the configuration object. JSON keys are snake case; a zero
// sample_frequency selects the natural frequency.
type Config struct {
	Kind waveform.Kind `json:"kind"`

	InitialPotential float64 `json:"initial_potential"`
	UpperVertex      float64 `json:"upper_vertex"`
	LowerVertex      float64 `json:"lower_vertex"`
	StepSize         float64 `json:"step_size"`
	ScanRate         float64 `json:"scan_rate"`
	ScanCount        int     `json:"scan_count"`
	SampleFrequency  float64 `json:"sample_frequency"`

	DoubleLayerCapacitance  float64 `json:"double_layer_capacitance"`
	UncompensatedResistance float64 `json:"uncompensated_resistance"`

	PeakRejectionFactor float64 `json:"peak_rejection_factor"`
	VertexThreshold     float64 `json:"vertex_threshold"`
}

// Option mutates a Config. Out-of-range values are ignored.
type Option func(*Config)

// Default returns a single 0 to 0.5 V CV scan at 0.1 V/s in 2 mV steps
// on a 50 µF, 500 ohm cell, with both detector thresholds at 0.5.
func Default() Config {
	return Config{
		Kind:                    waveform.Linear,
		InitialPotential:        0,
		UpperVertex:             0.5,
		LowerVertex:             0,
		StepSize:                0.002,
		ScanRate:                0.1,
		ScanCount:               1,
		DoubleLayerCapacitance:  simulate.DefaultCapacitance,
		UncompensatedResistance: simulate.DefaultResistance,
		PeakRejectionFactor:     0.5,
		VertexThreshold:         0.5,
	}
}

// New applies opts over Default.
func New(opts ...Option) Config {
	cfg := Default()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithKind selects the waveform kind.
func WithKind(kind waveform.Kind) Option {
	return func(cfg *Config) {
		if kind == waveform.Linear || kind == waveform.Staircase {
			cfg.Kind = kind
		}
	}
}

// WithSweep replaces the sweep parameters.
func WithSweep(s waveform.Spec) Option {
	return func(cfg *Config) {
		cfg.InitialPotential = s.InitialPotential
		cfg.UpperVertex = s.UpperVertex
		cfg.LowerVertex = s.LowerVertex
		cfg.StepSize = s.StepSize
		cfg.ScanRate = s.ScanRate
		cfg.ScanCount = s.ScanCount
		cfg.SampleFrequency = s.SampleFrequency
	}
}

// WithCapacitance sets the double-layer capacitance in F.
func WithCapacitance(cd float64) Option {
	return func(cfg *Config) {
		if core.IsFinite(cd) && cd > 0 {
			cfg.DoubleLayerCapacitance = cd
		}
	}
}

// WithResistance sets the uncompensated resistance in ohm.
func WithResistance(ru float64) Option {
	return func(cfg *Config) {
		if core.IsFinite(ru) && ru > 0 {
			cfg.UncompensatedResistance = ru
		}
	}
}

// WithPeakRejectionFactor sets the detector drift filter factor.
func WithPeakRejectionFactor(factor float64) Option {
	return func(cfg *Config) {
		if core.IsFinite(factor) && factor > 0 && factor <= 1 {
			cfg.PeakRejectionFactor = factor
		}
	}
}

// WithVertexThreshold sets the detector vertex threshold.
func WithVertexThreshold(threshold float64) Option {
	return func(cfg *Config) {
		if core.IsFinite(threshold) && threshold > 0 {
			cfg.VertexThreshold = threshold
		}
	}
}

// Load decodes JSON from r over Default. Unknown keys are rejected.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// LoadFile loads the JSON configuration at path.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Spec returns the sweep part of the configuration.
func (c Config) Spec() waveform.Spec {
	return waveform.Spec{
		InitialPotential: c.InitialPotential,
		UpperVertex:      c.UpperVertex,
		LowerVertex:      c.LowerVertex,
		StepSize:         c.StepSize,
		ScanRate:         c.ScanRate,
		ScanCount:        c.ScanCount,
		SampleFrequency:  c.SampleFrequency,
	}
}

// Capacitance returns the simulated cell.
func (c Config) Capacitance() (*simulate.Capacitance, error) {
	return simulate.NewCapacitance(c.DoubleLayerCapacitance, c.UncompensatedResistance)
}

// Detector returns a detector with the configured thresholds, logging to
// logger.
func (c Config) Detector(logger *zap.Logger) (*detect.Detector, error) {
	return detect.New(
		detect.WithPeakRejectionFactor(c.PeakRejectionFactor),
		detect.WithVertexThreshold(c.VertexThreshold),
		detect.WithLogger(logger),
	)
}

// Validate checks every section and returns the first error.
func (c Config) Validate() error {
	if _, err := c.Kind.MarshalText(); err != nil {
		return err
	}
	if err := c.Spec().Validate(); err != nil {
		return err
	}
	if _, err := c.Capacitance(); err != nil {
		return err
	}
	if _, err := c.Detector(nil); err != nil {
		return err
	}
	return nil
}
