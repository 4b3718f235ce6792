package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/MoonshinetheP/oscilloscope-reader/config"
	"github.com/MoonshinetheP/oscilloscope-reader/internal/logging"
	"github.com/MoonshinetheP/oscilloscope-reader/waveform"
)

// defaultConversionFactor is the current-to-voltage factor of the
// potentiostat the recordings were made with (A/V).
const defaultConversionFactor = 0.000012

// newFlagSet returns a FlagSet that reports errors instead of exiting.
func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("cvreader "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// settings are the flags shared by every command. Sweep and cell flags
// override the configuration file only when given.
type settings struct {
	configPath string
	kind       string

	initial, upper, lower, step, rate, frequency float64
	scans                                        int

	capacitance, resistance float64
	factor, threshold       float64

	out      string
	logLevel string
	logDev   bool
}

func (s *settings) register(fs *flag.FlagSet) {
	def := config.Default()
	fs.StringVar(&s.configPath, "config", "", "JSON configuration `file`")
	fs.StringVar(&s.kind, "kind", def.Kind.String(), "waveform kind, CV or CSV")

	fs.Float64Var(&s.initial, "eini", def.InitialPotential, "initial potential (V)")
	fs.Float64Var(&s.upper, "eupp", def.UpperVertex, "upper vertex potential (V)")
	fs.Float64Var(&s.lower, "elow", def.LowerVertex, "lower vertex potential (V)")
	fs.Float64Var(&s.step, "de", def.StepSize, "signed step potential (V)")
	fs.Float64Var(&s.rate, "sr", def.ScanRate, "scan rate (V/s)")
	fs.IntVar(&s.scans, "ns", def.ScanCount, "number of scans")
	fs.Float64Var(&s.frequency, "f", def.SampleFrequency, "sampling frequency (Sa/s), 0 for |sr/de|")

	fs.Float64Var(&s.capacitance, "cd", def.DoubleLayerCapacitance, "double layer capacitance (F)")
	fs.Float64Var(&s.resistance, "ru", def.UncompensatedResistance, "uncompensated resistance (ohm)")
	fs.Float64Var(&s.factor, "prf", def.PeakRejectionFactor, "peak rejection factor in (0, 1]")
	fs.Float64Var(&s.threshold, "vt", def.VertexThreshold, "vertex threshold")

	fs.StringVar(&s.out, "out", "", "output `directory`; records go to stdout when empty")
	fs.StringVar(&s.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	fs.BoolVar(&s.logDev, "log-dev", false, "human readable log output")
}

// config loads the configuration file, if any, and applies the flags that
// were set on the command line.
func (s *settings) config(fs *flag.FlagSet) (config.Config, error) {
	cfg := config.Default()
	if s.configPath != "" {
		var err error
		if cfg, err = config.LoadFile(s.configPath); err != nil {
			return config.Config{}, err
		}
	}

	var kindErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "kind":
			cfg.Kind, kindErr = waveform.ParseKind(s.kind)
		case "eini":
			cfg.InitialPotential = s.initial
		case "eupp":
			cfg.UpperVertex = s.upper
		case "elow":
			cfg.LowerVertex = s.lower
		case "de":
			cfg.StepSize = s.step
		case "sr":
			cfg.ScanRate = s.rate
		case "ns":
			cfg.ScanCount = s.scans
		case "f":
			cfg.SampleFrequency = s.frequency
		case "cd":
			cfg.DoubleLayerCapacitance = s.capacitance
		case "ru":
			cfg.UncompensatedResistance = s.resistance
		case "prf":
			cfg.PeakRejectionFactor = s.factor
		case "vt":
			cfg.VertexThreshold = s.threshold
		}
	})
	if kindErr != nil {
		return config.Config{}, usageError("%v", kindErr)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, usageError("%v", err)
	}
	return cfg, nil
}

func (s *settings) logger(command string, stderr io.Writer) (*zap.Logger, error) {
	return logging.New(
		logging.WithLevel(s.logLevel),
		logging.WithDevelopment(s.logDev),
		logging.WithOutput(stderr),
		logging.WithFields(map[string]any{"command": command}),
	)
}

// parse parses args and rejects positional arguments.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() > 0 {
		return usageError("unexpected argument %q", fs.Arg(0))
	}
	return nil
}

func logConfig(logger *zap.Logger, cfg config.Config, wf *waveform.Waveform) {
	t := wf.Timing
	logger.Info("waveform",
		zap.Stringer("kind", cfg.Kind),
		zap.Float64("initial_potential", cfg.InitialPotential),
		zap.Float64("upper_vertex", cfg.UpperVertex),
		zap.Float64("lower_vertex", cfg.LowerVertex),
		zap.Float64("step_size", cfg.StepSize),
		zap.Float64("scan_rate", cfg.ScanRate),
		zap.Int("scan_count", cfg.ScanCount),
		zap.Float64("sample_frequency", t.SampleFrequency),
		zap.Float64("sample_delta", t.SampleDelta),
		zap.Int("interval", wf.Interval()),
		zap.Float64("duration", t.Duration),
		zap.Int("samples", wf.Len()),
	)
}
