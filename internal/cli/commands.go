package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/MoonshinetheP/oscilloscope-reader/analysis"
	"github.com/MoonshinetheP/oscilloscope-reader/core"
	"github.com/MoonshinetheP/oscilloscope-reader/detect"
	"github.com/MoonshinetheP/oscilloscope-reader/plot"
	"github.com/MoonshinetheP/oscilloscope-reader/report"
	"github.com/MoonshinetheP/oscilloscope-reader/scope"
	"github.com/MoonshinetheP/oscilloscope-reader/waveform"
)

func runWaveform(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var s settings
	fs := newFlagSet("waveform", stderr)
	s.register(fs)
	if err := parse(fs, args); err != nil {
		return err
	}

	cfg, err := s.config(fs)
	if err != nil {
		return err
	}
	logger, err := s.logger("waveform", stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	wf, err := waveform.Generate(cfg.Spec(), cfg.Kind)
	if err != nil {
		return err
	}
	logConfig(logger, cfg, wf)
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := writeRecords(s.out, stdout, wf.Records(), report.WaveformFields, cfg.Kind.String(), "waveform")
	if err != nil {
		return err
	}
	if path != "" {
		logger.Info("wrote records", zap.String("path", path))
	}
	return nil
}

func runSimulate(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var s settings
	fs := newFlagSet("simulate", stderr)
	s.register(fs)
	withPlot := fs.Bool("plot", false, "also render a PNG next to the records (requires -out)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *withPlot && s.out == "" {
		return usageError("-plot requires -out")
	}

	cfg, err := s.config(fs)
	if err != nil {
		return err
	}
	logger, err := s.logger("simulate", stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	wf, err := waveform.Generate(cfg.Spec(), cfg.Kind)
	if err != nil {
		return err
	}
	logConfig(logger, cfg, wf)

	cell, err := cfg.Capacitance()
	if err != nil {
		return err
	}
	trace, err := cell.Simulate(wf)
	if err != nil {
		return err
	}
	logger.Info("simulated",
		zap.Float64("capacitance", cell.Capacitance()),
		zap.Float64("resistance", cell.Resistance()),
		zap.Float64("time_constant", cell.TimeConstant()),
	)
	logSummary(logger, trace.Current, wf.Timing.SampleDelta)
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := writeRecords(s.out, stdout, trace.Records(), report.TraceFields, cfg.Kind.String(), "simulation")
	if err != nil {
		return err
	}
	if path == "" {
		return nil
	}
	logger.Info("wrote records", zap.String("path", path))

	if *withPlot {
		png, err := writePlot(path, plot.Panels{
			Title:          cfg.Kind.String() + " simulation",
			Time:           wf.Time,
			Potential:      wf.Potential,
			SweepPotential: wf.Potential,
			Current:        trace.Current,
		})
		if err != nil {
			return err
		}
		logger.Info("wrote plot", zap.String("path", png))
	}
	return nil
}

// recording holds the flags of commands that read an oscilloscope export.
type recording struct {
	input  string
	factor float64
}

func (r *recording) register(fs *flag.FlagSet) {
	fs.StringVar(&r.input, "input", "", "oscilloscope CSV `file`")
	fs.Float64Var(&r.factor, "cf", defaultConversionFactor, "potentiostat current-to-voltage conversion factor (A/V)")
}

func (r *recording) open(sampleRate float64) (*scope.Trace, error) {
	if r.input == "" {
		return nil, usageError("-input is required")
	}
	if !core.IsFinite(r.factor) || r.factor <= 0 {
		return nil, usageError("%v", scope.ErrConversionFactor)
	}
	return scope.Open(r.input, r.factor, sampleRate)
}

func (r *recording) name() string {
	return strings.TrimSuffix(filepath.Base(r.input), filepath.Ext(r.input))
}

func runAnalyze(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		s   settings
		rec recording
	)
	def := analysis.DefaultOptions()
	fs := newFlagSet("analyze", stderr)
	s.register(fs)
	rec.register(fs)
	mode := fs.String("mode", def.Mode.String(), "reduction: raw, moving-average (ma) or current-sampling (cs)")
	window := fs.Int("window", def.Window, "moving average window (samples)")
	step := fs.Int("step", def.Step, "moving average step (samples)")
	alpha := fs.Float64("alpha", def.Alpha, "current sampling fraction of each step in (0, 1]")
	withPlot := fs.Bool("plot", false, "also render a PNG next to the records (requires -out)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *withPlot && s.out == "" {
		return usageError("-plot requires -out")
	}

	m, err := analysis.ParseMode(*mode)
	if err != nil {
		return usageError("%v", err)
	}
	opts := analysis.Options{Mode: m, Window: *window, Step: *step, Alpha: *alpha}

	cfg, err := s.config(fs)
	if err != nil {
		return err
	}
	logger, err := s.logger("analyze", stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	wf, err := waveform.Generate(cfg.Spec(), cfg.Kind)
	if err != nil {
		return err
	}
	logConfig(logger, cfg, wf)

	tr, err := rec.open(wf.Timing.SampleFrequency)
	if err != nil {
		return err
	}
	logSummary(logger, tr.Currents, tr.SampleDelta())
	if err := ctx.Err(); err != nil {
		return err
	}

	det, err := cfg.Detector(logger)
	if err != nil {
		return err
	}
	res, err := analysis.Analyze(tr.Currents, wf, det, opts)
	if err != nil {
		return err
	}
	fields := []zap.Field{
		zap.Stringer("mode", res.Mode),
		zap.String("description", res.Description),
		zap.Int("values", len(res.Currents)),
	}
	if wf.Kind == waveform.Staircase {
		fields = append(fields,
			zap.Int("interval", res.Steps.Interval),
			zap.Int("boundaries", len(res.Steps.Boundaries)),
			zap.Int("shift", res.Shift),
			zap.Int("lower_vertex", res.Vertices.Lower),
			zap.Int("upper_vertex", res.Vertices.Upper),
			zap.Bool("ambiguous", res.Ambiguous),
		)
	}
	logger.Info("analyzed", fields...)

	path, err := writeRecords(s.out, stdout, res.Records(), report.ResultFields, rec.name(), res.Mode.String())
	if err != nil {
		return err
	}
	if path == "" {
		return nil
	}
	logger.Info("wrote records", zap.String("path", path))

	if *withPlot {
		png, err := writePlot(path, plot.Panels{
			Title:          rec.name(),
			Time:           wf.Time,
			Potential:      wf.Potential,
			SweepPotential: res.Potentials,
			Current:        res.Currents,
		})
		if err != nil {
			return err
		}
		logger.Info("wrote plot", zap.String("path", png))
	}
	return nil
}

func runEstimate(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		s   settings
		rec recording
	)
	fs := newFlagSet("estimate", stderr)
	s.register(fs)
	rec.register(fs)
	maxLag := fs.Int("max-lag", 0, "largest interval considered (samples), 0 for half the recording")
	if err := parse(fs, args); err != nil {
		return err
	}

	cfg, err := s.config(fs)
	if err != nil {
		return err
	}
	logger, err := s.logger("estimate", stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	tr, err := rec.open(0)
	if err != nil {
		return err
	}
	logSummary(logger, tr.Currents, 0)
	if err := ctx.Err(); err != nil {
		return err
	}

	interval, err := detect.EstimateInterval(tr.Currents, *maxLag)
	if err != nil {
		return err
	}

	fields := []zap.Field{zap.Int("interval", interval)}
	if cfg.Kind == waveform.Staircase {
		if t, err := cfg.Spec().Timing(); err == nil {
			fields = append(fields, zap.Int("nominal", t.Interval))
		}
	}
	logger.Info("estimated", fields...)

	_, err = fmt.Fprintln(stdout, interval)
	return err
}
