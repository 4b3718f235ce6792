package cli

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/MoonshinetheP/oscilloscope-reader/plot"
	"github.com/MoonshinetheP/oscilloscope-reader/report"
	"github.com/MoonshinetheP/oscilloscope-reader/stats"
)

// writeRecords writes seq to stdout, or to a timestamped file under dir
// when dir is set. It returns the file path, or "" for stdout.
func writeRecords[R any](dir string, stdout io.Writer, seq iter.Seq[R], fields report.Fields[R], parts ...string) (string, error) {
	if dir == "" {
		w := bufio.NewWriter(stdout)
		if err := report.Write(w, seq, fields); err != nil {
			return "", err
		}
		return "", w.Flush()
	}

	path := filepath.Join(dir, report.FileName(now(), parts...))
	err := create(path, func(w io.Writer) error {
		return report.Write(w, seq, fields)
	})
	return path, err
}

// writePlot renders p next to the records file.
func writePlot(recordsPath string, p plot.Panels) (string, error) {
	path := strings.TrimSuffix(recordsPath, ".txt") + ".png"
	return path, create(path, func(w io.Writer) error {
		return plot.Render(w, p)
	})
}

func create(path string, write func(io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return w.Flush()
}

func logSummary(logger *zap.Logger, trace []float64, dt float64) {
	s := stats.Summarize(trace, dt)
	logger.Info("trace",
		zap.Int("length", s.Length),
		zap.Float64("mean", s.Mean),
		zap.Float64("rms", s.RMS),
		zap.Float64("max", s.Max),
		zap.Int("max_pos", s.MaxPos),
		zap.Float64("min", s.Min),
		zap.Int("min_pos", s.MinPos),
		zap.Float64("charge", s.Charge),
		zap.Int("zero_crossings", s.ZeroCrossings),
	)
}
