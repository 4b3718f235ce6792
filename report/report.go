// Package report writes record sequences as flat comma separated text.
package report

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
	"time"

	"github.com/MoonshinetheP/oscilloscope-reader/analysis"
	"github.com/MoonshinetheP/oscilloscope-reader/simulate"
	"github.com/MoonshinetheP/oscilloscope-reader/waveform"
)

// Fields flattens a record into its output columns.
type Fields[R any] func(R) []float64

// Write writes one line per record of seq, columns separated by commas and
// formatted in their shortest exact form.
func Write[R any](w io.Writer, seq iter.Seq[R], fields Fields[R]) error {
	bw := bufio.NewWriter(w)

	var buf []byte
	for r := range seq {
		buf = buf[:0]
		for i, v := range fields(r) {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("report: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}

// WaveformFields returns index, time and potential.
func WaveformFields(r waveform.Record) []float64 {
	return []float64{float64(r.Index), r.Time, r.Potential}
}

// TraceFields returns index, time, potential and current.
func TraceFields(r simulate.Record) []float64 {
	return []float64{float64(r.Index), r.Time, r.Potential, r.Current}
}

// ResultFields returns index, potential and current.
func ResultFields(r analysis.Record) []float64 {
	return []float64{float64(r.Index), r.Potential, r.Current}
}

// FileName returns "<timestamp> <parts...>.txt" with the timestamp
// formatted as 2006-01-02 15-04-05. Path separators in parts are replaced.
func FileName(now time.Time, parts ...string) string {
	name := now.Format("2006-01-02 15-04-05")
	if len(parts) > 0 {
		name += " " + strings.Join(parts, " ")
	}
	return strings.NewReplacer("/", "-", "\\", "-").Replace(name) + ".txt"
}
