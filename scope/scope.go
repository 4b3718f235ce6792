// Package scope reads oscilloscope exports. The instrument records the
// potentiostat's current output as a voltage; a conversion factor turns it
// back into a current.
package scope

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/MoonshinetheP/oscilloscope-reader/core"
)

// Errors returned by Read and Open.
var (
	ErrConversionFactor = errors.New("scope: conversion factor must be a positive finite number")
	ErrSampleRate       = errors.New("scope: sample rate must be a non-negative finite number")
	ErrEmpty            = errors.New("scope: no samples found")
)

// Trace is an equally spaced current recording.
type Trace struct {
	Currents   []float64 // A
	SampleRate float64   // Sa/s, 0 when unknown
}

// SampleDelta returns the sample spacing in seconds, or 0 when the sample
// rate is unknown.
func (t *Trace) SampleDelta() float64 {
	if t.SampleRate <= 0 {
		return 0
	}
	return 1 / t.SampleRate
}

// Read parses an oscilloscope CSV export. The second column holds the
// recorded voltage; rows where it is missing or not a number (headers,
// units) are skipped. Each value is multiplied by -cf, the potentiostat's
// inverting current-to-voltage conversion.
func Read(r io.Reader, cf, sampleRate float64) (*Trace, error) {
	if !core.IsFinite(cf) || cf <= 0 {
		return nil, ErrConversionFactor
	}
	if !core.IsFinite(sampleRate) || sampleRate < 0 {
		return nil, ErrSampleRate
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var currents []float64
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("scope: read csv: %w", err)
		}
		if len(rec) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil || !core.IsFinite(v) {
			continue
		}
		currents = append(currents, v*-cf)
	}

	if len(currents) == 0 {
		return nil, ErrEmpty
	}
	return &Trace{Currents: currents, SampleRate: sampleRate}, nil
}

// Open reads the oscilloscope export at path.
func Open(path string, cf, sampleRate float64) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scope: %w", err)
	}
	defer f.Close()

	t, err := Read(f, cf, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
