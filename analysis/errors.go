package analysis

import "errors"

// Errors returned by the reductions and Analyze.
var (
	ErrWindow       = errors.New("analysis: moving average window must be in [1, trace length]")
	ErrStep         = errors.New("analysis: moving average step must be at least 1")
	ErrAlpha        = errors.New("analysis: alpha must be in (0, 1]")
	ErrBoundaries   = errors.New("analysis: boundaries must be ascending and inside the trace")
	ErrMode         = errors.New("analysis: unknown mode")
	ErrLinearSample = errors.New("analysis: current sampling requires a staircase waveform")
	ErrEmptyTrace   = errors.New("analysis: trace is empty")
	ErrNilInput     = errors.New("analysis: waveform and detector are required")
)
