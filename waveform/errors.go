package waveform

import (
	"errors"
	"fmt"
)

// ErrValidation is the kind shared by every error describing a malformed or
// out-of-range sweep. Use errors.Is(err, ErrValidation) to test for it.
var ErrValidation = errors.New("waveform: invalid sweep")

// Errors returned by Spec.Validate and Spec.Timing.
var (
	ErrNonFinite          = fmt.Errorf("%w: parameters must be finite numbers", ErrValidation)
	ErrVertexOrder        = fmt.Errorf("%w: upper vertex potential must be greater than lower vertex potential", ErrValidation)
	ErrStartOutsideWindow = fmt.Errorf("%w: start potential must lie between the vertex potentials", ErrValidation)
	ErrZeroStep           = fmt.Errorf("%w: step potential must be non-zero", ErrValidation)
	ErrStepTooLarge       = fmt.Errorf("%w: step potential must not exceed the potential window", ErrValidation)
	ErrStepDirection      = fmt.Errorf("%w: step potential sign must point into the potential window", ErrValidation)
	ErrScanRate           = fmt.Errorf("%w: scan rate must be positive", ErrValidation)
	ErrScanCount          = fmt.Errorf("%w: number of scans must be at least 1", ErrValidation)
	ErrSampleFrequency    = fmt.Errorf("%w: sampling frequency must be at least |scan rate / step potential| and at most 1e9", ErrValidation)
	ErrResolution         = fmt.Errorf("%w: sweep resolves to zero points or samples", ErrValidation)
	ErrUnknownKind        = fmt.Errorf("%w: unknown waveform kind", ErrValidation)
)
