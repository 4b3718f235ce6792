package detect

import (
	"errors"
	"fmt"
)

// ErrDetection is the kind shared by every error reporting that detection
// could not proceed.
var ErrDetection = errors.New("detect: detection failed")

// Errors returned by the detectors.
var (
	ErrInsufficientData = fmt.Errorf("%w: insufficient data", ErrDetection)
	ErrAllRejected      = fmt.Errorf("%w: fewer than two boundaries survived the drift filter", ErrDetection)
	ErrInvalidInterval  = fmt.Errorf("%w: interval must be at least one sample", ErrDetection)
	ErrInvalidFactor    = fmt.Errorf("%w: peak rejection factor must be in (0, 1]", ErrDetection)
	ErrInvalidThreshold = fmt.Errorf("%w: vertex threshold must be a positive finite number", ErrDetection)
)

// ErrAmbiguous reports that more than one vertex candidate of the same kind
// crossed the threshold. It is returned together with a usable result in
// which the first candidate in scan order was selected.
var ErrAmbiguous = errors.New("detect: ambiguous vertex")
