package simulate

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the kind shared by every error describing invalid
// simulator parameters.
var ErrConfiguration = errors.New("simulate: invalid configuration")

// Errors returned by NewCapacitance and Capacitance.Simulate.
var (
	ErrCapacitance = fmt.Errorf("%w: double layer capacitance must be a positive finite number", ErrConfiguration)
	ErrResistance  = fmt.Errorf("%w: uncompensated resistance must be a positive finite number", ErrConfiguration)
	ErrNilWaveform = fmt.Errorf("%w: waveform is nil", ErrConfiguration)
)
