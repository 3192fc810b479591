package window

import "errors"

// ErrUnknownType is returned when a window name fails to parse.
var ErrUnknownType = errors.New("window: unknown window type")

var (
	errNoCoeffs       = errors.New("window: coefficients must not be empty")
	errZeroGain       = errors.New("window: coherent gain is zero")
	errLengthMismatch = errors.New("window: samples and coefficients must have same length")
)
