package moistair

import "errors"

// Sentinel errors for the failure modes of state construction and process
// operations. Each failure site wraps one of these with the offending
// quantity and value so callers can both match with errors.Is and report
// what went wrong.
var (
	// ErrInvalidRelativeHumidity reports a requested or computed relative
	// humidity outside [0, 1].
	ErrInvalidRelativeHumidity = errors.New("relative humidity out of range [0, 1]")

	// ErrInvalidOrdering reports a wet-bulb or dew-point temperature above
	// the dry-bulb temperature supplied alongside it.
	ErrInvalidOrdering = errors.New("temperature ordering violated")

	// ErrInvalidParameter reports malformed numeric input such as a
	// non-positive mass flow.
	ErrInvalidParameter = errors.New("invalid parameter")
)
