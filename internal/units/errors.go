package units

import "errors"

// Domain-specific errors for unit operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrUnknownSystem is returned for a unit system code or name that
	// does not correspond to US, METRIC, or METRICWX.
	ErrUnknownSystem = errors.New("units: unknown unit system")

	// ErrNoSourceSystem is returned when a packet carries no usable
	// "usUnits" field, making conversion impossible.
	ErrNoSourceSystem = errors.New("units: packet has no valid usUnits field")
)
