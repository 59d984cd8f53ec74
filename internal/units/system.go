package units

import "fmt"

// System identifies a WeeWX unit system.
//
// The integer value is the WeeWX wire code carried in the "usUnits"
// field of every loop packet. The zero value is not a valid system.
type System int

// Unit system codes per the WeeWX constants.
const (
	US       System = 0x01
	Metric   System = 0x10
	MetricWX System = 0x11
)

// Code returns the WeeWX integer code for the system.
func (s System) Code() int {
	return int(s)
}

// String returns the display name of the system ("US", "METRIC",
// "METRICWX"), or "UNKNOWN" for an invalid value.
func (s System) String() string {
	switch s {
	case US:
		return "US"
	case Metric:
		return "METRIC"
	case MetricWX:
		return "METRICWX"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether s is one of the three known systems.
func (s System) Valid() bool {
	switch s {
	case US, Metric, MetricWX:
		return true
	}
	return false
}

// SystemFromCode converts a WeeWX integer code to a System.
//
// Unknown codes are a hard error: every valid system must round-trip
// through its code.
func SystemFromCode(code int) (System, error) {
	s := System(code)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownSystem, code)
	}
	return s, nil
}

// SystemFromName converts a display name to a System.
// Used when parsing configuration files.
func SystemFromName(name string) (System, error) {
	switch name {
	case "US":
		return US, nil
	case "METRIC":
		return Metric, nil
	case "METRICWX":
		return MetricWX, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSystem, name)
	}
}
