package measurement

import (
	"time"

	"github.com/felddy/weewx-home-assistant/internal/units"
)

// Transform identifies a value transformation applied to a measurement
// before publication.
//
// Transforms are a closed set dispatched explicitly rather than
// callables embedded in the static tables, which keeps the tables
// comparable and serialisable in tests.
type Transform int

const (
	// TransformNone publishes the value unchanged.
	TransformNone Transform = iota

	// TransformEpochToISO renders a Unix epoch timestamp as an
	// ISO-8601 / RFC 3339 UTC string. Used by the time-family keys
	// (dateTime, sunrise, sunset, stormStart).
	TransformEpochToISO

	// TransformUnitSystemLabel renders a unit system code as its
	// display name ("US", "METRIC", "METRICWX"). Used by usUnits.
	TransformUnitSystemLabel
)

// Apply transforms a raw packet value. Values the transform cannot
// interpret pass through unchanged; transforms never fail.
func (t Transform) Apply(value any) any {
	switch t {
	case TransformEpochToISO:
		epoch, ok := coerceFloat(value)
		if !ok {
			return value
		}
		return time.Unix(int64(epoch), 0).UTC().Format(time.RFC3339)

	case TransformUnitSystemLabel:
		code, ok := coerceFloat(value)
		if !ok {
			return value
		}
		system, err := units.SystemFromCode(int(code))
		if err != nil {
			return value
		}
		return system.String()

	default:
		return value
	}
}

// coerceFloat accepts the numeric types produced by JSON decoding and
// by packet sources that hand over native Go integers.
func coerceFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
