package units

import "fmt"

// Conversion factors between standard units.
const (
	mbarPerInHg  = 33.86386
	kmPerMile    = 1.609344
	mpsPerMph    = 0.44704
	mmPerInch    = 25.4
	meterPerFoot = 0.3048
)

// conversions holds the scalar conversion functions between standard
// units. Only pairs that can occur when switching between the three
// unit systems are present.
var conversions = map[string]map[string]func(float64) float64{
	"degree_F": {
		"degree_C": func(v float64) float64 { return (v - 32) * 5 / 9 },
	},
	"degree_C": {
		"degree_F": func(v float64) float64 { return v*9/5 + 32 },
	},
	"degree_F_day": {
		"degree_C_day": func(v float64) float64 { return v * 5 / 9 },
	},
	"degree_C_day": {
		"degree_F_day": func(v float64) float64 { return v * 9 / 5 },
	},
	"inHg": {
		"mbar": func(v float64) float64 { return v * mbarPerInHg },
	},
	"mbar": {
		"inHg": func(v float64) float64 { return v / mbarPerInHg },
	},
	"inHg_per_hour": {
		"mbar_per_hour": func(v float64) float64 { return v * mbarPerInHg },
	},
	"mbar_per_hour": {
		"inHg_per_hour": func(v float64) float64 { return v / mbarPerInHg },
	},
	"mile_per_hour": {
		"km_per_hour":      func(v float64) float64 { return v * kmPerMile },
		"meter_per_second": func(v float64) float64 { return v * mpsPerMph },
	},
	"km_per_hour": {
		"mile_per_hour":    func(v float64) float64 { return v / kmPerMile },
		"meter_per_second": func(v float64) float64 { return v / 3.6 },
	},
	"meter_per_second": {
		"mile_per_hour": func(v float64) float64 { return v / mpsPerMph },
		"km_per_hour":   func(v float64) float64 { return v * 3.6 },
	},
	"inch": {
		"mm": func(v float64) float64 { return v * mmPerInch },
		"cm": func(v float64) float64 { return v * mmPerInch / 10 },
	},
	"mm": {
		"inch": func(v float64) float64 { return v / mmPerInch },
		"cm":   func(v float64) float64 { return v / 10 },
	},
	"cm": {
		"inch": func(v float64) float64 { return v * 10 / mmPerInch },
		"mm":   func(v float64) float64 { return v * 10 },
	},
	"inch_per_hour": {
		"mm_per_hour": func(v float64) float64 { return v * mmPerInch },
		"cm_per_hour": func(v float64) float64 { return v * mmPerInch / 10 },
	},
	"mm_per_hour": {
		"inch_per_hour": func(v float64) float64 { return v / mmPerInch },
		"cm_per_hour":   func(v float64) float64 { return v / 10 },
	},
	"cm_per_hour": {
		"inch_per_hour": func(v float64) float64 { return v * 10 / mmPerInch },
		"mm_per_hour":   func(v float64) float64 { return v * 10 },
	},
	"mile": {
		"km": func(v float64) float64 { return v * kmPerMile },
	},
	"km": {
		"mile": func(v float64) float64 { return v / kmPerMile },
	},
	"foot": {
		"meter": func(v float64) float64 { return v * meterPerFoot },
	},
	"meter": {
		"foot": func(v float64) float64 { return v / meterPerFoot },
	},
}

// Convert converts a scalar value between two standard units.
// Identical units pass through. Returns false when no conversion
// between the pair is known.
func Convert(value float64, from, to string) (float64, bool) {
	if from == to {
		return value, true
	}
	if fns, ok := conversions[from]; ok {
		if fn, ok := fns[to]; ok {
			return fn(value), true
		}
	}
	return value, false
}

// ConvertPacket converts a loop packet to the target unit system,
// mirroring WeeWX's to_std_system.
//
// The source system is read from the packet's "usUnits" field. The
// input packet is never mutated; a converted copy is returned with its
// "usUnits" rewritten to the target code. Values that are nil,
// non-numeric, or belong to no known unit group pass through verbatim.
//
// Returns ErrNoSourceSystem when the packet carries no valid "usUnits".
func ConvertPacket(packet map[string]any, target System) (map[string]any, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSystem, int(target))
	}

	raw, ok := packet["usUnits"]
	if !ok {
		return nil, ErrNoSourceSystem
	}
	code, ok := toFloat(raw)
	if !ok {
		return nil, fmt.Errorf("%w: usUnits=%v", ErrNoSourceSystem, raw)
	}
	source, err := SystemFromCode(int(code))
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(packet))
	for key, value := range packet {
		if key == "usUnits" {
			continue
		}
		out[key] = convertValue(key, value, source, target)
	}
	out["usUnits"] = target.Code()
	return out, nil
}

// convertValue converts a single observation between systems.
func convertValue(key string, value any, source, target System) any {
	if value == nil || source == target {
		return value
	}
	group := Group(key)
	if group == "" {
		return value
	}
	from := stdUnits[group][source]
	to := stdUnits[group][target]
	if from == to {
		return value
	}
	v, ok := toFloat(value)
	if !ok {
		return value
	}
	if converted, ok := Convert(v, from, to); ok {
		return converted
	}
	return value
}

// toFloat coerces the numeric types that appear in decoded packets.
func toFloat(value any) (float64, bool) {
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
