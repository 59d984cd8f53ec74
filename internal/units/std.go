package units

// stdUnits maps a unit group to its standard unit in each system,
// mirroring WeeWX's StdUnitConverters tables.
var stdUnits = map[string]map[System]string{
	"group_altitude": {
		US: "foot", Metric: "meter", MetricWX: "meter",
	},
	"group_concentration": {
		US: "microgram_per_meter_cubed", Metric: "microgram_per_meter_cubed", MetricWX: "microgram_per_meter_cubed",
	},
	"group_count": {
		US: "count", Metric: "count", MetricWX: "count",
	},
	"group_db": {
		US: "dB", Metric: "dB", MetricWX: "dB",
	},
	"group_degree_day": {
		US: "degree_F_day", Metric: "degree_C_day", MetricWX: "degree_C_day",
	},
	"group_deltatime": {
		US: "second", Metric: "second", MetricWX: "second",
	},
	"group_direction": {
		US: "degree_compass", Metric: "degree_compass", MetricWX: "degree_compass",
	},
	"group_distance": {
		US: "mile", Metric: "km", MetricWX: "km",
	},
	"group_fraction": {
		US: "ppm", Metric: "ppm", MetricWX: "ppm",
	},
	"group_illuminance": {
		US: "lux", Metric: "lux", MetricWX: "lux",
	},
	"group_interval": {
		US: "minute", Metric: "minute", MetricWX: "minute",
	},
	"group_moisture": {
		US: "centibar", Metric: "centibar", MetricWX: "centibar",
	},
	"group_percent": {
		US: "percent", Metric: "percent", MetricWX: "percent",
	},
	"group_pressure": {
		US: "inHg", Metric: "mbar", MetricWX: "mbar",
	},
	"group_pressurerate": {
		US: "inHg_per_hour", Metric: "mbar_per_hour", MetricWX: "mbar_per_hour",
	},
	"group_radiation": {
		US: "watt_per_meter_squared", Metric: "watt_per_meter_squared", MetricWX: "watt_per_meter_squared",
	},
	"group_rain": {
		US: "inch", Metric: "cm", MetricWX: "mm",
	},
	"group_rainrate": {
		US: "inch_per_hour", Metric: "cm_per_hour", MetricWX: "mm_per_hour",
	},
	"group_speed": {
		US: "mile_per_hour", Metric: "km_per_hour", MetricWX: "meter_per_second",
	},
	"group_temperature": {
		US: "degree_F", Metric: "degree_C", MetricWX: "degree_C",
	},
	"group_time": {
		US: "unix_epoch", Metric: "unix_epoch", MetricWX: "unix_epoch",
	},
	"group_uv": {
		US: "uv_index", Metric: "uv_index", MetricWX: "uv_index",
	},
	"group_volt": {
		US: "volt", Metric: "volt", MetricWX: "volt",
	},
}

// StandardUnit returns the canonical unit name and unit group for an
// observation key under the given unit system.
//
// Both return values are empty when the key has no known unit group,
// matching the (None, None) result of WeeWX's getStandardUnitType.
func StandardUnit(system System, key string) (unit, group string) {
	group = Group(key)
	if group == "" {
		return "", ""
	}
	return stdUnits[group][system], group
}
