package units

import "strings"

// obsGroups maps observation keys to their WeeWX unit group.
//
// The table covers the observation types a station is expected to emit.
// Keys absent here (and after numeric-suffix stripping) have no unit
// group; StandardUnit returns empty strings for them and the caller
// degrades gracefully.
var obsGroups = map[string]string{
	// Temperatures
	"appTemp":     "group_temperature",
	"dewpoint":    "group_temperature",
	"extraTemp":   "group_temperature",
	"heatindex":   "group_temperature",
	"heatingTemp": "group_temperature",
	"highOutTemp": "group_temperature",
	"humidex":     "group_temperature",
	"inDewpoint":  "group_temperature",
	"inTemp":      "group_temperature",
	"leafTemp":    "group_temperature",
	"lowOutTemp":  "group_temperature",
	"outTemp":     "group_temperature",
	"outWetbulb":  "group_temperature",
	"soilTemp":    "group_temperature",
	"THSW":        "group_temperature",
	"windchill":   "group_temperature",

	// Pressures
	"altimeter": "group_pressure",
	"barometer": "group_pressure",
	"pressure":  "group_pressure",

	"altimeterRate": "group_pressurerate",
	"barometerRate": "group_pressurerate",
	"pressureRate":  "group_pressurerate",

	// Wind
	"rms":         "group_speed",
	"vecavg":      "group_speed",
	"wind":        "group_speed",
	"windGust":    "group_speed",
	"windgustvec": "group_speed",
	"windSpeed":   "group_speed",
	"windSpeed10": "group_speed",
	"windvec":     "group_speed",

	"gustdir":     "group_direction",
	"vecdir":      "group_direction",
	"windDir":     "group_direction",
	"windDir10":   "group_direction",
	"windGustDir": "group_direction",

	"windrun": "group_distance",

	// Precipitation and evapotranspiration
	"dayRain":   "group_rain",
	"ET":        "group_rain",
	"hail":      "group_rain",
	"hourRain":  "group_rain",
	"monthRain": "group_rain",
	"rain":      "group_rain",
	"rain24":    "group_rain",
	"snow":      "group_rain",
	"snowDepth": "group_rain",
	"stormRain": "group_rain",
	"totalRain": "group_rain",
	"yearRain":  "group_rain",

	"hailRate": "group_rainrate",
	"rainRate": "group_rainrate",
	"snowRate": "group_rainrate",

	// Humidity and other percentages
	"cloudcover":     "group_percent",
	"extraHumid":     "group_percent",
	"inHumidity":     "group_percent",
	"outHumidity":    "group_percent",
	"pop":            "group_percent",
	"rxCheckPercent": "group_percent",
	"snowMoisture":   "group_percent",

	"soilMoist": "group_moisture",

	// Time
	"dateTime":   "group_time",
	"stormStart": "group_time",
	"sunrise":    "group_time",
	"sunset":     "group_time",

	"daySunshineDur": "group_deltatime",
	"rainDur":        "group_deltatime",
	"sunshineDur":    "group_deltatime",

	"interval": "group_interval",

	// Radiation and light
	"illuminance": "group_illuminance",
	"maxSolarRad": "group_radiation",
	"radiation":   "group_radiation",
	"UV":          "group_uv",

	// Electrical
	"consBatteryVoltage": "group_volt",
	"heatingVoltage":     "group_volt",
	"referenceVoltage":   "group_volt",
	"supplyVoltage":      "group_volt",

	// Air quality
	"co":     "group_fraction",
	"co2":    "group_fraction",
	"nh3":    "group_concentration",
	"no2":    "group_concentration",
	"o3":     "group_concentration",
	"pb":     "group_concentration",
	"pm1_0":  "group_concentration",
	"pm2_5":  "group_concentration",
	"pm10_0": "group_concentration",
	"so2":    "group_concentration",

	// Miscellaneous
	"altitude":                  "group_altitude",
	"beaufort":                  "group_count",
	"cloudbase":                 "group_altitude",
	"cooldeg":                   "group_degree_day",
	"growdeg":                   "group_degree_day",
	"heatdeg":                   "group_degree_day",
	"leafWet":                   "group_count",
	"lightning_distance":        "group_distance",
	"lightning_disturber_count": "group_count",
	"lightning_noise_count":     "group_count",
	"lightning_strike_count":    "group_count",
	"noise":                     "group_db",
}

// Group returns the unit group for an observation key, or "" if the
// key has no known group.
//
// Numbered observations (extraTemp3, soilMoist2, ...) resolve through
// their base key.
func Group(key string) string {
	if g, ok := obsGroups[key]; ok {
		return g
	}
	if base := strings.TrimRight(key, "0123456789"); base != key && base != "" {
		if g, ok := obsGroups[base]; ok {
			return g
		}
	}
	return ""
}
