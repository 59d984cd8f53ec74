package measurement

import "fmt"

// keyConfigs maps canonical WeeWX measurement keys to their static
// configuration. The table is read-only after init.
//
// Numbered variants (extraTemp1..8, soilMoist1..4, ...) are not listed;
// the resolver derives them from their base entry. Entries without an
// Integration publish as plain sensors.
var keyConfigs = map[string]KeyConfig{
	"ET": {Metadata: KeyMetadata{
		Name: "Evapotranspiration", Icon: "mdi:waves-arrow-up", EnabledByDefault: disabled(),
	}},
	"THSW": {Metadata: KeyMetadata{
		Name: "Temperature Humidity Sun Wind Index", Icon: "mdi:thermometer-lines",
	}},
	"UV": {Metadata: KeyMetadata{
		Name: "UV Index", Icon: "mdi:sun-wireless",
	}},
	"altimeter": {Metadata: KeyMetadata{
		Name: "Pressure Altimeter", Icon: "mdi:altimeter", DeviceClass: "atmospheric_pressure",
	}},
	"altimeterRate": {Metadata: KeyMetadata{
		Name: "Altimeter Rate", Icon: "mdi:altimeter",
	}},
	"altitude": {Metadata: KeyMetadata{
		Name: "Altitude", Icon: "mdi:altimeter", DeviceClass: "distance",
	}},
	"appTemp": {Metadata: KeyMetadata{
		Name: "Apparent Temperature", Icon: "mdi:thermometer-lines", DeviceClass: "temperature",
	}},
	"barometer": {Metadata: KeyMetadata{
		Name: "Barometric Pressure", Icon: "mdi:gauge", DeviceClass: "atmospheric_pressure",
	}},
	"barometerRate": {Metadata: KeyMetadata{
		Name: "Barometric Pressure Rate", Icon: "mdi:gauge",
	}},
	"batteryStatus": {
		Metadata: KeyMetadata{
			Name: "Battery Status", Icon: "mdi:battery-alert", DeviceClass: "battery",
			Attributes: map[string]string{"payload_off": "0", "payload_on": "1"},
		},
		Integration: IntegrationBinarySensor,
	},
	"batteryStatusISS": {
		Metadata: KeyMetadata{
			Name: "Battery Status ISS", Icon: "mdi:battery-alert", DeviceClass: "battery",
			Attributes: map[string]string{"payload_off": "0", "payload_on": "1"},
		},
		Integration: IntegrationBinarySensor,
	},
	"batteryStatusChannel": {
		Metadata: KeyMetadata{
			Name: "Battery Status Channel", Icon: "mdi:battery-alert", DeviceClass: "battery",
			Attributes: map[string]string{"payload_off": "0", "payload_on": "1"},
		},
		Integration: IntegrationBinarySensor,
	},
	"beaufort": {Metadata: KeyMetadata{
		Name: "Beaufort Scale", Icon: "mdi:windsock", DeviceClass: "enum",
	}},
	"cloudbase": {Metadata: KeyMetadata{
		Name: "Cloud Base Height", Icon: "mdi:cloud-arrow-down", DeviceClass: "distance",
	}},
	"cloudcover": {Metadata: KeyMetadata{
		Name: "Cloud Cover", Icon: "mdi:weather-cloudy-alert",
	}},
	"co": {Metadata: KeyMetadata{
		Name: "Carbon Monoxide", Icon: "mdi:molecule-co", DeviceClass: "carbon_monoxide",
	}},
	"co2": {Metadata: KeyMetadata{
		Name: "Carbon Dioxide", Icon: "mdi:molecule-co2", DeviceClass: "carbon_dioxide",
	}},
	"consBatteryVoltage": {Metadata: KeyMetadata{
		Name: "Console Battery Voltage", Icon: "mdi:sine-wave", DeviceClass: "voltage",
	}},
	"cooldeg": {Metadata: KeyMetadata{
		Name: "Cooling Degree Days", Icon: "mdi:snowflake-thermometer",
	}},
	"dateTime": {
		Metadata: KeyMetadata{
			Name: "Date Time", Icon: "mdi:clock", DeviceClass: "timestamp", EnabledByDefault: disabled(),
		},
		Transform: TransformEpochToISO,
	},
	"dayET": {Metadata: KeyMetadata{
		Name: "Day Evapotranspiration", Icon: "mdi:waves-arrow-up", EnabledByDefault: disabled(),
	}},
	"dayRain": {Metadata: KeyMetadata{
		Name: "Day Rainfall", Icon: "mdi:cup-water", DeviceClass: "precipitation",
	}},
	"daySunshineDur": {Metadata: KeyMetadata{
		Name: "Day Sunshine Duration", Icon: "mdi:sun-clock", DeviceClass: "duration",
	}},
	"dewpoint": {Metadata: KeyMetadata{
		Name: "Dew Point Temperature", Icon: "mdi:water-thermometer", DeviceClass: "temperature",
	}},
	"extraAlarm": {Metadata: KeyMetadata{
		Name: "Extra Alarm", Icon: "mdi:alarm-light", EnabledByDefault: disabled(),
	}},
	"extraHumid": {Metadata: KeyMetadata{
		Name: "Extra Humidity", Icon: "mdi:water-percent", DeviceClass: "humidity",
	}},
	"extraTemp": {Metadata: KeyMetadata{
		Name: "Extra Temperature", Icon: "mdi:thermometer", DeviceClass: "temperature",
	}},
	"forecastIcon": {Metadata: KeyMetadata{
		Name: "Forecast Icon", Icon: "mdi:image-frame",
	}},
	"forecastRule": {Metadata: KeyMetadata{
		Name: "Forecast Rule", Icon: "mdi:format-list-numbered",
	}},
	"growdeg": {Metadata: KeyMetadata{
		Name: "Growing Degree Days", Icon: "mdi:sprout",
	}},
	"gustdir": {Metadata: KeyMetadata{
		Name: "Wind Gust Direction", Icon: "mdi:compass-rose",
	}},
	"hail": {Metadata: KeyMetadata{
		Name: "Hailfall", Icon: "mdi:weather-hail", DeviceClass: "precipitation",
	}},
	"hailRate": {Metadata: KeyMetadata{
		Name: "Hail Rate", Icon: "mdi:weather-hail",
	}},
	"heatdeg": {Metadata: KeyMetadata{
		Name: "Heating Degree Days", Icon: "mdi:sun-thermometer",
	}},
	"heatindex": {Metadata: KeyMetadata{
		Name: "Heat Index", Icon: "mdi:sun-thermometer", DeviceClass: "temperature",
	}},
	"heatingTemp": {Metadata: KeyMetadata{
		Name: "Heating Temperature", Icon: "mdi:sun-thermometer", DeviceClass: "temperature",
	}},
	"heatingVoltage": {Metadata: KeyMetadata{
		Name: "Heating Voltage", Icon: "mdi:sine-wave", DeviceClass: "voltage",
	}},
	"highOutTemp": {Metadata: KeyMetadata{
		Name: "High Outdoor Temperature", Icon: "mdi:thermometer-high", DeviceClass: "temperature",
	}},
	"hourRain": {Metadata: KeyMetadata{
		Name: "Hourly Rainfall", Icon: "mdi:cup-water", DeviceClass: "precipitation",
	}},
	"humidex": {Metadata: KeyMetadata{
		Name: "Humidex", Icon: "mdi:water-percent",
	}},
	"illuminance": {Metadata: KeyMetadata{
		Name: "Illuminance", Icon: "mdi:sun-wireless", DeviceClass: "illuminance",
	}},
	"inDewpoint": {Metadata: KeyMetadata{
		Name: "Indoor Dew Point", Icon: "mdi:water-thermometer", DeviceClass: "temperature",
	}},
	"inHumidity": {Metadata: KeyMetadata{
		Name: "Indoor Humidity", Icon: "mdi:water-percent", DeviceClass: "humidity",
	}},
	"inTemp": {Metadata: KeyMetadata{
		Name: "Indoor Temperature", Icon: "mdi:thermometer", DeviceClass: "temperature",
	}},
	"insideAlarm": {Metadata: KeyMetadata{
		Name: "Inside Alarm", Icon: "mdi:alarm-light", EnabledByDefault: disabled(),
	}},
	"interval": {Metadata: KeyMetadata{
		Name: "Interval", Icon: "mdi:repeat",
	}},
	"leafTemp": {Metadata: KeyMetadata{
		Name: "Leaf Temperature", Icon: "mdi:leaf-maple", DeviceClass: "temperature",
	}},
	"leafWet": {Metadata: KeyMetadata{
		Name: "Leaf Wetness", Icon: "mdi:leaf-maple", DeviceClass: "moisture",
	}},
	"lightning_distance": {Metadata: KeyMetadata{
		Name: "Lightning Distance", Icon: "mdi:flash", DeviceClass: "distance",
	}},
	"lightning_disturber_count": {Metadata: KeyMetadata{
		Name: "Lightning Disturber Count", Icon: "mdi:flash",
	}},
	"lightning_noise_count": {Metadata: KeyMetadata{
		Name: "Lightning Noise Count", Icon: "mdi:flash",
	}},
	"lightning_strike_count": {Metadata: KeyMetadata{
		Name: "Lightning Strike Count", Icon: "mdi:flash",
	}},
	"lowOutTemp": {Metadata: KeyMetadata{
		Name: "Low Outdoor Temperature", Icon: "mdi:thermometer-low", DeviceClass: "temperature",
	}},
	"maxSolarRad": {Metadata: KeyMetadata{
		Name: "Maximum Solar Radiation", Icon: "mdi:sun-wireless", DeviceClass: "irradiance",
	}},
	"monthET": {Metadata: KeyMetadata{
		Name: "Month Evapotranspiration", Icon: "mdi:waves-arrow-up", EnabledByDefault: disabled(),
	}},
	"monthRain": {Metadata: KeyMetadata{
		Name: "Monthly Rainfall", Icon: "mdi:cup-water", DeviceClass: "precipitation",
	}},
	"nh3": {Metadata: KeyMetadata{
		Name: "Ammonia Concentration", Icon: "mdi:chemical-weapon",
	}},
	"no2": {Metadata: KeyMetadata{
		Name: "Nitrogen Dioxide Concentration", Icon: "mdi:chemical-weapon", DeviceClass: "nitrogen_dioxide",
	}},
	"noise": {Metadata: KeyMetadata{
		Name: "Noise Level", Icon: "mdi:volume-vibrate", DeviceClass: "sound_pressure",
	}},
	"o3": {Metadata: KeyMetadata{
		Name: "Ozone Concentration", Icon: "mdi:chemical-weapon", DeviceClass: "ozone",
	}},
	"outHumidity": {Metadata: KeyMetadata{
		Name: "Outdoor Humidity", Icon: "mdi:water-percent", DeviceClass: "humidity",
	}},
	"outTemp": {Metadata: KeyMetadata{
		Name: "Outdoor Temperature", Icon: "mdi:thermometer", DeviceClass: "temperature",
	}},
	"outWetbulb": {Metadata: KeyMetadata{
		Name: "Outdoor Wetbulb Temperature", Icon: "mdi:thermometer-water", DeviceClass: "temperature",
	}},
	"outsideAlarm": {Metadata: KeyMetadata{
		Name: "Outside Alarm", Icon: "mdi:alarm-light", EnabledByDefault: disabled(),
	}},
	"pb": {Metadata: KeyMetadata{
		Name: "Lead Concentration", Icon: "mdi:chemical-weapon",
	}},
	"pm10_0": {Metadata: KeyMetadata{
		Name: "PM10 Concentration", Icon: "mdi:air-filter", DeviceClass: "pm10",
	}},
	"pm1_0": {Metadata: KeyMetadata{
		Name: "PM1.0 Concentration", Icon: "mdi:air-filter", DeviceClass: "pm1",
	}},
	"pm2_5": {Metadata: KeyMetadata{
		Name: "PM2.5 Concentration", Icon: "mdi:air-filter", DeviceClass: "pm25",
	}},
	"pop": {Metadata: KeyMetadata{
		Name: "Probability of Precipitation", Icon: "mdi:cloud-percent",
	}},
	"pressure": {Metadata: KeyMetadata{
		Name: "Atmospheric Pressure", Icon: "mdi:gauge", DeviceClass: "atmospheric_pressure",
	}},
	"pressureRate": {Metadata: KeyMetadata{
		Name: "Pressure Rate", Icon: "mdi:gauge",
	}},
	"radiation": {Metadata: KeyMetadata{
		Name: "Solar Radiation", Icon: "mdi:radioactive", DeviceClass: "irradiance",
	}},
	"rain": {Metadata: KeyMetadata{
		Name: "Rainfall", Icon: "mdi:cup-water", DeviceClass: "precipitation",
	}},
	"rain24": {Metadata: KeyMetadata{
		Name: "24-Hour Rainfall", Icon: "mdi:cup-water", DeviceClass: "precipitation",
	}},
	"rainDur": {Metadata: KeyMetadata{
		Name: "Rain Duration", Icon: "mdi:timer", DeviceClass: "duration",
	}},
	"rainRate": {Metadata: KeyMetadata{
		Name: "Rain Rate", Icon: "mdi:weather-pouring", DeviceClass: "precipitation_intensity",
	}},
	"referenceVoltage": {Metadata: KeyMetadata{
		Name: "Reference Voltage", Icon: "mdi:sine-wave", DeviceClass: "voltage",
	}},
	"rms": {Metadata: KeyMetadata{
		Name: "Root Mean Square Wind Speed", Icon: "mdi:windsock", DeviceClass: "wind_speed",
	}},
	"rxCheckPercent": {Metadata: KeyMetadata{
		Name: "Receive Check Percentage", Icon: "mdi:radio-tower",
	}},
	"snow": {Metadata: KeyMetadata{
		Name: "Snowfall", Icon: "mdi:weather-snowy-heavy", DeviceClass: "precipitation",
	}},
	"snowDepth": {Metadata: KeyMetadata{
		Name: "Snow Depth", Icon: "mdi:snowflake", DeviceClass: "distance",
	}},
	"snowMoisture": {Metadata: KeyMetadata{
		Name: "Snow Moisture Content", Icon: "mdi:snowflake-melt", DeviceClass: "moisture",
	}},
	"snowRate": {Metadata: KeyMetadata{
		Name: "Snow Rate", Icon: "mdi:snowflake", DeviceClass: "precipitation_intensity",
	}},
	"so2": {Metadata: KeyMetadata{
		Name: "Sulfur Dioxide Concentration", Icon: "mdi:chemical-weapon", DeviceClass: "sulphur_dioxide",
	}},
	"soilLeafAlarm": {Metadata: KeyMetadata{
		Name: "Soil Leaf Alarm", Icon: "mdi:alarm-light", EnabledByDefault: disabled(),
	}},
	"soilMoist": {Metadata: KeyMetadata{
		Name: "Soil Moisture", Icon: "mdi:water-percent", DeviceClass: "moisture",
	}},
	"soilTemp": {Metadata: KeyMetadata{
		Name: "Soil Temperature", Icon: "mdi:thermometer", DeviceClass: "temperature",
	}},
	"stormRain": {Metadata: KeyMetadata{
		Name: "Storm Rainfall", Icon: "mdi:cup-water", DeviceClass: "precipitation",
	}},
	"stormStart": {
		Metadata: KeyMetadata{
			Name: "Storm Start Time", Icon: "mdi:clock-start", DeviceClass: "timestamp",
		},
		Transform: TransformEpochToISO,
	},
	"sunrise": {
		Metadata: KeyMetadata{
			Name: "Sunrise", Icon: "mdi:weather-sunset-up", DeviceClass: "timestamp",
		},
		Transform: TransformEpochToISO,
	},
	"sunset": {
		Metadata: KeyMetadata{
			Name: "Sunset", Icon: "mdi:weather-sunset-down", DeviceClass: "timestamp",
		},
		Transform: TransformEpochToISO,
	},
	"sunshineDur": {Metadata: KeyMetadata{
		Name: "Sunshine Duration", Icon: "mdi:sun-clock", DeviceClass: "duration",
	}},
	"supplyVoltage": {Metadata: KeyMetadata{
		Name: "Supply Voltage", Icon: "mdi:sine-wave", DeviceClass: "voltage",
	}},
	"totalRain": {Metadata: KeyMetadata{
		Name: "Total Rainfall", Icon: "mdi:cup-water", DeviceClass: "precipitation",
	}},
	"usUnits": {
		Metadata: KeyMetadata{
			Name: "Units", Icon: "mdi:scale-balance", DeviceClass: "enum",
			Attributes: map[string]string{"options": "{{ ['METRIC','METRICWX','US'] }}"},
		},
		Transform: TransformUnitSystemLabel,
	},
	"vecavg": {Metadata: KeyMetadata{
		Name: "Vector Average Wind Speed", Icon: "mdi:windsock", DeviceClass: "wind_speed",
	}},
	"vecdir": {Metadata: KeyMetadata{
		Name: "Vector Direction", Icon: "mdi:compass-rose",
	}},
	"wind": {Metadata: KeyMetadata{
		Name: "Wind Speed", Icon: "mdi:windsock", DeviceClass: "wind_speed",
	}},
	"windDir": {Metadata: KeyMetadata{
		Name: "Wind Direction", Icon: "mdi:compass-rose",
	}},
	"windDir10": {Metadata: KeyMetadata{
		Name: "10-Minute Wind Direction", Icon: "mdi:compass-rose",
	}},
	"windGust": {Metadata: KeyMetadata{
		Name: "Wind Gust Speed", Icon: "mdi:windsock", DeviceClass: "wind_speed",
	}},
	"windGustDir": {Metadata: KeyMetadata{
		Name: "Wind Gust Direction", Icon: "mdi:compass-rose",
	}},
	"windSpeed": {Metadata: KeyMetadata{
		Name: "Wind Speed", Icon: "mdi:windsock", DeviceClass: "wind_speed",
	}},
	"windSpeed10": {Metadata: KeyMetadata{
		Name: "10-Minute Wind Speed", Icon: "mdi:windsock", DeviceClass: "wind_speed",
	}},
	"windchill": {Metadata: KeyMetadata{
		Name: "Wind Chill Temperature", Icon: "mdi:thermometer", DeviceClass: "temperature",
	}},
	"windgustvec": {Metadata: KeyMetadata{
		Name: "Wind Gust Vector Speed", Icon: "mdi:windsock", DeviceClass: "wind_speed",
	}},
	"windrun": {Metadata: KeyMetadata{
		Name: "Wind Run Distance", Icon: "mdi:windsock", DeviceClass: "distance",
	}},
	"windvec": {Metadata: KeyMetadata{
		Name: "Wind Vector Speed", Icon: "mdi:windsock", DeviceClass: "wind_speed",
	}},
	"yearET": {Metadata: KeyMetadata{
		Name: "Year Evapotranspiration", Icon: "mdi:waves-arrow-up", EnabledByDefault: disabled(),
	}},
	"yearRain": {Metadata: KeyMetadata{
		Name: "Yearly Rainfall", Icon: "mdi:cup-water", DeviceClass: "precipitation",
	}},
}

func init() {
	if err := validateTables(); err != nil {
		panic(err)
	}
}

// validateTables checks the static tables for programmer errors.
// Failures here are fatal at initialisation, before any packet is
// processed.
func validateTables() error {
	for key, cfg := range keyConfigs {
		if cfg.Metadata.Name == "" {
			return fmt.Errorf("measurement: key config %q has no name", key)
		}
		switch cfg.Integration {
		case "", IntegrationSensor, IntegrationBinarySensor:
		default:
			return fmt.Errorf("measurement: key config %q has invalid integration %q", key, cfg.Integration)
		}
	}
	for unit, meta := range unitMetadata {
		if meta.Precision != nil && *meta.Precision < 0 {
			return fmt.Errorf("measurement: unit metadata %q has negative precision", unit)
		}
	}
	for _, class := range heuristicClasses {
		if _, ok := keyConfigs[class.exemplar]; !ok {
			return fmt.Errorf("measurement: heuristic keyword %q references unknown exemplar %q", class.keyword, class.exemplar)
		}
	}
	return nil
}
