package measurement

// unitMetadata maps canonical unit names to display metadata.
//
// The table is read-only after init. Units resolved by the unit source
// but absent here fall back to the canonical unit name verbatim.
var unitMetadata = map[string]UnitMetadata{
	"cm":                     {DisplayUnit: strPtr("cm"), Precision: intPtr(2)},
	"degree_C":               {DisplayUnit: strPtr("°C"), Precision: intPtr(1)},
	"degree_F":               {DisplayUnit: strPtr("°F"), Precision: intPtr(1)},
	"degree_K":               {DisplayUnit: strPtr("K"), Precision: intPtr(1)},
	"degree_compass":         {DisplayUnit: strPtr("°"), Precision: intPtr(0)},
	"foot":                   {DisplayUnit: strPtr("ft"), Precision: intPtr(2)},
	"gallon":                 {DisplayUnit: strPtr("gal"), Precision: intPtr(2)},
	"hPa":                    {DisplayUnit: strPtr("hPa"), Precision: intPtr(2)},
	"hour":                   {DisplayUnit: strPtr("h"), Precision: intPtr(2)},
	"inHg":                   {DisplayUnit: strPtr("inHg"), Precision: intPtr(2)},
	"inch":                   {DisplayUnit: strPtr("in"), Precision: intPtr(2)},
	"kPa":                    {DisplayUnit: strPtr("kPa"), Precision: intPtr(2)},
	"kilowatt":               {DisplayUnit: strPtr("kW"), Precision: intPtr(2)},
	"kilowatt_hour":          {DisplayUnit: strPtr("kWh"), Precision: intPtr(2)},
	"km_per_hour":            {DisplayUnit: strPtr("km/h"), Precision: intPtr(1)},
	"knot":                   {DisplayUnit: strPtr("kn"), Precision: intPtr(1)},
	"liter":                  {DisplayUnit: strPtr("L"), Precision: intPtr(2)},
	"lux":                    {DisplayUnit: strPtr("lx"), Precision: intPtr(0)},
	"mbar":                   {DisplayUnit: strPtr("mbar"), Precision: intPtr(2)},
	"meter":                  {DisplayUnit: strPtr("m"), Precision: intPtr(2)},
	"meter_per_second":       {DisplayUnit: strPtr("m/s"), Precision: intPtr(1)},
	"mile_per_hour":          {DisplayUnit: strPtr("mph"), Precision: intPtr(1)},
	"minute":                 {DisplayUnit: strPtr("min"), Precision: intPtr(2)},
	"mm":                     {DisplayUnit: strPtr("mm"), Precision: intPtr(2)},
	"mmHg":                   {DisplayUnit: strPtr("mmHg"), Precision: intPtr(2)},
	"mm_per_hour":            {DisplayUnit: strPtr("mm/h"), Precision: intPtr(2)},
	"percent":                {DisplayUnit: strPtr("%"), Precision: intPtr(0)},
	"percent_battery":        {DisplayUnit: strPtr("%"), Precision: intPtr(0)},
	"second":                 {DisplayUnit: strPtr("s"), Precision: intPtr(2)},
	"unix_epoch":             {},
	"uv_index":               {Precision: intPtr(0)},
	"volt":                   {DisplayUnit: strPtr("V"), Precision: intPtr(2)},
	"watt":                   {DisplayUnit: strPtr("W"), Precision: intPtr(2)},
	"watt_hour":              {DisplayUnit: strPtr("Wh"), Precision: intPtr(2)},
	"watt_per_meter_squared": {DisplayUnit: strPtr("W/m²"), Precision: intPtr(1)},
}
