package publisher

// txBatteryFields names the per-transmitter bits of the Davis
// txBatteryStatus bitmap, least significant bit first.
var txBatteryFields = [...]string{
	"batteryStatusISS",
	"batteryStatusChannel1",
	"batteryStatusChannel2",
	"batteryStatusChannel3",
	"batteryStatusChannel4",
	"batteryStatusChannel5",
	"batteryStatusChannel6",
	"batteryStatusChannel7",
}

// Preprocessor rewrites raw loop packets before classification.
type Preprocessor struct {
	logger Logger
}

// NewPreprocessor creates a preprocessor. A nil logger disables diagnostics.
func NewPreprocessor(logger Logger) *Preprocessor {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Preprocessor{logger: logger}
}

// Process returns a copy of the packet with composite fields expanded.
//
// txBatteryStatus is a bitmap; each bit becomes its own measurement so
// Home Assistant can expose one binary sensor per transmitter. The
// original key is removed. The input packet is never mutated.
func (p *Preprocessor) Process(packet map[string]any) map[string]any {
	out := make(map[string]any, len(packet)+len(txBatteryFields))
	for key, value := range packet {
		out[key] = value
	}

	if raw, ok := out["txBatteryStatus"]; ok {
		if bitmap, ok := toInt(raw); ok {
			p.logger.Debug("expanding txBatteryStatus bitmap", "value", bitmap)
			for i, field := range txBatteryFields {
				out[field] = bitmap & (1 << i)
			}
		}
		delete(out, "txBatteryStatus")
	}

	return out
}

// toInt coerces the numeric types a decoded packet can carry.
func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case float32:
		return int(v), true
	}
	return 0, false
}
