package publisher

import (
	"fmt"
	"strconv"

	"github.com/felddy/weewx-home-assistant/internal/infrastructure/mqtt"
	"github.com/felddy/weewx-home-assistant/internal/measurement"
)

// State publishes classified state records to the per-measurement
// state topics.
type State struct {
	bus    Bus
	topics mqtt.Topics
	qos    byte
	logger Logger
}

// NewState creates a state publisher. A nil logger disables diagnostics.
func NewState(bus Bus, topics mqtt.Topics, qos byte, logger Logger) *State {
	if logger == nil {
		logger = noopLogger{}
	}
	return &State{bus: bus, topics: topics, qos: qos, logger: logger}
}

// Publish sends every state record to its topic.
//
// Values render as plain strings: Home Assistant parses numbers out of
// the raw payload, and the transformed string states (timestamps, unit
// labels) pass through verbatim. Individual failures are logged; the
// last error is returned so a fully failed cycle is visible.
func (s *State) Publish(records []measurement.StateRecord) error {
	var lastErr error
	for _, rec := range records {
		topic := s.topics.State(rec.Key)
		if err := s.bus.PublishString(topic, renderValue(rec.Value), s.qos, false); err != nil {
			lastErr = fmt.Errorf("publishing state for %s: %w", rec.Key, err)
			s.logger.Error("state publish failed", "topic", topic, "error", err)
		}
	}
	return lastErr
}

// renderValue formats a state value for the wire.
//
// Floats use the shortest representation that round-trips, so
// 21.5 stays "21.5" rather than "21.500000".
func renderValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
