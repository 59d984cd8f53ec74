package publisher

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/felddy/weewx-home-assistant/internal/infrastructure/mqtt"
	"github.com/felddy/weewx-home-assistant/internal/measurement"
	"github.com/felddy/weewx-home-assistant/internal/units"
)

// publishedMsg records one publish call on the fake bus.
type publishedMsg struct {
	topic    string
	payload  string
	retained bool
}

// fakeBus is a recording Bus implementation.
type fakeBus struct {
	mu        sync.Mutex
	connected bool
	published []publishedMsg
	handlers  map[string]mqtt.MessageHandler
}

func newFakeBus() *fakeBus {
	return &fakeBus{
		connected: true,
		handlers:  make(map[string]mqtt.MessageHandler),
	}
}

func (b *fakeBus) record(topic string, payload []byte, retained bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.connected {
		return mqtt.ErrNotConnected
	}
	b.published = append(b.published, publishedMsg{topic: topic, payload: string(payload), retained: retained})
	return nil
}

func (b *fakeBus) PublishString(topic string, payload string, _ byte, retained bool) error {
	return b.record(topic, []byte(payload), retained)
}

func (b *fakeBus) PublishRetained(topic string, payload []byte) error {
	return b.record(topic, payload, true)
}

func (b *fakeBus) Subscribe(topic string, _ byte, handler mqtt.MessageHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = handler
	return nil
}

func (b *fakeBus) IsConnected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.connected
}

// deliver invokes the registered handler for a topic, simulating an
// inbound message.
func (b *fakeBus) deliver(t *testing.T, topic string, payload string) error {
	t.Helper()
	b.mu.Lock()
	handler, ok := b.handlers[topic]
	b.mu.Unlock()
	if !ok {
		t.Fatalf("no handler subscribed for %q", topic)
	}
	return handler(topic, []byte(payload))
}

func (b *fakeBus) messages() []publishedMsg {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]publishedMsg, len(b.published))
	copy(out, b.published)
	return out
}

func (b *fakeBus) messagesOn(topic string) []publishedMsg {
	var out []publishedMsg
	for _, msg := range b.messages() {
		if msg.topic == topic {
			out = append(out, msg)
		}
	}
	return out
}

// archivedPoint records one archive write on the fake archiver.
type archivedPoint struct {
	nodeID string
	key    string
	value  float64
	at     time.Time
	timed  bool
}

// fakeArchiver is a recording Archiver implementation.
type fakeArchiver struct {
	mu     sync.Mutex
	points []archivedPoint
}

func (a *fakeArchiver) WriteStateRecord(nodeID string, key string, value float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.points = append(a.points, archivedPoint{nodeID: nodeID, key: key, value: value})
}

func (a *fakeArchiver) WriteStateRecordAt(nodeID string, key string, value float64, at time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.points = append(a.points, archivedPoint{nodeID: nodeID, key: key, value: value, at: at, timed: true})
}

func (a *fakeArchiver) archived() []archivedPoint {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]archivedPoint, len(a.points))
	copy(out, a.points)
	return out
}

func testTopics() mqtt.Topics {
	return mqtt.NewTopics("homeassistant", "weather/garden", "weewx/loop", "garden")
}

func testRegistry(t *testing.T, filterKeys map[string]struct{}) *measurement.Registry {
	t.Helper()
	r := measurement.NewRegistry(units.StandardUnit, nil)
	err := r.RegisterNode("garden", measurement.NodeConfig{
		AvailabilityTopic:    "weather/garden/status",
		DiscoveryTopicPrefix: "homeassistant",
		StateTopicPrefix:     "weather/garden",
		Device: measurement.DeviceInfo{
			Identifiers:  []string{"garden"},
			Name:         "Garden Station",
			Model:        "Vantage Pro2",
			Manufacturer: "Davis",
		},
		FilterKeys: filterKeys,
		UnitSystem: units.MetricWX,
	})
	if err != nil {
		t.Fatalf("RegisterNode: %v", err)
	}
	return r
}

// =============================================================================
// Preprocessor
// =============================================================================

func TestPreprocessorExpandsBatteryBitmap(t *testing.T) {
	pre := NewPreprocessor(nil)

	// Bits 0 (ISS) and 2 (channel 2) set.
	out := pre.Process(map[string]any{
		"txBatteryStatus": float64(5),
		"outTemp":         21.5,
	})

	if _, ok := out["txBatteryStatus"]; ok {
		t.Error("txBatteryStatus must be removed after expansion")
	}
	if got := out["batteryStatusISS"]; got != 1 {
		t.Errorf("batteryStatusISS = %v, want 1", got)
	}
	if got := out["batteryStatusChannel1"]; got != 0 {
		t.Errorf("batteryStatusChannel1 = %v, want 0", got)
	}
	if got := out["batteryStatusChannel2"]; got != 4 {
		t.Errorf("batteryStatusChannel2 = %v, want 4", got)
	}
	if got := out["outTemp"]; got != 21.5 {
		t.Errorf("outTemp = %v, want 21.5 untouched", got)
	}
}

func TestPreprocessorDoesNotMutateInput(t *testing.T) {
	pre := NewPreprocessor(nil)
	packet := map[string]any{"txBatteryStatus": 1}

	pre.Process(packet)

	if _, ok := packet["txBatteryStatus"]; !ok {
		t.Error("input packet was mutated")
	}
	if _, ok := packet["batteryStatusISS"]; ok {
		t.Error("input packet was mutated with expanded fields")
	}
}

func TestPreprocessorPassThrough(t *testing.T) {
	pre := NewPreprocessor(nil)
	out := pre.Process(map[string]any{"outTemp": 21.5})
	if len(out) != 1 || out["outTemp"] != 21.5 {
		t.Errorf("Process() = %v, want pass-through", out)
	}
}

// =============================================================================
// State publisher
// =============================================================================

func TestStatePublish(t *testing.T) {
	bus := newFakeBus()
	state := NewState(bus, testTopics(), 1, nil)

	err := state.Publish([]measurement.StateRecord{
		{Key: "outTemp", Value: 21.5},
		{Key: "usUnits", Value: "METRICWX"},
		{Key: "windDir", Value: 270},
	})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}

	msgs := bus.messages()
	if len(msgs) != 3 {
		t.Fatalf("published %d messages, want 3", len(msgs))
	}

	want := map[string]string{
		"weather/garden/outTemp": "21.5",
		"weather/garden/usUnits": "METRICWX",
		"weather/garden/windDir": "270",
	}
	for _, msg := range msgs {
		if want[msg.topic] != msg.payload {
			t.Errorf("topic %s payload = %q, want %q", msg.topic, msg.payload, want[msg.topic])
		}
		if msg.retained {
			t.Errorf("state message on %s must not be retained", msg.topic)
		}
	}
}

func TestRenderValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{21.5, "21.5"},
		{float64(0), "0"},
		{270, "270"},
		{int64(1700000000), "1700000000"},
		{"METRICWX", "METRICWX"},
		{true, "true"},
	}

	for _, tt := range tests {
		if got := renderValue(tt.in); got != tt.want {
			t.Errorf("renderValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// =============================================================================
// Discovery publisher
// =============================================================================

func TestDiscoveryPublishAll(t *testing.T) {
	bus := newFakeBus()
	registry := testRegistry(t, nil)
	discovery := NewDiscovery(bus, registry, nil)

	for _, key := range []string{"outTemp", "batteryStatusISS", "dateTime"} {
		if _, _, err := registry.Observe("garden", key); err != nil {
			t.Fatalf("Observe(%q): %v", key, err)
		}
	}

	if err := discovery.PublishAll(); err != nil {
		t.Fatalf("PublishAll: %v", err)
	}

	msgs := bus.messages()
	if len(msgs) != 3 {
		t.Fatalf("published %d configs, want 3", len(msgs))
	}

	// First-seen order is preserved.
	if msgs[0].topic != "homeassistant/sensor/garden/outTemp/config" {
		t.Errorf("first topic = %q", msgs[0].topic)
	}
	if msgs[1].topic != "homeassistant/binary_sensor/garden/batteryStatusISS/config" {
		t.Errorf("second topic = %q", msgs[1].topic)
	}

	for _, msg := range msgs {
		if !msg.retained {
			t.Errorf("discovery config on %s must be retained", msg.topic)
		}
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(msgs[0].payload), &payload); err != nil {
		t.Fatalf("decoding outTemp payload: %v", err)
	}

	checks := map[string]any{
		"availability_topic":  "weather/garden/status",
		"state_topic":         "weather/garden/outTemp",
		"unique_id":           "garden_outTemp",
		"name":                "Outdoor Temperature",
		"icon":                "mdi:thermometer",
		"device_class":        "temperature",
		"unit_of_measurement": "°C",
		"value_template":      "{{ value | round(1) }}",
	}
	for field, want := range checks {
		if payload[field] != want {
			t.Errorf("outTemp payload[%s] = %v, want %v", field, payload[field], want)
		}
	}
	if _, ok := payload["enabled_by_default"]; ok {
		t.Error("outTemp must not carry enabled_by_default")
	}

	device, ok := payload["device"].(map[string]any)
	if !ok {
		t.Fatal("payload missing device block")
	}
	if device["name"] != "Garden Station" || device["manufacturer"] != "Davis" {
		t.Errorf("device block = %v", device)
	}

	// Binary sensor carries its attribute payloads.
	var battery map[string]any
	if err := json.Unmarshal([]byte(msgs[1].payload), &battery); err != nil {
		t.Fatalf("decoding battery payload: %v", err)
	}
	if battery["payload_on"] != "1" || battery["payload_off"] != "0" {
		t.Errorf("battery payloads = %v / %v", battery["payload_on"], battery["payload_off"])
	}

	// dateTime is disabled by default.
	var dateTime map[string]any
	if err := json.Unmarshal([]byte(msgs[2].payload), &dateTime); err != nil {
		t.Fatalf("decoding dateTime payload: %v", err)
	}
	if dateTime["enabled_by_default"] != false {
		t.Errorf("dateTime enabled_by_default = %v, want false", dateTime["enabled_by_default"])
	}
	if strings.Contains(msgs[2].payload, "null") {
		t.Error("discovery payload must not contain nulls")
	}
}

func TestDiscoveryPublishAllMultiNode(t *testing.T) {
	bus := newFakeBus()
	registry := testRegistry(t, nil)
	err := registry.RegisterNode("attic", measurement.NodeConfig{
		AvailabilityTopic:    "weather/attic/status",
		DiscoveryTopicPrefix: "homeassistant",
		StateTopicPrefix:     "weather/attic",
		Device: measurement.DeviceInfo{
			Identifiers: []string{"attic"},
			Name:        "Attic Station",
		},
		UnitSystem: units.MetricWX,
	})
	if err != nil {
		t.Fatalf("RegisterNode: %v", err)
	}

	if _, _, err := registry.Observe("garden", "outTemp"); err != nil {
		t.Fatalf("Observe: %v", err)
	}
	if _, _, err := registry.Observe("attic", "inTemp"); err != nil {
		t.Fatalf("Observe: %v", err)
	}

	discovery := NewDiscovery(bus, registry, nil)
	if err := discovery.PublishAll(); err != nil {
		t.Fatalf("PublishAll: %v", err)
	}

	msgs := bus.messages()
	if len(msgs) != 2 {
		t.Fatalf("published %d configs, want 2", len(msgs))
	}

	// Nodes publish in sorted ID order, each under its own prefixes.
	if msgs[0].topic != "homeassistant/sensor/attic/inTemp/config" {
		t.Errorf("first topic = %q", msgs[0].topic)
	}
	if msgs[1].topic != "homeassistant/sensor/garden/outTemp/config" {
		t.Errorf("second topic = %q", msgs[1].topic)
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(msgs[0].payload), &payload); err != nil {
		t.Fatalf("decoding attic payload: %v", err)
	}
	if payload["state_topic"] != "weather/attic/inTemp" {
		t.Errorf("attic state_topic = %v", payload["state_topic"])
	}
	if payload["unique_id"] != "attic_inTemp" {
		t.Errorf("attic unique_id = %v", payload["unique_id"])
	}
	if payload["availability_topic"] != "weather/attic/status" {
		t.Errorf("attic availability_topic = %v", payload["availability_topic"])
	}
}

// =============================================================================
// Controller
// =============================================================================

func newTestControllerWith(t *testing.T, bus *fakeBus, opts ControllerOptions) *Controller {
	t.Helper()
	registry := testRegistry(t, map[string]struct{}{"dateTime": {}})
	classifier := measurement.NewClassifier(registry, units.ConvertPacket, nil)
	topics := testTopics()
	discovery := NewDiscovery(bus, registry, nil)
	state := NewState(bus, topics, 1, nil)

	c := NewController(bus, classifier, NewPreprocessor(nil), discovery, state,
		topics, "garden", 1, nil, opts)
	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return c
}

func newTestController(t *testing.T, bus *fakeBus) *Controller {
	t.Helper()
	return newTestControllerWith(t, bus, ControllerOptions{})
}

func TestControllerPacketCycle(t *testing.T) {
	bus := newFakeBus()
	newTestController(t, bus)

	packet := `{"dateTime": 1700000000, "outTemp": 21.5, "usUnits": 17}`
	if err := bus.deliver(t, "weewx/loop", packet); err != nil {
		t.Fatalf("deliver: %v", err)
	}

	// Discovery for outTemp and usUnits (dateTime filtered), then states.
	if got := len(bus.messagesOn("homeassistant/sensor/garden/outTemp/config")); got != 1 {
		t.Errorf("outTemp discovery published %d times, want 1", got)
	}
	if got := len(bus.messagesOn("homeassistant/sensor/garden/dateTime/config")); got != 0 {
		t.Errorf("filtered dateTime must not be discovered, got %d configs", got)
	}

	states := bus.messagesOn("weather/garden/outTemp")
	if len(states) != 1 || states[0].payload != "21.5" {
		t.Errorf("outTemp states = %v", states)
	}
	unitStates := bus.messagesOn("weather/garden/usUnits")
	if len(unitStates) != 1 || unitStates[0].payload != "METRICWX" {
		t.Errorf("usUnits states = %v", unitStates)
	}
	if got := len(bus.messagesOn("weather/garden/dateTime")); got != 0 {
		t.Errorf("filtered dateTime must not publish state, got %d", got)
	}

	// Second identical packet: more states, no new discovery.
	before := len(bus.messagesOn("homeassistant/sensor/garden/outTemp/config"))
	if err := bus.deliver(t, "weewx/loop", packet); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	after := len(bus.messagesOn("homeassistant/sensor/garden/outTemp/config"))
	if before != after {
		t.Errorf("repeat packet triggered discovery republish (%d -> %d)", before, after)
	}
	if got := len(bus.messagesOn("weather/garden/outTemp")); got != 2 {
		t.Errorf("outTemp state count = %d, want 2", got)
	}
}

func TestControllerBatteryBitmapEndToEnd(t *testing.T) {
	bus := newFakeBus()
	newTestController(t, bus)

	packet := `{"usUnits": 17, "txBatteryStatus": 3}`
	if err := bus.deliver(t, "weewx/loop", packet); err != nil {
		t.Fatalf("deliver: %v", err)
	}

	if got := bus.messagesOn("weather/garden/batteryStatusISS"); len(got) != 1 || got[0].payload != "1" {
		t.Errorf("batteryStatusISS states = %v", got)
	}
	if got := bus.messagesOn("weather/garden/batteryStatusChannel1"); len(got) != 1 || got[0].payload != "2" {
		t.Errorf("batteryStatusChannel1 states = %v", got)
	}
	if got := len(bus.messagesOn("homeassistant/binary_sensor/garden/batteryStatusISS/config")); got != 1 {
		t.Errorf("batteryStatusISS discovery count = %d, want 1", got)
	}
	if got := len(bus.messagesOn("weather/garden/txBatteryStatus")); got != 0 {
		t.Error("raw txBatteryStatus must never be published")
	}
}

func TestControllerHomeAssistantBirth(t *testing.T) {
	bus := newFakeBus()
	newTestController(t, bus)

	if err := bus.deliver(t, "weewx/loop", `{"usUnits": 17, "outTemp": 21.5}`); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	before := len(bus.messagesOn("homeassistant/sensor/garden/outTemp/config"))

	// Birth message republishes the full discovery set.
	if err := bus.deliver(t, "homeassistant/status", "online"); err != nil {
		t.Fatalf("deliver birth: %v", err)
	}
	after := len(bus.messagesOn("homeassistant/sensor/garden/outTemp/config"))
	if after != before+1 {
		t.Errorf("birth republish count = %d, want %d", after, before+1)
	}

	// Offline announcements are ignored.
	if err := bus.deliver(t, "homeassistant/status", "offline"); err != nil {
		t.Fatalf("deliver offline: %v", err)
	}
	if got := len(bus.messagesOn("homeassistant/sensor/garden/outTemp/config")); got != after {
		t.Errorf("offline announcement must not republish, got %d", got)
	}
}

func TestControllerArchivesAtObservationTime(t *testing.T) {
	bus := newFakeBus()
	archive := &fakeArchiver{}
	newTestControllerWith(t, bus, ControllerOptions{Archive: archive})

	packet := `{"dateTime": 1700000000, "outTemp": 21.5, "usUnits": 17}`
	if err := bus.deliver(t, "weewx/loop", packet); err != nil {
		t.Fatalf("deliver: %v", err)
	}

	// Only the numeric state archives; the usUnits label is a string.
	points := archive.archived()
	if len(points) != 1 {
		t.Fatalf("archived %d points, want 1: %v", len(points), points)
	}
	p := points[0]
	if p.nodeID != "garden" || p.key != "outTemp" || p.value != 21.5 {
		t.Errorf("archived point = %+v", p)
	}
	if !p.timed || !p.at.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("archived at = %v (timed=%v), want packet observation time", p.at, p.timed)
	}
}

func TestControllerArchivesWithoutObservationTime(t *testing.T) {
	bus := newFakeBus()
	archive := &fakeArchiver{}
	newTestControllerWith(t, bus, ControllerOptions{Archive: archive})

	// No dateTime field: archive at ingestion time instead.
	if err := bus.deliver(t, "weewx/loop", `{"usUnits": 17, "outTemp": 20}`); err != nil {
		t.Fatalf("deliver: %v", err)
	}

	points := archive.archived()
	if len(points) != 1 {
		t.Fatalf("archived %d points, want 1: %v", len(points), points)
	}
	if points[0].timed {
		t.Errorf("point without dateTime must not carry a timestamp: %+v", points[0])
	}
}

func TestControllerInvalidPacket(t *testing.T) {
	bus := newFakeBus()
	newTestController(t, bus)

	if err := bus.deliver(t, "weewx/loop", `not json`); err == nil {
		t.Error("invalid JSON should return an error")
	}
	if got := len(bus.messages()); got != 0 {
		t.Errorf("invalid packet must publish nothing, got %d messages", got)
	}
}

func TestControllerDisconnectedSkipsPacket(t *testing.T) {
	bus := newFakeBus()
	newTestController(t, bus)

	bus.mu.Lock()
	bus.connected = false
	bus.mu.Unlock()

	// Skipping while disconnected is logged, not an error.
	if err := bus.deliver(t, "weewx/loop", `{"usUnits": 17, "outTemp": 21.5}`); err != nil {
		t.Errorf("disconnected delivery returned error: %v", err)
	}
	if got := len(bus.messages()); got != 0 {
		t.Errorf("disconnected cycle must publish nothing, got %d", got)
	}
}
