package mqtt

import "fmt"

// Topics builds the MQTT topics used by the bridge.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.NewTopics("homeassistant", "weather/back-garden", "weewx/loop", "back-garden")
//	topics.State("outTemp")  // "weather/back-garden/outTemp"
//	topics.Availability()    // "weather/back-garden/status"
type Topics struct {
	discoveryPrefix string
	statePrefix     string
	ingestTopic     string
	nodeID          string
}

// NewTopics creates the topic builder for one node.
func NewTopics(discoveryPrefix, statePrefix, ingestTopic, nodeID string) Topics {
	return Topics{
		discoveryPrefix: discoveryPrefix,
		statePrefix:     statePrefix,
		ingestTopic:     ingestTopic,
		nodeID:          nodeID,
	}
}

// Availability returns the topic carrying the bridge's online/offline
// status. Home Assistant entities reference it as availability_topic,
// and the broker publishes the LWT here on an unclean disconnect.
//
// Example: weather/back-garden/status
func (t Topics) Availability() string {
	return fmt.Sprintf("%s/status", t.statePrefix)
}

// State returns the state topic for one measurement key.
//
// Example: weather/back-garden/outTemp
func (t Topics) State(key string) string {
	return fmt.Sprintf("%s/%s", t.statePrefix, key)
}

// StatePrefix returns the raw state topic prefix.
func (t Topics) StatePrefix() string {
	return t.statePrefix
}

// DiscoveryConfig returns the Home Assistant discovery topic for one
// measurement under an integration ("sensor" or "binary_sensor").
//
// Example: homeassistant/sensor/back-garden/outTemp/config
func (t Topics) DiscoveryConfig(integration, key string) string {
	return fmt.Sprintf("%s/%s/%s/%s/config", t.discoveryPrefix, integration, t.nodeID, key)
}

// HomeAssistantStatus returns Home Assistant's own birth/last-will
// topic. The bridge subscribes here and republishes discovery when the
// payload is "online".
//
// Example: homeassistant/status
func (t Topics) HomeAssistantStatus() string {
	return fmt.Sprintf("%s/status", t.discoveryPrefix)
}

// Ingest returns the topic the station publishes raw loop packets to.
//
// Example: weewx/loop
func (t Topics) Ingest() string {
	return t.ingestTopic
}

// Availability payloads. Home Assistant's MQTT availability contract
// expects these exact strings, retained.
const (
	PayloadOnline  = "online"
	PayloadOffline = "offline"
)
