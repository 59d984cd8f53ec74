package publisher

import (
	"encoding/json"
	"fmt"

	"github.com/felddy/weewx-home-assistant/internal/infrastructure/mqtt"
	"github.com/felddy/weewx-home-assistant/internal/measurement"
)

// Discovery publishes Home Assistant discovery configurations for
// every measurement the registry's nodes have observed.
type Discovery struct {
	bus      Bus
	registry *measurement.Registry
	logger   Logger
}

// NewDiscovery creates a discovery publisher over the registry.
// A nil logger disables diagnostics.
func NewDiscovery(bus Bus, registry *measurement.Registry, logger Logger) *Discovery {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Discovery{
		bus:      bus,
		registry: registry,
		logger:   logger,
	}
}

// PublishAll publishes a retained discovery configuration for every
// observed measurement of every registered node, in first-seen order
// per node.
//
// Topic prefixes come from each node's registered configuration, so
// nodes with different discovery or state prefixes coexist. Individual
// publish failures are logged but do not stop the remaining
// configurations; the last error is returned.
func (d *Discovery) PublishAll() error {
	var lastErr error
	for _, nodeID := range d.registry.NodeIDs() {
		if err := d.publishNode(nodeID); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// publishNode publishes the discovery set for one node.
func (d *Discovery) publishNode(nodeID string) error {
	snapshot, err := d.registry.Snapshot(nodeID)
	if err != nil {
		return fmt.Errorf("snapshotting registry: %w", err)
	}

	cfg, err := d.registry.NodeConfig(nodeID)
	if err != nil {
		return fmt.Errorf("reading node config: %w", err)
	}
	topics := mqtt.NewTopics(cfg.DiscoveryTopicPrefix, cfg.StateTopicPrefix, "", nodeID)

	d.logger.Info("publishing discovery configurations",
		"node_id", nodeID,
		"count", len(snapshot),
	)

	var lastErr error
	for _, entry := range snapshot {
		payload, err := json.Marshal(discoveryPayload(nodeID, cfg, entry.Key, entry.Entry, topics))
		if err != nil {
			lastErr = fmt.Errorf("encoding discovery payload for %s: %w", entry.Key, err)
			d.logger.Error("discovery payload encoding failed", "key", entry.Key, "error", err)
			continue
		}

		topic := topics.DiscoveryConfig(string(entry.Entry.Integration), entry.Key)
		if err := d.bus.PublishRetained(topic, payload); err != nil {
			lastErr = fmt.Errorf("publishing discovery for %s: %w", entry.Key, err)
			d.logger.Error("discovery publish failed", "topic", topic, "error", err)
		}
	}
	return lastErr
}

// discoveryPayload assembles the configuration document for one
// measurement.
//
// The merge order is fixed: connection fields first, then the entry's
// metadata, then its free-form attributes, then the device block.
// Absent optional fields are simply never added, so the document
// carries no nulls.
func discoveryPayload(nodeID string, cfg measurement.NodeConfig, key string, e measurement.Entry, topics mqtt.Topics) map[string]any {
	payload := map[string]any{
		"availability_topic": cfg.AvailabilityTopic,
		"state_topic":        topics.State(key),
		"unique_id":          fmt.Sprintf("%s_%s", nodeID, key),
		"name":               e.Name,
	}

	if e.Icon != "" {
		payload["icon"] = e.Icon
	}
	if e.DeviceClass != "" {
		payload["device_class"] = e.DeviceClass
	}
	if e.DisplayUnit != nil {
		payload["unit_of_measurement"] = *e.DisplayUnit
	}
	if e.Precision != nil {
		payload["value_template"] = fmt.Sprintf("{{ value | round(%d) }}", *e.Precision)
	}
	// Enabled is the Home Assistant default; only the opt-out is sent.
	if e.EnabledByDefault != nil && !*e.EnabledByDefault {
		payload["enabled_by_default"] = false
	}

	for k, v := range e.Attributes {
		payload[k] = v
	}

	device := map[string]any{
		"identifiers": cfg.Device.Identifiers,
		"name":        cfg.Device.Name,
	}
	if cfg.Device.Model != "" {
		device["model"] = cfg.Device.Model
	}
	if cfg.Device.Manufacturer != "" {
		device["manufacturer"] = cfg.Device.Manufacturer
	}
	payload["device"] = device

	return payload
}
