package publisher

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/felddy/weewx-home-assistant/internal/infrastructure/mqtt"
	"github.com/felddy/weewx-home-assistant/internal/measurement"
	"github.com/felddy/weewx-home-assistant/internal/observability"
)

// Controller wires the preprocessor, classifier, and publishers to the
// bus for one node.
//
// It subscribes to the raw-packet ingest topic and to Home Assistant's
// status topic, republishing all discovery configurations whenever
// Home Assistant announces its birth.
type Controller struct {
	bus        Bus
	classifier *measurement.Classifier
	pre        *Preprocessor
	discovery  *Discovery
	state      *State
	topics     mqtt.Topics
	nodeID     string
	qos        byte
	logger     Logger

	// Optional collaborators; nil disables the concern.
	metrics *observability.Metrics
	archive Archiver
}

// ControllerOptions carries the optional collaborators of a Controller.
type ControllerOptions struct {
	Metrics *observability.Metrics
	Archive Archiver
}

// NewController creates the controller for one node.
// A nil logger disables diagnostics.
func NewController(
	bus Bus,
	classifier *measurement.Classifier,
	pre *Preprocessor,
	discovery *Discovery,
	state *State,
	topics mqtt.Topics,
	nodeID string,
	qos byte,
	logger Logger,
	opts ControllerOptions,
) *Controller {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Controller{
		bus:        bus,
		classifier: classifier,
		pre:        pre,
		discovery:  discovery,
		state:      state,
		topics:     topics,
		nodeID:     nodeID,
		qos:        qos,
		logger:     logger,
		metrics:    opts.Metrics,
		archive:    opts.Archive,
	}
}

// Start subscribes to the ingest topic and to Home Assistant's status
// topic. Subscriptions are restored automatically on reconnect by the
// bus client.
func (c *Controller) Start() error {
	if err := c.bus.Subscribe(c.topics.Ingest(), c.qos, c.handlePacket); err != nil {
		return fmt.Errorf("subscribing to ingest topic: %w", err)
	}
	if err := c.bus.Subscribe(c.topics.HomeAssistantStatus(), c.qos, c.handleHomeAssistantStatus); err != nil {
		return fmt.Errorf("subscribing to home assistant status: %w", err)
	}
	c.logger.Info("controller started",
		"ingest_topic", c.topics.Ingest(),
		"node_id", c.nodeID,
	)
	return nil
}

// handleHomeAssistantStatus reacts to Home Assistant's birth message.
//
// On restart Home Assistant forgets runtime-discovered entities unless
// the configs are retained; republishing on "online" covers brokers
// where retention is disabled.
func (c *Controller) handleHomeAssistantStatus(topic string, payload []byte) error {
	if string(payload) != mqtt.PayloadOnline {
		return nil
	}
	c.logger.Info("home assistant came online, republishing discovery")
	if err := c.discovery.PublishAll(); err != nil {
		return err
	}
	c.countDiscovery()
	return nil
}

// handlePacket processes one raw loop packet from the ingest topic.
//
// The cycle is preprocess → classify → publish states; when the packet
// introduces measurements never seen before, the full discovery set is
// republished first so Home Assistant knows the new entities before
// their state arrives.
func (c *Controller) handlePacket(topic string, payload []byte) error {
	if !c.bus.IsConnected() {
		// Messages can still drain from the paho buffer during a
		// disconnect; publishing would fail, so skip the cycle.
		c.logger.Warn("bus disconnected, skipping packet")
		return nil
	}

	var packet map[string]any
	if err := json.Unmarshal(payload, &packet); err != nil {
		c.countPacketError()
		return fmt.Errorf("decoding loop packet: %w", err)
	}

	// The observation time survives even when dateTime is filtered from
	// publication; archived points carry it instead of ingestion time.
	observedAt, hasObservedAt := packetTime(packet)

	packet = c.pre.Process(packet)

	result, err := c.classifier.Process(c.nodeID, packet)
	if err != nil {
		c.countPacketError()
		return fmt.Errorf("classifying packet: %w", err)
	}
	c.countPacket(result)

	if len(result.NewKeys) > 0 {
		c.logger.Debug("new measurements discovered", "keys", result.NewKeys)
		if err := c.discovery.PublishAll(); err != nil {
			c.countPublishError()
			return err
		}
		c.countDiscovery()
	}

	if err := c.state.Publish(result.States); err != nil {
		c.countPublishError()
		return err
	}
	c.archiveStates(result.States, observedAt, hasObservedAt)

	return nil
}

// archiveStates forwards numeric state values to the archive, stamped
// with the packet's observation time when it carried one.
func (c *Controller) archiveStates(records []measurement.StateRecord, at time.Time, hasTime bool) {
	if c.archive == nil {
		return
	}
	for _, rec := range records {
		v, ok := toFloat(rec.Value)
		if !ok {
			continue
		}
		if hasTime {
			c.archive.WriteStateRecordAt(c.nodeID, rec.Key, v, at)
		} else {
			c.archive.WriteStateRecord(c.nodeID, rec.Key, v)
		}
	}
}

// packetTime reads the observation epoch from a raw packet's dateTime
// field.
func packetTime(packet map[string]any) (time.Time, bool) {
	raw, ok := packet["dateTime"]
	if !ok {
		return time.Time{}, false
	}
	epoch, ok := toFloat(raw)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(int64(epoch), 0).UTC(), true
}

func (c *Controller) countPacket(result measurement.Result) {
	if c.metrics == nil {
		return
	}
	c.metrics.PacketsProcessed.Inc()
	c.metrics.StatesPublished.Add(float64(len(result.States)))
	c.metrics.NewMeasurements.Add(float64(len(result.NewKeys)))
}

func (c *Controller) countPacketError() {
	if c.metrics != nil {
		c.metrics.PacketErrors.Inc()
	}
}

func (c *Controller) countPublishError() {
	if c.metrics != nil {
		c.metrics.PublishErrors.Inc()
	}
}

func (c *Controller) countDiscovery() {
	if c.metrics != nil {
		c.metrics.DiscoveryPublishes.Inc()
	}
}

// toFloat coerces the numeric types a state record can carry.
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
