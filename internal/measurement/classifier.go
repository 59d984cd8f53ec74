package measurement

import (
	"fmt"
	"sort"
)

// StateRecord is one bus-ready measurement value. The key doubles as
// the state topic suffix.
type StateRecord struct {
	Key   string
	Value any
}

// Result is the outcome of classifying one packet.
type Result struct {
	// States holds one record per publishable measurement, transforms
	// applied, in deterministic key order.
	States []StateRecord

	// NewKeys lists the measurements first observed in this packet.
	// A non-empty list signals that discovery configurations should be
	// republished; the classifier itself never touches the bus.
	NewKeys []string
}

// Classifier converts incoming packets into state records and new-key
// notifications using a Registry for classification.
//
// The classifier is stateless apart from the registry it wraps and is
// safe for concurrent use.
type Classifier struct {
	registry *Registry
	convert  PacketConverter
	logger   Logger
}

// NewClassifier creates a classifier over the given registry.
// A nil converter disables unit-system conversion; a nil logger
// disables diagnostics.
func NewClassifier(registry *Registry, convert PacketConverter, logger Logger) *Classifier {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Classifier{
		registry: registry,
		convert:  convert,
		logger:   logger,
	}
}

// Process classifies one raw packet for a node.
//
// The packet is first converted to the node's unit system, then each
// key is filtered, observed in the registry, and emitted as a state
// record with its transform applied. Nil values register their key but
// are never emitted: downstream template rendering treats null state
// as a failure.
//
// Keys are processed in sorted order so that state emission and
// first-seen registry order are reproducible.
//
// Process never fails for a measurement-shape reason; the only errors
// are an unregistered node and a packet whose unit system cannot be
// determined for conversion.
func (c *Classifier) Process(nodeID string, packet map[string]any) (Result, error) {
	cfg, err := c.registry.NodeConfig(nodeID)
	if err != nil {
		return Result{}, err
	}

	if c.convert != nil {
		converted, err := c.convert(packet, cfg.UnitSystem)
		if err != nil {
			return Result{}, fmt.Errorf("converting packet: %w", err)
		}
		packet = converted
	}

	keys := make([]string, 0, len(packet))
	for key := range packet {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var result Result
	for _, key := range keys {
		if _, filtered := cfg.FilterKeys[key]; filtered {
			continue
		}

		entry, isNew, err := c.registry.Observe(nodeID, key)
		if err != nil {
			return Result{}, err
		}
		if isNew {
			result.NewKeys = append(result.NewKeys, key)
		}

		value := packet[key]
		if value == nil {
			continue
		}

		result.States = append(result.States, StateRecord{
			Key:   key,
			Value: entry.Transform.Apply(value),
		})
	}
	return result, nil
}
