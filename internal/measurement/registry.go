package measurement

import (
	"fmt"
	"sort"
	"sync"

	"github.com/felddy/weewx-home-assistant/internal/units"
)

// DeviceInfo describes the weather station a node's measurements
// belong to. Published verbatim inside every discovery payload.
type DeviceInfo struct {
	Identifiers  []string
	Name         string
	Model        string
	Manufacturer string
}

// NodeConfig holds the fixed per-node settings of the registry.
type NodeConfig struct {
	AvailabilityTopic    string
	DiscoveryTopicPrefix string
	StateTopicPrefix     string
	Device               DeviceInfo
	FilterKeys           map[string]struct{}
	UnitSystem           units.System
}

// Entry is the merged classification record for one observed
// measurement: unit display metadata combined with key configuration,
// with the transform and integration carried alongside for use at
// publish and filter time.
//
// Entries are immutable once created; a key's classification is fixed
// for the process lifetime.
type Entry struct {
	Name             string
	Icon             string
	DeviceClass      string
	DisplayUnit      *string
	Precision        *int
	EnabledByDefault *bool
	Attributes       map[string]string
	Integration      Integration
	Transform        Transform
}

// KeyedEntry pairs a measurement key with its registry entry for
// snapshot iteration.
type KeyedEntry struct {
	Key   string
	Entry Entry
}

// mergeEntry combines unit and key metadata into a registry entry.
//
// Precedence is field-level and explicit: the key configuration owns
// the human-facing fields, the unit metadata owns the unit fields.
func mergeEntry(unit UnitMetadata, cfg KeyConfig) Entry {
	return Entry{
		Name:             cfg.Metadata.Name,
		Icon:             cfg.Metadata.Icon,
		DeviceClass:      cfg.Metadata.DeviceClass,
		DisplayUnit:      unit.DisplayUnit,
		Precision:        unit.Precision,
		EnabledByDefault: cfg.Metadata.EnabledByDefault,
		Attributes:       cfg.Metadata.Attributes,
		Integration:      integrationOrDefault(cfg.Integration),
		Transform:        cfg.Transform,
	}
}

// node holds one station's configuration and its observed
// measurements in first-seen order.
type node struct {
	cfg     NodeConfig
	entries map[string]Entry
	order   []string
}

// Registry accumulates the merged classification for every distinct
// measurement key observed per node. It drives discovery publication
// and detects new-key events.
//
// The registry is insert-only: entries are never overwritten or
// removed before process teardown. All methods are safe for concurrent
// use; mutations are serialised so concurrent observations of the same
// unseen key yield exactly one "new" result.
type Registry struct {
	mu       sync.Mutex
	nodes    map[string]*node
	resolver *Resolver
	logger   Logger
}

// NewRegistry creates an empty registry resolving units through the
// given source. A nil logger disables diagnostics.
func NewRegistry(source UnitSource, logger Logger) *Registry {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Registry{
		nodes:    make(map[string]*node),
		resolver: NewResolver(source, logger),
		logger:   logger,
	}
}

// RegisterNode adds a node with its fixed configuration.
// Returns ErrNodeExists if the ID is already registered.
func (r *Registry) RegisterNode(nodeID string, cfg NodeConfig) error {
	if nodeID == "" {
		return fmt.Errorf("%w: empty node ID", ErrInvalidNodeConfig)
	}
	if !cfg.UnitSystem.Valid() {
		return fmt.Errorf("%w: unit system %d", ErrInvalidNodeConfig, int(cfg.UnitSystem))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.nodes[nodeID]; ok {
		return fmt.Errorf("%w: %s", ErrNodeExists, nodeID)
	}
	r.nodes[nodeID] = &node{
		cfg:     cfg,
		entries: make(map[string]Entry),
	}
	r.logger.Debug("node registered",
		"node_id", nodeID,
		"unit_system", cfg.UnitSystem.String(),
	)
	return nil
}

// NodeConfig returns the fixed configuration of a node.
func (r *Registry) NodeConfig(nodeID string) (NodeConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.nodes[nodeID]
	if !ok {
		return NodeConfig{}, fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID)
	}
	return n.cfg, nil
}

// Observe looks up or registers the classification for a measurement
// key.
//
// The first observation of a key resolves and stores its merged entry
// and reports isNew=true; every later observation returns the stored
// entry with isNew=false. Under concurrent observation of the same
// unseen key, exactly one caller sees isNew=true.
//
// Filter keys are never stored; observing one returns ErrKeyFiltered.
func (r *Registry) Observe(nodeID, key string) (Entry, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.nodes[nodeID]
	if !ok {
		return Entry{}, false, fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID)
	}
	if _, filtered := n.cfg.FilterKeys[key]; filtered {
		return Entry{}, false, fmt.Errorf("%w: %s", ErrKeyFiltered, key)
	}

	if entry, seen := n.entries[key]; seen {
		return entry, false, nil
	}

	// Resolution is idempotent and cheap, so it runs inside the
	// critical section; first writer wins by construction.
	entry := mergeEntry(
		r.resolver.ResolveUnit(key, n.cfg.UnitSystem),
		ResolveKey(key),
	)
	n.entries[key] = entry
	n.order = append(n.order, key)

	r.logger.Debug("discovered new measurement", "node_id", nodeID, "key", key)
	return entry, true, nil
}

// Snapshot returns every entry of a node in first-seen order, for
// reproducible discovery publication.
func (r *Registry) Snapshot(nodeID string) ([]KeyedEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.nodes[nodeID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID)
	}

	snapshot := make([]KeyedEntry, 0, len(n.order))
	for _, key := range n.order {
		snapshot = append(snapshot, KeyedEntry{Key: key, Entry: n.entries[key]})
	}
	return snapshot, nil
}

// NodeIDs returns the registered node IDs in sorted order, so
// iteration over nodes is reproducible run-to-run.
func (r *Registry) NodeIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.nodes))
	for id := range r.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// MeasurementCount returns the number of observed measurements for a
// node. Unregistered nodes count zero.
func (r *Registry) MeasurementCount(nodeID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n, ok := r.nodes[nodeID]; ok {
		return len(n.entries)
	}
	return 0
}
