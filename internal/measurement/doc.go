// Package measurement implements the classification and
// metadata-resolution core of the bridge.
//
// Given an arbitrary, evolving set of measurement keys from weather
// station loop packets and a selected unit system, the package
// deterministically resolves each key to display metadata (unit,
// rounding, name, icon, device class), a Home Assistant integration
// type, and an optional value transform. Resolution never fails:
// unknown keys degrade through numeric-suffix stripping and
// keyword-based heuristics to a usable minimal record.
//
// # Components
//
//   - Static lookup tables: unit metadata (unit_table.go) and key
//     configuration (key_table.go), validated once at package init.
//   - Resolver: pure key and unit resolution (resolver.go).
//   - Registry: per-node, insert-only store of every measurement seen,
//     in first-seen order (registry.go).
//   - Classifier: converts a packet to the configured unit system and
//     emits bus-ready state records plus new-key notifications
//     (classifier.go).
//
// The package performs no I/O. Unit conversion is consumed through the
// UnitSource and PacketConverter collaborator types, and publication is
// the caller's concern, keeping every component independently testable.
package measurement
