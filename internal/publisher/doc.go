// Package publisher turns classified loop packets into MQTT traffic.
//
// It contains the packet preprocessor, the discovery and state
// publishers, and the controller that wires them to the bus: raw JSON
// loop packets arrive on the ingest topic, are preprocessed and
// classified, and leave again as per-measurement state values plus
// Home Assistant discovery configurations.
package publisher
