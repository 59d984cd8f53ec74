package measurement

import (
	"github.com/felddy/weewx-home-assistant/internal/units"
)

// Integration identifies the Home Assistant integration a measurement
// is published under.
type Integration string

// Supported integrations. The zero value means IntegrationSensor.
const (
	IntegrationSensor       Integration = "sensor"
	IntegrationBinarySensor Integration = "binary_sensor"
)

// UnitMetadata is the display metadata for one canonical unit.
//
// A nil DisplayUnit marks a unit-less measurement. A nil Precision
// means no display rounding is suggested.
type UnitMetadata struct {
	DisplayUnit *string
	Precision   *int
}

// KeyMetadata is the human-facing metadata for one measurement key.
//
// EnabledByDefault is a tri-state: nil means enabled (the default),
// a pointer to false disables the entity by default in Home Assistant.
type KeyMetadata struct {
	Name             string
	Icon             string
	DeviceClass      string
	EnabledByDefault *bool
	Attributes       map[string]string
}

// KeyConfig is the full static configuration for one measurement key.
//
// The zero Integration means IntegrationSensor and the zero Transform
// means TransformNone, so table entries only set them when they differ.
type KeyConfig struct {
	Metadata    KeyMetadata
	Integration Integration
	Transform   Transform
}

// UnitSource resolves the canonical unit and unit group for a
// measurement key under a unit system. Both results are empty when the
// key has no known unit. Satisfied by units.StandardUnit.
type UnitSource func(system units.System, key string) (unit, group string)

// PacketConverter converts a raw packet to the target unit system.
// Satisfied by units.ConvertPacket.
type PacketConverter func(packet map[string]any, target units.System) (map[string]any, error)

// Logger defines the logging interface used by this package.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// integrationOrDefault maps the zero value to IntegrationSensor.
func integrationOrDefault(i Integration) Integration {
	if i == "" {
		return IntegrationSensor
	}
	return i
}

// strPtr and intPtr build the optional fields of table entries.
func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// disabled returns the pointer used by table entries that are not
// enabled by default.
func disabled() *bool {
	v := false
	return &v
}
