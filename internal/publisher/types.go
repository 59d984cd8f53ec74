package publisher

import (
	"time"

	"github.com/felddy/weewx-home-assistant/internal/infrastructure/mqtt"
)

// Bus is the slice of the MQTT client the publishers need.
// Satisfied by *mqtt.Client; tests substitute a recording fake.
type Bus interface {
	PublishString(topic string, payload string, qos byte, retained bool) error
	PublishRetained(topic string, payload []byte) error
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
	IsConnected() bool
}

// Archiver receives every numeric state record for long-term storage.
// Satisfied by *influxdb.Client.
type Archiver interface {
	WriteStateRecord(nodeID string, key string, value float64)
	WriteStateRecordAt(nodeID string, key string, value float64, at time.Time)
}

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
