package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/felddy/weewx-home-assistant/internal/units"
)

func TestLoad_ValidConfig(t *testing.T) {
	// Create a temporary config file
	content := `
node_id: "back-garden"
station:
  name: "Back Garden Station"
  model: "Vantage Pro2"
  manufacturer: "Davis"
mqtt:
  broker:
    host: "mqtt.example.com"
    port: 1883
    client_id: "test-client"
  qos: 1
topics:
  discovery_prefix: "homeassistant"
  state_prefix: "weather/back-garden"
  ingest_topic: "weewx/loop"
unit_system: "METRIC"
filter_keys:
  - dateTime
  - interval
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.NodeID != "back-garden" {
		t.Errorf("NodeID = %q, want %q", cfg.NodeID, "back-garden")
	}

	if cfg.Station.Name != "Back Garden Station" {
		t.Errorf("Station.Name = %q, want %q", cfg.Station.Name, "Back Garden Station")
	}

	if cfg.MQTT.Broker.Host != "mqtt.example.com" {
		t.Errorf("MQTT.Broker.Host = %q, want %q", cfg.MQTT.Broker.Host, "mqtt.example.com")
	}

	if cfg.ParsedUnitSystem() != units.Metric {
		t.Errorf("ParsedUnitSystem() = %v, want METRIC", cfg.ParsedUnitSystem())
	}

	set := cfg.FilterKeySet()
	if _, ok := set["interval"]; !ok {
		t.Errorf("FilterKeySet() missing %q", "interval")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("invalid: [yaml: content"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	content := `
node_id: ""
station:
  name: "Station"
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected validation error for empty node_id, got nil")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := defaultConfig()
		cfg.Station.Name = "Station"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "missing node ID",
			mutate:  func(c *Config) { c.NodeID = "" },
			wantErr: true,
		},
		{
			name:    "missing station name",
			mutate:  func(c *Config) { c.Station.Name = "" },
			wantErr: true,
		},
		{
			name:    "missing broker host",
			mutate:  func(c *Config) { c.MQTT.Broker.Host = "" },
			wantErr: true,
		},
		{
			name:    "invalid QoS",
			mutate:  func(c *Config) { c.MQTT.QoS = 3 },
			wantErr: true,
		},
		{
			name:    "invalid broker port",
			mutate:  func(c *Config) { c.MQTT.Broker.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "missing discovery prefix",
			mutate:  func(c *Config) { c.Topics.DiscoveryPrefix = "" },
			wantErr: true,
		},
		{
			name:    "missing ingest topic",
			mutate:  func(c *Config) { c.Topics.IngestTopic = "" },
			wantErr: true,
		},
		{
			name:    "unknown unit system",
			mutate:  func(c *Config) { c.UnitSystem = "IMPERIAL" },
			wantErr: true,
		},
		{
			name:    "lowercase unit system",
			mutate:  func(c *Config) { c.UnitSystem = "metric" },
			wantErr: true,
		},
		{
			name:    "influxdb enabled without url",
			mutate:  func(c *Config) { c.InfluxDB.Enabled = true },
			wantErr: true,
		},
		{
			name: "influxdb enabled with url and bucket",
			mutate: func(c *Config) {
				c.InfluxDB.Enabled = true
				c.InfluxDB.URL = "http://localhost:8086"
				c.InfluxDB.Bucket = "weather"
			},
			wantErr: false,
		},
		{
			name: "metrics enabled with bad port",
			mutate: func(c *Config) {
				c.Metrics.Enabled = true
				c.Metrics.Port = 0
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := defaultConfig()

	t.Setenv("WEEWX_HA_NODE_ID", "roof-station")
	t.Setenv("WEEWX_HA_UNIT_SYSTEM", "US")
	t.Setenv("WEEWX_HA_MQTT_HOST", "mqtt.example.com")
	t.Setenv("WEEWX_HA_MQTT_PORT", "8883")
	t.Setenv("WEEWX_HA_MQTT_USERNAME", "testuser")
	t.Setenv("WEEWX_HA_MQTT_PASSWORD", "testpass")
	t.Setenv("WEEWX_HA_INFLUXDB_TOKEN", "secret-token")

	applyEnvOverrides(cfg)

	if cfg.NodeID != "roof-station" {
		t.Errorf("NodeID = %q, want %q", cfg.NodeID, "roof-station")
	}

	if cfg.UnitSystem != "US" {
		t.Errorf("UnitSystem = %q, want %q", cfg.UnitSystem, "US")
	}

	if cfg.MQTT.Broker.Host != "mqtt.example.com" {
		t.Errorf("MQTT.Broker.Host = %q, want %q", cfg.MQTT.Broker.Host, "mqtt.example.com")
	}

	if cfg.MQTT.Broker.Port != 8883 {
		t.Errorf("MQTT.Broker.Port = %d, want 8883", cfg.MQTT.Broker.Port)
	}

	if cfg.MQTT.Auth.Username != "testuser" {
		t.Errorf("MQTT.Auth.Username = %q, want %q", cfg.MQTT.Auth.Username, "testuser")
	}

	if cfg.MQTT.Auth.Password != "testpass" {
		t.Errorf("MQTT.Auth.Password = %q, want %q", cfg.MQTT.Auth.Password, "testpass")
	}

	if cfg.InfluxDB.Token != "secret-token" {
		t.Errorf("InfluxDB.Token = %q, want %q", cfg.InfluxDB.Token, "secret-token")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.NodeID != "weewx" {
		t.Errorf("NodeID = %q, want %q", cfg.NodeID, "weewx")
	}

	if cfg.UnitSystem != "METRICWX" {
		t.Errorf("UnitSystem = %q, want %q", cfg.UnitSystem, "METRICWX")
	}

	// dateTime is filtered out of the box.
	if _, ok := cfg.FilterKeySet()["dateTime"]; !ok {
		t.Error("default filter keys must include dateTime")
	}

	if cfg.Topics.DiscoveryPrefix != "homeassistant" {
		t.Errorf("Topics.DiscoveryPrefix = %q, want %q", cfg.Topics.DiscoveryPrefix, "homeassistant")
	}

	if cfg.MQTT.QoS != 1 {
		t.Errorf("MQTT.QoS = %d, want 1", cfg.MQTT.QoS)
	}
}
