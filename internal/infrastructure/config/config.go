package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/felddy/weewx-home-assistant/internal/units"
)

// Config is the root configuration structure for the bridge.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	NodeID     string         `yaml:"node_id"`
	Station    StationConfig  `yaml:"station"`
	MQTT       MQTTConfig     `yaml:"mqtt"`
	Topics     TopicsConfig   `yaml:"topics"`
	FilterKeys []string       `yaml:"filter_keys"`
	UnitSystem string         `yaml:"unit_system"`
	InfluxDB   InfluxDBConfig `yaml:"influxdb"`
	Metrics    MetricsConfig  `yaml:"metrics"`
	Logging    LoggingConfig  `yaml:"logging"`
}

// StationConfig describes the weather station hardware. It is published
// verbatim as the device block of every discovery configuration.
type StationConfig struct {
	Name         string `yaml:"name"`
	Model        string `yaml:"model"`
	Manufacturer string `yaml:"manufacturer"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string        `yaml:"host"`
	Port     int           `yaml:"port"`
	TLS      bool          `yaml:"tls"`
	TLSFiles MQTTTLSConfig `yaml:"tls_files"`
	ClientID string        `yaml:"client_id"`
}

// MQTTTLSConfig points at the PEM files used for a TLS broker
// connection. All three are optional; without them the system
// certificate pool is used.
type MQTTTLSConfig struct {
	CAFile   string `yaml:"ca_file"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings (seconds).
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
}

// TopicsConfig contains the MQTT topic layout.
//
// DiscoveryPrefix is Home Assistant's discovery prefix, StatePrefix
// roots the per-measurement state topics and the availability topic,
// and IngestTopic carries the raw JSON loop packets from the station.
type TopicsConfig struct {
	DiscoveryPrefix string `yaml:"discovery_prefix"`
	StatePrefix     string `yaml:"state_prefix"`
	IngestTopic     string `yaml:"ingest_topic"`
}

// InfluxDBConfig contains the optional state-record archive settings.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// MetricsConfig contains the Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: WEEWX_HA_SECTION_KEY
// For example: WEEWX_HA_MQTT_HOST, WEEWX_HA_INFLUXDB_TOKEN
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
//
// dateTime is filtered by default: Home Assistant derives entity
// timestamps itself, and a per-packet clock entity is rarely wanted.
func defaultConfig() *Config {
	return &Config{
		NodeID: "weewx",
		Station: StationConfig{
			Name: "Weather Station",
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "weewx-ha",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
			},
		},
		Topics: TopicsConfig{
			DiscoveryPrefix: "homeassistant",
			StatePrefix:     "weewx-ha",
			IngestTopic:     "weewx/loop",
		},
		FilterKeys: []string{"dateTime"},
		UnitSystem: "METRICWX",
		Metrics: MetricsConfig{
			Host: "0.0.0.0",
			Port: 9180,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: WEEWX_HA_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WEEWX_HA_NODE_ID"); v != "" {
		cfg.NodeID = v
	}
	if v := os.Getenv("WEEWX_HA_UNIT_SYSTEM"); v != "" {
		cfg.UnitSystem = v
	}

	// MQTT
	if v := os.Getenv("WEEWX_HA_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("WEEWX_HA_MQTT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.MQTT.Broker.Port = port
		}
	}
	if v := os.Getenv("WEEWX_HA_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("WEEWX_HA_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// InfluxDB
	if v := os.Getenv("WEEWX_HA_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}

	// Logging
	if v := os.Getenv("WEEWX_HA_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if c.NodeID == "" {
		errs = append(errs, "node_id is required")
	}
	if c.Station.Name == "" {
		errs = append(errs, "station.name is required")
	}

	if c.MQTT.Broker.Host == "" {
		errs = append(errs, "mqtt.broker.host is required")
	}
	if c.MQTT.Broker.Port < 1 || c.MQTT.Broker.Port > 65535 {
		errs = append(errs, "mqtt.broker.port must be between 1 and 65535")
	}
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}

	if c.Topics.DiscoveryPrefix == "" {
		errs = append(errs, "topics.discovery_prefix is required")
	}
	if c.Topics.StatePrefix == "" {
		errs = append(errs, "topics.state_prefix is required")
	}
	if c.Topics.IngestTopic == "" {
		errs = append(errs, "topics.ingest_topic is required")
	}

	if _, err := units.SystemFromName(c.UnitSystem); err != nil {
		errs = append(errs, "unit_system must be US, METRIC, or METRICWX")
	}

	if c.InfluxDB.Enabled {
		if c.InfluxDB.URL == "" {
			errs = append(errs, "influxdb.url is required when influxdb is enabled")
		}
		if c.InfluxDB.Bucket == "" {
			errs = append(errs, "influxdb.bucket is required when influxdb is enabled")
		}
	}

	if c.Metrics.Enabled {
		if c.Metrics.Port < 1 || c.Metrics.Port > 65535 {
			errs = append(errs, "metrics.port must be between 1 and 65535")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// ParsedUnitSystem returns the configured target unit system.
// Validate guarantees the name parses; callers run after Load.
func (c *Config) ParsedUnitSystem() units.System {
	system, err := units.SystemFromName(c.UnitSystem)
	if err != nil {
		// Unreachable after Validate; fall back to the WeeWX default.
		return units.MetricWX
	}
	return system
}

// FilterKeySet returns the filter keys as a set for the registry.
func (c *Config) FilterKeySet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.FilterKeys))
	for _, key := range c.FilterKeys {
		set[key] = struct{}{}
	}
	return set
}
