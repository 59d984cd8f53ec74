// weewx-ha - WeeWX to Home Assistant MQTT bridge
//
// This is the main entry point for the bridge. It subscribes to raw
// WeeWX loop packets on MQTT, classifies every measurement, publishes
// Home Assistant discovery configurations, and republishes the values
// as per-measurement state topics.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/felddy/weewx-home-assistant/internal/infrastructure/config"
	"github.com/felddy/weewx-home-assistant/internal/infrastructure/influxdb"
	"github.com/felddy/weewx-home-assistant/internal/infrastructure/logging"
	"github.com/felddy/weewx-home-assistant/internal/infrastructure/mqtt"
	"github.com/felddy/weewx-home-assistant/internal/measurement"
	"github.com/felddy/weewx-home-assistant/internal/observability"
	"github.com/felddy/weewx-home-assistant/internal/publisher"
	"github.com/felddy/weewx-home-assistant/internal/units"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting weewx-ha bridge",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Prometheus metrics (optional endpoint, counters always collected)
	metrics := observability.NewMetrics()

	// Build the classification registry for the single configured node
	topics := mqtt.NewTopics(
		cfg.Topics.DiscoveryPrefix,
		cfg.Topics.StatePrefix,
		cfg.Topics.IngestTopic,
		cfg.NodeID,
	)

	registry := measurement.NewRegistry(units.StandardUnit, log)
	err = registry.RegisterNode(cfg.NodeID, measurement.NodeConfig{
		AvailabilityTopic:    topics.Availability(),
		DiscoveryTopicPrefix: cfg.Topics.DiscoveryPrefix,
		StateTopicPrefix:     topics.StatePrefix(),
		Device: measurement.DeviceInfo{
			Identifiers:  []string{cfg.NodeID},
			Name:         cfg.Station.Name,
			Model:        cfg.Station.Model,
			Manufacturer: cfg.Station.Manufacturer,
		},
		FilterKeys: cfg.FilterKeySet(),
		UnitSystem: cfg.ParsedUnitSystem(),
	})
	if err != nil {
		return fmt.Errorf("registering node: %w", err)
	}
	log.Info("node registered",
		"node_id", cfg.NodeID,
		"unit_system", cfg.UnitSystem,
		"filter_keys", cfg.FilterKeys,
	)

	// Connect to MQTT broker; the availability topic carries the LWT
	mqttClient, err := mqtt.Connect(cfg.MQTT, topics)
	if err != nil {
		return fmt.Errorf("connecting to MQTT: %w", err)
	}
	defer func() {
		log.Info("disconnecting from MQTT")
		if closeErr := mqttClient.Close(); closeErr != nil {
			log.Error("error closing MQTT", "error", closeErr)
		}
	}()
	log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
		"client_id", cfg.MQTT.Broker.ClientID,
	)
	metrics.Connected.Set(1)

	// Set up MQTT logging callbacks
	mqttClient.SetLogger(log)
	mqttClient.SetOnConnect(func() {
		log.Info("MQTT reconnected")
		metrics.Connected.Set(1)
	})
	mqttClient.SetOnDisconnect(func(err error) {
		log.Warn("MQTT disconnected", "error", err)
		metrics.Connected.Set(0)
	})

	// Connect to InfluxDB archive (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
	} else {
		log.Info("InfluxDB disabled")
	}

	// Start metrics endpoint (optional)
	if cfg.Metrics.Enabled {
		addr := fmt.Sprintf("%s:%d", cfg.Metrics.Host, cfg.Metrics.Port)
		server := observability.NewServer(addr)
		go func() {
			if serveErr := server.Start(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
				log.Error("metrics server failed", "error", serveErr)
			}
		}()
		defer func() {
			log.Info("stopping metrics server")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
				log.Error("error stopping metrics server", "error", shutdownErr)
			}
		}()
		log.Info("metrics endpoint started", "addr", addr)
	}

	// Wire the processing pipeline and subscribe. The topic builder is
	// read back from the client so everything downstream shares the
	// layout the connection (and its LWT) was established with.
	busTopics := mqttClient.Topics()
	classifier := measurement.NewClassifier(registry, units.ConvertPacket, log)
	discovery := publisher.NewDiscovery(mqttClient, registry, log)
	state := publisher.NewState(mqttClient, busTopics, byte(cfg.MQTT.QoS), log)

	opts := publisher.ControllerOptions{Metrics: metrics}
	if influxClient != nil {
		opts.Archive = influxClient
	}
	controller := publisher.NewController(
		mqttClient,
		classifier,
		publisher.NewPreprocessor(log),
		discovery,
		state,
		busTopics,
		cfg.NodeID,
		byte(cfg.MQTT.QoS),
		log,
		opts,
	)
	if err := controller.Start(); err != nil {
		return fmt.Errorf("starting controller: %w", err)
	}

	// Verify all connections are healthy
	if err := healthCheck(ctx, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Flush any buffered archive writes before the deferred Close calls run
	if influxClient != nil {
		influxClient.Flush()
	}

	log.Info("weewx-ha bridge stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses WEEWX_HA_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("WEEWX_HA_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies all infrastructure connections are healthy.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - mqttClient: MQTT client to check
//   - influxClient: InfluxDB client to check (may be nil if disabled)
//
// Returns:
//   - error: First health check failure, or nil if all healthy
func healthCheck(ctx context.Context, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if err := mqttClient.HealthCheck(ctx); err != nil {
		return fmt.Errorf("mqtt: %w", err)
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	return nil
}
