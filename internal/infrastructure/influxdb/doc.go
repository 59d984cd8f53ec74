// Package influxdb provides the optional weather-telemetry archive.
//
// It wraps the official influxdb-client-go v2 library with the bridge's
// patterns for connection management, point writing, and health
// monitoring. When enabled, every numeric state record the bridge
// publishes to MQTT is also written here as a time-series point, so
// history survives independently of Home Assistant's recorder.
//
// # Usage
//
//	cfg := config.InfluxDBConfig{
//	    Enabled: true,
//	    URL:     "http://localhost:8086",
//	    Token:   "your-token",
//	    Org:     "home",
//	    Bucket:  "weather",
//	}
//
//	client, err := influxdb.Connect(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	client.WriteStateRecord("back-garden", "outTemp", 21.5)
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
// The underlying write API uses non-blocking batched writes.
//
// # Error Handling
//
// Write operations are non-blocking and batch errors are delivered via
// the SetOnError callback. Connection and health check errors are
// returned directly.
//
// # Performance
//
// Writes are batched according to config.yaml settings (batch_size,
// flush_interval). This reduces network overhead for high-frequency
// loop packets.
package influxdb
