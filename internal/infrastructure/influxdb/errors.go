package influxdb

import "errors"

// Sentinel errors for archive operations.
//
// These errors can be checked using errors.Is() for specific handling:
//
//	if errors.Is(err, influxdb.ErrDisabled) {
//	    // Run without the archive
//	}
var (
	// ErrNotConnected indicates the client is not connected to InfluxDB.
	ErrNotConnected = errors.New("influxdb: not connected")

	// ErrConnectionFailed indicates the initial connection attempt failed.
	ErrConnectionFailed = errors.New("influxdb: connection failed")

	// ErrDisabled indicates the archive is disabled in config.
	// Connect refuses disabled configs; callers gate on cfg.Enabled.
	ErrDisabled = errors.New("influxdb: disabled in configuration")
)
