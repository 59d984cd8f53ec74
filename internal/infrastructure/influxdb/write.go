package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteStateRecord archives one published measurement value.
//
// Only numeric values are archived; transformed string states
// (timestamps, unit-system labels) carry no time-series signal and are
// skipped by the caller. The write is non-blocking; data is batched
// and sent asynchronously.
//
// Parameters:
//   - nodeID: The station node the measurement belongs to
//   - key: The measurement key (e.g., "outTemp", "windSpeed")
//   - value: The numeric value as published on the state topic
//
// Example:
//
//	client.WriteStateRecord("back-garden", "outTemp", 21.5)
func (c *Client) WriteStateRecord(nodeID string, key string, value float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"weather",
		map[string]string{
			"node_id":     nodeID,
			"measurement": key,
		},
		map[string]interface{}{
			"value": value,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteStateRecordAt archives a measurement with an explicit timestamp.
//
// Used when the loop packet carries its own observation time and the
// archive should reflect it rather than the ingestion time.
func (c *Client) WriteStateRecordAt(nodeID string, key string, value float64, at time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"weather",
		map[string]string{
			"node_id":     nodeID,
			"measurement": key,
		},
		map[string]interface{}{
			"value": value,
		},
		at,
	)

	c.writeAPI.WritePoint(point)
}
