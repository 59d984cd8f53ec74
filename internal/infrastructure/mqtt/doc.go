// Package mqtt provides MQTT client connectivity for the bridge.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) on the availability topic
//   - Connection health monitoring
//
// # Architecture
//
// MQTT is the only transport the bridge speaks: the weather station
// publishes raw loop packets to the ingest topic, and the bridge
// publishes Home Assistant discovery configurations, per-measurement
// state values, and its own availability.
//
//	Weather Station → MQTT Broker ← Home Assistant
//	                     ↕
//	                   bridge
//
// # Security Considerations
//
//   - TLS is recommended for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//   - Message payloads are not encrypted beyond TLS transport
//
// # Performance Characteristics
//
//   - Connection: <1 second to local broker
//   - Publish latency: <10ms for QoS 1 to local broker
//   - Reconnect: Exponential backoff 1s-60s
//
// # Usage
//
//	topics := mqtt.NewTopics("homeassistant", "weather/garden", "weewx/loop", "garden")
//	client, err := mqtt.Connect(cfg.MQTT, topics)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Subscribe to raw loop packets
//	err = client.Subscribe(topics.Ingest(), 1,
//	    func(topic string, payload []byte) error {
//	        log.Printf("Received: %s = %s", topic, payload)
//	        return nil
//	    })
package mqtt
