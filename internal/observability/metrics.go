package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and gauges for the bridge.
type Metrics struct {
	PacketsProcessed   prometheus.Counter
	PacketErrors       prometheus.Counter
	StatesPublished    prometheus.Counter
	PublishErrors      prometheus.Counter
	DiscoveryPublishes prometheus.Counter
	NewMeasurements    prometheus.Counter
	Connected          prometheus.Gauge
}

// NewMetrics creates and registers all bridge metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.PacketsProcessed,
		m.PacketErrors,
		m.StatesPublished,
		m.PublishErrors,
		m.DiscoveryPublishes,
		m.NewMeasurements,
		m.Connected,
	)

	return m
}

// NewMetricsForTesting creates Metrics without touching the default
// registry, avoiding "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		PacketsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weewx_ha",
			Name:      "packets_processed_total",
			Help:      "Total loop packets ingested and classified.",
		}),
		PacketErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weewx_ha",
			Name:      "packet_errors_total",
			Help:      "Total loop packets that failed decoding or classification.",
		}),
		StatesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weewx_ha",
			Name:      "states_published_total",
			Help:      "Total state records published to the bus.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weewx_ha",
			Name:      "publish_errors_total",
			Help:      "Total failed MQTT publish operations.",
		}),
		DiscoveryPublishes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weewx_ha",
			Name:      "discovery_publishes_total",
			Help:      "Total discovery configuration publications.",
		}),
		NewMeasurements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weewx_ha",
			Name:      "new_measurements_total",
			Help:      "Total distinct measurement keys discovered.",
		}),
		Connected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weewx_ha",
			Name:      "mqtt_connected",
			Help:      "1 when the MQTT connection is up, 0 otherwise.",
		}),
	}
}
