//go:build integration

package mqtt

import (
	"sync"
	"testing"
	"time"

	"github.com/felddy/weewx-home-assistant/internal/infrastructure/config"
)

// Integration tests for MQTT behaviour against a live broker.
// These tests require a running MQTT broker at 127.0.0.1:1883.
//
// Run with:
//   go test -tags=integration -v ./internal/infrastructure/mqtt/...

func integrationConfig() config.MQTTConfig {
	return config.MQTTConfig{
		Broker: config.MQTTBrokerConfig{
			Host:     "127.0.0.1",
			Port:     1883,
			ClientID: "weewx-ha-integration-test",
			TLS:      false,
		},
		QoS: 1,
		Reconnect: config.MQTTReconnectConfig{
			InitialDelay: 1,
			MaxDelay:     5,
		},
	}
}

func integrationTopics() Topics {
	return NewTopics("homeassistant", "weewx-ha-test", "weewx-ha-test/loop", "test-node")
}

func TestIntegration_Connect(t *testing.T) {
	client, err := Connect(integrationConfig(), integrationTopics())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	if !client.IsConnected() {
		t.Error("IsConnected() = false, want true")
	}
}

func TestIntegration_AvailabilityRoundTrip(t *testing.T) {
	topics := integrationTopics()

	client, err := Connect(integrationConfig(), topics)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	// The retained "online" payload must be delivered to a late subscriber.
	var mu sync.Mutex
	var got string
	err = client.Subscribe(topics.Availability(), 1, func(_ string, payload []byte) error {
		mu.Lock()
		got = string(payload)
		mu.Unlock()
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		done := got == PayloadOnline
		mu.Unlock()
		if done {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Errorf("availability payload = %q, want %q", got, PayloadOnline)
}

func TestIntegration_SubscriptionTracking(t *testing.T) {
	cfg := integrationConfig()
	cfg.Broker.ClientID = "weewx-ha-int-sub-track"

	client, err := Connect(cfg, integrationTopics())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	subTopics := []string{
		"weewx-ha-test/int/topic1",
		"weewx-ha-test/int/topic2",
		"weewx-ha-test/int/topic3",
	}

	handler := func(topic string, payload []byte) error {
		return nil
	}

	for _, topic := range subTopics {
		if err := client.Subscribe(topic, 1, handler); err != nil {
			t.Fatalf("Subscribe(%s) error = %v", topic, err)
		}
	}

	if client.SubscriptionCount() != len(subTopics) {
		t.Errorf("SubscriptionCount() = %d, want %d", client.SubscriptionCount(), len(subTopics))
	}

	for _, topic := range subTopics {
		if !client.HasSubscription(topic) {
			t.Errorf("HasSubscription(%s) = false, want true", topic)
		}
	}

	if err := client.Unsubscribe(subTopics[0]); err != nil {
		t.Fatalf("Unsubscribe() error = %v", err)
	}

	if client.SubscriptionCount() != len(subTopics)-1 {
		t.Errorf("SubscriptionCount() after unsubscribe = %d, want %d", client.SubscriptionCount(), len(subTopics)-1)
	}

	if client.HasSubscription(subTopics[0]) {
		t.Errorf("HasSubscription(%s) = true after unsubscribe", subTopics[0])
	}
}
