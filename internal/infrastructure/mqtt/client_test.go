package mqtt

import (
	"bytes"
	"errors"
	"testing"
)

// offlineClient builds a client that was never connected. Validation
// paths and connection-state checks are exercised without a broker;
// broker-dependent behaviour lives in integration_test.go.
func offlineClient() *Client {
	return &Client{
		subscriptions: make(map[string]subscription),
	}
}

func TestPublishValidation(t *testing.T) {
	c := offlineClient()

	if err := c.Publish("", []byte("x"), 1, false); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("empty topic: want ErrInvalidTopic, got %v", err)
	}

	if err := c.Publish("weather/outTemp", []byte("x"), 3, false); !errors.Is(err, ErrInvalidQoS) {
		t.Errorf("QoS 3: want ErrInvalidQoS, got %v", err)
	}

	huge := bytes.Repeat([]byte("x"), maxPayloadSize+1)
	if err := c.Publish("weather/outTemp", huge, 1, false); !errors.Is(err, ErrPublishFailed) {
		t.Errorf("oversized payload: want ErrPublishFailed, got %v", err)
	}

	if err := c.Publish("weather/outTemp", []byte("21.5"), 1, false); !errors.Is(err, ErrNotConnected) {
		t.Errorf("disconnected publish: want ErrNotConnected, got %v", err)
	}
}

func TestPublishStringValidation(t *testing.T) {
	c := offlineClient()

	if err := c.PublishString("", "21.5", 1, false); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("empty topic: want ErrInvalidTopic, got %v", err)
	}

	if err := c.PublishString("weather/outTemp", "21.5", 3, false); !errors.Is(err, ErrInvalidQoS) {
		t.Errorf("QoS 3: want ErrInvalidQoS, got %v", err)
	}

	if err := c.PublishString("weather/outTemp", "21.5", 1, false); !errors.Is(err, ErrNotConnected) {
		t.Errorf("disconnected publish: want ErrNotConnected, got %v", err)
	}
}

func TestPublishRetainedValidation(t *testing.T) {
	c := offlineClient()

	if err := c.PublishRetained("", []byte("{}")); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("empty topic: want ErrInvalidTopic, got %v", err)
	}

	if err := c.PublishRetained("homeassistant/sensor/garden/outTemp/config", []byte("{}")); !errors.Is(err, ErrNotConnected) {
		t.Errorf("disconnected publish: want ErrNotConnected, got %v", err)
	}
}

func TestClientTopics(t *testing.T) {
	topics := NewTopics("homeassistant", "weather/garden", "weewx/loop", "garden")
	c := &Client{topics: topics}

	if got := c.Topics(); got != topics {
		t.Errorf("Topics() = %+v, want %+v", got, topics)
	}
}

func TestSubscribeValidation(t *testing.T) {
	c := offlineClient()
	handler := func(string, []byte) error { return nil }

	if err := c.Subscribe("", 1, handler); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("empty topic: want ErrInvalidTopic, got %v", err)
	}

	if err := c.Subscribe("weewx/loop", 3, handler); !errors.Is(err, ErrInvalidQoS) {
		t.Errorf("QoS 3: want ErrInvalidQoS, got %v", err)
	}

	if err := c.Subscribe("weewx/loop", 1, nil); !errors.Is(err, ErrSubscribeFailed) {
		t.Errorf("nil handler: want ErrSubscribeFailed, got %v", err)
	}

	if err := c.Subscribe("weewx/loop", 1, handler); !errors.Is(err, ErrNotConnected) {
		t.Errorf("disconnected subscribe: want ErrNotConnected, got %v", err)
	}
	if c.SubscriptionCount() != 0 {
		t.Errorf("failed subscribe must not be tracked, count = %d", c.SubscriptionCount())
	}
}

func TestUnsubscribeValidation(t *testing.T) {
	c := offlineClient()

	if err := c.Unsubscribe(""); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("empty topic: want ErrInvalidTopic, got %v", err)
	}

	if err := c.Unsubscribe("weewx/loop"); !errors.Is(err, ErrNotConnected) {
		t.Errorf("disconnected unsubscribe: want ErrNotConnected, got %v", err)
	}
}
