package mqtt

import (
	"testing"
	"time"

	"github.com/Ismailco/PWA2Native/internal/config"
	"github.com/Ismailco/PWA2Native/internal/history"
)

func TestPublishBadBroker(t *testing.T) {
	// Connecting to a non-existent broker should return a connect error.
	cfg := config.MQTT{Broker: "tcp://127.0.0.1:19999", ClientID: "test-client", Topic: "test/topic"}
	if err := Publish(cfg, []byte("hello")); err == nil {
		t.Fatal("expected error for unreachable broker")
	}
}

func TestPublishBadScheme(t *testing.T) {
	// A completely invalid broker URL should fail.
	cfg := config.MQTT{Broker: "not-a-url", Topic: "test/topic"}
	if err := Publish(cfg, []byte("hello")); err == nil {
		t.Fatal("expected error for invalid broker URL")
	}
}

func TestPublishRunBadBroker(t *testing.T) {
	cfg := config.MQTT{Broker: "tcp://127.0.0.1:19999", Topic: "pwa2native/runs"}
	start := time.Now()
	err := PublishRun(cfg, history.NewRun("https://example.com", "Example", "dist"))
	if err == nil {
		t.Fatal("expected error for unreachable broker")
	}
	if time.Since(start) > 2*Timeout {
		t.Errorf("publish took %v, want bounded by timeout", time.Since(start))
	}
}
