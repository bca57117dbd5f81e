// Package mqtt publishes run summaries to an MQTT broker.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/Ismailco/PWA2Native/internal/config"
	"github.com/Ismailco/PWA2Native/internal/history"
)

// Timeout bounds both connect and publish.
const Timeout = 5 * time.Second

// Publish connects to the broker in cfg, publishes payload to cfg.Topic
// and disconnects. Each call uses a fresh connection.
func Publish(cfg config.MQTT, payload []byte) error {
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = fmt.Sprintf("pwa2native-%d", time.Now().UnixNano())
	}
	opts := pahomqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(clientID).
		SetConnectTimeout(Timeout).
		SetAutoReconnect(false)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	client := pahomqtt.NewClient(opts)
	tok := client.Connect()
	if !tok.WaitTimeout(Timeout) {
		return fmt.Errorf("mqtt: connect timeout")
	}
	if tok.Error() != nil {
		return fmt.Errorf("mqtt: connect: %w", tok.Error())
	}
	defer client.Disconnect(250)

	pub := client.Publish(cfg.Topic, cfg.QoS, cfg.Retain, payload)
	if !pub.WaitTimeout(Timeout) {
		return fmt.Errorf("mqtt: publish timeout")
	}
	if pub.Error() != nil {
		return fmt.Errorf("mqtt: publish: %w", pub.Error())
	}
	return nil
}

// PublishRun publishes r as JSON.
func PublishRun(cfg config.MQTT, r history.Run) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("mqtt: encode run: %w", err)
	}
	return Publish(cfg, payload)
}
