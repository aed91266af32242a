package mqtt

import (
	"errors"
	"testing"

	"github.com/nerrad567/itho-discovery/internal/infrastructure/config"
)

func TestSensorConfigTopic(t *testing.T) {
	topics := Topics{DiscoveryPrefix: "homeassistant"}

	got := topics.SensorConfig("itho_432432", "itho_432432_supply_flow")
	want := "homeassistant/sensor/itho_432432/itho_432432_supply_flow/config"
	if got != want {
		t.Errorf("SensorConfig() = %q, want %q", got, want)
	}
}

func TestBuildClientOptions(t *testing.T) {
	cfg := config.MQTTConfig{
		Broker: config.MQTTBrokerConfig{
			Host:     "broker.local",
			Port:     8883,
			TLS:      true,
			ClientID: "itho-discovery",
		},
		Auth: config.MQTTAuthConfig{Username: "itho", Password: "secret"},
		QoS:  1,
	}

	opts := buildClientOptions(cfg)

	if len(opts.Servers) != 1 {
		t.Fatalf("got %d brokers, want 1", len(opts.Servers))
	}
	if got := opts.Servers[0].String(); got != "ssl://broker.local:8883" {
		t.Errorf("broker URL = %q, want ssl://broker.local:8883", got)
	}
	if opts.ClientID != "itho-discovery" {
		t.Errorf("ClientID = %q", opts.ClientID)
	}
	if opts.Username != "itho" {
		t.Errorf("Username = %q", opts.Username)
	}
	if opts.TLSConfig == nil {
		t.Error("TLSConfig should be set when TLS is enabled")
	}
}

func TestConfigureLWT(t *testing.T) {
	cfg := config.MQTTConfig{
		Broker: config.MQTTBrokerConfig{Host: "broker.local", Port: 1883},
	}
	opts := buildClientOptions(cfg)
	configureLWT(opts, "itho_wtw/lwt")

	if !opts.WillEnabled {
		t.Fatal("LWT should be enabled")
	}
	if opts.WillTopic != "itho_wtw/lwt" {
		t.Errorf("WillTopic = %q", opts.WillTopic)
	}
	if string(opts.WillPayload) != config.PayloadNotAvailable {
		t.Errorf("WillPayload = %q, want offline payload", opts.WillPayload)
	}
	if !opts.WillRetained {
		t.Error("LWT should be retained")
	}
}

func TestPublishValidation(t *testing.T) {
	c := &Client{}

	if err := c.Publish("", []byte("x"), 0, false); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("empty topic: got %v, want ErrInvalidTopic", err)
	}
	if err := c.Publish("t", []byte("x"), 3, false); !errors.Is(err, ErrInvalidQoS) {
		t.Errorf("bad QoS: got %v, want ErrInvalidQoS", err)
	}
}
