// Package mqtt provides the MQTT client used to publish sensor discovery
// descriptors and device availability.
//
// The client wraps paho.mqtt.golang with connection management, an
// availability Last Will and Testament, and validated publishing. Discovery
// payloads are published retained on the hub's discovery prefix so the hub
// picks them up whenever it subscribes.
package mqtt
