package mqtt

import "fmt"

// Topics provides topic construction for the hub's MQTT discovery protocol.
//
// Discovery config topics follow the hub's convention:
//
//	<discovery_prefix>/sensor/<device_id>/<object_id>/config
//
// The hub watches the discovery prefix and materializes a sensor entity for
// every retained config payload it finds there.
type Topics struct {
	// DiscoveryPrefix is the hub's discovery namespace, "homeassistant"
	// unless reconfigured on the hub side.
	DiscoveryPrefix string
}

// SensorConfig returns the discovery config topic for one sensor.
//
// Parameters:
//   - deviceID: The device identifier grouping this device's sensors
//   - objectID: Topic-safe per-sensor identifier
func (t Topics) SensorConfig(deviceID, objectID string) string {
	return fmt.Sprintf("%s/sensor/%s/%s/config", t.DiscoveryPrefix, deviceID, objectID)
}
