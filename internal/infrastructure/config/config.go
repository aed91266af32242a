package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Availability payloads published on the device LWT topic. The discovery
// descriptors and the MQTT Last Will must agree on these literals, so they
// are fixed here rather than per-record.
const (
	PayloadAvailable    = "online"
	PayloadNotAvailable = "offline"
)

// Config is the root configuration structure for itho-discovery.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Device   DeviceConfig   `yaml:"device"`
	MDBTools MDBToolsConfig `yaml:"mdbtools"`
	Loader   LoaderConfig   `yaml:"loader"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DeviceConfig identifies the HVAC unit the generated sensors belong to and
// the topic namespace its telemetry lives under.
type DeviceConfig struct {
	// ID is the Home Assistant device identifier used as the unique_id prefix.
	ID string `yaml:"id"`

	// RootTopic is the MQTT namespace the unit publishes telemetry under.
	// Status and availability topics are derived from it.
	RootTopic string `yaml:"root_topic"`

	// DiscoveryPrefix is the Home Assistant MQTT discovery prefix.
	// Default: "homeassistant"
	DiscoveryPrefix string `yaml:"discovery_prefix"`
}

// StatusTopic returns the topic the unit publishes its telemetry JSON on.
//
// Example: itho_wtw/ithostatus
func (d DeviceConfig) StatusTopic() string {
	return d.RootTopic + "/ithostatus"
}

// AvailabilityTopic returns the LWT topic carrying the online/offline payloads.
//
// Example: itho_wtw/lwt
func (d DeviceConfig) AvailabilityTopic() string {
	return d.RootTopic + "/lwt"
}

// MDBToolsConfig contains settings for the external mdbtools binaries that
// read the legacy Access export.
type MDBToolsConfig struct {
	// SchemaBinary exports the database schema as SQLite DDL.
	// Default: "mdb-schema"
	SchemaBinary string `yaml:"schema_binary"`

	// TablesBinary enumerates table names.
	// Default: "mdb-tables"
	TablesBinary string `yaml:"tables_binary"`

	// ExportBinary exports table rows as INSERT scripts.
	// Default: "mdb-export"
	ExportBinary string `yaml:"export_binary"`

	// Timeout is the per-invocation limit in seconds. Expiry is treated as
	// an extraction failure.
	Timeout int `yaml:"timeout"`
}

// GetTimeout returns the per-invocation timeout as a Duration.
func (m MDBToolsConfig) GetTimeout() time.Duration {
	return time.Duration(m.Timeout) * time.Second
}

// LoaderConfig contains catalog loading behaviour switches.
type LoaderConfig struct {
	// CarryOverTables reuses the previously resolved table name when a
	// version has no table of its own, matching the behaviour of the
	// original configuration tool export chain. Disable to make an
	// unresolved version a hard error instead.
	CarryOverTables bool `yaml:"carry_over_tables"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	// Enabled gates discovery publishing. YAML output never needs a broker.
	Enabled   bool                `yaml:"enabled"`
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
	MaxAttempts  int `yaml:"max_attempts"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: ITHO_SECTION_KEY
// For example: ITHO_DEVICE_ID, ITHO_MQTT_HOST
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns a Config with sensible defaults.
// Callers running without a config file can use it directly.
func Default() *Config {
	return &Config{
		Device: DeviceConfig{
			ID:              "itho_432432",
			RootTopic:       "itho_wtw",
			DiscoveryPrefix: "homeassistant",
		},
		MDBTools: MDBToolsConfig{
			SchemaBinary: "mdb-schema",
			TablesBinary: "mdb-tables",
			ExportBinary: "mdb-export",
			Timeout:      30,
		},
		Loader: LoaderConfig{
			CarryOverTables: true,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "itho-discovery",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
				MaxAttempts:  0,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stderr",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: ITHO_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Device
	if v := os.Getenv("ITHO_DEVICE_ID"); v != "" {
		cfg.Device.ID = v
	}
	if v := os.Getenv("ITHO_DEVICE_ROOT_TOPIC"); v != "" {
		cfg.Device.RootTopic = v
	}

	// MQTT
	if v := os.Getenv("ITHO_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("ITHO_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("ITHO_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// Logging
	if v := os.Getenv("ITHO_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if c.Device.ID == "" {
		errs = append(errs, "device.id is required")
	}
	if c.Device.RootTopic == "" {
		errs = append(errs, "device.root_topic is required")
	}
	if c.Device.DiscoveryPrefix == "" {
		errs = append(errs, "device.discovery_prefix is required")
	}

	if c.MDBTools.SchemaBinary == "" || c.MDBTools.TablesBinary == "" || c.MDBTools.ExportBinary == "" {
		errs = append(errs, "mdbtools binaries must all be set")
	}
	if c.MDBTools.Timeout <= 0 {
		errs = append(errs, "mdbtools.timeout must be positive")
	}

	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}
	if c.MQTT.Enabled && c.MQTT.Broker.Host == "" {
		errs = append(errs, "mqtt.broker.host is required when mqtt is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}
