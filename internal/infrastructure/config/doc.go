// Package config provides configuration loading for itho-discovery.
//
// Configuration is read from a YAML file, merged over hardcoded defaults,
// and finally overridden by ITHO_* environment variables. The device
// identity, topic namespace and availability payloads defined here are the
// fixed constants every generated discovery descriptor shares.
package config
