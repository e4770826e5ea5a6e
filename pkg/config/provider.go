// Package config loads server and calculation defaults from YAML files or a
// SQLite database through a common provider interface.
package config

import (
	"fmt"
	"strings"

	"github.com/hvactools/psychro/pkg/units"
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetServer() (*ServerData, error)
	GetDefaults() (*DefaultsData, error)

	// Configuration management
	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Server   ServerData   `json:"server,omitempty"`
	Defaults DefaultsData `json:"defaults,omitempty"`
	Logging  LoggingData  `json:"logging,omitempty"`
}

// ServerData holds the HTTP API server configuration
type ServerData struct {
	ListenAddr  string `json:"listen_addr,omitempty"`
	Port        int    `json:"port,omitempty"`
	TLSCertPath string `json:"tls_cert_path,omitempty"`
	TLSKeyPath  string `json:"tls_key_path,omitempty"`
}

// DefaultsData holds the calculation defaults applied when a request omits a
// parameter. Pressure is in the unit system's pressure unit; when zero and an
// altitude is set, the standard-atmosphere pressure at that altitude applies.
type DefaultsData struct {
	UnitSystem string  `json:"unit_system,omitempty"`
	Pressure   float64 `json:"pressure,omitempty"`
	Altitude   float64 `json:"altitude,omitempty"`
}

// LoggingData holds logger configuration
type LoggingData struct {
	Debug   bool   `json:"debug,omitempty"`
	LogFile string `json:"log_file,omitempty"`
}

// System parses the configured unit system name. An empty value defaults
// to SI.
func (d *DefaultsData) System() (units.System, error) {
	switch strings.ToUpper(strings.TrimSpace(d.UnitSystem)) {
	case "", "SI":
		return units.SI, nil
	case "IP":
		return units.IP, nil
	}
	return units.SI, fmt.Errorf("unknown unit system %q (want SI or IP)", d.UnitSystem)
}

// Validate checks the configuration for values no component could act on.
func (c *ConfigData) Validate() error {
	if _, err := c.Defaults.System(); err != nil {
		return err
	}
	if c.Defaults.Pressure < 0 {
		return fmt.Errorf("defaults.pressure must be non-negative, got %g", c.Defaults.Pressure)
	}
	if c.Defaults.Altitude < 0 {
		return fmt.Errorf("defaults.altitude must be non-negative, got %g", c.Defaults.Altitude)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if (c.Server.TLSCertPath == "") != (c.Server.TLSKeyPath == "") {
		return fmt.Errorf("server.tls-cert and server.tls-key must be set together")
	}
	return nil
}
