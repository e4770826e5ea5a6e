package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	// Load into temporary struct with YAML tags
	var yamlConfig struct {
		Server   ServerYAML   `yaml:"server,omitempty"`
		Defaults DefaultsYAML `yaml:"defaults,omitempty"`
		Logging  LoggingYAML  `yaml:"logging,omitempty"`
	}

	err = yaml.Unmarshal(cfgFile, &yamlConfig)
	if err != nil {
		return nil, err
	}

	// Convert to our internal format
	config := &ConfigData{
		Server: ServerData{
			ListenAddr:  yamlConfig.Server.ListenAddr,
			Port:        yamlConfig.Server.Port,
			TLSCertPath: yamlConfig.Server.TLSCertPath,
			TLSKeyPath:  yamlConfig.Server.TLSKeyPath,
		},
		Defaults: DefaultsData{
			UnitSystem: yamlConfig.Defaults.UnitSystem,
			Pressure:   yamlConfig.Defaults.Pressure,
			Altitude:   yamlConfig.Defaults.Altitude,
		},
		Logging: LoggingData{
			Debug:   yamlConfig.Logging.Debug,
			LogFile: yamlConfig.Logging.LogFile,
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	y.config = config
	return config, nil
}

// GetServer returns the server configuration
func (y *YAMLProvider) GetServer() (*ServerData, error) {
	if y.config == nil {
		if _, err := y.LoadConfig(); err != nil {
			return nil, err
		}
	}
	return &y.config.Server, nil
}

// GetDefaults returns the calculation defaults
func (y *YAMLProvider) GetDefaults() (*DefaultsData, error) {
	if y.config == nil {
		if _, err := y.LoadConfig(); err != nil {
			return nil, err
		}
	}
	return &y.config.Defaults, nil
}

// IsReadOnly returns true since YAML files are read-only through this interface
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML provider
func (y *YAMLProvider) Close() error {
	return nil
}

// YAML-specific structs with proper YAML tags for parsing the file format
type ServerYAML struct {
	ListenAddr  string `yaml:"listen-addr,omitempty"`
	Port        int    `yaml:"port,omitempty"`
	TLSCertPath string `yaml:"tls-cert,omitempty"`
	TLSKeyPath  string `yaml:"tls-key,omitempty"`
}

type DefaultsYAML struct {
	UnitSystem string  `yaml:"unit-system,omitempty"`
	Pressure   float64 `yaml:"pressure,omitempty"`
	Altitude   float64 `yaml:"altitude,omitempty"`
}

type LoggingYAML struct {
	Debug   bool   `yaml:"debug,omitempty"`
	LogFile string `yaml:"log-file,omitempty"`
}
