package robot

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultConfigFile = "jointpanel.yaml"

// Serial defaults for the finger controller.
const (
	DefaultBaud    = 9600
	DefaultTimeout = time.Second
	DefaultStep    = 1.0
)

// Config holds the panel configuration
type Config struct {
	Port      string            `yaml:"port"`
	Baud      int               `yaml:"baud"`
	Timeout   time.Duration     `yaml:"timeout"`
	Joints    int               `yaml:"joints"`
	Step      float64           `yaml:"step"`
	Mapping   Mapping           `yaml:"mapping"`
	Overrides map[Joint]Mapping `yaml:"overrides,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Baud:    DefaultBaud,
		Timeout: DefaultTimeout,
		Joints:  MaxJoints,
		Step:    DefaultStep,
		Mapping: DefaultMapping,
	}
}

// MappingFor returns the mapping for a joint, honouring per-joint overrides.
func (c *Config) MappingFor(j Joint) Mapping {
	if m, ok := c.Overrides[j]; ok {
		return m
	}
	return c.Mapping
}

// ActiveJoints returns the joints enabled by the configuration.
func (c *Config) ActiveJoints() []Joint {
	n := c.Joints
	if n < 1 || n > MaxJoints {
		n = MaxJoints
	}
	return AllJoints()[:n]
}

// Validate checks the configuration for values the panel cannot use.
func (c *Config) Validate() error {
	if c.Baud <= 0 {
		return fmt.Errorf("baud must be positive, got %d", c.Baud)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if c.Joints < 1 || c.Joints > MaxJoints {
		return fmt.Errorf("joints must be between 1 and %d, got %d", MaxJoints, c.Joints)
	}
	if c.Step <= 0 {
		return fmt.Errorf("step must be positive, got %v", c.Step)
	}
	if err := c.Mapping.Validate(); err != nil {
		return fmt.Errorf("mapping: %w", err)
	}
	for j, m := range c.Overrides {
		if !j.Valid() {
			return fmt.Errorf("overrides: %w: %d", ErrInvalidJoint, int(j))
		}
		if err := m.Validate(); err != nil {
			return fmt.Errorf("overrides %s: %w", j, err)
		}
	}
	return nil
}

// LoadConfig loads configuration from the default config file
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultConfigFile)
}

// LoadConfigFrom loads configuration from a specific file.
// Fields missing from the file keep their default values.
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save saves configuration to the default config file
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigFile)
}

// SaveTo saves configuration to a specific file
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ConfigExists returns true if the default config file exists
func ConfigExists() bool {
	return ConfigExistsAt(DefaultConfigFile)
}

// ConfigExistsAt returns true if a config file exists at path
func ConfigExistsAt(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
