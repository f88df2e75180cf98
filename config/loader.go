package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Load reads, decodes and validates a YAML configuration file.
// Unknown fields are rejected so typos surface at startup instead of
// silently falling back to defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	defer f.Close()

	c := DefaultConfig()
	decoder := yaml.NewDecoder(f, yaml.Strict())
	if err := decoder.Decode(&c); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &c, nil
}
