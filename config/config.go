package config

import (
	"fmt"
	"time"
)

// SSH holds the credentials shared by the whole BRAS fleet
type SSH struct {
	Username string  `yaml:"username"`
	Password string  `yaml:"password"`
	Port     int     `yaml:"port"`
	Timeout  float64 `yaml:"timeout"` // seconds
}

// SNMP enables read-only session telemetry cross-checks
type SNMP struct {
	Enabled   bool    `yaml:"enabled"`
	Community string  `yaml:"community"`
	Port      int     `yaml:"port"`
	Timeout   float64 `yaml:"timeout"` // seconds
}

// Threshold is one ladder entry: session counts at or above Sessions
// get Delay
type Threshold struct {
	Sessions int `yaml:"sessions"`
	Delay    int `yaml:"delay"`
}

// Config is the full balancer configuration
type Config struct {
	// Listen is the /metrics listen address in daemon mode; empty
	// disables the listener
	Listen string `yaml:"listen"`

	// Interval between polling passes in seconds; 0 means one-shot
	Interval float64 `yaml:"interval"`

	SSH        SSH         `yaml:"ssh"`
	SNMP       SNMP        `yaml:"snmp"`
	Thresholds []Threshold `yaml:"thresholds"`

	// Devices maps management IP to device label
	Devices map[string]string `yaml:"devices"`
}

// DefaultConfig returns the configuration defaults applied before
// decoding
func DefaultConfig() Config {
	return Config{
		Listen:   "",
		Interval: 0,
		SSH: SSH{
			Port:    22,
			Timeout: 30,
		},
		SNMP: SNMP{
			Community: "public",
			Port:      161,
			Timeout:   10,
		},
	}
}

// Validate checks everything that must hold before any device contact
// is attempted
func (c *Config) Validate() error {
	if c.SSH.Username == "" {
		return fmt.Errorf("ssh.username is required")
	}
	if c.SSH.Password == "" {
		return fmt.Errorf("ssh.password is required")
	}
	if c.SSH.Timeout <= 0 {
		return fmt.Errorf("ssh.timeout must be positive, got %v", c.SSH.Timeout)
	}
	if c.Interval < 0 {
		return fmt.Errorf("interval must be non-negative, got %v", c.Interval)
	}

	if len(c.Thresholds) == 0 {
		return fmt.Errorf("at least one threshold is required")
	}
	for i, threshold := range c.Thresholds {
		if threshold.Sessions < 0 {
			return fmt.Errorf("thresholds[%d]: sessions must be non-negative", i)
		}
		if threshold.Delay < 0 {
			return fmt.Errorf("thresholds[%d]: delay must be non-negative", i)
		}
		if i > 0 && threshold.Sessions <= c.Thresholds[i-1].Sessions {
			return fmt.Errorf("thresholds[%d]: session boundary %d not greater than previous %d",
				i, threshold.Sessions, c.Thresholds[i-1].Sessions)
		}
	}

	if len(c.Devices) == 0 {
		return fmt.Errorf("at least one device is required")
	}
	for ip, label := range c.Devices {
		if label == "" {
			return fmt.Errorf("device %s: label is required", ip)
		}
	}

	return nil
}

// SSHTimeout returns the SSH timeout as a duration
func (c *Config) SSHTimeout() time.Duration {
	return time.Duration(c.SSH.Timeout * float64(time.Second))
}

// SNMPTimeout returns the SNMP timeout as a duration
func (c *Config) SNMPTimeout() time.Duration {
	return time.Duration(c.SNMP.Timeout * float64(time.Second))
}

// PollInterval returns the polling interval as a duration; zero means
// one-shot
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Interval * float64(time.Second))
}
