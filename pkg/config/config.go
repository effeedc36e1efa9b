// Package config loads optional defaults for the plugin from a YAML file.
// Command-line flags always take precedence over configured values.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Thresholds holds default warning/critical range specs for one check.
type Thresholds struct {
	Warning  string `yaml:"warning"`
	Critical string `yaml:"critical"`
}

// Config mirrors the defaults file.
//
//	hadoop_bin: /usr/bin/hdfs
//	run_as: hdfs
//	timeout: 30s
//	checks:
//	  space-used:
//	    warning: "80"
//	    critical: "90"
type Config struct {
	HadoopBin string                `yaml:"hadoop_bin"`
	RunAs     string                `yaml:"run_as"`
	Timeout   string                `yaml:"timeout"`
	Checks    map[string]Thresholds `yaml:"checks"`
}

// Load reads and decodes the defaults file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// TimeoutDuration parses the configured timeout. Zero means unset.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q in config file: %v", c.Timeout, err)
	}
	return d, nil
}

// CheckThresholds returns the configured default thresholds for a check
// name, with found=false when none are configured.
func (c *Config) CheckThresholds(name string) (Thresholds, bool) {
	t, ok := c.Checks[name]
	return t, ok
}
