package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load builds a Config from defaults, an optional YAML file and
// environment variable overrides, in that order. If path is empty the
// default locations are searched; a missing default file is not an
// error, a missing explicit path is.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	explicit := path != ""
	if !explicit {
		candidates := []string{
			"spectro.yaml",
			"config.yaml",
		}
		for _, candidate := range candidates {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Environment overrides apply after the file so deployments can
	// tweak a shared config without editing it.
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides reads SPECTRO_* environment variables into cfg.
// Unparseable values are ignored rather than fatal.
func (c *Config) applyEnvOverrides() {
	if val, ok := os.LookupEnv("SPECTRO_DEVICE_ID"); ok {
		if n, err := strconv.Atoi(val); err == nil {
			c.DeviceID = n
		}
	}
	if val, ok := os.LookupEnv("SPECTRO_SAMPLE_RATE"); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.SampleRate = f
		}
	}
	if val, ok := os.LookupEnv("SPECTRO_GAIN"); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.Gain = f
		}
	}
	if val, ok := os.LookupEnv("SPECTRO_SERVE_ADDR"); ok {
		c.ServeAddr = val
	}
	if val, ok := os.LookupEnv("SPECTRO_VERBOSE"); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			c.Verbose = b
		}
	}
}
