package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RunConfig is the optional useless.yaml run configuration. It never touches
// the probability table — only the seed and outer-surface switches live here.
type RunConfig struct {
	// Seed makes the whole run reproducible. When nil the runtime seeds
	// itself from a high-entropy source.
	Seed *int64 `yaml:"seed,omitempty"`

	// Calm disables chaos for the whole run, same as the global directive.
	Calm bool `yaml:"calm,omitempty"`

	// Quiet suppresses the presenter's decorative output (colors, emoji
	// framing); values and errors are still presented.
	Quiet bool `yaml:"quiet,omitempty"`
}

// LoadRunConfig reads and validates a yaml run configuration file.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}
