// Package config reads the optional dtv.yml configuration file.
package config

import (
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the name of the optional configuration file, looked up in
// the working directory.
const ConfigFile = "dtv.yml"

// Valid output formats, kept in sync with the report package renderers.
var validOutputs = []string{"text", "context", "json"}

type Config struct {
	// SchemaDir is the schema root directory. Flag and environment variable
	// take precedence over this.
	SchemaDir string `yaml:"schemaDir"`
	// Output selects the default diagnostic renderer (text, context, json).
	Output string `yaml:"output"`
	// NoColour disables coloured console output.
	NoColour bool `yaml:"noColour"`
}

// Load reads dtv.yml from dir. A missing file yields the defaults: the tool
// must run out of a plain checkout without any configuration.
func Load(dir string) (*Config, error) {
	cfg := &Config{Output: "text"}

	data, err := os.ReadFile(filepath.Join(dir, ConfigFile))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if uErr := yaml.Unmarshal(data, cfg); uErr != nil {
		return nil, &InvalidYAMLError{Wrapped: uErr}
	}

	if cfg.Output == "" {
		cfg.Output = "text"
	}

	if vErr := cfg.Validate(); vErr != nil {
		return nil, vErr
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if !slices.Contains(validOutputs, c.Output) {
		return &InvalidOutputError{Value: c.Output}
	}
	return nil
}
