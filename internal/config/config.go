// Package config loads the optional annosql.yaml project file: a target
// name, a default output directory, and a default file list, the last two
// overridable by CLI flags. cmd/annosql does not read the target key:
// --target is always required on the command line. Grounded on the
// teacher's own LoadConfig
// (config.go), trimmed to the handful of keys this tool recognises and
// switched to gopkg.in/yaml.v3 per the domain-stack decision in
// SPEC_FULL.md.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the shape of annosql.yaml.
type Config struct {
	Target string   `yaml:"target"`
	Output string   `yaml:"output"`
	Files  []string `yaml:"files"`
}

// Load reads and parses path. A missing file is not an error: Load returns
// the zero Config, mirroring the teacher's LoadConfig fallback behaviour.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, nil
	}

	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}
