package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"renkon/ident"
	"renkon/scenario"
)

// expandEnvVars replaces ${VAR} and $VAR patterns in s with the
// corresponding environment variable values. Unset variables are replaced
// with an empty string.
func expandEnvVars(s string) string {
	return os.Expand(s, os.Getenv)
}

// Load reads a scenario file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return Parse(data)
}

// Parse decodes scenario file bytes. ${ENV_VAR} references are expanded
// before YAML parsing.
func Parse(data []byte) (*File, error) {
	expanded := expandEnvVars(string(data))

	var f File
	if err := yaml.Unmarshal([]byte(expanded), &f); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file: %w", err)
	}
	return &f, nil
}

// LoadScenarios reads a scenario file and converts it to registry values.
func LoadScenarios(path string) ([]*scenario.Scenario, ident.Scenario, error) {
	f, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return f.Build()
}

// Apply loads a scenario file into the registry, replacing its contents.
func Apply(path string, registry *scenario.Registry) error {
	scenarios, defaultID, err := LoadScenarios(path)
	if err != nil {
		return err
	}
	return registry.Apply(scenarios, defaultID)
}
