// Package models defines data structures for configuration and run results.
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultKeyField is the column used for duplicate detection when the
// config does not name one. Device-provisioning exports carry it on
// every row, unlike the hardware hash which some export variants omit.
const DefaultKeyField = "Device Serial Number"

// RunConfig holds all inputs for one consolidation run.
// Values come from CLI flags, optionally seeded from a YAML config file.
type RunConfig struct {
	CompanyName string `yaml:"company_name"`
	SourceDir   string `yaml:"source_dir"`
	OutputDir   string `yaml:"output_dir"`
	Recursive   bool   `yaml:"include_subdirectories"`
	KeyField    string `yaml:"key_field"`
}

// LoadConfig reads run defaults from a YAML file.
func LoadConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &RunConfig{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}
