// Package config reads the optional YAML file supplying defaults for db
// create. Flag values always win over file values, file values win over
// built-in defaults.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database                     string `yaml:"database"`
	ServiceRouteIdentifyStrategy string `yaml:"service_route_identify_strategy" validate:"omitempty,oneof=stop_names stop_ids first_and_last_stop_names identity_table"`
	ServiceRouteIdentify         string `yaml:"service_route_identify"`
	LegacyTranslations           bool   `yaml:"legacy_translations"`
}

// Load reads and validates a config file. An unknown strategy in the file is
// rejected here, before any database work starts.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return &cfg, nil
}
