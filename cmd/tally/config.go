package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML configuration for the runner. Everything
// in it has a default; the file only overrides.
type fileConfig struct {
	// Language is the recognition language hint.
	Language string `yaml:"language"`

	// Thresholds maps backend names to acceptance quantity-ratio
	// thresholds.
	Thresholds map[string]float64 `yaml:"thresholds"`

	// Cloud enables the model-based extraction backend.
	Cloud cloudConfig `yaml:"cloud"`
}

type cloudConfig struct {
	URL     string            `yaml:"url"`
	Headers map[string]string `yaml:"headers"`
}

func defaultFileConfig() *fileConfig {
	return &fileConfig{Language: "por"}
}

// loadConfig reads a YAML config file over the defaults.
func loadConfig(path string) (*fileConfig, error) {
	cfg := defaultFileConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	for name, t := range cfg.Thresholds {
		if t < 0 || t > 1 {
			return nil, fmt.Errorf("threshold %s out of range: %v", name, t)
		}
	}
	return cfg, nil
}
