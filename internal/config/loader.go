package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the daemon.
// Zero values mean "unspecified" and will be replaced by defaults in main.
// LiveUpdates is a pointer so an explicit false in a file survives merging.
type Config struct {
	Addr                     string `json:"addr" yaml:"addr" toml:"addr"`
	PredictURL               string `json:"predict_url" yaml:"predict_url" toml:"predict_url"`
	Concurrency              int    `json:"concurrency" yaml:"concurrency" toml:"concurrency"`
	LiveUpdates              *bool  `json:"live_updates" yaml:"live_updates" toml:"live_updates"`
	PrefetchWindow           int    `json:"prefetch_window" yaml:"prefetch_window" toml:"prefetch_window"`
	BroadcastIntervalSeconds int    `json:"broadcast_interval_seconds" yaml:"broadcast_interval_seconds" toml:"broadcast_interval_seconds"`
	EstimatorWindow          int    `json:"estimator_window" yaml:"estimator_window" toml:"estimator_window"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
