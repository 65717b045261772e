package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath string // .hcl file or directory of .hcl files
	Split      string // dataset split, e.g. "train"
	SimNum     int    // simulation number within the split

	LogFormat string
	LogLevel  string
}

// NewConfig validates the raw configuration values.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	if cfg.Split == "" {
		return nil, errors.New("Split is a required configuration field and cannot be empty")
	}
	if cfg.SimNum < 0 {
		return nil, errors.New("SimNum must not be negative")
	}

	return &cfg, nil
}
