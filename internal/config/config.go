// Package config loads server settings from an optional YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr                string        `yaml:"addr"`
	AllowOrigins        string        `yaml:"allowOrigins"`
	Clock               time.Duration `yaml:"clock"`
	MatchmakingInterval time.Duration `yaml:"matchmakingInterval"`
	// StartFEN is the position new games start from. Empty means the
	// standard setup.
	StartFEN string `yaml:"startFEN"`
}

func Default() Config {
	return Config{
		Addr:                ":3000",
		AllowOrigins:        "http://localhost:5173",
		Clock:               600 * time.Second,
		MatchmakingInterval: time.Second,
	}
}

// Load reads the file at path over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("'%s': %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("'%s': %w", path, err)
	}
	if cfg.MatchmakingInterval <= 0 {
		return cfg, fmt.Errorf("'%s': matchmakingInterval must be positive", path)
	}
	return cfg, nil
}
