package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// config holds VM tunables useful to override for testing or tuning:
// forced stress-GC, and any extra native functions to register beyond
// clock().
type config struct {
	StressGC     bool     `toml:"stress_gc"`
	ExtraNatives []string `toml:"extra_natives"`
}

func defaultConfig() config {
	return config{}
}

// loadConfig reads a TOML file at path and merges it onto the defaults.
// A missing --config flag means path is empty, in which case the
// defaults are returned unchanged.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	return cfg, nil
}
