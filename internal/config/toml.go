// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Layout  LayoutConfig  `toml:"layout"`
	Sort    SortConfig    `toml:"sort"`
	View    ViewConfig    `toml:"view"`
	Journal JournalConfig `toml:"journal"`
}

// LayoutConfig maps keyboard layout settings.
type LayoutConfig struct {
	Path *string `toml:"path"`
}

// SortConfig maps sorting settings.
type SortConfig struct {
	Ranking *string `toml:"ranking"`
	Lengths []int   `toml:"lengths"`
}

// ViewConfig maps viewer settings.
type ViewConfig struct {
	Watch *bool `toml:"watch"`
}

// JournalConfig maps placement journal settings.
type JournalConfig struct {
	Enabled *bool   `toml:"enabled"`
	Path    *string `toml:"path"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	return cfg, nil
}
