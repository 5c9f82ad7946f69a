// Package config provides the TOML configuration file and default
// paths.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Nil fields fall
// back to built-in defaults.
type FileConfig struct {
	UI      UIConfig      `toml:"ui"`
	API     APIConfig     `toml:"api"`
	Storage StorageConfig `toml:"storage"`
}

type UIConfig struct {
	Dark *bool `toml:"dark"`
}

type APIConfig struct {
	DelayMS *int `toml:"delay_ms"`
}

type StorageConfig struct {
	Path *string `toml:"path"`
}

// Load reads a TOML config from the given path. Missing file is not an
// error.
func Load(path string) (FileConfig, error) {
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
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultPath returns the default TOML config path.
func DefaultPath() string {
	return filepath.Join(XDGConfigHome(), "tempo", "config.toml")
}
