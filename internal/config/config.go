// Package config loads the optional barpad config file, which supplies
// defaults for the token literals. The target width is never read from
// config; it is the positional CLI argument only.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File represents the YAML config file. All fields are optional; nil means
// "not set" so the caller can distinguish an absent key from an empty one.
type File struct {
	Marker    *string `yaml:"marker"`
	Label     *string `yaml:"label"`
	Separator *string `yaml:"separator"`
	Measure   *string `yaml:"measure"`
}

// DefaultPath returns the conventional config location,
// $XDG_CONFIG_HOME/barpad/config.yaml, falling back to ~/.config.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "barpad", "config.yaml")
}

// Load reads the config file at path. An empty path probes DefaultPath.
// A missing file is not an error: the zero File is returned so built-in
// defaults apply. An explicitly named file that cannot be read or parsed
// is an error.
func Load(path string) (File, error) {
	var cfg File

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return File{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}
