package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Save writes the config to the user's config directory as YAML.
func (c *Config) Save() error {
	return c.SaveTo(filepath.Join(ConfigDir(), "config.yaml"))
}

// SaveTo writes the config to a specific path. A .toml extension selects TOML,
// anything else YAML.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := c.marshal(path)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SaveEffective writes c with the given processing parameters to the --config
// path, or to the user config directory when none was given. c is not modified.
// It returns the path written.
func (c *Config) SaveEffective(skip int, step float32) (string, error) {
	out := *c
	out.Terrain.SkipSize = skip
	out.Terrain.StepSize = step

	if path := ConfigPath(); path != "" {
		return path, out.SaveTo(path)
	}
	return filepath.Join(ConfigDir(), "config.yaml"), out.Save()
}

func (c *Config) marshal(path string) ([]byte, error) {
	if isTOML(path) {
		return toml.Marshal(c)
	}
	return yaml.Marshal(c)
}
