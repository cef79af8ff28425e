package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"folio/models"

	"github.com/BurntSushi/toml"
)

//go:embed default.toml
var defaultConfig []byte

// TomlConfig represents the top-level site configuration
type TomlConfig struct {
	Name          string           `toml:"name"`
	Tagline       string           `toml:"tagline"`
	DefaultHandle string           `toml:"default_handle"`
	Endpoint      string           `toml:"endpoint"`
	Projects      []models.Project `toml:"projects"`
}

// DefaultConfig returns the configuration bundled with the binary
func DefaultConfig() *TomlConfig {
	var config TomlConfig
	if err := toml.Unmarshal(defaultConfig, &config); err != nil {
		panic(fmt.Sprintf("bundled config is invalid: %v", err))
	}
	return &config
}

// LoadConfig reads the TOML file at path on top of the bundled defaults. An empty path
// returns the defaults unchanged.
func LoadConfig(path string) (*TomlConfig, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var override TomlConfig
	meta, err := toml.Decode(string(data), &override)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	config.merge(override, meta)

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return config, nil
}

// merge copies the keys the file defines. A file that lists projects replaces the
// bundled ones, a file without a projects table keeps them.
func (c *TomlConfig) merge(override TomlConfig, meta toml.MetaData) {
	if meta.IsDefined("name") {
		c.Name = override.Name
	}
	if meta.IsDefined("tagline") {
		c.Tagline = override.Tagline
	}
	if meta.IsDefined("default_handle") {
		c.DefaultHandle = override.DefaultHandle
	}
	if meta.IsDefined("endpoint") {
		c.Endpoint = override.Endpoint
	}
	if meta.IsDefined("projects") {
		c.Projects = override.Projects
	}
}

func (c *TomlConfig) validate() error {
	for i, project := range c.Projects {
		if project.Title == "" {
			return fmt.Errorf("project %d has no title", i+1)
		}
	}
	if c.Endpoint == "" {
		return errors.New("endpoint must not be empty")
	}
	return nil
}
