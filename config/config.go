// Package config handles zerus.toml tool configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents a zerus.toml tool configuration.
type Config struct {
	Server  Server  `toml:"server" json:"server"`
	Catalog Catalog `toml:"catalog" json:"catalog"`
	Log     Log     `toml:"log" json:"log"`

	// Dir is the directory containing the zerus.toml file (set at load time).
	Dir string `toml:"-" json:"-"`
}

// Server configures the RPC listeners.
type Server struct {
	Listen     string `toml:"listen" json:"listen"`
	GRPCListen string `toml:"grpc-listen" json:"grpc-listen"`
}

// Catalog configures the code point catalog database.
type Catalog struct {
	Driver string `toml:"driver" json:"driver"`
	Path   string `toml:"path" json:"path"`
}

// Log configures diagnostic output.
type Log struct {
	Verbosity int `toml:"verbosity" json:"verbosity"`
}

// Load parses a zerus.toml file from the given directory.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, "zerus.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	c.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &c, nil
}

// FindAndLoad walks up from startDir to find a zerus.toml file, then loads
// and returns the configuration. Returns nil if no file is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "zerus.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// Default returns the configuration used when no zerus.toml exists.
func Default(dir string) *Config {
	c := &Config{Dir: dir}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":4567"
	}
	if c.Catalog.Driver == "" {
		c.Catalog.Driver = "sqlite"
	}
	if c.Catalog.Path == "" {
		c.Catalog.Path = filepath.Join(".zerus", "catalog.db")
	}
}

// CatalogPath returns the absolute path of the catalog database file.
func (c *Config) CatalogPath() string {
	if filepath.IsAbs(c.Catalog.Path) {
		return c.Catalog.Path
	}
	return filepath.Join(c.Dir, c.Catalog.Path)
}
