package scene

import (
	"fmt"
	"os"
	"time"

	"github.com/go-yaml/yaml"
	"github.com/mitchellh/go-homedir"
)

// Config includes settings shared by the tools that load, render & store
// projects.
type Config struct {
	// in pixels
	TileSize int `yaml:"tile_size"`

	// how long each animation step is shown
	FrameInterval time.Duration `yaml:"frame_interval"`

	// prefix for saved project keys
	Namespace string `yaml:"namespace"`

	Store StoreConfig `yaml:"store"`
}

// StoreConfig says where projects are saved
type StoreConfig struct {
	Driver string `yaml:"driver"` // sqlite3 or postgres
	DSN    string `yaml:"dsn"`
}

// DefaultConfig returns a config with default settings.
func DefaultConfig() *Config {
	return &Config{
		TileSize:      TileSize,
		FrameInterval: FrameInterval,
		Namespace:     "scene",
		Store: StoreConfig{
			Driver: "sqlite3",
			DSN:    "~/.scene.sqlite",
		},
	}
}

// LoadConfig reads YAML settings from fname on top of DefaultConfig.
// An empty fname returns the defaults.
func LoadConfig(fname string) (*Config, error) {
	cfg := DefaultConfig()
	if fname == "" {
		return cfg, nil
	}

	fpath, err := homedir.Expand(fname)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fpath)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", fpath, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", fpath, err)
	}

	if cfg.TileSize <= 0 {
		return nil, fmt.Errorf("tile_size must be positive, got %d", cfg.TileSize)
	}
	return cfg, nil
}

// OpenStore opens the configured project store
func (c *Config) OpenStore() (*ProjectStore, error) {
	s, err := OpenSQLStore(c.Store.Driver, c.Store.DSN)
	if err != nil {
		return nil, err
	}
	return NewProjectStore(s, c.Namespace), nil
}
