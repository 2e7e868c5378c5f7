package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const configFile = ".splitview/config.json"

// Config holds the project-level defaults applied when a layout does not
// specify its own values.
type Config struct {
	// DefaultOrientation is "vertical" or "horizontal". Blank means vertical.
	DefaultOrientation string `json:"default_orientation,omitempty"`

	// DefaultFirstPaneSize seeds new layouts, e.g. "240px".
	DefaultFirstPaneSize string `json:"default_first_pane_size,omitempty"`

	// DefaultFirstPaneMinSize seeds new layouts, e.g. "100px".
	DefaultFirstPaneMinSize string `json:"default_first_pane_min_size,omitempty"`

	// PersistDragSizes controls whether drag-adjusted sizes are written back
	// to the store. Defaults to enabled when unset.
	PersistDragSizes *bool `json:"persist_drag_sizes,omitempty"`

	// DefaultLayout is the layout opened when none is named.
	DefaultLayout string `json:"default_layout,omitempty"`
}

// PersistEnabled resolves the persistence toggle, defaulting to true.
func (c *Config) PersistEnabled() bool {
	if c.PersistDragSizes == nil {
		return true
	}
	return *c.PersistDragSizes
}

// Load reads the config from disk. A missing file yields a zero config.
func Load(baseDir string) (*Config, error) {
	configPath := filepath.Join(baseDir, configFile)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the config to disk.
func Save(baseDir string, cfg *Config) error {
	configPath := filepath.Join(baseDir, configFile)

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// SetDefaultLayout records the layout opened when none is named.
func SetDefaultLayout(baseDir, layoutID string) error {
	cfg, err := Load(baseDir)
	if err != nil {
		return err
	}

	cfg.DefaultLayout = layoutID
	return Save(baseDir, cfg)
}

// GetDefaultLayout returns the configured default layout id.
func GetDefaultLayout(baseDir string) (string, error) {
	cfg, err := Load(baseDir)
	if err != nil {
		return "", err
	}
	return cfg.DefaultLayout, nil
}
