package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gridboard/grid"
	"gridboard/log"
)

const (
	ConfigFileName  = "config.json"
	DefaultDeckName = "deck.yaml"
)

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".gridboard"), nil
}

// BreakpointEntry is one configured width tier.
type BreakpointEntry struct {
	Name     string `json:"name"`
	MinWidth int    `json:"min_width"`
}

// Config represents the application configuration
type Config struct {
	// DefaultDeck is the deck file opened when none is given on the command line.
	DefaultDeck string `json:"default_deck"`
	// Gap is the spacing between grid cells in terminal columns.
	Gap int `json:"gap"`
	// Breakpoints is the width tier table, widest first. An empty list
	// uses the built-in tiers (full/wide/standard/compact/base).
	Breakpoints []BreakpointEntry `json:"breakpoints"`
	// Columns maps breakpoint names to the grid's total column count at
	// that tier. Missing tiers cascade to the next smaller defined one.
	Columns map[string]int `json:"columns"`
	// ResizeDebounceMs is how long to coalesce resize events before
	// repacking. Zero uses the built-in default.
	ResizeDebounceMs int `json:"resize_debounce_ms"`
	// CellHeight is the height of one grid row in terminal lines.
	CellHeight int `json:"cell_height"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		DefaultDeck: DefaultDeckName,
		Gap:         1,
		Breakpoints: nil, // built-in tiers
		Columns: map[string]int{
			grid.BaseBreakpoint: 1,
			"compact":           2,
			"standard":          3,
			"wide":              4,
			"full":              6,
		},
		ResizeDebounceMs: 80,
		CellHeight:       6,
	}
}

// BreakpointTable converts the configured tiers into a validated table.
// An invalid table falls back to the built-in one rather than failing:
// a bad config must not prevent the board from rendering.
func (c *Config) BreakpointTable() grid.BreakpointTable {
	if len(c.Breakpoints) == 0 {
		return grid.DefaultBreakpoints()
	}
	bps := make([]grid.Breakpoint, len(c.Breakpoints))
	for i, e := range c.Breakpoints {
		bps[i] = grid.Breakpoint{Name: e.Name, MinWidth: e.MinWidth}
	}
	table, err := grid.NewBreakpointTable(bps...)
	if err != nil {
		log.ErrorLog.Printf("invalid breakpoint table in config, using defaults: %v", err)
		return grid.DefaultBreakpoints()
	}
	return table
}

// ColumnTable returns the configured column counts.
func (c *Config) ColumnTable() grid.ColumnTable {
	if len(c.Columns) == 0 {
		return grid.ColumnTable{grid.BaseBreakpoint: 1}
	}
	return grid.ColumnTable(c.Columns)
}

// ResizeDebounce returns the configured debounce window.
func (c *Config) ResizeDebounce() time.Duration {
	if c.ResizeDebounceMs <= 0 {
		return 80 * time.Millisecond
	}
	return time.Duration(c.ResizeDebounceMs) * time.Millisecond
}

func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Create and save default config if file doesn't exist
			defaultCfg := DefaultConfig()
			if saveErr := saveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.WarningLog.Printf("failed to get config file: %v", err)
		return DefaultConfig()
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		// Log the error with more context about what failed
		preview := string(data)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		log.ErrorLog.Printf("failed to parse config file at %s: %v\nConfig content preview: %s", configPath, err, preview)

		// Backup the corrupted config before falling back to defaults
		backupPath := configPath + ".corrupt." + time.Now().Format("20060102-150405")
		if backupErr := os.WriteFile(backupPath, data, 0644); backupErr == nil {
			log.InfoLog.Printf("Backed up corrupted config to: %s", backupPath)
		}

		return DefaultConfig()
	}

	if config.Gap < 0 {
		log.WarningLog.Printf("negative gap %d in config, using 0", config.Gap)
		config.Gap = 0
	}
	if config.CellHeight < 3 {
		config.CellHeight = DefaultConfig().CellHeight
	}

	return &config
}

// saveConfig saves the configuration to disk
func saveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveConfig exports the saveConfig function for use by other packages
func SaveConfig(config *Config) error {
	return saveConfig(config)
}
