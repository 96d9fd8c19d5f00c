package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// FileName is the configuration file searched in the working and home directories.
const FileName = ".timemachine.json"

// Config is the root configuration structure.
type Config struct {
	History HistoryConfig `json:"history"`
	Insight InsightConfig `json:"insight"`
	Clone   CloneConfig   `json:"clone"`
	Cache   CacheConfig   `json:"cache"`
	Filters FilterConfig  `json:"filters"`
	Log     LogConfig     `json:"log"`
}

// HistoryConfig controls how much history is loaded.
type HistoryConfig struct {
	Limit          int    `json:"limit"`          // Default: 500
	PreloadChanges int    `json:"preloadChanges"` // Newest commits whose change sets evolution loads; 0 loads all. Default: 10
	Branch         string `json:"branch"`         // Empty means HEAD
}

// InsightConfig holds analysis thresholds and report sizes.
type InsightConfig struct {
	HotspotThreshold int `json:"hotspotThreshold"`
	TopHotspots      int `json:"topHotspots"`
	TopContributors  int `json:"topContributors"`
	FrequencyMonths  int `json:"frequencyMonths"`

	MinCoChanges      int `json:"minCoChanges"`      // Minimum shared commits for a coupled pair
	MaxFilesPerCommit int `json:"maxFilesPerCommit"` // Larger commits are ignored for coupling
	TopCouplings      int `json:"topCouplings"`
}

// CloneConfig holds remote acquisition options.
type CloneConfig struct {
	Depth        int  `json:"depth"`
	SingleBranch bool `json:"singleBranch"`
}

// CacheConfig holds change cache options.
type CacheConfig struct {
	Path string `json:"path"` // bbolt file; empty keeps the cache in memory
}

// FilterConfig holds file path filtering options.
type FilterConfig struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string `json:"level"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		History: HistoryConfig{
			Limit:          500,
			PreloadChanges: 10,
		},
		Insight: InsightConfig{
			HotspotThreshold: 3,
			TopHotspots:      10,
			TopContributors:  10,
			FrequencyMonths:  12,

			MinCoChanges:      2,
			MaxFilesPerCommit: 50,
			TopCouplings:      10,
		},
		Clone: CloneConfig{
			Depth:        20,
			SingleBranch: true,
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.History.Limit < 0 {
		return fmt.Errorf("history.limit must not be negative, got %d", c.History.Limit)
	}
	if c.History.PreloadChanges < 0 {
		return fmt.Errorf("history.preloadChanges must not be negative, got %d", c.History.PreloadChanges)
	}
	if c.Insight.HotspotThreshold < 1 {
		return fmt.Errorf("insight.hotspotThreshold must be at least 1, got %d", c.Insight.HotspotThreshold)
	}
	if c.Insight.MinCoChanges < 1 {
		return fmt.Errorf("insight.minCoChanges must be at least 1, got %d", c.Insight.MinCoChanges)
	}
	if c.Clone.Depth < 0 {
		return fmt.Errorf("clone.depth must not be negative, got %d", c.Clone.Depth)
	}
	if _, err := c.Log.ParseLevel(); err != nil {
		return err
	}
	return nil
}

// ParseLevel converts the configured level name into a logrus level.
func (l LogConfig) ParseLevel() (logrus.Level, error) {
	if l.Level == "" {
		return logrus.WarnLevel, nil
	}
	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		return 0, fmt.Errorf("invalid log.level: %w", err)
	}
	return level, nil
}

// LoadConfig loads configuration from a file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{FileName}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, FileName))
		} else if envHome := os.Getenv("HOME"); envHome != "" {
			candidates = append(candidates, filepath.Join(envHome, FileName))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
