package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads the tilebot configuration.
// Search order: customPath -> ~/.tilebot/config.yaml -> ./configs/tilebot.yaml -> embedded default
// Fields missing from a file keep their built-in defaults.
func Load(customPath string) (Config, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg.normalized(), nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if loaded, ok := tryFile(userCfgPath); ok {
			return loaded, nil
		}
	}

	// Try local configs directory
	if loaded, ok := tryFile(filepath.Join("configs", "tilebot.yaml")); ok {
		return loaded, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg.normalized(), nil
}

// tryFile parses an optional config file; unreadable or invalid files are skipped.
func tryFile(path string) (Config, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, false
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, false
	}
	return cfg.normalized(), true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tilebot", filename)
}

// normalized replaces out-of-range values with defaults.
func (c Config) normalized() Config {
	def := Default()
	if c.Game.Size < 2 {
		c.Game.Size = def.Game.Size
	}
	if c.Game.Target < 4 || c.Game.Target&(c.Game.Target-1) != 0 {
		c.Game.Target = def.Game.Target
	}
	if c.Game.StartTiles <= 0 || c.Game.StartTiles > c.Game.Size*c.Game.Size {
		c.Game.StartTiles = def.Game.StartTiles
	}
	if c.Autoplay.IntervalMS <= 0 {
		c.Autoplay.IntervalMS = def.Autoplay.IntervalMS
	}
	if c.Autoplay.Strategy == "" {
		c.Autoplay.Strategy = def.Autoplay.Strategy
	}
	if c.Strategies.Expectimax.Depth <= 0 {
		c.Strategies.Expectimax.Depth = def.Strategies.Expectimax.Depth
	}
	if c.Strategies.AlphaBeta.Depth <= 0 {
		c.Strategies.AlphaBeta.Depth = def.Strategies.AlphaBeta.Depth
	}
	if c.Strategies.AlphaBeta.SampleCells < 0 {
		c.Strategies.AlphaBeta.SampleCells = def.Strategies.AlphaBeta.SampleCells
	}
	if c.Strategies.AlphaBeta.LateGameThreshold <= 0 {
		c.Strategies.AlphaBeta.LateGameThreshold = def.Strategies.AlphaBeta.LateGameThreshold
	}
	return c
}

// Interval returns the autoplay step interval.
func (c Config) Interval() time.Duration {
	return time.Duration(c.Autoplay.IntervalMS) * time.Millisecond
}
