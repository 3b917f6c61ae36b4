package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the config directories.
const FileName = "bubble2048.yaml"

// Load loads the Bubble 2048 configuration.
// Search order: customPath -> ~/.bubble2048/configs/bubble2048.yaml -> ./configs/bubble2048.yaml -> embedded default.
// Keys missing from a file keep their default values.
func Load(customPath string) (GameConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultGameConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return DefaultGameConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultGameYAML)
	if err != nil {
		return DefaultGameConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and normalizes the result.
func Parse(data []byte) (GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.normalize()
	return cfg, nil
}

// Marshal encodes the config as YAML.
func Marshal(cfg GameConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// normalize replaces out-of-range values with defaults.
func (c *GameConfig) normalize() {
	def := DefaultGameConfig()

	if c.Rules.WinValue < 4 {
		c.Rules.WinValue = def.Rules.WinValue
	}
	if c.Rules.Spawn4Prob < 0 || c.Rules.Spawn4Prob > 1 {
		c.Rules.Spawn4Prob = def.Rules.Spawn4Prob
	}
	if c.Rules.InitialTiles < 1 || c.Rules.InitialTiles > 16 {
		c.Rules.InitialTiles = def.Rules.InitialTiles
	}
	if c.Animation.SlideTicks < 0 {
		c.Animation.SlideTicks = def.Animation.SlideTicks
	}
	if c.Animation.BubbleDelayTicks < 0 {
		c.Animation.BubbleDelayTicks = def.Animation.BubbleDelayTicks
	}
	if c.Animation.PopTicks < 0 {
		c.Animation.PopTicks = def.Animation.PopTicks
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bubble2048", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	if p, ok := Spawn4ForPreset(preset); ok {
		cfg.Rules.Spawn4Prob = p
	}
}
