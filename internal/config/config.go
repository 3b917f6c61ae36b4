// Package config provides YAML-based game configuration loading and
// difficulty presets for Bubble 2048.
package config

// GameConfig contains all configuration for Bubble 2048.
type GameConfig struct {
	Rules     RulesConfig     `yaml:"rules"`
	Animation AnimationConfig `yaml:"animation"`
	Log       LogConfig       `yaml:"log"`
}

// RulesConfig defines the gameplay rules.
type RulesConfig struct {
	WinValue     int     `yaml:"win_value"`
	Spawn4Prob   float64 `yaml:"spawn4_prob"`
	InitialTiles int     `yaml:"initial_tiles"`
}

// AnimationConfig defines presentation timings in simulation ticks.
type AnimationConfig struct {
	SlideTicks       int `yaml:"slide_ticks"`
	BubbleDelayTicks int `yaml:"bubble_delay_ticks"`
	PopTicks         int `yaml:"pop_ticks"`
}

// LogConfig defines logging options for the servers and CLI.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset maps a CLI value to a preset.
// Unknown values yield the empty preset, meaning "use the config as is".
func ParseDifficultyPreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// Spawn4ForPreset returns the 4-spawn probability for a preset.
// The second result is false when the preset keeps the configured value.
func Spawn4ForPreset(preset DifficultyPreset) (float64, bool) {
	switch preset {
	case DifficultyEasy:
		return 0.05, true
	case DifficultyNormal:
		return 0.10, true
	case DifficultyHard:
		return 0.20, true
	default:
		return 0, false
	}
}
