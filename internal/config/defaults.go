package config

import (
	_ "embed"
)

//go:embed defaults/bubble2048.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the default Bubble 2048 configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Rules: RulesConfig{
			WinValue:     2048,
			Spawn4Prob:   0.10,
			InitialTiles: 2,
		},
		Animation: AnimationConfig{
			SlideTicks:       9,
			BubbleDelayTicks: 6,
			PopTicks:         6,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
