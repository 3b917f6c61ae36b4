package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(defaultGameYAML)
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != DefaultGameConfig() {
		t.Errorf("embedded defaults = %+v, want %+v", cfg, DefaultGameConfig())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("rules:\n  win_value: 512\n  spawn4_prob: 0.5\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Rules.WinValue != 512 {
		t.Errorf("WinValue = %d, want 512", cfg.Rules.WinValue)
	}
	if cfg.Rules.Spawn4Prob != 0.5 {
		t.Errorf("Spawn4Prob = %v, want 0.5", cfg.Rules.Spawn4Prob)
	}
	// Keys absent from the file keep defaults
	if cfg.Rules.InitialTiles != 2 {
		t.Errorf("InitialTiles = %d, want default 2", cfg.Rules.InitialTiles)
	}
	if cfg.Animation != DefaultGameConfig().Animation {
		t.Errorf("Animation = %+v, want defaults", cfg.Animation)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("Load() with missing custom path should fail")
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("rules: [oops")); err == nil {
		t.Error("Parse() should reject malformed YAML")
	}
}

func TestNormalize(t *testing.T) {
	cfg, err := Parse([]byte("rules:\n  win_value: 1\n  spawn4_prob: 3\n  initial_tiles: 0\nanimation:\n  pop_ticks: -4\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	def := DefaultGameConfig()
	if cfg.Rules != def.Rules {
		t.Errorf("Rules = %+v, want defaults %+v", cfg.Rules, def.Rules)
	}
	if cfg.Animation.PopTicks != def.Animation.PopTicks {
		t.Errorf("PopTicks = %d, want %d", cfg.Animation.PopTicks, def.Animation.PopTicks)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		want   float64
	}{
		{DifficultyEasy, 0.05},
		{DifficultyNormal, 0.10},
		{DifficultyHard, 0.20},
		{DifficultyFixed, 0.33},
		{"", 0.33},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultGameConfig()
			cfg.Rules.Spawn4Prob = 0.33
			ApplyPreset(&cfg, tt.preset)
			if cfg.Rules.Spawn4Prob != tt.want {
				t.Errorf("Spawn4Prob = %v, want %v", cfg.Rules.Spawn4Prob, tt.want)
			}
		})
	}
}

func TestParseDifficultyPreset(t *testing.T) {
	if got := ParseDifficultyPreset("hard"); got != DifficultyHard {
		t.Errorf("ParseDifficultyPreset(hard) = %q", got)
	}
	if got := ParseDifficultyPreset("insane"); got != "" {
		t.Errorf("ParseDifficultyPreset(insane) = %q, want empty", got)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultGameConfig()
	cfg.Rules.WinValue = 4096
	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if back != cfg {
		t.Errorf("round trip = %+v, want %+v", back, cfg)
	}
}
