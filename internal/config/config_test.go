package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := ParseDodger(GetDefaultYAML("dodger"))
	if err != nil {
		t.Fatalf("ParseDodger(embedded) failed: %v", err)
	}
	if cfg != DefaultDodgerConfig() {
		t.Errorf("embedded YAML = %+v, expected %+v", cfg, DefaultDodgerConfig())
	}
}

func TestGetDefaultYAMLUnknownGame(t *testing.T) {
	if GetDefaultYAML("flappy") != nil {
		t.Error("unknown game should have no default YAML")
	}
}

func TestParseDodgerPartialKeepsDefaults(t *testing.T) {
	cfg, err := ParseDodger([]byte("hazards:\n  base_speed: 5\n"))
	if err != nil {
		t.Fatalf("ParseDodger failed: %v", err)
	}
	if cfg.Hazards.BaseSpeed != 5 {
		t.Errorf("BaseSpeed = %v, expected 5", cfg.Hazards.BaseSpeed)
	}
	if cfg.Player.Speed != 6 {
		t.Errorf("Player.Speed = %v, expected default 6", cfg.Player.Speed)
	}
	if cfg.Viewport.Width != 400 {
		t.Errorf("Viewport.Width = %v, expected default 400", cfg.Viewport.Width)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*DodgerConfig)
	}{
		{"zero base speed", func(c *DodgerConfig) { c.Hazards.BaseSpeed = 0 }},
		{"negative speed scale", func(c *DodgerConfig) { c.Hazards.SpeedScale = -1 }},
		{"spawn chance above one", func(c *DodgerConfig) { c.Hazards.SpawnChance = 1.5 }},
		{"negative spawn chance", func(c *DodgerConfig) { c.Hazards.SpawnChance = -0.1 }},
		{"zero hazard size", func(c *DodgerConfig) { c.Hazards.Size = 0 }},
		{"zero player width", func(c *DodgerConfig) { c.Player.Width = 0 }},
		{"negative player speed", func(c *DodgerConfig) { c.Player.Speed = -2 }},
		{"negative spin", func(c *DodgerConfig) { c.Hazards.MaxSpin = -1 }},
		{"negative hold", func(c *DodgerConfig) { c.Controls.KeyHoldMS = -5 }},
		{"nan base speed", func(c *DodgerConfig) { c.Hazards.BaseSpeed = math.NaN() }},
		{"inf base speed", func(c *DodgerConfig) { c.Hazards.BaseSpeed = math.Inf(1) }},
		{"nan hazard size", func(c *DodgerConfig) { c.Hazards.Size = math.NaN() }},
		{"nan spawn chance", func(c *DodgerConfig) { c.Hazards.SpawnChance = math.NaN() }},
		{"nan speed scale", func(c *DodgerConfig) { c.Hazards.SpeedScale = math.NaN() }},
		{"inf speed scale", func(c *DodgerConfig) { c.Hazards.SpeedScale = math.Inf(1) }},
		{"nan player speed", func(c *DodgerConfig) { c.Player.Speed = math.NaN() }},
		{"nan player height", func(c *DodgerConfig) { c.Player.Height = math.NaN() }},
		{"inf spawn x", func(c *DodgerConfig) { c.Player.SpawnX = math.Inf(-1) }},
		{"nan viewport width", func(c *DodgerConfig) { c.Viewport.Width = math.NaN() }},
		{"nan spin", func(c *DodgerConfig) { c.Hazards.MaxSpin = math.NaN() }},
	}

	if err := DefaultDodgerConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultDodgerConfig()
			tc.modify(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestParseDodgerRejectsNonFinite(t *testing.T) {
	for _, doc := range []string{
		"hazards:\n  base_speed: .nan\n  spawn_chance: 1\n",
		"hazards:\n  base_speed: .inf\n",
		"player:\n  speed: -.inf\n",
	} {
		if _, err := ParseDodger([]byte(doc)); !errors.Is(err, ErrInvalid) {
			t.Errorf("ParseDodger(%q) error = %v, expected ErrInvalid", doc, err)
		}
	}
}

func TestLoadDodgerCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "my.yaml")
	if err := os.WriteFile(path, []byte("player:\n  speed: 9\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadDodger(path)
	if err != nil {
		t.Fatalf("LoadDodger failed: %v", err)
	}
	if cfg.Player.Speed != 9 {
		t.Errorf("Player.Speed = %v, expected 9", cfg.Player.Speed)
	}
}

func TestLoadDodgerCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadDodger(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should return an error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("hazards:\n  base_speed: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDodger(bad); !errors.Is(err, ErrInvalid) {
		t.Errorf("invalid custom config error = %v, expected ErrInvalid", err)
	}

	garbage := filepath.Join(dir, "garbage.yaml")
	if err := os.WriteFile(garbage, []byte("player: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDodger(garbage); err == nil {
		t.Error("unparsable custom config should return an error")
	}
}

func TestMarshalRoundTripKeepsValues(t *testing.T) {
	cfg := DefaultDodgerConfig()
	cfg.Hazards.SpawnChance = 0.1

	data, err := MarshalDodger(cfg)
	if err != nil {
		t.Fatalf("MarshalDodger failed: %v", err)
	}
	back, err := ParseDodger(data)
	if err != nil {
		t.Fatalf("ParseDodger failed: %v", err)
	}
	if back != cfg {
		t.Errorf("decoded config = %+v, expected %+v", back, cfg)
	}
}

func TestKeyHold(t *testing.T) {
	c := DodgerControls{KeyHoldMS: 250}
	if c.KeyHold().Milliseconds() != 250 {
		t.Errorf("KeyHold() = %v, expected 250ms", c.KeyHold())
	}
}
