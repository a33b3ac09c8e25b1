// Package config provides YAML-based game configuration loading for the
// dodger.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// DodgerConfig contains all tuning for Space Dodger.
type DodgerConfig struct {
	Viewport DodgerViewport `yaml:"viewport"`
	Player   DodgerPlayer   `yaml:"player"`
	Hazards  DodgerHazards  `yaml:"hazards"`
	Controls DodgerControls `yaml:"controls"`
}

// DodgerViewport defines the playfield size in world units.
type DodgerViewport struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// DodgerPlayer defines the player craft.
type DodgerPlayer struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	SpawnX float64 `yaml:"spawn_x"`
	SpawnY float64 `yaml:"spawn_y"`
	Speed  float64 `yaml:"speed"` // Displacement per tick per pressed direction
}

// DodgerHazards defines falling hazards and the spawn policy.
type DodgerHazards struct {
	Size        float64 `yaml:"size"`
	SpawnChance float64 `yaml:"spawn_chance"` // Per-tick probability of one spawn
	BaseSpeed   float64 `yaml:"base_speed"`
	SpeedScale  float64 `yaml:"speed_scale"` // Added per point of score at spawn time
	MaxSpin     float64 `yaml:"max_spin"`    // Radians per tick, cosmetic
}

// DodgerControls defines input adapter behaviour.
type DodgerControls struct {
	// KeyHoldMS is how long a terminal key press counts as held without a
	// repeat. Terminals report presses only, never releases.
	KeyHoldMS int `yaml:"key_hold_ms"`
}

// KeyHold returns the hold window as a duration.
func (c DodgerControls) KeyHold() time.Duration {
	return time.Duration(c.KeyHoldMS) * time.Millisecond
}

// Validate checks the invariants the simulation relies on.
// A positive base speed guarantees every hazard eventually leaves the
// viewport.
func (c DodgerConfig) Validate() error {
	if name, ok := c.firstNonFinite(); ok {
		return fmt.Errorf("%w: %s must be finite", ErrInvalid, name)
	}
	switch {
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("%w: player size must be positive", ErrInvalid)
	case c.Player.Speed < 0:
		return fmt.Errorf("%w: player speed must not be negative", ErrInvalid)
	case c.Hazards.Size <= 0:
		return fmt.Errorf("%w: hazard size must be positive", ErrInvalid)
	case c.Hazards.BaseSpeed <= 0:
		return fmt.Errorf("%w: hazard base_speed must be positive", ErrInvalid)
	case c.Hazards.SpeedScale < 0:
		return fmt.Errorf("%w: hazard speed_scale must not be negative", ErrInvalid)
	case c.Hazards.SpawnChance < 0 || c.Hazards.SpawnChance > 1:
		return fmt.Errorf("%w: hazard spawn_chance must be within [0, 1]", ErrInvalid)
	case c.Hazards.MaxSpin < 0:
		return fmt.Errorf("%w: hazard max_spin must not be negative", ErrInvalid)
	case c.Controls.KeyHoldMS < 0:
		return fmt.Errorf("%w: controls key_hold_ms must not be negative", ErrInvalid)
	}
	return nil
}

// firstNonFinite reports the first NaN or infinite field. The range checks
// in Validate are all false for NaN, so it runs first.
func (c DodgerConfig) firstNonFinite() (string, bool) {
	fields := []struct {
		name string
		v    float64
	}{
		{"viewport width", c.Viewport.Width},
		{"viewport height", c.Viewport.Height},
		{"player width", c.Player.Width},
		{"player height", c.Player.Height},
		{"player spawn_x", c.Player.SpawnX},
		{"player spawn_y", c.Player.SpawnY},
		{"player speed", c.Player.Speed},
		{"hazard size", c.Hazards.Size},
		{"hazard spawn_chance", c.Hazards.SpawnChance},
		{"hazard base_speed", c.Hazards.BaseSpeed},
		{"hazard speed_scale", c.Hazards.SpeedScale},
		{"hazard max_spin", c.Hazards.MaxSpin},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return f.name, true
		}
	}
	return "", false
}
