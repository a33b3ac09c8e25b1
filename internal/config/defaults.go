package config

import (
	_ "embed"
)

//go:embed defaults/dodger.yaml
var defaultDodgerYAML []byte

// DefaultDodgerConfig returns the default Space Dodger configuration.
func DefaultDodgerConfig() DodgerConfig {
	return DodgerConfig{
		Viewport: DodgerViewport{
			Width:  400,
			Height: 400,
		},
		Player: DodgerPlayer{
			Width:  40,
			Height: 40,
			SpawnX: 180,
			SpawnY: 350,
			Speed:  6,
		},
		Hazards: DodgerHazards{
			Size:        30,
			SpawnChance: 0.03,
			BaseSpeed:   2,
			SpeedScale:  0.05,
			MaxSpin:     0.08,
		},
		Controls: DodgerControls{
			KeyHoldMS: 180,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "dodger":
		return defaultDodgerYAML
	default:
		return nil
	}
}
