package tui

import "github.com/vovakirdan/space-dodger/internal/config"

func dodgerQuietConfig() config.DodgerConfig {
	cfg := config.DefaultDodgerConfig()
	cfg.Hazards.SpawnChance = 0
	return cfg
}
