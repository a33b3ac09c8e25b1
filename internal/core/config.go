package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to the render target and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Render target width (terminal columns or window pixels)
	ScreenH  int   // Render target height (terminal rows or window pixels)
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score     int  // Current score
	HighScore int  // Best score known to the game
	Running   bool // Whether the simulation is advancing
	GameOver  bool // Whether the last run has ended
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Scored int  // Points gained this tick
	Ended  bool // True only on the tick the run ended
}
