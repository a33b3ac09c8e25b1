package dodger

import "github.com/vovakirdan/space-dodger/internal/core"

// HazardView is the drawable part of a hazard.
type HazardView struct {
	Rect  core.Rect
	Angle float64
}

// Snapshot is a read-only copy of everything a renderer needs for a frame.
type Snapshot struct {
	Player    core.Rect
	Hazards   []HazardView
	Score     int
	HighScore int
	Run       RunState
	Tick      int
	ViewportW float64
	ViewportH float64
}

// Snapshot copies the current frame state.
func (g *Game) Snapshot() Snapshot {
	hazards := make([]HazardView, len(g.hazards))
	for i, h := range g.hazards {
		hazards[i] = HazardView{Rect: h.Rect(), Angle: h.Angle}
	}
	return Snapshot{
		Player:    g.player.Rect(),
		Hazards:   hazards,
		Score:     g.scores.Score(),
		HighScore: g.scores.High(),
		Run:       g.run,
		Tick:      g.tick,
		ViewportW: g.viewW,
		ViewportH: g.viewH,
	}
}
