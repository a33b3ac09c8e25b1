package dodger

import (
	"math"

	"github.com/vovakirdan/space-dodger/internal/core"
)

// RunState is the run state machine position.
type RunState string

const (
	RunIdle     RunState = "idle"      // Before the first start
	RunRunning  RunState = "running"   // The only state that simulates
	RunGameOver RunState = "game_over" // Frozen after a collision
)

// String returns the state name.
func (s RunState) String() string {
	return string(s)
}

// Player is the craft controlled by the user.
type Player struct {
	X, Y float64 // Top-left corner, viewport-relative
	W, H float64
}

// Rect returns the collision rectangle for the player.
func (p Player) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.W, p.H)
}

// clampTo keeps the player inside a w x h viewport. When the viewport is
// smaller than the craft the position collapses to the origin on that axis.
func (p *Player) clampTo(w, h float64) {
	p.X = core.ClampF(p.X, 0, core.Span(w, p.W))
	p.Y = core.ClampF(p.Y, 0, core.Span(h, p.H))
	if math.IsNaN(p.X) {
		p.X = 0
	}
	if math.IsNaN(p.Y) {
		p.Y = 0
	}
}

// Hazard is a falling square obstacle.
type Hazard struct {
	X, Y  float64 // Top-left corner
	Size  float64
	Speed float64 // Downward units per tick, fixed at spawn
	Angle float64 // Radians, cosmetic
	Spin  float64 // Radians per tick, cosmetic
}

// Rect returns the collision rectangle for this hazard. Rotation is not
// part of the collision shape.
func (h Hazard) Rect() core.Rect {
	return core.NewRect(h.X, h.Y, h.Size, h.Size)
}

// advance moves the hazard one tick down and turns it.
func (h *Hazard) advance() {
	h.Y += h.Speed
	if h.Spin != 0 {
		h.Angle = math.Mod(h.Angle+h.Spin, 2*math.Pi)
		if h.Angle < 0 {
			h.Angle += 2 * math.Pi
		}
	}
}
