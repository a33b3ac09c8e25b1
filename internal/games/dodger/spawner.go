package dodger

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/space-dodger/internal/config"
	"github.com/vovakirdan/space-dodger/internal/core"
)

// Spawner decides once per tick whether a new hazard appears.
type Spawner struct {
	rng     *rand.Rand
	cfg     config.DodgerHazards
	screenW float64 // Viewport width the hazards must fit in
}

// NewSpawner creates a spawner with the given RNG seed.
func NewSpawner(seed int64, viewportW float64, cfg config.DodgerHazards) *Spawner {
	s := &Spawner{cfg: cfg}
	s.SetViewportWidth(viewportW)
	s.Reset(seed)
	return s
}

// Reset reseeds the RNG.
func (s *Spawner) Reset(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// UpdateConfig replaces the hazard tuning.
func (s *Spawner) UpdateConfig(cfg config.DodgerHazards) {
	s.cfg = cfg
}

// SetViewportWidth updates the horizontal spawn range.
func (s *Spawner) SetViewportWidth(w float64) {
	if math.IsNaN(w) || w < 0 {
		w = 0
	}
	s.screenW = w
}

// SpeedFor returns the fall speed of a hazard spawned at the given score.
func (s *Spawner) SpeedFor(score int) float64 {
	return s.cfg.BaseSpeed + float64(score)*s.cfg.SpeedScale
}

// MaybeSpawn draws the per-tick spawn chance and returns a new hazard when
// it hits.
func (s *Spawner) MaybeSpawn(score int) (Hazard, bool) {
	if s.rng.Float64() >= s.cfg.SpawnChance {
		return Hazard{}, false
	}
	return s.Spawn(score), true
}

// Spawn creates a hazard fully above the viewport at a uniformly random x in
// [0, viewportW - size].
func (s *Spawner) Spawn(score int) Hazard {
	size := s.cfg.Size
	x := s.rng.Float64() * core.Span(s.screenW, size)

	spin := 0.0
	if s.cfg.MaxSpin > 0 {
		spin = (s.rng.Float64()*2 - 1) * s.cfg.MaxSpin
	}

	return Hazard{
		X:     x,
		Y:     -size,
		Size:  size,
		Speed: s.SpeedFor(score),
		Angle: s.rng.Float64() * 2 * math.Pi,
		Spin:  spin,
	}
}
