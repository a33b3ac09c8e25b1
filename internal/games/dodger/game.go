// Package dodger implements Space Dodger: steer a craft around squares
// falling from the top of the viewport. Every hazard that leaves the
// bottom edge scores a point; touching one ends the run.
package dodger

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/space-dodger/internal/config"
	"github.com/vovakirdan/space-dodger/internal/core"
	"github.com/vovakirdan/space-dodger/internal/registry"
)

// Game identity used by the registry and score storage.
const (
	ID    = "dodger"
	Title = "Space Dodger"
)

// Game implements the Space Dodger simulation. All state is owned by the
// instance; a Game is driven from a single goroutine.
type Game struct {
	cfg        config.DodgerConfig
	cfgLoaded  bool
	configPath string

	viewW, viewH float64
	viewFixed    bool // SetViewport overrides the configured size

	player  Player
	hazards []Hazard
	spawner *Spawner
	scores  *ScoreTracker
	run     RunState
	tick    int

	runtime core.RuntimeConfig
	logger  *log.Logger
}

// Option configures a Game.
type Option func(*Game)

// WithConfig uses cfg instead of loading configuration from disk. An
// invalid cfg is replaced by the defaults on Reset.
func WithConfig(cfg config.DodgerConfig) Option {
	return func(g *Game) {
		g.cfg = cfg
		g.cfgLoaded = true
	}
}

// WithConfigPath loads configuration from path on Reset.
func WithConfigPath(path string) Option {
	return func(g *Game) {
		g.configPath = path
	}
}

// WithHighScores persists the high score through store.
func WithHighScores(store HighScoreStore) Option {
	return func(g *Game) {
		g.scores.store = store
	}
}

// WithLogger sets the logger for recoverable failures.
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) {
		if logger != nil {
			g.logger = logger
			g.scores.logger = logger
		}
	}
}

// New creates a Space Dodger game instance. Call Reset before stepping.
func New(opts ...Option) *Game {
	discard := log.New(io.Discard)
	g := &Game{
		run:    RunIdle,
		logger: discard,
		scores: NewScoreTracker(nil, discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return Title
}

// Reset initializes the game in the idle state. The high score is loaded
// from the store but never lowered.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if !g.cfgLoaded {
		cfg, err := config.LoadDodger(g.configPath)
		if err != nil {
			g.logger.Warn("using default config", "error", err)
			cfg = config.DefaultDodgerConfig()
		}
		g.cfg = cfg
		g.cfgLoaded = true
	}
	if err := g.cfg.Validate(); err != nil {
		g.logger.Warn("using default config", "error", err)
		g.cfg = config.DefaultDodgerConfig()
	}

	if !g.viewFixed {
		g.viewW = sanitize(g.cfg.Viewport.Width)
		g.viewH = sanitize(g.cfg.Viewport.Height)
	}

	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if g.spawner == nil {
		g.spawner = NewSpawner(seed, g.viewW, g.cfg.Hazards)
	} else {
		g.spawner.UpdateConfig(g.cfg.Hazards)
		g.spawner.SetViewportWidth(g.viewW)
		g.spawner.Reset(seed)
	}

	g.scores.Load()
	g.resetRun()
	g.run = RunIdle
}

// Start begins a new run from idle or game over. It is a no-op while a
// run is in progress. The high score is reloaded so a best set by another
// game sharing the store shows up.
func (g *Game) Start() {
	if g.run == RunRunning {
		return
	}
	if g.spawner == nil {
		g.Reset(g.runtime)
	}
	g.scores.Load()
	g.resetRun()
	g.run = RunRunning
}

func (g *Game) resetRun() {
	g.hazards = g.hazards[:0]
	g.scores.Reset()
	g.tick = 0
	g.player = Player{
		X: g.cfg.Player.SpawnX,
		Y: g.cfg.Player.SpawnY,
		W: g.cfg.Player.Width,
		H: g.cfg.Player.Height,
	}
	g.player.clampTo(g.viewW, g.viewH)
}

// Step advances the game by one tick. A start action outside a run starts
// a new one; the starting tick itself does not simulate. Idle and game
// over do not advance.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.run != RunRunning {
		if in.Has(core.ActionStart) {
			g.Start()
		}
		return core.StepResult{State: g.State()}
	}

	g.tick++
	g.movePlayer(in)

	if h, ok := g.spawner.MaybeSpawn(g.scores.Score()); ok {
		g.hazards = append(g.hazards, h)
	}

	scored, hit := g.advanceHazards()
	g.scores.Add(scored)

	if hit {
		g.run = RunGameOver
		g.scores.Commit()
		return core.StepResult{State: g.State(), Scored: scored, Ended: true}
	}
	return core.StepResult{State: g.State(), Scored: scored}
}

// movePlayer applies one tick of displacement per pressed direction and
// clamps the craft to the viewport. Opposite directions cancel.
func (g *Game) movePlayer(in core.InputFrame) {
	speed := g.cfg.Player.Speed
	if in.Has(core.ActionLeft) {
		g.player.X -= speed
	}
	if in.Has(core.ActionRight) {
		g.player.X += speed
	}
	if in.Has(core.ActionUp) {
		g.player.Y -= speed
	}
	if in.Has(core.ActionDown) {
		g.player.Y += speed
	}
	g.player.clampTo(g.viewW, g.viewH)
}

// advanceHazards moves every hazard, removes the ones past the bottom edge
// and reports how many were removed. On a collision processing stops and
// the remaining hazards are kept untouched for the frozen frame.
func (g *Game) advanceHazards() (scored int, hit bool) {
	pr := g.player.Rect()
	valid := g.hazards[:0]
	for i := range g.hazards {
		h := g.hazards[i]
		h.advance()

		if core.Overlaps(pr, h.Rect()) {
			valid = append(valid, h)
			valid = append(valid, g.hazards[i+1:]...)
			g.hazards = valid
			return scored, true
		}
		if h.Y > g.viewH {
			scored++
			continue
		}
		valid = append(valid, h)
	}
	g.hazards = valid
	return scored, false
}

// SetViewport resizes the playfield. The player is clamped into the new
// bounds immediately; hazards keep their positions.
func (g *Game) SetViewport(w, h float64) {
	g.viewW = sanitize(w)
	g.viewH = sanitize(h)
	g.viewFixed = true
	if g.spawner != nil {
		g.spawner.SetViewportWidth(g.viewW)
	}
	g.player.clampTo(g.viewW, g.viewH)
}

// Viewport returns the playfield size in world units.
func (g *Game) Viewport() (float64, float64) {
	return g.viewW, g.viewH
}

// Config returns the tuning in use.
func (g *Game) Config() config.DodgerConfig {
	return g.cfg
}

// Run returns the run state.
func (g *Game) Run() RunState {
	return g.run
}

// Hazards returns the live hazards. The slice must not be modified.
func (g *Game) Hazards() []Hazard {
	return g.hazards
}

// AddHazard inserts a hazard into the playfield, for scripted scenarios.
func (g *Game) AddHazard(h Hazard) {
	g.hazards = append(g.hazards, h)
}

// Player returns the craft.
func (g *Game) Player() Player {
	return g.player
}

// SetPlayer moves the craft, clamped to the viewport.
func (g *Game) SetPlayer(p Player) {
	g.player = p
	g.player.clampTo(g.viewW, g.viewH)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.scores.Score(),
		HighScore: g.scores.High(),
		Running:   g.run == RunRunning,
		GameOver:  g.run == RunGameOver,
	}
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Register the game with the registry
func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
