package dodger

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/space-dodger/internal/config"
	"github.com/vovakirdan/space-dodger/internal/core"
)

type memStore struct {
	high    int
	saves   []int
	loadErr error
	saveErr error
}

func (s *memStore) LoadHighScore() (int, error) {
	if s.loadErr != nil {
		return 0, s.loadErr
	}
	return s.high, nil
}

func (s *memStore) SaveHighScore(score int) error {
	s.saves = append(s.saves, score)
	if s.saveErr != nil {
		return s.saveErr
	}
	s.high = score
	return nil
}

// quietConfig never spawns on its own so scenarios control every hazard.
func quietConfig() config.DodgerConfig {
	cfg := config.DefaultDodgerConfig()
	cfg.Hazards.SpawnChance = 0
	return cfg
}

func newRunningGame(t *testing.T, cfg config.DodgerConfig, opts ...Option) *Game {
	t.Helper()
	g := New(append([]Option{WithConfig(cfg)}, opts...)...)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	g.Start()
	if g.Run() != RunRunning {
		t.Fatalf("run = %v after Start, expected running", g.Run())
	}
	return g
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestGameIdentity(t *testing.T) {
	g := New()
	if g.ID() != "dodger" {
		t.Errorf("ID() = %q, expected dodger", g.ID())
	}
	if g.Title() != "Space Dodger" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestIdleDoesNotAdvance(t *testing.T) {
	cfg := config.DefaultDodgerConfig()
	cfg.Hazards.SpawnChance = 1
	g := New(WithConfig(cfg))
	g.Reset(core.RuntimeConfig{Seed: 3})

	start := g.Player()
	for i := 0; i < 20; i++ {
		g.Step(input(core.ActionLeft))
	}
	if g.Run() != RunIdle {
		t.Fatalf("run = %v, expected idle", g.Run())
	}
	if g.Player() != start {
		t.Errorf("player moved while idle: %+v", g.Player())
	}
	if len(g.Hazards()) != 0 {
		t.Errorf("hazards spawned while idle: %d", len(g.Hazards()))
	}
}

func TestStartActionBeginsRun(t *testing.T) {
	g := New(WithConfig(quietConfig()))
	g.Reset(core.RuntimeConfig{Seed: 1})

	res := g.Step(input(core.ActionStart))
	if !res.State.Running {
		t.Fatal("start action should begin a run")
	}
	if g.Player().X != 180 || g.Player().Y != 350 {
		t.Errorf("start tick should not move the player, got %+v", g.Player())
	}
}

func TestPlayerMovement(t *testing.T) {
	tests := []struct {
		name   string
		in     core.InputFrame
		dx, dy float64
	}{
		{"left", input(core.ActionLeft), -6, 0},
		{"right", input(core.ActionRight), 6, 0},
		{"up", input(core.ActionUp), 0, -6},
		{"down", input(core.ActionDown), 0, 6},
		{"diagonal", input(core.ActionRight, core.ActionUp), 6, -6},
		{"opposite cancel", input(core.ActionLeft, core.ActionRight), 0, 0},
		{"none", input(), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newRunningGame(t, quietConfig())
			g.SetPlayer(Player{X: 100, Y: 100, W: 40, H: 40})
			g.Step(tt.in)

			p := g.Player()
			if p.X != 100+tt.dx || p.Y != 100+tt.dy {
				t.Errorf("player = (%v, %v), expected (%v, %v)", p.X, p.Y, 100+tt.dx, 100+tt.dy)
			}
		})
	}
}

func TestPlayerClampedToViewport(t *testing.T) {
	g := newRunningGame(t, quietConfig())

	for i := 0; i < 200; i++ {
		g.Step(input(core.ActionRight, core.ActionDown))
		r := g.Player().Rect()
		if !r.Within(400, 400) {
			t.Fatalf("tick %d: player %+v left the viewport", i, r)
		}
	}
	if p := g.Player(); p.X != 360 || p.Y != 360 {
		t.Errorf("player = (%v, %v), expected bottom-right corner (360, 360)", p.X, p.Y)
	}

	for i := 0; i < 200; i++ {
		g.Step(input(core.ActionLeft, core.ActionUp))
	}
	if p := g.Player(); p.X != 0 || p.Y != 0 {
		t.Errorf("player = (%v, %v), expected origin", p.X, p.Y)
	}
}

func TestViewportSmallerThanPlayer(t *testing.T) {
	g := newRunningGame(t, quietConfig())
	g.SetViewport(20, 10)

	g.Step(input(core.ActionRight, core.ActionDown))
	if p := g.Player(); p.X != 0 || p.Y != 0 {
		t.Errorf("player = (%v, %v), expected collapsed to origin", p.X, p.Y)
	}
}

func TestSetViewportClampsPlayer(t *testing.T) {
	g := newRunningGame(t, quietConfig())
	g.SetPlayer(Player{X: 350, Y: 350, W: 40, H: 40})
	g.SetViewport(200, 300)

	if p := g.Player(); p.X != 160 || p.Y != 260 {
		t.Errorf("player = (%v, %v), expected (160, 260)", p.X, p.Y)
	}
	if w, h := g.Viewport(); w != 200 || h != 300 {
		t.Errorf("Viewport() = (%v, %v)", w, h)
	}
}

func TestHazardFallsThroughAndScores(t *testing.T) {
	g := newRunningGame(t, quietConfig())
	g.AddHazard(Hazard{X: 100, Y: -30, Size: 30, Speed: 5})

	for i := 1; i <= 86; i++ {
		res := g.Step(input())
		if res.Scored != 0 {
			t.Fatalf("tick %d: scored %d before the hazard left", i, res.Scored)
		}
	}
	if len(g.Hazards()) != 1 || g.Hazards()[0].Y != 400 {
		t.Fatalf("after 86 ticks expected one hazard at y=400, got %+v", g.Hazards())
	}

	res := g.Step(input())
	if res.Scored != 1 || res.State.Score != 1 {
		t.Errorf("tick 87: scored %d, score %d, expected 1 and 1", res.Scored, res.State.Score)
	}
	if len(g.Hazards()) != 0 {
		t.Errorf("hazard should be removed once below the viewport, got %d", len(g.Hazards()))
	}
}

func TestAllExitingHazardsRemovedSameTick(t *testing.T) {
	g := newRunningGame(t, quietConfig())
	g.AddHazard(Hazard{X: 0, Y: 399, Size: 30, Speed: 2})
	g.AddHazard(Hazard{X: 60, Y: 399.5, Size: 30, Speed: 2})
	g.AddHazard(Hazard{X: 120, Y: 10, Size: 30, Speed: 2})

	res := g.Step(input())
	if res.Scored != 2 || res.State.Score != 2 {
		t.Errorf("scored %d, score %d, expected 2", res.Scored, res.State.Score)
	}
	if len(g.Hazards()) != 1 || g.Hazards()[0].X != 120 {
		t.Errorf("remaining hazards = %+v", g.Hazards())
	}
}

func TestCollisionEndsRun(t *testing.T) {
	g := newRunningGame(t, quietConfig())
	g.AddHazard(Hazard{X: 185, Y: 345, Size: 30, Speed: 2})
	g.AddHazard(Hazard{X: 0, Y: 10, Size: 30, Speed: 2})

	res := g.Step(input())
	if !res.Ended || !res.State.GameOver || res.State.Running {
		t.Fatalf("collision should end the run, got %+v", res)
	}
	if res.State.Score != 0 {
		t.Errorf("score = %d, expected 0", res.State.Score)
	}

	// Frozen: hazards after the hit are kept unmoved
	hz := g.Hazards()
	if len(hz) != 2 || hz[1].Y != 10 {
		t.Errorf("hazards after collision = %+v", hz)
	}

	before := g.Snapshot()
	for i := 0; i < 10; i++ {
		res = g.Step(input(core.ActionLeft))
		if res.Ended {
			t.Fatal("Ended should only be reported on the ending tick")
		}
	}
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Error("game over state should not change without a start")
	}
}

func TestTouchingEdgesDoNotCollide(t *testing.T) {
	g := newRunningGame(t, quietConfig())
	// Bottom edge lands exactly on the player's top edge (y=350)
	g.AddHazard(Hazard{X: 185, Y: 318, Size: 30, Speed: 2})

	res := g.Step(input())
	if res.State.GameOver {
		t.Error("shared edge should not count as a collision")
	}
	res = g.Step(input())
	if !res.State.GameOver {
		t.Error("overlap on the next tick should end the run")
	}
}

func TestRestartResetsRun(t *testing.T) {
	store := &memStore{high: 5}
	g := newRunningGame(t, quietConfig(), WithHighScores(store))
	if g.State().HighScore != 5 {
		t.Fatalf("high score = %d, expected 5 loaded from the store", g.State().HighScore)
	}

	g.scores.score = 12
	g.AddHazard(Hazard{X: 185, Y: 345, Size: 30, Speed: 2})
	res := g.Step(input())
	if !res.Ended {
		t.Fatal("expected the run to end")
	}
	if res.State.HighScore != 12 {
		t.Errorf("high score = %d, expected 12", res.State.HighScore)
	}
	if len(store.saves) != 1 || store.saves[0] != 12 {
		t.Errorf("store saves = %v, expected [12]", store.saves)
	}

	res = g.Step(input(core.ActionStart))
	if !res.State.Running || res.State.Score != 0 {
		t.Errorf("restart state = %+v", res.State)
	}
	if res.State.HighScore != 12 {
		t.Errorf("restart high score = %d, expected 12", res.State.HighScore)
	}
	if len(g.Hazards()) != 0 {
		t.Errorf("restart should clear hazards, got %d", len(g.Hazards()))
	}
	if p := g.Player(); p.X != 180 || p.Y != 350 {
		t.Errorf("player = (%v, %v), expected spawn (180, 350)", p.X, p.Y)
	}
}

func TestHighScoreNotPersistedWhenLower(t *testing.T) {
	store := &memStore{high: 50}
	g := newRunningGame(t, quietConfig(), WithHighScores(store))

	g.scores.score = 10
	g.AddHazard(Hazard{X: 185, Y: 345, Size: 30, Speed: 2})
	res := g.Step(input())

	if res.State.HighScore != 50 {
		t.Errorf("high score = %d, expected 50", res.State.HighScore)
	}
	if len(store.saves) != 0 {
		t.Errorf("lower score should not be saved, got %v", store.saves)
	}
}

func TestHighScoreStoreFailures(t *testing.T) {
	store := &memStore{loadErr: errors.New("disk gone"), saveErr: errors.New("disk gone")}
	g := newRunningGame(t, quietConfig(), WithHighScores(store))
	if g.State().HighScore != 0 {
		t.Errorf("failed load should count as 0, got %d", g.State().HighScore)
	}

	g.scores.score = 3
	g.AddHazard(Hazard{X: 185, Y: 345, Size: 30, Speed: 2})
	res := g.Step(input())
	if res.State.HighScore != 3 {
		t.Errorf("in-memory high score = %d, expected 3 despite the save error", res.State.HighScore)
	}
}

func TestResetNeverLowersHighScore(t *testing.T) {
	store := &memStore{high: 20}
	g := newRunningGame(t, quietConfig(), WithHighScores(store))

	store.high = 4
	g.Reset(core.RuntimeConfig{Seed: 2})
	if g.State().HighScore != 20 {
		t.Errorf("high score = %d after Reset, expected 20", g.State().HighScore)
	}
}

func TestStartPicksUpSharedHighScore(t *testing.T) {
	store := &memStore{high: 5}
	g := newRunningGame(t, quietConfig(), WithHighScores(store))

	g.AddHazard(Hazard{X: 185, Y: 345, Size: 30, Speed: 2})
	g.Step(input())

	// Another game on the same store sets a new best meanwhile
	store.high = 40
	res := g.Step(input(core.ActionStart))
	if res.State.HighScore != 40 {
		t.Errorf("high score = %d after restart, expected 40 from the store", res.State.HighScore)
	}
}

func TestInvalidConfigFallsBackToDefaults(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.DodgerConfig)
	}{
		{"nan base speed", func(c *config.DodgerConfig) { c.Hazards.BaseSpeed = math.NaN() }},
		{"inf base speed", func(c *config.DodgerConfig) { c.Hazards.BaseSpeed = math.Inf(1) }},
		{"zero base speed", func(c *config.DodgerConfig) { c.Hazards.BaseSpeed = 0 }},
		{"nan hazard size", func(c *config.DodgerConfig) { c.Hazards.Size = math.NaN() }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultDodgerConfig()
			cfg.Hazards.SpawnChance = 1
			tc.modify(&cfg)
			g := newRunningGame(t, cfg)

			if g.Config() != config.DefaultDodgerConfig() {
				t.Fatalf("config = %+v, expected defaults", g.Config())
			}
		})
	}
}

func TestNaNSpeedConfigKeepsPoolBounded(t *testing.T) {
	cfg := config.DefaultDodgerConfig()
	cfg.Hazards.BaseSpeed = math.NaN()
	cfg.Hazards.SpawnChance = 1
	g := newRunningGame(t, cfg)
	g.SetPlayer(Player{X: 0, Y: 0, W: 1, H: 1})

	for i := 0; i < 5000 && g.Run() == RunRunning; i++ {
		g.Step(input())
	}
	// Defaults spawn at a few percent per tick; each hazard needs at most
	// ~200 ticks to fall through, so the live pool stays small.
	if n := len(g.Hazards()); n > 50 {
		t.Errorf("live hazards = %d after 5000 ticks, expected a bounded pool", n)
	}
	for _, h := range g.Hazards() {
		if math.IsNaN(h.Y) {
			t.Fatal("hazard with NaN position")
		}
	}
}

func TestSpeedFixedAtSpawn(t *testing.T) {
	cfg := quietConfig()
	g := newRunningGame(t, cfg)
	h := g.spawner.Spawn(0)
	g.AddHazard(h)
	g.AddHazard(Hazard{X: 0, Y: 399, Size: 30, Speed: 2})

	g.Step(input())
	if g.State().Score != 1 {
		t.Fatalf("score = %d, expected 1", g.State().Score)
	}
	if got := g.Hazards()[0].Speed; got != cfg.Hazards.BaseSpeed {
		t.Errorf("live hazard speed changed to %v", got)
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	cfg := config.DefaultDodgerConfig()
	cfg.Hazards.SpawnChance = 0.3

	play := func() []Snapshot {
		g := New(WithConfig(cfg))
		g.Reset(core.RuntimeConfig{Seed: 42})
		g.Start()
		var frames []Snapshot
		for i := 0; i < 300 && g.Run() == RunRunning; i++ {
			var in core.InputFrame
			switch (i / 20) % 3 {
			case 0:
				in = input(core.ActionLeft)
			case 1:
				in = input(core.ActionRight, core.ActionUp)
			default:
				in = input(core.ActionDown)
			}
			g.Step(in)
			frames = append(frames, g.Snapshot())
		}
		return frames
	}

	a, b := play(), play()
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed and inputs should produce identical runs")
	}
}

func TestHazardsKeepMovingUntilRemoved(t *testing.T) {
	cfg := config.DefaultDodgerConfig()
	cfg.Hazards.SpawnChance = 1
	g := newRunningGame(t, cfg)
	g.SetPlayer(Player{X: 0, Y: 0, W: 1, H: 1})
	g.SetViewport(400, 100)

	for i := 0; i < 200 && g.Run() == RunRunning; i++ {
		g.Step(input())
		for _, h := range g.Hazards() {
			if h.Y > 100 {
				t.Fatalf("tick %d: hazard below the viewport still live: %+v", i, h)
			}
			if h.Y < -h.Size {
				t.Fatalf("tick %d: hazard above the spawn line: %+v", i, h)
			}
		}
	}
}

func TestRender(t *testing.T) {
	g := newRunningGame(t, quietConfig())
	g.AddHazard(Hazard{X: 0, Y: 0, Size: 30, Speed: 2})
	screen := core.NewScreen(40, 21)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}
	// Player spawn (180,350) of 400x400 lands at column 18, row 1+17
	if got := screen.Get(18, 18); got != PlayerChar {
		t.Errorf("player cell = %q, expected %q", got, PlayerChar)
	}
	if got := screen.Get(0, 1); got != HazardChar {
		t.Errorf("hazard cell = %q, expected %q", got, HazardChar)
	}
}

func TestRenderMessages(t *testing.T) {
	g := New(WithConfig(quietConfig()))
	g.Reset(core.RuntimeConfig{Seed: 1})
	screen := core.NewScreen(60, 20)

	g.Render(screen)
	if !strings.Contains(screen.String(), "Press Enter to start") {
		t.Error("idle screen should show the start prompt")
	}

	g.Start()
	g.AddHazard(Hazard{X: 185, Y: 345, Size: 30, Speed: 2})
	g.Step(input())
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over screen should show the message")
	}
}

func TestRenderEmptyScreen(t *testing.T) {
	g := newRunningGame(t, quietConfig())
	g.Render(core.NewScreen(0, 0))
	g.Render(nil)
	g.SetViewport(0, 0)
	g.Render(core.NewScreen(10, 5))
}

func TestSpinGlyph(t *testing.T) {
	tests := []struct {
		angle float64
		want  rune
	}{
		{0, '|'},
		{0.785, '/'},
		{1.571, '─'},
		{2.356, '\\'},
		{3.1416, '|'},
		{-0.785, '\\'},
	}
	for _, tt := range tests {
		if got := spinGlyph(tt.angle); got != tt.want {
			t.Errorf("spinGlyph(%v) = %q, expected %q", tt.angle, got, tt.want)
		}
	}
}
