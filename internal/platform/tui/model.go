package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/space-dodger/internal/core"
	"github.com/vovakirdan/space-dodger/internal/registry"
	"github.com/vovakirdan/space-dodger/internal/storage"
)

// RunRecorder stores finished runs in the history.
type RunRecorder interface {
	RecordRun(score int) error
}

// Options configures a Model beyond the game and runtime config.
type Options struct {
	Store       *storage.Store // Scoreboard source; nil hides the scoreboard
	Recorder    RunRecorder    // Run history sink; may be nil
	KeyHold     time.Duration  // Terminal key hold window
	Logger      *log.Logger
	Screenshots bool // Allow ctrl+s screenshots on this machine
}

// Model is the Bubble Tea model for running a game in a terminal.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	input      *core.InputState
	keys       *KeyMapper
	opts       Options
	config     core.RuntimeConfig
	gameState  core.GameState
	scoreboard *ScoreboardModel
	stopped    bool
	now        func() time.Time
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	input := core.NewInputState()
	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		input:  input,
		keys:   NewKeyMapper(input, opts.KeyHold),
		opts:   opts,
		config: cfg,
		now:    time.Now,
	}
}

// Init initializes the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.stopped {
		return m, nil
	}

	if m.scoreboard != nil {
		sb, cmd := m.scoreboard.update(msg)
		m.scoreboard = &sb
		if sb.IsQuitting() {
			return m.stop()
		}
		if sb.IsGoingBack() {
			m.scoreboard = nil
		}
		return m, cmd
	}

	switch m.keys.MapKey(msg) {
	case CommandQuit:
		return m.stop()
	case CommandScores:
		if !m.gameState.Running && m.opts.Store != nil {
			sb := NewScoreboardModel(m.opts.Store, m.game.ID(), m.game.Title(), m.config.ScreenW, m.config.ScreenH, true)
			m.scoreboard = &sb
		}
		return m, nil
	case CommandScreenshot:
		if m.opts.Screenshots {
			m.saveScreenshot()
		}
		return m, nil
	}

	m.keys.Press(msg.String(), m.now())
	return m, nil
}

// stop ends the session: no further ticks are scheduled and held input is
// released.
func (m Model) stop() (tea.Model, tea.Cmd) {
	m.stopped = true
	m.keys.ReleaseAll()
	return m, tea.Quit
}

// handleResize processes window resize events. The simulation keeps
// running; only the projection changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if m.scoreboard != nil {
		sb, cmd := m.scoreboard.update(msg)
		m.scoreboard = &sb
		return m, cmd
	}
	return m, nil
}

// handleTick runs exactly one simulation step and schedules the next tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.stopped {
		return m, nil
	}

	frame := m.input.Snapshot()
	m.keys.Expire(now)

	result := m.game.Step(frame)
	prev := m.gameState
	m.gameState = result.State

	if result.State.Running && !prev.Running {
		m.opts.Logger.Debug("run started", "game", m.game.ID())
	}
	// Record the run once, on the tick it ended
	if result.Ended {
		m.opts.Logger.Debug("run over", "score", result.State.Score, "high", result.State.HighScore)
		if m.opts.Recorder != nil {
			if err := m.opts.Recorder.RecordRun(result.State.Score); err != nil {
				m.opts.Logger.Warn("could not record run", "score", result.State.Score, "error", err)
			}
		}
	}

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file and copies it to the
// clipboard. Both are best-effort.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)
	text := m.screen.String()

	home, err := os.UserHomeDir()
	if err != nil {
		m.opts.Logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".dodger", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		m.opts.Logger.Warn("screenshot not saved", "path", path, "error", err)
	} else {
		m.opts.Logger.Info("screenshot saved", "path", path)
	}

	if err := clipboard.WriteAll(text); err != nil {
		m.opts.Logger.Debug("clipboard unavailable", "error", err)
	}
}

// Stopped reports whether the model has been stopped.
func (m Model) Stopped() bool {
	return m.stopped
}

// State returns the last state reported by the game.
func (m Model) State() core.GameState {
	return m.gameState
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.stopped {
		return ""
	}
	if m.scoreboard != nil {
		return m.scoreboard.View()
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for game and blocks until it exits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
