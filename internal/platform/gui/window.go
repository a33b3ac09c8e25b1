// Package gui runs Space Dodger in a desktop window with ebiten. Unlike
// a terminal, ebiten reports real key releases, so keys are held exactly
// as long as the user holds them.
package gui

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/space-dodger/internal/core"
	"github.com/vovakirdan/space-dodger/internal/games/dodger"
)

var (
	backgroundColor = color.RGBA{R: 8, G: 10, B: 24, A: 255}
	playerColor     = color.RGBA{R: 80, G: 160, B: 255, A: 255}
	hazardColor     = color.RGBA{R: 230, G: 110, B: 40, A: 255}
	spinColor       = color.RGBA{R: 255, G: 210, B: 120, A: 255}
	hudColor        = color.RGBA{R: 235, G: 235, B: 235, A: 255}
	overlayColor    = color.RGBA{R: 0, G: 0, B: 0, A: 160}
)

// RunRecorder stores finished runs in the history.
type RunRecorder interface {
	RecordRun(score int) error
}

// Options configures the window driver.
type Options struct {
	Recorder RunRecorder
	Logger   *log.Logger
}

// Window adapts a dodger.Game to ebiten.Game.
type Window struct {
	game     *dodger.Game
	input    *core.InputState
	opts     Options
	face     text.Face
	keys     []ebiten.Key
	viewW    int
	viewH    int
	prevRun  dodger.RunState
	stopping bool
}

// NewWindow resets game with cfg and wraps it for ebiten.
func NewWindow(game *dodger.Game, cfg core.RuntimeConfig, opts Options) *Window {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	game.Reset(cfg)
	w, h := game.Viewport()
	return &Window{
		game:    game,
		input:   core.NewInputState(),
		opts:    opts,
		face:    text.NewGoXFace(basicfont.Face7x13),
		viewW:   int(w),
		viewH:   int(h),
		prevRun: game.Run(),
	}
}

// Update routes key edges into the input state and runs one tick.
func (w *Window) Update() error {
	if w.stopping {
		return ebiten.Termination
	}

	w.keys = inpututil.AppendJustPressedKeys(w.keys[:0])
	for _, k := range w.keys {
		switch k {
		case ebiten.KeyEscape, ebiten.KeyQ:
			w.stopping = true
			w.input.ReleaseAll()
			return ebiten.Termination
		}
		w.input.KeyDown(k.String())
	}
	w.keys = inpututil.AppendJustReleasedKeys(w.keys[:0])
	for _, k := range w.keys {
		w.input.KeyUp(k.String())
	}

	res := w.game.Step(w.input.Snapshot())
	if run := w.game.Run(); run != w.prevRun {
		w.opts.Logger.Debug("run state", "from", w.prevRun, "to", run)
		w.prevRun = run
	}
	if res.Ended && w.opts.Recorder != nil {
		if err := w.opts.Recorder.RecordRun(res.State.Score); err != nil {
			w.opts.Logger.Warn("could not record run", "score", res.State.Score, "error", err)
		}
	}
	return nil
}

// Draw renders the current snapshot.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	snap := w.game.Snapshot()

	for _, h := range snap.Hazards {
		r := h.Rect
		vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), hazardColor, false)
		drawSpin(screen, r, h.Angle)
	}

	p := snap.Player
	vector.FillRect(screen, float32(p.X), float32(p.Y), float32(p.W), float32(p.H), playerColor, false)

	w.drawText(screen, fmt.Sprintf("Score: %d", snap.Score), 8, 6)
	best := fmt.Sprintf("Best: %d", snap.HighScore)
	bw, _ := text.Measure(best, w.face, 0)
	w.drawText(screen, best, snap.ViewportW-bw-8, 6)

	switch snap.Run {
	case dodger.RunIdle:
		w.drawMessage(screen, snap, "SPACE DODGER", "Press Enter to start")
	case dodger.RunGameOver:
		w.drawMessage(screen, snap, "GAME OVER", fmt.Sprintf("Score: %d  -  Enter to restart", snap.Score))
	}
}

// drawSpin draws the rotating cross that shows a hazard's angle.
func drawSpin(screen *ebiten.Image, r core.Rect, angle float64) {
	cx, cy := r.Center()
	arm := r.W * 0.35
	for _, a := range []float64{angle, angle + math.Pi/2} {
		dx, dy := math.Cos(a)*arm, math.Sin(a)*arm
		vector.StrokeLine(screen,
			float32(cx-dx), float32(cy-dy), float32(cx+dx), float32(cy+dy),
			2, spinColor, true)
	}
}

func (w *Window) drawText(screen *ebiten.Image, s string, x, y float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(hudColor)
	text.Draw(screen, s, w.face, op)
}

// drawMessage draws a dimmed band with two centered lines.
func (w *Window) drawMessage(screen *ebiten.Image, snap dodger.Snapshot, title, subtitle string) {
	bandH := 60.0
	y := (snap.ViewportH - bandH) / 2
	vector.FillRect(screen, 0, float32(y), float32(snap.ViewportW), float32(bandH), overlayColor, false)

	tw, _ := text.Measure(title, w.face, 0)
	w.drawText(screen, title, (snap.ViewportW-tw)/2, y+12)
	sw, _ := text.Measure(subtitle, w.face, 0)
	w.drawText(screen, subtitle, (snap.ViewportW-sw)/2, y+34)
}

// Layout makes the logical screen match the window and forwards the size
// to the game as its viewport.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != w.viewW || outsideHeight != w.viewH {
		w.viewW, w.viewH = outsideWidth, outsideHeight
		w.game.SetViewport(float64(outsideWidth), float64(outsideHeight))
	}
	return w.viewW, w.viewH
}

// Run opens the window and blocks until it is closed.
func Run(game *dodger.Game, cfg core.RuntimeConfig, opts Options) error {
	win := NewWindow(game, cfg, opts)

	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowSize(win.viewW, win.viewH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.TickRate > 0 {
		ebiten.SetTPS(cfg.TickRate)
	}

	if err := ebiten.RunGame(win); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("gui: %w", err)
	}
	return nil
}
