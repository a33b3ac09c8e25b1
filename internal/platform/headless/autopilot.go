package headless

import (
	"math"

	"github.com/vovakirdan/space-dodger/internal/core"
	"github.com/vovakirdan/space-dodger/internal/games/dodger"
)

// Autopilot steers sideways away from the nearest hazard falling toward
// the craft and drifts back to the middle when nothing threatens.
type Autopilot struct {
	// Margin widens the craft's column when judging threats.
	Margin float64
}

// NewAutopilot returns an autopilot with a default margin.
func NewAutopilot() *Autopilot {
	return &Autopilot{Margin: 12}
}

// Next implements Source.
func (a *Autopilot) Next(snap dodger.Snapshot) core.InputFrame {
	in := core.NewInputFrame()
	if snap.Run != dodger.RunRunning {
		return in
	}

	p := snap.Player
	threat, ok := a.nearestThreat(snap)
	if !ok {
		cx, _ := p.Center()
		mid := snap.ViewportW / 2
		switch {
		case cx < mid-p.W/2:
			in.Set(core.ActionRight)
		case cx > mid+p.W/2:
			in.Set(core.ActionLeft)
		}
		return in
	}

	// Dodge toward whichever side the hazard leaves more room on
	hx, _ := threat.Center()
	px, _ := p.Center()
	roomLeft := threat.X
	roomRight := snap.ViewportW - threat.Right()
	switch {
	case roomLeft < p.W+a.Margin:
		in.Set(core.ActionRight)
	case roomRight < p.W+a.Margin:
		in.Set(core.ActionLeft)
	case px < hx:
		in.Set(core.ActionLeft)
	default:
		in.Set(core.ActionRight)
	}
	return in
}

// nearestThreat finds the lowest hazard above the craft's bottom edge that
// overlaps its column.
func (a *Autopilot) nearestThreat(snap dodger.Snapshot) (core.Rect, bool) {
	p := snap.Player
	left, right := p.X-a.Margin, p.Right()+a.Margin

	best := core.Rect{}
	bestGap := math.Inf(1)
	for _, h := range snap.Hazards {
		r := h.Rect
		if r.Right() <= left || r.X >= right || r.Y >= p.Bottom() {
			continue
		}
		if gap := p.Y - r.Bottom(); gap < bestGap {
			best, bestGap = r, gap
		}
	}
	return best, !math.IsInf(bestGap, 1)
}
