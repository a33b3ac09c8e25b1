// Package headless steps Space Dodger without any display, for scripted
// runs, benchmarks and the simulate command.
package headless

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/space-dodger/internal/core"
	"github.com/vovakirdan/space-dodger/internal/games/dodger"
)

// Source produces the input for the next tick from the current frame.
type Source interface {
	Next(snap dodger.Snapshot) core.InputFrame
}

// SourceFunc adapts a function to Source.
type SourceFunc func(snap dodger.Snapshot) core.InputFrame

// Next calls f.
func (f SourceFunc) Next(snap dodger.Snapshot) core.InputFrame {
	return f(snap)
}

// Idle never presses anything.
var Idle = SourceFunc(func(dodger.Snapshot) core.InputFrame {
	return core.NewInputFrame()
})

// Report summarizes one headless run.
type Report struct {
	Seed      int64
	Ticks     int
	Score     int
	HighScore int
	Ended     bool // The run ended by collision rather than by budget
}

// Runner drives one game with one input source.
type Runner struct {
	Game   *dodger.Game
	Source Source
}

// Run starts a run if none is in progress and steps it until a collision,
// maxTicks ticks, or ctx is done. A non-positive maxTicks means no budget.
func (r *Runner) Run(ctx context.Context, maxTicks int) (Report, error) {
	src := r.Source
	if src == nil {
		src = Idle
	}
	r.Game.Start()

	var rep Report
	for maxTicks <= 0 || rep.Ticks < maxTicks {
		if err := ctx.Err(); err != nil {
			return r.finish(rep), err
		}
		res := r.Game.Step(src.Next(r.Game.Snapshot()))
		rep.Ticks++
		if res.Ended {
			rep.Ended = true
			break
		}
	}
	return r.finish(rep), nil
}

func (r *Runner) finish(rep Report) Report {
	st := r.Game.State()
	rep.Score = st.Score
	rep.HighScore = st.HighScore
	return rep
}

// Batch runs n independent games in parallel. Game i is seeded with
// seedBase+i, so a batch is reproducible.
type Batch struct {
	Runs     int
	MaxTicks int
	SeedBase int64
	NewGame  func() *dodger.Game
	// NewSource builds the input source for each run; nil means Idle.
	NewSource func() Source
	// Workers bounds concurrency; 0 means one per CPU.
	Workers int
}

// Run executes the batch. Reports are returned in seed order.
func (b Batch) Run(ctx context.Context) ([]Report, error) {
	reports := make([]Report, b.Runs)
	workers := b.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < b.Runs; i++ {
		seed := b.SeedBase + int64(i)
		g.Go(func() error {
			game := b.NewGame()
			game.Reset(core.RuntimeConfig{TickRate: 60, Seed: seed})

			var src Source = Idle
			if b.NewSource != nil {
				src = b.NewSource()
			}
			runner := &Runner{Game: game, Source: src}
			rep, err := runner.Run(ctx, b.MaxTicks)
			rep.Seed = seed
			reports[i] = rep
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return reports, err
	}
	return reports, nil
}

// Summary aggregates batch reports.
type Summary struct {
	Runs      int
	Survived  int // Runs that reached the tick budget
	BestScore int
	BestSeed  int64
	AvgScore  float64
	AvgTicks  float64
}

// Summarize totals a set of reports.
func Summarize(reports []Report) Summary {
	s := Summary{Runs: len(reports)}
	if len(reports) == 0 {
		return s
	}
	var score, ticks int
	for i, r := range reports {
		score += r.Score
		ticks += r.Ticks
		if !r.Ended {
			s.Survived++
		}
		if i == 0 || r.Score > s.BestScore {
			s.BestScore = r.Score
			s.BestSeed = r.Seed
		}
	}
	s.AvgScore = float64(score) / float64(len(reports))
	s.AvgTicks = float64(ticks) / float64(len(reports))
	return s
}
