package dodger

import (
	"github.com/charmbracelet/log"
)

// HighScoreStore persists the best score across processes.
// Implementations should not block the caller for long; writes may be
// deferred.
type HighScoreStore interface {
	LoadHighScore() (int, error)
	SaveHighScore(score int) error
}

// ScoreTracker counts the current run and keeps the best score.
// The high score never decreases.
type ScoreTracker struct {
	score  int
	high   int
	store  HighScoreStore
	logger *log.Logger
}

// NewScoreTracker creates a tracker. store may be nil.
func NewScoreTracker(store HighScoreStore, logger *log.Logger) *ScoreTracker {
	return &ScoreTracker{store: store, logger: logger}
}

// Load reads the persisted high score. Failures count as "no value".
func (t *ScoreTracker) Load() {
	if t.store == nil {
		return
	}
	high, err := t.store.LoadHighScore()
	if err != nil {
		t.logger.Warn("could not load high score", "error", err)
		return
	}
	if high > t.high {
		t.high = high
	}
}

// Reset zeroes the current score.
func (t *ScoreTracker) Reset() {
	t.score = 0
}

// Add increases the current score by n. Non-positive n is ignored.
func (t *ScoreTracker) Add(n int) {
	if n > 0 {
		t.score += n
	}
}

// Score returns the current run's score.
func (t *ScoreTracker) Score() int {
	return t.score
}

// High returns the best score seen.
func (t *ScoreTracker) High() int {
	return t.high
}

// Commit raises the high score to the current score if it is better and
// persists it. Reports whether the high score changed.
func (t *ScoreTracker) Commit() bool {
	if t.score <= t.high {
		return false
	}
	t.high = t.score
	if t.store != nil {
		if err := t.store.SaveHighScore(t.high); err != nil {
			t.logger.Warn("could not save high score", "score", t.high, "error", err)
		}
	}
	return true
}
