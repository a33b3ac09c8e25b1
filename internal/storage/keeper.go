package storage

import (
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Errors returned by HighScoreKeeper writes.
var (
	ErrKeeperClosed = errors.New("storage: keeper closed")
	ErrQueueFull    = errors.New("storage: write queue full")
)

// keeperQueueSize bounds the pending writes; a game produces at most two
// (run + high score) per run, so this only fills when the disk stalls.
const keeperQueueSize = 32

type jobKind int

const (
	jobHighScore jobKind = iota
	jobRun
)

type job struct {
	kind  jobKind
	score int
}

// HighScoreKeeper persists scores for one game off the simulation thread.
// Reads are synchronous; writes are queued and applied in order by a single
// goroutine. All methods are safe on a nil keeper, which persists nothing.
type HighScoreKeeper struct {
	store  *Store
	gameID string
	logger *log.Logger

	mu     sync.Mutex
	closed bool
	jobs   chan job
	done   chan struct{}
}

// NewHighScoreKeeper starts a keeper writing to store under gameID.
// A nil logger discards log output.
func NewHighScoreKeeper(store *Store, gameID string, logger *log.Logger) *HighScoreKeeper {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	k := &HighScoreKeeper{
		store:  store,
		gameID: gameID,
		logger: logger,
		jobs:   make(chan job, keeperQueueSize),
		done:   make(chan struct{}),
	}
	go k.run()
	return k
}

// run applies queued writes until the queue is closed.
func (k *HighScoreKeeper) run() {
	defer close(k.done)
	for j := range k.jobs {
		var err error
		switch j.kind {
		case jobHighScore:
			err = k.store.SaveHighScore(k.gameID, j.score)
		case jobRun:
			_, err = k.store.SaveScore(k.gameID, j.score)
		}
		if err != nil {
			k.logger.Warn("score write failed", "game", k.gameID, "score", j.score, "error", err)
		}
	}
}

// LoadHighScore returns the stored high score, or 0 when none exists.
func (k *HighScoreKeeper) LoadHighScore() (int, error) {
	if k == nil || k.store == nil {
		return 0, nil
	}
	return k.store.HighScore(k.gameID)
}

// SaveHighScore queues a high score write without blocking.
func (k *HighScoreKeeper) SaveHighScore(score int) error {
	return k.enqueue(job{kind: jobHighScore, score: score})
}

// RecordRun queues a finished run for the history without blocking.
func (k *HighScoreKeeper) RecordRun(score int) error {
	return k.enqueue(job{kind: jobRun, score: score})
}

func (k *HighScoreKeeper) enqueue(j job) error {
	if k == nil || k.store == nil {
		return nil
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return ErrKeeperClosed
	}
	select {
	case k.jobs <- j:
		return nil
	default:
		k.logger.Warn("score write dropped", "game", k.gameID, "score", j.score)
		return ErrQueueFull
	}
}

// Close flushes pending writes and stops the writer. It does not close the
// underlying store.
func (k *HighScoreKeeper) Close() error {
	if k == nil {
		return nil
	}
	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		<-k.done
		return nil
	}
	k.closed = true
	close(k.jobs)
	k.mu.Unlock()

	<-k.done
	return nil
}
