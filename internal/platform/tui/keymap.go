package tui

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/space-dodger/internal/core"
)

// DefaultKeyHold is used when no hold window is configured.
const DefaultKeyHold = 180 * time.Millisecond

// Command is a platform-level request derived from a key press.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandScores
	CommandScreenshot
)

// KeyMapper translates Bubble Tea key messages into input state.
// Terminals report key presses and auto-repeats but never releases, so
// every movement key counts as held until no repeat arrives within the
// hold window.
type KeyMapper struct {
	input  *core.InputState
	hold   time.Duration
	mu     sync.Mutex
	expiry map[string]time.Time
}

// NewKeyMapper creates a key mapper writing into input.
func NewKeyMapper(input *core.InputState, hold time.Duration) *KeyMapper {
	if hold <= 0 {
		hold = DefaultKeyHold
	}
	return &KeyMapper{
		input:  input,
		hold:   hold,
		expiry: make(map[string]time.Time),
	}
}

// MapKey returns the platform command for a key, if any.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) Command {
	switch msg.String() {
	case "ctrl+c", "q":
		return CommandQuit
	case "tab":
		return CommandScores
	case "ctrl+s":
		return CommandScreenshot
	}
	return CommandNone
}

// Press records a key press at now. Movement keys are held until their
// window expires; the start key is latched for the next tick.
func (km *KeyMapper) Press(key string, now time.Time) {
	if core.IsStartKey(key) {
		km.input.RequestStart()
		return
	}
	if _, ok := core.LookupKey(key); !ok {
		return
	}
	// Held keys are case-insensitive; "A" and "a" share one window
	key = strings.ToLower(key)

	km.mu.Lock()
	defer km.mu.Unlock()
	km.input.KeyDown(key)
	km.expiry[key] = now.Add(km.hold)
}

// Expire releases every key whose hold window ended at or before now.
func (km *KeyMapper) Expire(now time.Time) {
	km.mu.Lock()
	defer km.mu.Unlock()
	for key, until := range km.expiry {
		if !until.After(now) {
			km.input.KeyUp(key)
			delete(km.expiry, key)
		}
	}
}

// ReleaseAll drops every held key.
func (km *KeyMapper) ReleaseAll() {
	km.mu.Lock()
	defer km.mu.Unlock()
	for key := range km.expiry {
		delete(km.expiry, key)
	}
	km.input.ReleaseAll()
}
