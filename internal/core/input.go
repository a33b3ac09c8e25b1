package core

import (
	"strings"
	"sync"
)

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone  Action = iota
	ActionLeft         // A, Left arrow - move left
	ActionRight        // D, Right arrow - move right
	ActionUp           // W, Up arrow - move up
	ActionDown         // S, Down arrow - move down
	ActionStart        // Enter - start a run, or restart after game over
	ActionBack         // B, Escape - leave a sub-screen
	ActionQuit         // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionStart:
		return "Start"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Direction is one of the four logical movement directions.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
	numDirections
)

// Directions lists every logical direction in a fixed order.
var Directions = [numDirections]Direction{DirLeft, DirRight, DirUp, DirDown}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	default:
		return "Unknown"
	}
}

// Action returns the frame action that carries this direction.
func (d Direction) Action() Action {
	switch d {
	case DirLeft:
		return ActionLeft
	case DirRight:
		return ActionRight
	case DirUp:
		return ActionUp
	case DirDown:
		return ActionDown
	default:
		return ActionNone
	}
}

// StartKey is the dedicated start/restart key name.
const StartKey = "enter"

// keyBindings maps lower-cased key names to directions. Names cover both the
// browser/Ebiten spelling ("arrowleft") and the Bubble Tea one ("left").
var keyBindings = map[string]Direction{
	"arrowleft":  DirLeft,
	"left":       DirLeft,
	"a":          DirLeft,
	"arrowright": DirRight,
	"right":      DirRight,
	"d":          DirRight,
	"arrowup":    DirUp,
	"up":         DirUp,
	"w":          DirUp,
	"arrowdown":  DirDown,
	"down":       DirDown,
	"s":          DirDown,
}

// LookupKey returns the direction bound to a key name, ignoring case.
func LookupKey(name string) (Direction, bool) {
	d, ok := keyBindings[strings.ToLower(name)]
	return d, ok
}

// IsStartKey reports whether name is the start/restart key, ignoring case.
func IsStartKey(name string) bool {
	return strings.EqualFold(name, StartKey)
}

// InputState holds the pressed/released state of the logical directions.
// Key events may arrive from any goroutine; the simulation reads it once per
// tick through Snapshot.
type InputState struct {
	mu       sync.Mutex
	held     map[string]Direction // physical keys currently down
	manual   [numDirections]bool  // directions set through Press
	startReq bool
}

// NewInputState creates an input state with nothing pressed.
func NewInputState() *InputState {
	return &InputState{held: make(map[string]Direction)}
}

// KeyDown records a key-down event. Unknown keys are ignored.
func (s *InputState) KeyDown(name string) {
	key := strings.ToLower(name)
	s.mu.Lock()
	defer s.mu.Unlock()

	if key == StartKey {
		s.startReq = true
		return
	}
	if d, ok := keyBindings[key]; ok {
		if s.held == nil {
			s.held = make(map[string]Direction)
		}
		s.held[key] = d
	}
}

// KeyUp records a key-up event. Releasing one of a direction's keys leaves
// the direction pressed while its other key is still down.
func (s *InputState) KeyUp(name string) {
	key := strings.ToLower(name)
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.held, key)
}

// Press sets a direction directly, bypassing key names.
func (s *InputState) Press(d Direction) {
	if d < 0 || d >= numDirections {
		return
	}
	s.mu.Lock()
	s.manual[d] = true
	s.mu.Unlock()
}

// Release clears a direction and every key held for it.
func (s *InputState) Release(d Direction) {
	if d < 0 || d >= numDirections {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.manual[d] = false
	for k, hd := range s.held {
		if hd == d {
			delete(s.held, k)
		}
	}
}

// RequestStart latches a start/restart request for the next snapshot.
func (s *InputState) RequestStart() {
	s.mu.Lock()
	s.startReq = true
	s.mu.Unlock()
}

// ReleaseAll clears every direction and any pending start request.
func (s *InputState) ReleaseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.held)
	s.manual = [numDirections]bool{}
	s.startReq = false
}

// IsPressed reports whether the direction is currently held.
func (s *InputState) IsPressed(d Direction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pressedLocked(d)
}

func (s *InputState) pressedLocked(d Direction) bool {
	if d < 0 || d >= numDirections {
		return false
	}
	if s.manual[d] {
		return true
	}
	for _, hd := range s.held {
		if hd == d {
			return true
		}
	}
	return false
}

// Snapshot returns a consistent copy of the current input as a frame and
// consumes the pending start request.
func (s *InputState) Snapshot() InputFrame {
	s.mu.Lock()
	defer s.mu.Unlock()

	frame := NewInputFrame()
	for _, d := range Directions {
		if s.pressedLocked(d) {
			frame.Set(d.Action())
		}
	}
	if s.startReq {
		frame.Set(ActionStart)
		s.startReq = false
	}
	return frame
}

// InputFrame represents the input state during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they are active this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is active this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
