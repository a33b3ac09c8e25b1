package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/space-dodger/internal/core"
)

func TestMapKeyCommands(t *testing.T) {
	km := NewKeyMapper(core.NewInputState(), 0)

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want Command
	}{
		{"q quits", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, CommandQuit},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, CommandQuit},
		{"tab opens scores", tea.KeyMsg{Type: tea.KeyTab}, CommandScores},
		{"ctrl+s screenshot", tea.KeyMsg{Type: tea.KeyCtrlS}, CommandScreenshot},
		{"left is game input", tea.KeyMsg{Type: tea.KeyLeft}, CommandNone},
		{"a is game input", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}, CommandNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.MapKey(tt.msg); got != tt.want {
				t.Errorf("MapKey(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestPressHoldsUntilExpiry(t *testing.T) {
	input := core.NewInputState()
	km := NewKeyMapper(input, 100*time.Millisecond)
	t0 := time.Unix(1000, 0)

	km.Press("left", t0)
	km.Expire(t0.Add(50 * time.Millisecond))
	if !input.IsPressed(core.DirLeft) {
		t.Fatal("left should be held inside the hold window")
	}

	// A repeat extends the window
	km.Press("left", t0.Add(80*time.Millisecond))
	km.Expire(t0.Add(150 * time.Millisecond))
	if !input.IsPressed(core.DirLeft) {
		t.Fatal("repeat should extend the hold window")
	}

	km.Expire(t0.Add(180 * time.Millisecond))
	if input.IsPressed(core.DirLeft) {
		t.Error("left should be released once the window passes without a repeat")
	}
}

func TestExpireIsPerKey(t *testing.T) {
	input := core.NewInputState()
	km := NewKeyMapper(input, 100*time.Millisecond)
	t0 := time.Unix(1000, 0)

	km.Press("a", t0)
	km.Press("left", t0.Add(60*time.Millisecond))
	km.Expire(t0.Add(120 * time.Millisecond))

	if !input.IsPressed(core.DirLeft) {
		t.Error("left arrow still inside its window, direction should stay pressed")
	}
	km.Expire(t0.Add(200 * time.Millisecond))
	if input.IsPressed(core.DirLeft) {
		t.Error("both keys expired, direction should be released")
	}
}

func TestPressCaseSharesWindow(t *testing.T) {
	input := core.NewInputState()
	km := NewKeyMapper(input, 100*time.Millisecond)
	t0 := time.Unix(1000, 0)

	km.Press("A", t0)
	km.Press("a", t0.Add(60*time.Millisecond))
	km.Expire(t0.Add(120 * time.Millisecond))

	if !input.IsPressed(core.DirLeft) {
		t.Error("lower-case repeat should extend the upper-case press")
	}
	km.Expire(t0.Add(160 * time.Millisecond))
	if input.IsPressed(core.DirLeft) {
		t.Error("key should be released after the shared window")
	}
}

func TestPressStartLatches(t *testing.T) {
	input := core.NewInputState()
	km := NewKeyMapper(input, 0)

	km.Press("enter", time.Now())
	if !input.Snapshot().Has(core.ActionStart) {
		t.Error("enter should request a start")
	}
	if input.Snapshot().Has(core.ActionStart) {
		t.Error("start request should be consumed by one snapshot")
	}
}

func TestPressUnknownKeyIgnored(t *testing.T) {
	input := core.NewInputState()
	km := NewKeyMapper(input, 0)

	km.Press("x", time.Now())
	frame := input.Snapshot()
	if len(frame.Actions) != 0 {
		t.Errorf("unexpected actions %v", frame.Actions)
	}
}

func TestReleaseAll(t *testing.T) {
	input := core.NewInputState()
	km := NewKeyMapper(input, time.Hour)
	now := time.Now()

	km.Press("up", now)
	km.Press("d", now)
	km.ReleaseAll()

	if input.IsPressed(core.DirUp) || input.IsPressed(core.DirRight) {
		t.Error("ReleaseAll should release every key")
	}
}
