package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-catch/internal/core"
)

// holdWindow is how long a key press counts as held. Terminals report no key
// releases, so auto-repeat refreshes the hold while the key stays down.
const holdWindow = 150 * time.Millisecond

// KeyMap defines the key bindings for the game screen.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	BoostLeft  key.Binding
	BoostRight key.Binding
	Forward    key.Binding
	Backward   key.Binding
	Start      key.Binding
	Next       key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Back       key.Binding
	Quit       key.Binding
	Screenshot key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.BoostRight, k.Start, k.Next, k.Pause, k.Restart, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.BoostLeft, k.BoostRight, k.Forward, k.Backward},
		{k.Start, k.Next, k.Pause, k.Restart},
		{k.Back, k.Quit, k.Screenshot},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		BoostLeft: key.NewBinding(
			key.WithKeys("shift+left", "A"),
			key.WithHelp("S-←", "fast left"),
		),
		BoostRight: key.NewBinding(
			key.WithKeys("shift+right", "D"),
			key.WithHelp("S-→", "boost"),
		),
		Forward: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "away"),
		),
		Backward: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "closer"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "start"),
		),
		Next: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next level"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "screenshot"),
		),
	}
}

// MapKey translates a key message to the actions it triggers.
// Returns nil for unbound keys.
func (k KeyMap) MapKey(msg tea.KeyMsg) []core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return []core.Action{core.ActionQuit}
	case key.Matches(msg, k.Back):
		return []core.Action{core.ActionBack}
	case key.Matches(msg, k.BoostLeft):
		return []core.Action{core.ActionLeft, core.ActionBoost}
	case key.Matches(msg, k.BoostRight):
		return []core.Action{core.ActionRight, core.ActionBoost}
	case key.Matches(msg, k.Left):
		return []core.Action{core.ActionLeft}
	case key.Matches(msg, k.Right):
		return []core.Action{core.ActionRight}
	case key.Matches(msg, k.Forward):
		return []core.Action{core.ActionForward}
	case key.Matches(msg, k.Backward):
		return []core.Action{core.ActionBackward}
	case key.Matches(msg, k.Start):
		return []core.Action{core.ActionStart}
	case key.Matches(msg, k.Next):
		return []core.Action{core.ActionNext}
	case key.Matches(msg, k.Pause):
		return []core.Action{core.ActionPause}
	case key.Matches(msg, k.Restart):
		return []core.Action{core.ActionRestart}
	}
	return nil
}

// isHeld reports whether an action is a movement that persists between frames.
func isHeld(a core.Action) bool {
	switch a {
	case core.ActionLeft, core.ActionRight, core.ActionForward, core.ActionBackward, core.ActionBoost:
		return true
	}
	return false
}

// InputState turns discrete key presses into per-frame input. Movement keys
// stay held for holdWindow after their last press; other actions fire on the
// next frame only.
type InputState struct {
	held    map[core.Action]time.Time
	pending core.InputFrame
}

// NewInputState creates an empty input state.
func NewInputState() *InputState {
	return &InputState{
		held:    make(map[core.Action]time.Time),
		pending: core.NewInputFrame(),
	}
}

// Press records actions triggered at time now. Pressing one horizontal
// direction releases the other.
func (s *InputState) Press(now time.Time, actions ...core.Action) {
	for _, a := range actions {
		switch a {
		case core.ActionLeft:
			delete(s.held, core.ActionRight)
		case core.ActionRight:
			delete(s.held, core.ActionLeft)
		}
		if isHeld(a) {
			s.held[a] = now
		} else {
			s.pending.Set(a)
		}
	}
	// A plain direction press ends a previous boost.
	if len(actions) == 1 && (actions[0] == core.ActionLeft || actions[0] == core.ActionRight) {
		delete(s.held, core.ActionBoost)
	}
}

// Frame returns the input for a frame at time now and consumes one-shot actions.
func (s *InputState) Frame(now time.Time) core.InputFrame {
	frame := s.pending.Clone()
	s.pending.Clear()
	for a, at := range s.held {
		if now.Sub(at) > holdWindow {
			delete(s.held, a)
			continue
		}
		frame.Set(a)
	}
	return frame
}

// Release drops every held action.
func (s *InputState) Release() {
	clear(s.held)
}
