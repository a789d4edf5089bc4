package core

// Action represents a semantic game action, abstracted from physical key presses.
// Movement actions are "held" states: the platform sets them on every frame the
// key counts as down.
type Action int

const (
	ActionNone     Action = iota
	ActionLeft            // Left arrow, A - move the basket left
	ActionRight           // Right arrow, D - move the basket right
	ActionForward         // W - move the basket away from the camera (depth play only)
	ActionBackward        // S - move the basket toward the camera (depth play only)
	ActionBoost           // Shift - triple movement speed while held
	ActionStart           // Enter - start the current level
	ActionNext            // N - advance to the next level after completing one
	ActionBack            // B, Escape - go back to menu
	ActionRestart         // R - restart the whole run
	ActionQuit            // Q, Ctrl+C - exit game/session
	ActionPause           // P - pause/unpause game
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
	case ActionForward:
		return "Forward"
	case ActionBackward:
		return "Backward"
	case ActionBoost:
		return "Boost"
	case ActionStart:
		return "Start"
	case ActionNext:
		return "Next"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for one display frame.
type InputFrame struct {
	// Actions maps action types to whether they are active this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame(actions ...Action) InputFrame {
	f := InputFrame{Actions: make(map[Action]bool)}
	for _, a := range actions {
		f.Actions[a] = true
	}
	return f
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
