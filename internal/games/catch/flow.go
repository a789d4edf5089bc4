package catch

import "fmt"

// Level identifies a level of the run. LevelIntro is the title screen before
// the first level; campaign levels count up from LevelOne.
type Level int

const (
	LevelIntro Level = iota
	LevelOne
	LevelTwo
	LevelThree
)

// String returns a display name for the level.
func (l Level) String() string {
	if l == LevelIntro {
		return "Intro"
	}
	return fmt.Sprintf("Level %d", int(l))
}

// Phase is the state of the current level.
type Phase int

const (
	PhaseNotStarted Phase = iota // Waiting for the start signal
	PhasePlaying                 // Balls are falling
	PhaseFailed                  // Lives ran out before the target was reached
	PhaseCompleted               // Target reached with lives to spare
)

// String returns a stable lowercase name, used in storage and logs.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhasePlaying:
		return "playing"
	case PhaseFailed:
		return "failed"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Flow is the level state machine:
//
//	NotStarted -> Playing -> {Failed | Completed}
//
// Completed moves to the next level's NotStarted on an explicit NextLevel
// signal. Each level owns a latch that guards its one-time entry effects; a
// latch is set the first time the level's effects run and never cleared.
type Flow struct {
	level   Level
	last    Level
	phase   Phase
	latched []bool
}

// NewFlow creates a flow over levels campaign levels, positioned at start.
// A start of LevelIntro or LevelOne begins on the intro screen.
func NewFlow(levels int, start Level) *Flow {
	if levels < 1 {
		levels = 1
	}
	f := &Flow{
		last:    Level(levels),
		latched: make([]bool, levels+1),
	}
	if start > LevelOne && start <= f.last {
		f.level = start
	}
	return f
}

// Start moves NotStarted to Playing. From the intro it enters the first level.
// It reports whether the signal was accepted.
func (f *Flow) Start() bool {
	if f.phase != PhaseNotStarted {
		return false
	}
	if f.level == LevelIntro {
		f.level = LevelOne
	}
	f.phase = PhasePlaying
	return true
}

// NextLevel moves a completed level to the next level's NotStarted phase.
// It is rejected from any other phase and after the last level.
func (f *Flow) NextLevel() bool {
	if f.phase != PhaseCompleted || f.level >= f.last {
		return false
	}
	f.level++
	f.phase = PhaseNotStarted
	return true
}

// PendingEntry returns the current level when its entry effects have not run yet.
func (f *Flow) PendingEntry() (Level, bool) {
	if f.level == LevelIntro || f.latched[f.level] {
		return f.level, false
	}
	return f.level, true
}

// Latch marks the level's entry effects as done. It returns false when the
// latch had already fired, in which case the caller must not repeat them.
func (f *Flow) Latch(l Level) bool {
	if l <= LevelIntro || l > f.last || f.latched[l] {
		return false
	}
	f.latched[l] = true
	return true
}

// Latched reports whether the level's entry effects have run.
func (f *Flow) Latched(l Level) bool {
	if l <= LevelIntro || l > f.last {
		return false
	}
	return f.latched[l]
}

// Evaluate derives the outcome of a playing level from the counters.
// target <= 0 never completes. It returns the resulting phase.
func (f *Flow) Evaluate(lives, collected, target int) Phase {
	if f.phase != PhasePlaying {
		return f.phase
	}
	switch {
	case target > 0 && collected >= target && lives > 0:
		f.phase = PhaseCompleted
	case lives <= 0:
		f.phase = PhaseFailed
	}
	return f.phase
}

// Level returns the current level.
func (f *Flow) Level() Level { return f.level }

// Phase returns the current level's phase.
func (f *Flow) Phase() Phase { return f.phase }

// Last returns the final level of the run.
func (f *Flow) Last() Level { return f.last }

// Started reports whether the player has left the intro.
func (f *Flow) Started() bool { return f.level != LevelIntro }

// Ended reports whether the current level reached a terminal phase.
func (f *Flow) Ended() bool { return f.phase == PhaseFailed || f.phase == PhaseCompleted }

// Won reports whether the final level was completed.
func (f *Flow) Won() bool { return f.phase == PhaseCompleted && f.level == f.last }
