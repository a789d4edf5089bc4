package catch

import "testing"

func TestFlowTransitions(t *testing.T) {
	f := NewFlow(3, LevelIntro)

	if f.Started() {
		t.Fatal("Started() = true on intro")
	}
	if _, pending := f.PendingEntry(); pending {
		t.Error("PendingEntry() on intro expected false")
	}
	if f.NextLevel() {
		t.Error("NextLevel() accepted from NotStarted")
	}

	if !f.Start() {
		t.Fatal("Start() rejected from intro")
	}
	if f.Level() != LevelOne || f.Phase() != PhasePlaying {
		t.Fatalf("after Start() = %v/%v, expected Level 1/playing", f.Level(), f.Phase())
	}
	if f.Start() {
		t.Error("Start() accepted while playing")
	}

	if got := f.Evaluate(5, 4, 5); got != PhasePlaying {
		t.Errorf("Evaluate(5, 4, 5) = %v, expected playing", got)
	}
	if got := f.Evaluate(5, 5, 5); got != PhaseCompleted {
		t.Errorf("Evaluate(5, 5, 5) = %v, expected completed", got)
	}
	if f.Won() {
		t.Error("Won() = true after level 1")
	}

	if !f.NextLevel() {
		t.Fatal("NextLevel() rejected from completed")
	}
	if f.Level() != LevelTwo || f.Phase() != PhaseNotStarted {
		t.Fatalf("after NextLevel() = %v/%v, expected Level 2/not_started", f.Level(), f.Phase())
	}

	f.Start()
	if got := f.Evaluate(0, 3, 10); got != PhaseFailed {
		t.Errorf("Evaluate(0, 3, 10) = %v, expected failed", got)
	}
	if !f.Ended() {
		t.Error("Ended() = false after failing")
	}
	if f.NextLevel() {
		t.Error("NextLevel() accepted from failed")
	}
	if got := f.Evaluate(5, 10, 10); got != PhaseFailed {
		t.Errorf("Evaluate() after failing = %v, expected failed to stick", got)
	}
}

func TestFlowWinOnLastLevel(t *testing.T) {
	f := NewFlow(2, LevelIntro)
	f.Start()
	f.Evaluate(1, 1, 1)
	f.NextLevel()
	f.Start()
	f.Evaluate(1, 1, 1)

	if !f.Won() {
		t.Fatal("Won() = false after completing the last level")
	}
	if f.NextLevel() {
		t.Error("NextLevel() accepted after the last level")
	}
}

func TestFlowEvaluateZeroTargetNeverCompletes(t *testing.T) {
	f := NewFlow(1, LevelIntro)
	f.Start()
	for _, collected := range []int{0, 1, 100} {
		if got := f.Evaluate(3, collected, 0); got != PhasePlaying {
			t.Errorf("Evaluate(3, %d, 0) = %v, expected playing", collected, got)
		}
	}
}

func TestFlowCompletionNeedsLives(t *testing.T) {
	f := NewFlow(1, LevelIntro)
	f.Start()
	if got := f.Evaluate(0, 5, 5); got != PhaseFailed {
		t.Errorf("Evaluate(0, 5, 5) = %v, expected failed", got)
	}
}

func TestFlowLatchFiresOnce(t *testing.T) {
	f := NewFlow(3, LevelIntro)
	f.Start()

	lvl, pending := f.PendingEntry()
	if !pending || lvl != LevelOne {
		t.Fatalf("PendingEntry() = %v, %v, expected Level 1, true", lvl, pending)
	}
	if !f.Latch(lvl) {
		t.Fatal("first Latch() = false")
	}
	if f.Latch(lvl) {
		t.Error("second Latch() = true")
	}
	if _, pending := f.PendingEntry(); pending {
		t.Error("PendingEntry() still pending after latch")
	}
	if f.Latched(LevelTwo) {
		t.Error("Latched(Level 2) = true before entering it")
	}
}

func TestFlowStartLevel(t *testing.T) {
	tests := []struct {
		name  string
		start Level
		want  Level
	}{
		{"intro", LevelIntro, LevelIntro},
		{"level one shows intro", LevelOne, LevelIntro},
		{"level two", LevelTwo, LevelTwo},
		{"past the end", Level(9), LevelIntro},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFlow(3, tt.start)
			if f.Level() != tt.want {
				t.Errorf("NewFlow(3, %v).Level() = %v, expected %v", tt.start, f.Level(), tt.want)
			}
			if f.Phase() != PhaseNotStarted {
				t.Errorf("Phase() = %v, expected not_started", f.Phase())
			}
		})
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseNotStarted, "not_started"},
		{PhasePlaying, "playing"},
		{PhaseFailed, "failed"},
		{PhaseCompleted, "completed"},
		{Phase(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, expected %q", int(tt.phase), got, tt.want)
		}
	}
}
