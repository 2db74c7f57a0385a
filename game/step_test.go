package game

import (
	"math/rand"
	"testing"
	"time"
)

func press(d Direction) InputEvent {
	return InputEvent{Kind: EventPress, Code: d, ReceivedAt: time.Now()}
}

func newTestEngine() *Engine {
	tune := DefaultTuning()
	tune.BossIdleProbability = 1
	return NewEngine(tune, rand.New(rand.NewSource(1)))
}

func TestComputeTwoLeftsFromOrigin(t *testing.T) {
	e := newTestEngine()
	s0 := InitialState()
	s1 := e.Compute([]InputEvent{press(DirLeft), press(DirLeft)}, s0)
	if s1.Frame != 2 {
		t.Fatalf("frame = %d, want 2", s1.Frame)
	}
	if s1.Player.AngleDegrees != 356 {
		t.Fatalf("player angle = %d, want 356", s1.Player.AngleDegrees)
	}
	if s0.Frame != 1 || s0.Player.AngleDegrees != 0 {
		t.Fatalf("previous state mutated: %+v", s0)
	}
}

func TestComputeIgnoresNonPressAndUnknown(t *testing.T) {
	e := newTestEngine()
	events := []InputEvent{
		{Kind: EventRelease, Code: DirLeft},
		{Kind: EventPress, Code: DirNone},
		{Kind: EventKind(99), Code: DirRight},
	}
	s := e.Compute(events, InitialState())
	if s.Player.AngleDegrees != 0 || len(s.Player.LastMoves) != 0 {
		t.Fatalf("ignored events moved player: %+v", s.Player)
	}
}

func TestComputeHeldBothKeysCancel(t *testing.T) {
	e := newTestEngine()
	s := e.Compute([]InputEvent{press(DirRight), press(DirLeft)}, InitialState())
	if s.Player.AngleDegrees != 0 {
		t.Fatalf("opposite keys should cancel, angle = %d", s.Player.AngleDegrees)
	}
}

func TestComputeFrameMonotonic(t *testing.T) {
	e := NewEngine(DefaultTuning(), rand.New(rand.NewSource(3)))
	s := InitialState()
	for i := 0; i < 2500; i++ {
		next := e.Compute([]InputEvent{press(DirRight)}, s)
		if next.Frame != s.Frame+1 {
			t.Fatalf("frame jumped %d -> %d", s.Frame, next.Frame)
		}
		if next.Boss.Level != LevelFor(next.Frame) {
			t.Fatalf("level %d at frame %d", next.Boss.Level, next.Frame)
		}
		if next.Boss.Level < s.Boss.Level {
			t.Fatalf("level decreased at frame %d", next.Frame)
		}
		s = next
	}
	if s.Player.AngleDegrees != WrapDegrees(2500*2) {
		t.Fatalf("player angle = %d", s.Player.AngleDegrees)
	}
}

func TestNewEngineReferenceCompaction(t *testing.T) {
	tune := DefaultTuning()
	tune.Compaction = CompactionReference
	tune.BossIdleProbability = 1
	e := NewEngine(tune, rand.New(rand.NewSource(1)))
	events := []InputEvent{press(DirLeft), press(DirLeft), press(DirLeft), press(DirRight)}
	s := e.Compute(events, InitialState())
	// [L R] 净效果为 0
	if s.Player.AngleDegrees != 0 || len(s.Player.LastMoves) != 2 {
		t.Fatalf("reference compaction: %+v", s.Player)
	}
}
