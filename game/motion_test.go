package game

import (
	"math"
	"testing"
)

func assertConsistent(t *testing.T, m Movable) {
	t.Helper()
	if m.AngleDegrees < 0 || m.AngleDegrees >= 360 {
		t.Fatalf("angle out of range: %d", m.AngleDegrees)
	}
	if m.AngleRadians != float64(m.AngleDegrees)*math.Pi/180 {
		t.Fatalf("radians %v do not match degrees %d", m.AngleRadians, m.AngleDegrees)
	}
	if m.X != math.Cos(m.AngleRadians) || m.Y != math.Sin(m.AngleRadians) {
		t.Fatalf("coords (%v,%v) not derived from %v rad", m.X, m.Y, m.AngleRadians)
	}
}

func TestWrapDegrees(t *testing.T) {
	cases := map[int]int{0: 0, 359: 359, 360: 0, -1: 359, -4: 356, 725: 5, -725: 355}
	for in, want := range cases {
		if got := WrapDegrees(in); got != want {
			t.Fatalf("WrapDegrees(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestIntegrateLeftWrapsBelowZero(t *testing.T) {
	m := Integrate(NewMovable(0), []Direction{L, L}, 2)
	if m.AngleDegrees != 356 {
		t.Fatalf("angle = %d, want 356", m.AngleDegrees)
	}
	assertConsistent(t, m)
	if len(m.LastMoves) != 2 {
		t.Fatalf("last moves = %v", m.LastMoves)
	}
}

func TestIntegrateRightWrapsAbove360(t *testing.T) {
	m := Integrate(NewMovable(358), []Direction{R, R, R}, 2)
	if m.AngleDegrees != 4 {
		t.Fatalf("angle = %d, want 4", m.AngleDegrees)
	}
	assertConsistent(t, m)
}

func TestIntegrateEmptyKeepsPosition(t *testing.T) {
	start := Integrate(NewMovable(90), []Direction{R}, 5)
	got := Integrate(start, []Direction{}, 5)
	if got.AngleDegrees != start.AngleDegrees || got.AngleRadians != start.AngleRadians ||
		got.X != start.X || got.Y != start.Y {
		t.Fatalf("empty residual moved entity: %+v -> %+v", start, got)
	}
	if got.LastMoves == nil || len(got.LastMoves) != 0 {
		t.Fatalf("last moves should be empty, got %v", got.LastMoves)
	}
	if len(start.LastMoves) != 1 {
		t.Fatalf("input mutated: %v", start.LastMoves)
	}
}

func TestIntegrateStepwiseEqualsNetSum(t *testing.T) {
	m := NewMovable(10)
	for i := 0; i < 1000; i++ {
		m = Integrate(m, []Direction{L, L, L}, 7)
		assertConsistent(t, m)
	}
	want := WrapDegrees(10 - 1000*3*7)
	if m.AngleDegrees != want {
		t.Fatalf("angle after drift run = %d, want %d", m.AngleDegrees, want)
	}
}
