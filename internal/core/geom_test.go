package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(2, 3, 10, 4)
	if r.Right() != 12 {
		t.Errorf("Right() = %d, want 12", r.Right())
	}
	if r.Bottom() != 7 {
		t.Errorf("Bottom() = %d, want 7", r.Bottom())
	}
}

func TestCentered(t *testing.T) {
	r := Centered(10, 5, 6, 3)
	if r.X != 7 || r.Y != 4 || r.W != 6 || r.H != 3 {
		t.Errorf("Centered(10, 5, 6, 3) = %+v", r)
	}
}

func TestActionIsMove(t *testing.T) {
	for _, a := range []Action{ActionUp, ActionRight, ActionDown, ActionLeft} {
		if !a.IsMove() {
			t.Errorf("%v should be a move", a)
		}
	}
	for _, a := range []Action{ActionNone, ActionRestart, ActionAutoSolve, ActionQuit} {
		if a.IsMove() {
			t.Errorf("%v should not be a move", a)
		}
	}
}
