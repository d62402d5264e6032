package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(20, 5)

	if s.Width() != 20 || s.Height() != 5 {
		t.Fatalf("size = %dx%d, want 20x5", s.Width(), s.Height())
	}
	for y := range s.Height() {
		for x := range s.Width() {
			if c := s.GetCell(x, y); c != blankCell {
				t.Fatalf("cell (%d,%d) = %+v, want blank", x, y, c)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(3, 4, '8', ColorOrange)
	got := s.GetCell(3, 4)
	if got.Rune != '8' || got.Color != ColorOrange {
		t.Errorf("GetCell(3, 4) = %+v, want '8' orange", got)
	}

	// Out of bounds writes are ignored, reads are blank
	s.Set(-1, 0, 'A')
	s.Set(0, 100, 'A')
	if s.Get(-1, 0) != ' ' || s.Get(0, 100) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenDrawTextColored(t *testing.T) {
	s := NewScreen(10, 2)
	s.DrawTextColored(2, 1, "2048", ColorYellow)

	if got := strings.TrimSpace(strings.Split(s.String(), "\n")[1]); got != "2048" {
		t.Errorf("row 1 = %q, want 2048", got)
	}
	for x := 2; x < 6; x++ {
		if s.GetCell(x, 1).Color != ColorYellow {
			t.Errorf("cell %d colour = %v, want yellow", x, s.GetCell(x, 1).Color)
		}
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(NewRect(0, 0, 6, 4))

	want := "┌────┐\n│    │\n│    │\n└────┘"
	if s.String() != want {
		t.Errorf("DrawBox:\n%s\nwant\n%s", s.String(), want)
	}
}

func TestScreenClearAndResize(t *testing.T) {
	s := NewScreen(4, 4)
	s.DrawText(0, 0, "abcd")
	s.Clear()
	if s.Get(0, 0) != ' ' {
		t.Error("Clear should blank the screen")
	}

	s.Resize(8, 2)
	if s.Width() != 8 || s.Height() != 2 {
		t.Errorf("Resize: got %dx%d, want 8x2", s.Width(), s.Height())
	}
	if len(s.String()) != 8*2+1 {
		t.Errorf("String() length = %d, want %d", len(s.String()), 8*2+1)
	}
}
