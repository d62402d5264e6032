package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/tilebot/internal/core"
)

func TestRenderScreenKeepsLayout(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	s := core.NewScreen(10, 3)
	s.DrawText(0, 0, "score")
	s.DrawTextColored(2, 1, "2048", core.ColorBrightMagenta)
	s.DrawTextColored(6, 1, "4", core.ColorBrightWhite)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[0] != "score     " {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "  20484   " {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	if got := styleFor(core.Color(200)).Render("x"); got != "x" {
		t.Errorf("unknown colour rendered %q", got)
	}
}
