package t2048

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tilebot/internal/core"
)

func TestGridString(t *testing.T) {
	g := FromRows([][]int{
		{2, 0, 0},
		{0, 128, 0},
		{4, 0, 16},
	})
	want := "  2   .   .\n  . 128   .\n  4   .  16"
	if got := g.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}

	if got := NewGrid(2).String(); got != ". .\n. ." {
		t.Errorf("empty grid = %q", got)
	}
}

func TestRender(t *testing.T) {
	g := FromRows([][]int{
		{2, 0, 0, 0},
		{0, 2048, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 4},
	})
	hud := HUD{Strategy: "Expectimax", Autoplay: true, Hint: "left", Controls: "Q quit"}

	tests := []struct {
		name    string
		meta    Metadata
		want    []string
		notWant []string
	}{
		{
			name:    "playing",
			meta:    Metadata{Score: 120, BestScore: 300},
			want:    []string{"Score: 120", "Best: 300", "AI: Expectimax [auto]", "Hint: left", "Q quit", "2048"},
			notWant: []string{"GAME OVER", "YOU WIN!"},
		},
		{
			name: "won",
			meta: Metadata{Score: 20000, Won: true, Terminated: true},
			want: []string{"YOU WIN!", "C: keep playing"},
		},
		{
			name:    "won and continuing",
			meta:    Metadata{Score: 20000, Won: true},
			notWant: []string{"YOU WIN!"},
		},
		{
			name: "over",
			meta: Metadata{Score: 64, Over: true, Terminated: true},
			want: []string{"GAME OVER", "Score: 64", "Press R to restart"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := core.NewScreen(60, 20)
			Render(screen, g, tt.meta, hud)
			out := screen.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("missing %q in\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("unexpected %q in\n%s", w, out)
				}
			}
		})
	}
}

func TestRenderTooSmall(t *testing.T) {
	screen := core.NewScreen(20, 8)
	Render(screen, NewGrid(4), Metadata{}, HUD{})
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected resize message")
	}
}

func TestTileColorDistinguishesTarget(t *testing.T) {
	if TileColor(2048) == TileColor(1024) || TileColor(2048) == TileColor(4096) {
		t.Error("2048 should have its own colour")
	}
}
