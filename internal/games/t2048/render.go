package t2048

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tilebot/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3
)

// HUD holds the status lines drawn around the board.
type HUD struct {
	Strategy string
	Autoplay bool
	Hint     string
	Controls string
}

// MinScreenSize returns the smallest screen that fits a board of the given size.
func MinScreenSize(size int) (w, h int) {
	return size*cellWidth + 1, size*cellHeight + 1 + hudHeight + 3
}

// Render draws the board, HUD and overlays to the screen.
func Render(dst *core.Screen, g *Grid, meta Metadata, hud HUD) {
	dst.Clear()

	minW, minH := MinScreenSize(g.Size())
	if dst.Width() < minW || dst.Height() < minH {
		renderTooSmall(dst)
		return
	}

	boardW := g.Size()*cellWidth + 1
	boardH := g.Size()*cellHeight + 1
	boardX := (dst.Width() - boardW) / 2
	boardY := hudHeight

	renderHUD(dst, meta, hud, boardX, boardW)
	renderBoard(dst, g, boardX, boardY)
	renderFooter(dst, hud, boardX, boardY+boardH)
	renderOverlays(dst, meta, boardX+boardW/2, boardY+boardH/2)
}

func renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

func renderHUD(dst *core.Screen, meta Metadata, hud HUD, boardX, boardW int) {
	title := "2048"
	dst.DrawTextColored(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightYellow)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", meta.Score))
	best := fmt.Sprintf("Best: %d", meta.BestScore)
	dst.DrawText(max(boardX, boardX+boardW-len(best)), 1, best)

	if hud.Strategy == "" {
		return
	}
	status := "AI: " + hud.Strategy
	color := core.ColorGray
	if hud.Autoplay {
		status += " [auto]"
		color = core.ColorBrightGreen
	}
	dst.DrawTextColored(boardX, 2, status, color)
}

// renderBoard draws the grid borders and tiles.
func renderBoard(dst *core.Screen, g *Grid, boardX, boardY int) {
	size := g.Size()
	for y := range size + 1 {
		for x := range size + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			dst.Set(px, py, junction(x, y, size))

			if x < size {
				for i := 1; i < cellWidth; i++ {
					dst.Set(px+i, py, '─')
				}
			}
			if y < size {
				for i := 1; i < cellHeight; i++ {
					dst.Set(px, py+i, '│')
				}
			}
		}
	}

	for t := range g.Tiles() {
		valStr := strconv.Itoa(t.Value)
		cellX := boardX + t.X*cellWidth + 1
		cellY := boardY + t.Y*cellHeight + 1
		padLeft := max((cellWidth-1-len(valStr))/2, 0)
		dst.DrawTextColored(cellX+padLeft, cellY, valStr, TileColor(t.Value))
	}
}

func junction(x, y, size int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == size:
		return '┐'
	case y == size && x == 0:
		return '└'
	case y == size && x == size:
		return '┘'
	case y == 0:
		return '┬'
	case y == size:
		return '┴'
	case x == 0:
		return '├'
	case x == size:
		return '┤'
	default:
		return '┼'
	}
}

func renderFooter(dst *core.Screen, hud HUD, boardX, y int) {
	if hud.Hint != "" {
		dst.DrawTextColored(boardX, y+1, "Hint: "+hud.Hint, core.ColorCyan)
	}
	if hud.Controls != "" {
		dst.DrawTextCentered(y+2, hud.Controls)
	}
}

func renderOverlays(dst *core.Screen, meta Metadata, centerX, centerY int) {
	switch {
	case meta.Over:
		drawOverlay(dst, centerX, centerY, "GAME OVER", fmt.Sprintf("Score: %d", meta.Score), "Press R to restart")
	case meta.Terminated && meta.Won:
		drawOverlay(dst, centerX, centerY, "YOU WIN!", "C: keep playing", "R: restart")
	}
}

// drawOverlay draws a centered text box.
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := core.Centered(centerX, centerY, maxLen+4, len(lines)+2)
	dst.FillRect(box)
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawTextColored(centerX-len(line)/2, box.Y+1+i, line, core.ColorBrightWhite)
	}
}

// TileColor picks a display colour for a tile value.
func TileColor(value int) core.Color {
	switch {
	case value <= 2:
		return core.ColorWhite
	case value == 4:
		return core.ColorBrightWhite
	case value == 8:
		return core.ColorYellow
	case value == 16:
		return core.ColorOrange
	case value == 32:
		return core.ColorRed
	case value == 64:
		return core.ColorBrightRed
	case value <= 256:
		return core.ColorBrightYellow
	case value <= 1024:
		return core.ColorBrightGreen
	case value == 2048:
		return core.ColorBrightMagenta
	default:
		return core.ColorBrightCyan
	}
}

// String renders the grid as plain text rows with right-aligned values
// and dots for empty cells.
func (g *Grid) String() string {
	width := max(len(strconv.Itoa(g.MaxTile())), 1)
	var b strings.Builder
	for y, row := range g.Rows() {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x, v := range row {
			if x > 0 {
				b.WriteByte(' ')
			}
			cell := "."
			if v != 0 {
				cell = strconv.Itoa(v)
			}
			fmt.Fprintf(&b, "%*s", width, cell)
		}
	}
	return b.String()
}
