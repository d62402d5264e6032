// Package ai implements the move-selection strategies: one-ply greedy
// players and two bounded-depth searches over the tile-spawn chance layer.
package ai

import (
	"math"
	"math/bits"

	"github.com/vovakirdan/tilebot/internal/games/t2048"
)

// Weights combines board features into a single score.
// Features with a zero weight are skipped.
type Weights struct {
	TileSum      float64
	Empty        float64
	Monotonicity float64
	Smoothness   float64
	Corner       float64
	Snake        float64
	Positional   float64
	Chain        float64
}

// Evaluate scores g. late selects the late-game positional table.
func (w Weights) Evaluate(g *t2048.Grid, late bool) float64 {
	score := 0.0
	if w.TileSum != 0 {
		score += w.TileSum * float64(tileSum(g))
	}
	if w.Empty != 0 {
		score += w.Empty * float64(emptyCells(g))
	}
	if w.Monotonicity != 0 {
		score += w.Monotonicity * float64(monotonicity(g))
	}
	if w.Smoothness != 0 {
		score += w.Smoothness * smoothness(g)
	}
	if w.Corner != 0 {
		score += w.Corner * cornerBonus(g)
	}
	if w.Snake != 0 {
		score += w.Snake * snakeScore(g)
	}
	if w.Positional != 0 {
		score += w.Positional * positionalScore(g, late)
	}
	if w.Chain != 0 {
		score += w.Chain * float64(chainScore(g))
	}
	return score
}

// rank is the binary logarithm of a tile value, 0 for empty cells.
func rank(v int) int {
	if v <= 0 {
		return 0
	}
	return bits.TrailingZeros(uint(v))
}

func tileSum(g *t2048.Grid) int {
	total := 0
	for t := range g.Tiles() {
		total += t.Value
	}
	return total
}

func emptyCells(g *t2048.Grid) int {
	return g.Size()*g.Size() - g.TileCount()
}

// monotonicity counts adjacent pairs, scanning right and down, whose first
// rank exceeds the second.
func monotonicity(g *t2048.Grid) int {
	n := g.Size()
	count := 0
	for y := range n {
		for x := range n {
			r := rank(g.Value(x, y))
			if x+1 < n && r > rank(g.Value(x+1, y)) {
				count++
			}
			if y+1 < n && r > rank(g.Value(x, y+1)) {
				count++
			}
		}
	}
	return count
}

// smoothness is the negated sum of rank differences between occupied neighbours.
func smoothness(g *t2048.Grid) float64 {
	n := g.Size()
	penalty := 0
	for y := range n {
		for x := range n {
			v := g.Value(x, y)
			if v == 0 {
				continue
			}
			r := rank(v)
			if right := g.Value(x+1, y); right != 0 {
				penalty += abs(r - rank(right))
			}
			if down := g.Value(x, y+1); down != 0 {
				penalty += abs(r - rank(down))
			}
		}
	}
	return -float64(penalty)
}

// cornerBonus is 1 when a maximum tile sits in a corner.
func cornerBonus(g *t2048.Grid) float64 {
	maxVal := g.MaxTile()
	if maxVal == 0 {
		return 0
	}
	last := g.Size() - 1
	for _, c := range [4][2]int{{0, 0}, {last, 0}, {0, last}, {last, last}} {
		if g.Value(c[0], c[1]) == maxVal {
			return 1
		}
	}
	return 0
}

// snakeScore walks the board boustrophedon from the top-left corner and sums
// tile ranks for as long as values do not increase.
func snakeScore(g *t2048.Grid) float64 {
	n := g.Size()
	score := 0
	prev := math.MaxInt
	for y := range n {
		for i := range n {
			x := i
			if y%2 == 1 {
				x = n - 1 - i
			}
			v := g.Value(x, y)
			if v > prev {
				return float64(score)
			}
			score += rank(v)
			prev = v
		}
	}
	return float64(score)
}

var (
	earlyTable = [4][4]float64{
		{16, 15, 14, 13},
		{9, 10, 11, 12},
		{8, 7, 6, 5},
		{1, 2, 3, 4},
	}
	lateTable = [4][4]float64{
		{32768, 16384, 8192, 4096},
		{256, 512, 1024, 2048},
		{128, 64, 32, 16},
		{1, 2, 4, 8},
	}
)

// positionalWeight returns the table weight for (x, y). Tables are indexed
// [row][column]; boards of other sizes use a corner gradient.
func positionalWeight(n, x, y int, late bool) float64 {
	if n == 4 {
		if late {
			return lateTable[y][x]
		}
		return earlyTable[y][x]
	}
	steps := float64(2*(n-1) - x - y)
	if late {
		return math.Pow(2, steps)
	}
	return steps + 1
}

// positionalScore is the dot product of tile ranks with the stage table,
// normalised by the table maximum so early and late scores stay comparable.
func positionalScore(g *t2048.Grid, late bool) float64 {
	n := g.Size()
	top := positionalWeight(n, 0, 0, late)
	score := 0.0
	for t := range g.Tiles() {
		score += float64(rank(t.Value)) * positionalWeight(n, t.X, t.Y, late) / top
	}
	return score
}

// chainScore counts neighbouring pairs where one value is exactly double the other.
func chainScore(g *t2048.Grid) int {
	n := g.Size()
	count := 0
	for y := range n {
		for x := range n {
			v := g.Value(x, y)
			if v == 0 {
				continue
			}
			for _, o := range [2]int{g.Value(x+1, y), g.Value(x, y+1)} {
				if o != 0 && (o == 2*v || v == 2*o) {
					count++
				}
			}
		}
	}
	return count
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
