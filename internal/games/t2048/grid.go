// Package t2048 implements the sliding-tile merge game: the grid model, the
// move resolver, legality checks and the game manager that owns live state.
package t2048

import (
	"errors"
	"iter"
	"math/rand"
)

// DefaultSize is the default board dimension.
const DefaultSize = 4

// ErrNoSpace is returned when a random empty cell is requested from a full grid.
var ErrNoSpace = errors.New("t2048: no available cell")

// Grid is a square board of cells, each empty or holding one tile.
// Cells are indexed as cells[x][y].
type Grid struct {
	size  int
	cells [][]*Tile
}

// NewGrid creates an empty grid of the given dimension.
func NewGrid(size int) *Grid {
	if size <= 0 {
		size = DefaultSize
	}
	cells := make([][]*Tile, size)
	for x := range cells {
		cells[x] = make([]*Tile, size)
	}
	return &Grid{size: size, cells: cells}
}

// FromRows builds a grid from row-major values, 0 meaning empty.
// rows[y][x] is the value at column x of row y.
func FromRows(rows [][]int) *Grid {
	g := NewGrid(len(rows))
	for y, row := range rows {
		for x, v := range row {
			if v != 0 && x < g.size {
				g.InsertTile(NewTile(Position{X: x, Y: y}, v))
			}
		}
	}
	return g
}

// Size returns the board dimension.
func (g *Grid) Size() int {
	return g.size
}

// Cells yields every (position, tile) pair, column by column.
// The tile is nil for empty cells. The sequence can be ranged over repeatedly.
func (g *Grid) Cells() iter.Seq2[Position, *Tile] {
	return func(yield func(Position, *Tile) bool) {
		for x := range g.size {
			for y := range g.size {
				if !yield(Position{X: x, Y: y}, g.cells[x][y]) {
					return
				}
			}
		}
	}
}

// Tiles yields every tile on the board.
func (g *Grid) Tiles() iter.Seq[*Tile] {
	return func(yield func(*Tile) bool) {
		for _, t := range g.Cells() {
			if t != nil && !yield(t) {
				return
			}
		}
	}
}

// AvailableCells returns the positions of all empty cells.
func (g *Grid) AvailableCells() []Position {
	var cells []Position
	for pos, t := range g.Cells() {
		if t == nil {
			cells = append(cells, pos)
		}
	}
	return cells
}

// RandomAvailableCell picks a uniformly random empty cell.
// Returns ErrNoSpace when the grid is full.
func (g *Grid) RandomAvailableCell(rng *rand.Rand) (Position, error) {
	cells := g.AvailableCells()
	if len(cells) == 0 {
		return Position{}, ErrNoSpace
	}
	return cells[rng.Intn(len(cells))], nil
}

// CellsAvailable returns true if at least one cell is empty.
func (g *Grid) CellsAvailable() bool {
	for _, t := range g.Cells() {
		if t == nil {
			return true
		}
	}
	return false
}

// CellAvailable reports whether pos is in bounds and empty.
func (g *Grid) CellAvailable(pos Position) bool {
	return g.WithinBounds(pos) && g.cells[pos.X][pos.Y] == nil
}

// CellOccupied reports whether pos holds a tile.
func (g *Grid) CellOccupied(pos Position) bool {
	return g.CellContent(pos) != nil
}

// CellContent returns the tile at pos, or nil for empty and out-of-bounds cells.
func (g *Grid) CellContent(pos Position) *Tile {
	if !g.WithinBounds(pos) {
		return nil
	}
	return g.cells[pos.X][pos.Y]
}

// InsertTile places a tile at its own position, replacing any previous occupant.
func (g *Grid) InsertTile(t *Tile) {
	g.cells[t.X][t.Y] = t
}

// RemoveTile clears the cell at the tile's position.
func (g *Grid) RemoveTile(t *Tile) {
	if g.cells[t.X][t.Y] == t {
		g.cells[t.X][t.Y] = nil
	}
}

// WithinBounds reports whether pos lies on the board.
func (g *Grid) WithinBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < g.size && pos.Y >= 0 && pos.Y < g.size
}

// Value returns the tile value at (x, y), 0 when empty or out of bounds.
func (g *Grid) Value(x, y int) int {
	if t := g.CellContent(Position{X: x, Y: y}); t != nil {
		return t.Value
	}
	return 0
}

// Rows returns the board values in row-major order.
func (g *Grid) Rows() [][]int {
	rows := make([][]int, g.size)
	for y := range g.size {
		rows[y] = make([]int, g.size)
		for x := range g.size {
			rows[y][x] = g.Value(x, y)
		}
	}
	return rows
}

// Clone returns a detached copy with fresh tiles. Merge bookkeeping is not copied.
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.size)
	for t := range g.Tiles() {
		c.InsertTile(NewTile(t.Position, t.Value))
	}
	return c
}

// Equal reports whether both grids hold the same values.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.size != other.size {
		return false
	}
	for pos, t := range g.Cells() {
		o := other.cells[pos.X][pos.Y]
		if (t == nil) != (o == nil) {
			return false
		}
		if t != nil && t.Value != o.Value {
			return false
		}
	}
	return true
}

// MaxTile returns the maximum tile value on the board.
func (g *Grid) MaxTile() int {
	maxVal := 0
	for t := range g.Tiles() {
		if t.Value > maxVal {
			maxVal = t.Value
		}
	}
	return maxVal
}

// TileCount returns the number of occupied cells.
func (g *Grid) TileCount() int {
	n := 0
	for range g.Tiles() {
		n++
	}
	return n
}

// moveTile relocates a tile to pos, which must be empty.
func (g *Grid) moveTile(t *Tile, pos Position) {
	g.cells[t.X][t.Y] = nil
	g.cells[pos.X][pos.Y] = t
	t.updatePosition(pos)
}
