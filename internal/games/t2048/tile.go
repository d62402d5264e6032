package t2048

// Position is a cell coordinate on the grid. X is the column, Y the row.
type Position struct {
	X, Y int
}

// Add returns the position one step along the given vector.
func (p Position) Add(v Vector) Position {
	return Position{X: p.X + v.X, Y: p.Y + v.Y}
}

// Tile is a single numbered piece occupying one grid cell.
type Tile struct {
	Position
	Value int

	// MergedFrom holds the two source tiles when this tile was produced by a
	// merge during the current move. It is cleared before every move and
	// blocks a second merge into the same tile.
	MergedFrom []*Tile
}

// NewTile creates a tile at the given position.
func NewTile(pos Position, value int) *Tile {
	return &Tile{Position: pos, Value: value}
}

// Merged reports whether the tile was created by a merge in the current move.
func (t *Tile) Merged() bool {
	return len(t.MergedFrom) > 0
}

func (t *Tile) updatePosition(pos Position) {
	t.Position = pos
}
