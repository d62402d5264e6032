package t2048

import "fmt"

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

// Directions lists every direction in enumeration order.
var Directions = [4]Direction{DirUp, DirRight, DirDown, DirLeft}

// DefaultTarget is the tile value that wins the game.
const DefaultTarget = 2048

// Vector is a unit step on the grid.
type Vector struct {
	X, Y int
}

var vectors = [4]Vector{
	DirUp:    {X: 0, Y: -1},
	DirRight: {X: 1, Y: 0},
	DirDown:  {X: 0, Y: 1},
	DirLeft:  {X: -1, Y: 0},
}

// Vector returns the unit vector for the direction.
func (d Direction) Vector() Vector {
	if d < DirUp || d > DirLeft {
		return Vector{}
	}
	return vectors[d]
}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "unknown"
	}
}

// ParseDirection converts a direction name (or w/a/s/d) to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up", "w":
		return DirUp, nil
	case "right", "d":
		return DirRight, nil
	case "down", "s":
		return DirDown, nil
	case "left", "a":
		return DirLeft, nil
	default:
		return DirUp, fmt.Errorf("t2048: unknown direction %q", s)
	}
}

// MoveResult describes the outcome of resolving one move.
type MoveResult struct {
	Grid       *Grid
	ScoreDelta int
	Moved      bool // at least one tile changed cell or merged
	Won        bool // a merge produced the target value
	Merges     int
}

// traversals returns the column and row visiting orders for a vector.
// Each axis is reversed when the vector points along it, so the cell
// farthest in the travel direction is processed first.
func traversals(size int, v Vector) (xs, ys []int) {
	xs = make([]int, size)
	ys = make([]int, size)
	for i := range size {
		xs[i] = i
		ys[i] = i
	}
	if v.X == 1 {
		reverse(xs)
	}
	if v.Y == 1 {
		reverse(ys)
	}
	return xs, ys
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// findFarthestPosition walks from pos along v while cells are empty.
// Returns the last empty cell reached and the first cell beyond it.
func (g *Grid) findFarthestPosition(pos Position, v Vector) (farthest, next Position) {
	next = pos
	for {
		farthest = next
		next = farthest.Add(v)
		if !g.CellAvailable(next) {
			return farthest, next
		}
	}
}

func (g *Grid) prepareTiles() {
	for t := range g.Tiles() {
		t.MergedFrom = nil
	}
}

// Resolve applies a move to g in place: tiles slide toward dir and equal
// neighbours merge at most once per move. target is the value that sets Won
// (DefaultTarget when <= 0).
func Resolve(g *Grid, dir Direction, target int) MoveResult {
	if target <= 0 {
		target = DefaultTarget
	}
	result := MoveResult{Grid: g}
	v := dir.Vector()
	if v == (Vector{}) {
		return result
	}

	g.prepareTiles()
	xs, ys := traversals(g.size, v)

	for _, x := range xs {
		for _, y := range ys {
			cell := Position{X: x, Y: y}
			tile := g.CellContent(cell)
			if tile == nil {
				continue
			}

			farthest, next := g.findFarthestPosition(cell, v)
			nextTile := g.CellContent(next)

			if nextTile != nil && nextTile.Value == tile.Value && !nextTile.Merged() {
				merged := NewTile(next, tile.Value*2)
				merged.MergedFrom = []*Tile{tile, nextTile}

				g.InsertTile(merged)
				g.RemoveTile(tile)
				tile.updatePosition(next)

				result.ScoreDelta += merged.Value
				result.Merges++
				if merged.Value == target {
					result.Won = true
				}
			} else {
				g.moveTile(tile, farthest)
			}

			if tile.Position != cell {
				result.Moved = true
			}
		}
	}

	return result
}

// Slide resolves a move on a detached copy, leaving g untouched.
func Slide(g *Grid, dir Direction) MoveResult {
	return Resolve(g.Clone(), dir, DefaultTarget)
}

// TryMove reports whether moving in dir would change the grid.
func TryMove(g *Grid, dir Direction) bool {
	return Slide(g, dir).Moved
}

// LegalMoves returns the directions that change the grid, in enumeration order.
func LegalMoves(g *Grid) []Direction {
	var moves []Direction
	for _, d := range Directions {
		if TryMove(g, d) {
			moves = append(moves, d)
		}
	}
	return moves
}

// TileMatchesAvailable returns true if any two orthogonal neighbours share a value.
func TileMatchesAvailable(g *Grid) bool {
	for t := range g.Tiles() {
		for _, d := range Directions {
			other := g.CellContent(t.Position.Add(d.Vector()))
			if other != nil && other.Value == t.Value {
				return true
			}
		}
	}
	return false
}

// MovesAvailable returns true if any move is possible.
func MovesAvailable(g *Grid) bool {
	return g.CellsAvailable() || TileMatchesAvailable(g)
}

// IsGameOver returns true if no moves are possible.
func IsGameOver(g *Grid) bool {
	return !MovesAvailable(g)
}
