package t2048

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidSnapshot is returned when persisted state cannot describe a valid game.
var ErrInvalidSnapshot = errors.New("t2048: invalid snapshot")

// GridSnapshot is a value-type copy of a grid: its size and row-major cell values.
// It shares nothing with the live tiles.
type GridSnapshot struct {
	Size  int     `json:"size"`
	Cells [][]int `json:"cells"`
}

// GameSnapshot is the persisted game state contract.
type GameSnapshot struct {
	Grid        GridSnapshot `json:"grid"`
	Score       int          `json:"score"`
	Over        bool         `json:"over"`
	Won         bool         `json:"won"`
	KeepPlaying bool         `json:"keepPlaying"`
}

// Status summarises a game snapshot for display and logging.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusOver    Status = "game_over"
)

// Serialize captures the grid values.
func (g *Grid) Serialize() GridSnapshot {
	return GridSnapshot{Size: g.size, Cells: g.Rows()}
}

// Validate checks the snapshot shape and tile values.
func (s GridSnapshot) Validate() error {
	if s.Size <= 0 {
		return fmt.Errorf("%w: size %d", ErrInvalidSnapshot, s.Size)
	}
	if len(s.Cells) != s.Size {
		return fmt.Errorf("%w: %d rows for size %d", ErrInvalidSnapshot, len(s.Cells), s.Size)
	}
	for y, row := range s.Cells {
		if len(row) != s.Size {
			return fmt.Errorf("%w: row %d has %d cells", ErrInvalidSnapshot, y, len(row))
		}
		for x, v := range row {
			if v != 0 && (v < 2 || v&(v-1) != 0) {
				return fmt.Errorf("%w: value %d at (%d,%d)", ErrInvalidSnapshot, v, x, y)
			}
		}
	}
	return nil
}

// FromSnapshot builds a fresh grid from a snapshot.
func FromSnapshot(s GridSnapshot) (*Grid, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return FromRows(s.Cells), nil
}

// Validate checks the game snapshot, including the grid.
func (s GameSnapshot) Validate() error {
	if s.Score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrInvalidSnapshot, s.Score)
	}
	return s.Grid.Validate()
}

// Status reports whether the snapshot is still in play.
func (s GameSnapshot) Status() Status {
	switch {
	case s.Over:
		return StatusOver
	case s.Won && !s.KeepPlaying:
		return StatusWon
	default:
		return StatusPlaying
	}
}

// MaxTile returns the highest value in the snapshot.
func (s GameSnapshot) MaxTile() int {
	maxVal := 0
	for _, row := range s.Grid.Cells {
		for _, v := range row {
			maxVal = max(maxVal, v)
		}
	}
	return maxVal
}

// Marshal encodes the snapshot as JSON.
func (s GameSnapshot) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// ParseGameSnapshot decodes and validates persisted game state.
func ParseGameSnapshot(data []byte) (GameSnapshot, error) {
	var s GameSnapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return GameSnapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if err := s.Validate(); err != nil {
		return GameSnapshot{}, err
	}
	return s, nil
}
