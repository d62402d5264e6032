package ai

import (
	"context"
	"math"

	"github.com/vovakirdan/tilebot/internal/config"
	"github.com/vovakirdan/tilebot/internal/games/t2048"
	"github.com/vovakirdan/tilebot/internal/registry"
)

// Expectimax searches a fixed number of plies, alternating the player's
// best move with the expected value over every possible tile spawn.
type Expectimax struct {
	depth   int
	weights Weights
}

// NewExpectimax creates an expectimax strategy.
func NewExpectimax(cfg config.ExpectimaxConfig) *Expectimax {
	return &Expectimax{
		depth: max(cfg.Depth, 1),
		weights: Weights{
			Empty:        cfg.EmptyWeight,
			Monotonicity: cfg.MonotonicityWeight,
			Smoothness:   cfg.SmoothnessWeight,
			Corner:       cfg.CornerWeight,
			Snake:        cfg.SnakeWeight,
		},
	}
}

// Tag returns registry.TagExpectimax.
func (s *Expectimax) Tag() registry.Tag { return registry.TagExpectimax }

// SelectMove returns the move with the highest expected score.
func (s *Expectimax) SelectMove(ctx context.Context, g *t2048.Grid) t2048.Direction {
	return bestDirection(ctx, g, func(res t2048.MoveResult) float64 {
		return s.chance(res.Grid, s.depth-1)
	})
}

func (s *Expectimax) evaluate(g *t2048.Grid) float64 {
	return s.weights.Evaluate(g, false)
}

// move is the maximizing layer. Positions with no legal move are leaves.
func (s *Expectimax) move(g *t2048.Grid, depth int) float64 {
	if depth <= 0 {
		return s.evaluate(g)
	}

	best := math.Inf(-1)
	moved := false
	for _, dir := range t2048.Directions {
		res := t2048.Slide(g, dir)
		if !res.Moved {
			continue
		}
		moved = true
		best = max(best, s.chance(res.Grid, depth-1))
	}

	if !moved {
		return s.evaluate(g)
	}
	return best
}

// chance averages over every empty cell and both spawn values.
func (s *Expectimax) chance(g *t2048.Grid, depth int) float64 {
	cells := g.AvailableCells()
	if depth <= 0 || len(cells) == 0 {
		return s.evaluate(g)
	}

	total := 0.0
	for _, pos := range cells {
		total += spawnChildren(g, pos, func(child *t2048.Grid) float64 {
			return s.move(child, depth-1)
		})
	}
	return total / float64(len(cells))
}
