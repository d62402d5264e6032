package ai

import (
	"context"

	"github.com/vovakirdan/tilebot/internal/config"
	"github.com/vovakirdan/tilebot/internal/games/t2048"
	"github.com/vovakirdan/tilebot/internal/registry"
)

// Heuristic looks one move ahead and scores the result with a weighted sum
// of empty cells, monotonicity, smoothness and a corner bonus.
type Heuristic struct {
	weights Weights
}

// NewHeuristic creates a one-ply feature strategy.
func NewHeuristic(cfg config.HeuristicConfig) *Heuristic {
	return &Heuristic{weights: Weights{
		Empty:        cfg.EmptyWeight,
		Monotonicity: cfg.MonotonicityWeight,
		Smoothness:   cfg.SmoothnessWeight,
		Corner:       cfg.CornerWeight,
	}}
}

// Tag returns registry.TagHeuristic.
func (s *Heuristic) Tag() registry.Tag { return registry.TagHeuristic }

// SelectMove returns the legal move with the best one-ply score.
func (s *Heuristic) SelectMove(ctx context.Context, g *t2048.Grid) t2048.Direction {
	return bestDirection(ctx, g, func(res t2048.MoveResult) float64 {
		return s.weights.Evaluate(res.Grid, false)
	})
}
