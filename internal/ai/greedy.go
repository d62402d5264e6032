package ai

import (
	"context"

	"github.com/vovakirdan/tilebot/internal/config"
	"github.com/vovakirdan/tilebot/internal/games/t2048"
	"github.com/vovakirdan/tilebot/internal/registry"
)

// Greedy picks the move whose result has the largest tile sum. Moves never
// change the sum before a spawn, so the merge score breaks ties.
type Greedy struct {
	cfg config.GreedyConfig
}

// NewGreedy creates a greedy strategy.
func NewGreedy(cfg config.GreedyConfig) *Greedy {
	return &Greedy{cfg: cfg}
}

// Tag returns registry.TagGreedy.
func (s *Greedy) Tag() registry.Tag { return registry.TagGreedy }

// SelectMove returns the legal move with the best one-ply score.
func (s *Greedy) SelectMove(ctx context.Context, g *t2048.Grid) t2048.Direction {
	return bestDirection(ctx, g, func(res t2048.MoveResult) float64 {
		return s.cfg.SumWeight*float64(tileSum(res.Grid)) + s.cfg.MergeWeight*float64(res.ScoreDelta)
	})
}
