package ai

import (
	"context"
	"math"

	"github.com/vovakirdan/tilebot/internal/games/t2048"
	"github.com/vovakirdan/tilebot/internal/registry"
)

// scoreFunc rates the grid reached by one move.
type scoreFunc func(res t2048.MoveResult) float64

// bestDirection tries each direction on a detached copy of g and returns the
// highest scoring legal one. Ties keep the earlier direction. Cancellation is
// checked before every direction after the first legal one.
func bestDirection(ctx context.Context, g *t2048.Grid, score scoreFunc) t2048.Direction {
	best := registry.DefaultDirection
	bestScore := math.Inf(-1)
	found := false

	for _, dir := range t2048.Directions {
		res := t2048.Slide(g, dir)
		if !res.Moved {
			continue
		}
		if found && ctx.Err() != nil {
			break
		}
		s := score(res)
		if !found || s > bestScore {
			best, bestScore, found = dir, s, true
		}
	}

	return best
}

// spawnChildren calls visit with a copy of g holding a new tile at pos, once
// per spawn outcome, and returns the probability-weighted sum.
func spawnChildren(g *t2048.Grid, pos t2048.Position, visit func(child *t2048.Grid) float64) float64 {
	total := 0.0
	for _, o := range t2048.SpawnOutcomes {
		total += o.Prob * visit(withTile(g, pos, o.Value))
	}
	return total
}

// withTile returns a copy of g with a new tile of value at pos.
func withTile(g *t2048.Grid, pos t2048.Position, value int) *t2048.Grid {
	child := g.Clone()
	child.InsertTile(t2048.NewTile(pos, value))
	return child
}
