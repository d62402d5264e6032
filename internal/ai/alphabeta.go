package ai

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tilebot/internal/config"
	"github.com/vovakirdan/tilebot/internal/games/t2048"
	"github.com/vovakirdan/tilebot/internal/registry"
)

// AlphaBeta runs a pruned minimax where the opponent places the spawn.
//
// The chance layer takes the minimum over a random sample of empty cells of
// each cell's 0.9/0.1 spawn expectation. Within a cell the 4 is searched with
// a full window and the 2 with the chance window rescaled by its weight, so
// both layers cut off without changing the chosen move.
// Evaluation switches to the late-game positional table once the largest
// tile reaches the configured threshold at the root.
//
// An AlphaBeta is not safe for concurrent use.
type AlphaBeta struct {
	depth     int
	sample    int
	threshold int
	weights   Weights
	rng       *rand.Rand

	moveCuts   int // cutoffs taken in the move layer
	chanceCuts int // cutoffs taken in the chance layer
}

// NewAlphaBeta creates a pruned search strategy.
func NewAlphaBeta(cfg config.AlphaBetaConfig) *AlphaBeta {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &AlphaBeta{
		depth:     max(cfg.Depth, 1),
		sample:    max(cfg.SampleCells, 0),
		threshold: cfg.LateGameThreshold,
		weights: Weights{
			Positional:   cfg.PositionalWeight,
			Chain:        cfg.ChainWeight,
			Empty:        cfg.EmptyWeight,
			Monotonicity: cfg.MonotonicityWeight,
			Smoothness:   cfg.SmoothnessWeight,
			Corner:       cfg.CornerWeight,
		},
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Tag returns registry.TagAlphaBeta.
func (s *AlphaBeta) Tag() registry.Tag { return registry.TagAlphaBeta }

// SelectMove returns the move with the best worst-case sampled outcome.
func (s *AlphaBeta) SelectMove(ctx context.Context, g *t2048.Grid) t2048.Direction {
	late := s.threshold > 0 && g.MaxTile() >= s.threshold
	alpha := math.Inf(-1)

	return bestDirection(ctx, g, func(res t2048.MoveResult) float64 {
		v := s.chance(res.Grid, s.depth-1, alpha, math.Inf(1), late)
		alpha = max(alpha, v)
		return v
	})
}

func (s *AlphaBeta) move(g *t2048.Grid, depth int, alpha, beta float64, late bool) float64 {
	if depth <= 0 {
		return s.weights.Evaluate(g, late)
	}

	best := math.Inf(-1)
	moved := false
	for _, dir := range t2048.Directions {
		res := t2048.Slide(g, dir)
		if !res.Moved {
			continue
		}
		moved = true
		best = max(best, s.chance(res.Grid, depth-1, alpha, beta, late))
		alpha = max(alpha, best)
		if beta <= alpha {
			s.moveCuts++
			break
		}
	}

	if !moved {
		return s.weights.Evaluate(g, late)
	}
	return best
}

func (s *AlphaBeta) chance(g *t2048.Grid, depth int, alpha, beta float64, late bool) float64 {
	cells := g.AvailableCells()
	if depth <= 0 || len(cells) == 0 {
		return s.weights.Evaluate(g, late)
	}

	worst := math.Inf(1)
	for _, pos := range s.sampleCells(cells) {
		worst = min(worst, s.cell(g, pos, depth, alpha, min(beta, worst), late))
		if worst <= alpha {
			s.chanceCuts++
			break
		}
	}
	return worst
}

// cell returns the spawn expectation at pos. Results outside (alpha, beta)
// are bounds: at most alpha or at least beta.
func (s *AlphaBeta) cell(g *t2048.Grid, pos t2048.Position, depth int, alpha, beta float64, late bool) float64 {
	common := t2048.SpawnOutcomes[0]

	rest := 0.0
	for _, o := range t2048.SpawnOutcomes[1:] {
		rest += o.Prob * s.move(withTile(g, pos, o.Value), depth-1, math.Inf(-1), math.Inf(1), late)
	}

	lo := (alpha - rest) / common.Prob
	hi := (beta - rest) / common.Prob
	v := s.move(withTile(g, pos, common.Value), depth-1, lo, hi, late)

	total := common.Prob*v + rest
	switch {
	case v <= lo:
		total = min(total, alpha)
	case v >= hi:
		total = max(total, beta)
	}
	return total
}

// sampleCells picks up to s.sample cells at random; 0 keeps them all.
func (s *AlphaBeta) sampleCells(cells []t2048.Position) []t2048.Position {
	if s.sample == 0 || len(cells) <= s.sample {
		return cells
	}
	s.rng.Shuffle(len(cells), func(i, j int) {
		cells[i], cells[j] = cells[j], cells[i]
	})
	return cells[:s.sample]
}
