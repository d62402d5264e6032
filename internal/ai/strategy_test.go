package ai

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tilebot/internal/config"
	"github.com/vovakirdan/tilebot/internal/games/t2048"
	"github.com/vovakirdan/tilebot/internal/registry"
)

func testStrategies(t *testing.T) []registry.Strategy {
	t.Helper()
	cfg := config.Default().Strategies
	cfg.Expectimax.Depth = 2
	cfg.AlphaBeta.Depth = 3
	cfg.AlphaBeta.Seed = 1

	var out []registry.Strategy
	for _, info := range registry.List() {
		s, err := registry.Create(info.Tag, cfg)
		if err != nil {
			t.Fatalf("Create(%s): %v", info.Tag, err)
		}
		if s.Tag() != info.Tag {
			t.Errorf("strategy registered as %q reports %q", info.Tag, s.Tag())
		}
		out = append(out, s)
	}
	if len(out) != 4 {
		t.Fatalf("registered strategies = %d, want 4", len(out))
	}
	return out
}

func TestStrategiesLeaveGridUntouched(t *testing.T) {
	g := board(
		[]int{2, 2, 4, 0},
		[]int{0, 8, 0, 4},
		[]int{2, 0, 16, 0},
		[]int{0, 0, 2, 2},
	)
	before := g.Rows()
	tiles := make(map[t2048.Position]*t2048.Tile)
	for pos, tile := range g.Cells() {
		tiles[pos] = tile
	}

	for _, s := range testStrategies(t) {
		s.SelectMove(context.Background(), g)
		for pos, tile := range g.Cells() {
			if tiles[pos] != tile {
				t.Fatalf("%s replaced the tile at %v", s.Tag(), pos)
			}
		}
		for y, row := range g.Rows() {
			for x, v := range row {
				if before[y][x] != v {
					t.Fatalf("%s changed (%d,%d) from %d to %d", s.Tag(), x, y, before[y][x], v)
				}
			}
		}
	}
}

func TestStrategiesPickTheOnlyLegalMove(t *testing.T) {
	g := board(
		[]int{2, 4, 2, 4},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
	)
	for _, s := range testStrategies(t) {
		if got := s.SelectMove(context.Background(), g); got != t2048.DirDown {
			t.Errorf("%s chose %s, want down", s.Tag(), got)
		}
	}
}

func TestStrategiesFallBackWithoutLegalMoves(t *testing.T) {
	g := board(
		[]int{2, 4, 8, 16},
		[]int{32, 64, 128, 256},
		[]int{2, 4, 8, 16},
		[]int{32, 64, 128, 256},
	)
	for _, s := range testStrategies(t) {
		if got := s.SelectMove(context.Background(), g); got != registry.DefaultDirection {
			t.Errorf("%s chose %s, want %s", s.Tag(), got, registry.DefaultDirection)
		}
	}
}

func TestStrategiesAlwaysReturnLegalMoves(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	strategies := testStrategies(t)
	for i := range 30 {
		g := randomBoard(rng, 8)
		legal := t2048.LegalMoves(g)
		if len(legal) == 0 {
			continue
		}
		for _, s := range strategies {
			dir := s.SelectMove(context.Background(), g)
			if !t2048.TryMove(g, dir) {
				t.Errorf("case %d: %s chose illegal %s on %v", i, s.Tag(), dir, g.Rows())
			}
		}
	}
}

func TestCancelledSearchReturnsLegalMove(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := board(
		[]int{0, 0, 0, 0},
		[]int{0, 2, 0, 0},
		[]int{0, 0, 4, 0},
		[]int{0, 0, 0, 0},
	)
	for _, s := range testStrategies(t) {
		if got := s.SelectMove(ctx, g); got != t2048.DirUp {
			t.Errorf("%s with cancelled ctx chose %s, want first legal (up)", s.Tag(), got)
		}
	}
}

func TestGreedyPrefersMerges(t *testing.T) {
	g := board(
		[]int{2, 2, 0, 0},
		[]int{4, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
	)
	s := NewGreedy(config.Default().Strategies.Greedy)
	if got := s.SelectMove(context.Background(), g); got != t2048.DirRight {
		t.Errorf("greedy chose %s, want right", got)
	}
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for _, depth := range []int{1, 2, 3, 4} {
		cfg := config.Default().Strategies.AlphaBeta
		cfg.Depth = depth
		cfg.SampleCells = 0
		cfg.Seed = 1
		ab := NewAlphaBeta(cfg)

		for i := range 40 {
			g := randomBoard(rng, 6+i%6)
			if len(t2048.LegalMoves(g)) == 0 {
				continue
			}
			late := g.MaxTile() >= cfg.LateGameThreshold
			want := bruteForce(g, depth, func(child *t2048.Grid, d int) float64 {
				return minimaxChance(ab.weights, child, d, late)
			})
			if got := ab.SelectMove(context.Background(), g); got != want {
				t.Errorf("depth %d case %d: alpha-beta chose %s, minimax %s\n%v", depth, i, got, want, g.Rows())
			}
		}

		// From depth 3 a move layer sits between two chance layers.
		if depth >= 3 && ab.moveCuts == 0 {
			t.Errorf("depth %d: no move-layer cutoffs", depth)
		}
		if depth >= 2 && ab.chanceCuts == 0 {
			t.Errorf("depth %d: no chance-layer cutoffs", depth)
		}
	}
}

func TestExpectimaxMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	for _, depth := range []int{1, 2} {
		cfg := config.Default().Strategies.Expectimax
		cfg.Depth = depth
		em := NewExpectimax(cfg)

		for i := range 30 {
			g := randomBoard(rng, 6+i%6)
			if len(t2048.LegalMoves(g)) == 0 {
				continue
			}
			want := bruteForce(g, depth, func(child *t2048.Grid, d int) float64 {
				return expectChance(em.weights, child, d)
			})
			if got := em.SelectMove(context.Background(), g); got != want {
				t.Errorf("depth %d case %d: expectimax chose %s, brute force %s", depth, i, got, want)
			}
		}
	}
}

func TestAlphaBetaSamplesDeterministically(t *testing.T) {
	cfg := config.Default().Strategies.AlphaBeta
	cfg.Depth = 3
	cfg.Seed = 99
	g := board(
		[]int{0, 2, 0, 0},
		[]int{0, 0, 4, 0},
		[]int{8, 0, 0, 0},
		[]int{0, 0, 0, 2},
	)
	a := NewAlphaBeta(cfg).SelectMove(context.Background(), g)
	b := NewAlphaBeta(cfg).SelectMove(context.Background(), g)
	if a != b {
		t.Errorf("same seed chose %s and %s", a, b)
	}
}

// bruteForce picks the first direction with the highest chance-layer value.
func bruteForce(g *t2048.Grid, depth int, chance func(*t2048.Grid, int) float64) t2048.Direction {
	best := registry.DefaultDirection
	bestScore := math.Inf(-1)
	found := false
	for _, dir := range t2048.Directions {
		res := t2048.Slide(g, dir)
		if !res.Moved {
			continue
		}
		if v := chance(res.Grid, depth-1); !found || v > bestScore {
			best, bestScore, found = dir, v, true
		}
	}
	return best
}

func minimaxMove(w Weights, g *t2048.Grid, depth int, late bool) float64 {
	if depth <= 0 {
		return w.Evaluate(g, late)
	}
	best, moved := math.Inf(-1), false
	for _, dir := range t2048.Directions {
		if res := t2048.Slide(g, dir); res.Moved {
			moved = true
			best = max(best, minimaxChance(w, res.Grid, depth-1, late))
		}
	}
	if !moved {
		return w.Evaluate(g, late)
	}
	return best
}

func minimaxChance(w Weights, g *t2048.Grid, depth int, late bool) float64 {
	cells := g.AvailableCells()
	if depth <= 0 || len(cells) == 0 {
		return w.Evaluate(g, late)
	}
	worst := math.Inf(1)
	for _, pos := range cells {
		worst = min(worst, spawnChildren(g, pos, func(child *t2048.Grid) float64 {
			return minimaxMove(w, child, depth-1, late)
		}))
	}
	return worst
}

func expectMove(w Weights, g *t2048.Grid, depth int) float64 {
	if depth <= 0 {
		return w.Evaluate(g, false)
	}
	best, moved := math.Inf(-1), false
	for _, dir := range t2048.Directions {
		if res := t2048.Slide(g, dir); res.Moved {
			moved = true
			best = max(best, expectChance(w, res.Grid, depth-1))
		}
	}
	if !moved {
		return w.Evaluate(g, false)
	}
	return best
}

func expectChance(w Weights, g *t2048.Grid, depth int) float64 {
	cells := g.AvailableCells()
	if depth <= 0 || len(cells) == 0 {
		return w.Evaluate(g, false)
	}
	total := 0.0
	for _, pos := range cells {
		total += spawnChildren(g, pos, func(child *t2048.Grid) float64 {
			return expectMove(w, child, depth-1)
		})
	}
	return total / float64(len(cells))
}

func randomBoard(rng *rand.Rand, tiles int) *t2048.Grid {
	g := t2048.NewGrid(4)
	for range tiles {
		pos, err := g.RandomAvailableCell(rng)
		if err != nil {
			break
		}
		g.InsertTile(t2048.NewTile(pos, 1<<(1+rng.Intn(5))))
	}
	return g
}
