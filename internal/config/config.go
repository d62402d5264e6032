// Package config provides YAML-based configuration loading and search
// presets for the tilebot engine and its strategies.
package config

// Config is the full tilebot configuration.
type Config struct {
	Game       GameConfig       `yaml:"game"`
	Autoplay   AutoplayConfig   `yaml:"autoplay"`
	Strategies StrategiesConfig `yaml:"strategies"`
}

// GameConfig defines board parameters.
type GameConfig struct {
	Size       int `yaml:"size"`
	Target     int `yaml:"target"`      // tile value that wins
	StartTiles int `yaml:"start_tiles"` // tiles spawned on a fresh board
}

// AutoplayConfig defines the autoplay driver.
type AutoplayConfig struct {
	IntervalMS int    `yaml:"interval_ms"`
	Strategy   string `yaml:"strategy"` // tag of the strategy active at start
}

// StrategiesConfig holds per-strategy weights.
type StrategiesConfig struct {
	Greedy     GreedyConfig     `yaml:"greedy"`
	Heuristic  HeuristicConfig  `yaml:"heuristic"`
	Expectimax ExpectimaxConfig `yaml:"expectimax"`
	AlphaBeta  AlphaBetaConfig  `yaml:"alphabeta"`
}

// GreedyConfig weights the one-ply tile-sum strategy.
// MergeWeight breaks ties between moves that leave the same tile sum.
type GreedyConfig struct {
	SumWeight   float64 `yaml:"sum_weight"`
	MergeWeight float64 `yaml:"merge_weight"`
}

// HeuristicConfig weights the one-ply feature strategy.
type HeuristicConfig struct {
	EmptyWeight        float64 `yaml:"empty_weight"`
	MonotonicityWeight float64 `yaml:"monotonicity_weight"`
	SmoothnessWeight   float64 `yaml:"smoothness_weight"`
	CornerWeight       float64 `yaml:"corner_weight"`
}

// ExpectimaxConfig controls the expectimax search.
type ExpectimaxConfig struct {
	Depth              int     `yaml:"depth"`
	EmptyWeight        float64 `yaml:"empty_weight"`
	MonotonicityWeight float64 `yaml:"monotonicity_weight"`
	SmoothnessWeight   float64 `yaml:"smoothness_weight"`
	CornerWeight       float64 `yaml:"corner_weight"`
	SnakeWeight        float64 `yaml:"snake_weight"`
}

// AlphaBetaConfig controls the pruned search.
type AlphaBetaConfig struct {
	Depth              int     `yaml:"depth"`
	SampleCells        int     `yaml:"sample_cells"`        // empty cells examined per chance node, 0 = all
	LateGameThreshold  int     `yaml:"late_game_threshold"` // max tile that switches to the late-game table
	PositionalWeight   float64 `yaml:"positional_weight"`
	ChainWeight        float64 `yaml:"chain_weight"`
	EmptyWeight        float64 `yaml:"empty_weight"`
	MonotonicityWeight float64 `yaml:"monotonicity_weight"`
	SmoothnessWeight   float64 `yaml:"smoothness_weight"`
	CornerWeight       float64 `yaml:"corner_weight"`
	Seed               int64   `yaml:"seed"` // sampling seed, 0 = time based
}
