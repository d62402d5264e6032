package config

import (
	_ "embed"
)

//go:embed defaults/tilebot.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Game: GameConfig{
			Size:       4,
			Target:     2048,
			StartTiles: 2,
		},
		Autoplay: AutoplayConfig{
			IntervalMS: 150,
			Strategy:   "expectimax",
		},
		Strategies: StrategiesConfig{
			Greedy: GreedyConfig{
				SumWeight:   1.0,
				MergeWeight: 1.0,
			},
			Heuristic: HeuristicConfig{
				EmptyWeight:        2.7,
				MonotonicityWeight: 1.0,
				SmoothnessWeight:   0.1,
				CornerWeight:       10.0,
			},
			Expectimax: ExpectimaxConfig{
				Depth:              4,
				EmptyWeight:        2.7,
				MonotonicityWeight: 1.0,
				SmoothnessWeight:   0.1,
				CornerWeight:       10.0,
				SnakeWeight:        1.5,
			},
			AlphaBeta: AlphaBetaConfig{
				Depth:              4,
				SampleCells:        3,
				LateGameThreshold:  1024,
				PositionalWeight:   1.0,
				ChainWeight:        2.0,
				EmptyWeight:        2.7,
				MonotonicityWeight: 1.0,
				SmoothnessWeight:   0.1,
				CornerWeight:       10.0,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
