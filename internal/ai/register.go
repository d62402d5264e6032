package ai

import (
	"github.com/vovakirdan/tilebot/internal/config"
	"github.com/vovakirdan/tilebot/internal/registry"
)

func init() {
	registry.Register(registry.TagGreedy, "Greedy", func(cfg config.StrategiesConfig) registry.Strategy {
		return NewGreedy(cfg.Greedy)
	})
	registry.Register(registry.TagHeuristic, "Heuristic", func(cfg config.StrategiesConfig) registry.Strategy {
		return NewHeuristic(cfg.Heuristic)
	})
	registry.Register(registry.TagExpectimax, "Expectimax", func(cfg config.StrategiesConfig) registry.Strategy {
		return NewExpectimax(cfg.Expectimax)
	})
	registry.Register(registry.TagAlphaBeta, "Alpha-Beta", func(cfg config.StrategiesConfig) registry.Strategy {
		return NewAlphaBeta(cfg.AlphaBeta)
	})
}
