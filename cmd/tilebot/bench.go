package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tilebot/internal/autoplay"
	"github.com/vovakirdan/tilebot/internal/core"
	"github.com/vovakirdan/tilebot/internal/games/t2048"
	"github.com/vovakirdan/tilebot/internal/registry"
	"github.com/vovakirdan/tilebot/internal/storage"
)

var (
	flagGames      int
	flagParallel   int
	flagStrategies []string
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Compare strategies over many games",
	Long: `Play N games per strategy in parallel and print a summary.

Game i of every strategy uses the same seed, so all strategies see the
same opening. Every game gets its own manager and strategy instance.

Examples:
  tilebot bench
  tilebot bench --games 50 --parallel 8
  tilebot bench --strategies expectimax,alphabeta --preset fast --seed 1`,
	Run: runBench,
}

func init() {
	benchCmd.Flags().IntVarP(&flagGames, "games", "n", 10, "Games per strategy")
	benchCmd.Flags().IntVarP(&flagParallel, "parallel", "p", runtime.NumCPU(), "Games played at once")
	benchCmd.Flags().StringSliceVarP(&flagStrategies, "strategies", "s", nil, "Strategies to compare (default all)")
	benchCmd.Flags().IntVar(&flagMaxMoves, "max-moves", 0, "Stop each game after this many moves (0 = no limit)")
	benchCmd.Flags().BoolVar(&flagKeepPlaying, "keep-playing", false, "Continue past the target tile")
	benchCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not save the runs")
}

// benchGame is one scheduled game and, once played, its result.
type benchGame struct {
	tag    registry.Tag
	seed   int64
	result autoplay.Result
	err    error
}

func runBench(_ *cobra.Command, _ []string) {
	tags, err := benchStrategies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagGames <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --games must be positive")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	baseSeed := core.RuntimeConfig{Seed: flagSeed}.ResolveSeed()
	games := make([]*benchGame, 0, len(tags)*flagGames)
	for _, tag := range tags {
		for i := range flagGames {
			games = append(games, &benchGame{tag: tag, seed: baseSeed + int64(i)})
		}
	}

	logger.Info("benchmark started", "strategies", len(tags), "games", len(games), "parallel", flagParallel)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(flagParallel, 1))
	for _, game := range games {
		g.Go(func() error {
			game.result, game.err = playBenchGame(gctx, game.tag, game.seed)
			if game.err != nil {
				logger.Warn("game failed", "strategy", game.tag, "seed", game.seed, "err", game.err)
				return nil
			}
			logger.Debug("game finished", "strategy", game.tag, "seed", game.seed,
				"score", game.result.Score, "max_tile", game.result.MaxTile)
			return nil
		})
	}
	//nolint:errcheck // Goroutines report failures on their game
	g.Wait()

	if ctx.Err() != nil {
		logger.Warn("benchmark interrupted, partial results follow")
	}
	logger.Info("benchmark finished", "elapsed", time.Since(start).Round(time.Millisecond))

	printBenchSummary(tags, games)

	if flagNoRecord {
		return
	}
	runs := make([]storage.Run, 0, len(games))
	for _, game := range games {
		if game.err == nil {
			runs = append(runs, runRecord(game.result, game.seed))
		}
	}
	saveRuns(runs...)
}

// benchStrategies resolves --strategies, defaulting to every registered strategy.
func benchStrategies() ([]registry.Tag, error) {
	if len(flagStrategies) == 0 {
		infos := registry.List()
		tags := make([]registry.Tag, len(infos))
		for i, info := range infos {
			tags[i] = info.Tag
		}
		return tags, nil
	}

	tags := make([]registry.Tag, 0, len(flagStrategies))
	for _, name := range flagStrategies {
		tag, err := registry.Parse(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// playBenchGame plays one game with its own manager and strategy instance.
func playBenchGame(ctx context.Context, tag registry.Tag, seed int64) (autoplay.Result, error) {
	strategies := appConfig.Strategies
	if strategies.AlphaBeta.Seed == 0 {
		strategies.AlphaBeta.Seed = seed
	}
	strategy, err := registry.Create(tag, strategies)
	if err != nil {
		return autoplay.Result{}, err
	}

	mgr := t2048.NewManager(t2048.Options{
		Size:       appConfig.Game.Size,
		Target:     appConfig.Game.Target,
		StartTiles: appConfig.Game.StartTiles,
		Seed:       seed,
	}, nil, nil)
	mgr.Setup()

	return autoplay.Run(ctx, mgr, strategy, autoplay.RunOptions{
		MaxMoves:    flagMaxMoves,
		KeepPlaying: flagKeepPlaying,
	})
}

// benchStats aggregates the finished games of one strategy.
type benchStats struct {
	games     int
	wins      int
	bestScore int
	bestTile  int
	sumScore  int
	sumMoves  int
	elapsed   time.Duration
}

func printBenchSummary(tags []registry.Tag, games []*benchGame) {
	stats := make(map[registry.Tag]*benchStats, len(tags))
	for _, tag := range tags {
		stats[tag] = &benchStats{}
	}
	for _, game := range games {
		if game.err != nil {
			continue
		}
		st := stats[game.tag]
		r := game.result
		st.games++
		if r.Won {
			st.wins++
		}
		st.bestScore = max(st.bestScore, r.Score)
		st.bestTile = max(st.bestTile, r.MaxTile)
		st.sumScore += r.Score
		st.sumMoves += r.Moves
		st.elapsed += r.Duration
	}

	fmt.Println()
	fmt.Printf("  %-12s  %5s  %6s  %9s  %9s  %6s  %8s  %10s\n",
		"Strategy", "Games", "Win %", "Avg score", "Best", "Tile", "Avg mvs", "ms/move")
	fmt.Printf("  %-12s  %5s  %6s  %9s  %9s  %6s  %8s  %10s\n",
		"--------", "-----", "-----", "---------", "----", "----", "-------", "-------")

	for _, tag := range tags {
		st := stats[tag]
		if st.games == 0 {
			fmt.Printf("  %-12s  %5d  %6s\n", registry.Title(tag), 0, "-")
			continue
		}
		msPerMove := 0.0
		if st.sumMoves > 0 {
			msPerMove = float64(st.elapsed.Microseconds()) / 1000 / float64(st.sumMoves)
		}
		fmt.Printf("  %-12s  %5d  %5.1f%%  %9.0f  %9d  %6d  %8.0f  %10.2f\n",
			registry.Title(tag),
			st.games,
			100*float64(st.wins)/float64(st.games),
			float64(st.sumScore)/float64(st.games),
			st.bestScore,
			st.bestTile,
			float64(st.sumMoves)/float64(st.games),
			msPerMove,
		)
	}
	fmt.Println()
}
