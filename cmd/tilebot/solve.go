package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilebot/internal/autoplay"
	"github.com/vovakirdan/tilebot/internal/core"
	"github.com/vovakirdan/tilebot/internal/games/t2048"
	"github.com/vovakirdan/tilebot/internal/registry"
	"github.com/vovakirdan/tilebot/internal/storage"
)

var (
	flagMaxMoves    int
	flagKeepPlaying bool
	flagNoRecord    bool
	flagShowEvery   int
)

var solveCmd = &cobra.Command{
	Use:   "solve [strategy]",
	Short: "Let a strategy play one game without a UI",
	Long: `Play a single game headless with the given strategy (default from config)
and print the final board. The run is recorded in the run history.

Examples:
  tilebot solve
  tilebot solve alphabeta --seed 42
  tilebot solve expectimax --preset fast --keep-playing
  tilebot solve greedy --show-every 50 -v`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSolve,
}

func init() {
	solveCmd.Flags().IntVar(&flagMaxMoves, "max-moves", 0, "Stop after this many moves (0 = no limit)")
	solveCmd.Flags().BoolVar(&flagKeepPlaying, "keep-playing", false, "Continue past the target tile")
	solveCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not save the run")
	solveCmd.Flags().IntVar(&flagShowEvery, "show-every", 0, "Print the board every N moves (0 = only at the end)")
}

// boardPrinter is an actuator that prints every n-th board.
type boardPrinter struct {
	every int
	seen  int
}

func (p *boardPrinter) Actuate(g *t2048.Grid, meta t2048.Metadata) {
	p.seen++
	if p.every <= 0 || p.seen%p.every != 0 {
		return
	}
	fmt.Printf("update %d  score %d\n%s\n\n", p.seen, meta.Score, g)
}

func runSolve(_ *cobra.Command, args []string) {
	tag, err := strategyArg(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := core.RuntimeConfig{Seed: flagSeed}.ResolveSeed()
	strategies := appConfig.Strategies
	if strategies.AlphaBeta.Seed == 0 {
		strategies.AlphaBeta.Seed = seed
	}
	strategy, err := registry.Create(tag, strategies)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	mgr := t2048.NewManager(t2048.Options{
		Size:       appConfig.Game.Size,
		Target:     appConfig.Game.Target,
		StartTiles: appConfig.Game.StartTiles,
		Seed:       seed,
	}, nil, &boardPrinter{every: flagShowEvery})
	mgr.Setup()

	logger.Info("solving", "strategy", tag, "seed", seed, "size", appConfig.Game.Size)
	res, runErr := autoplay.Run(ctx, mgr, strategy, autoplay.RunOptions{
		MaxMoves:    flagMaxMoves,
		KeepPlaying: flagKeepPlaying,
		Logger:      logger,
	})
	switch {
	case errors.Is(runErr, context.Canceled):
		logger.Warn("interrupted", "moves", res.Moves)
	case runErr != nil:
		logger.Error("run failed", "err", runErr)
	}

	fmt.Println(mgr.Grid())
	fmt.Println()
	fmt.Printf("Strategy:  %s\n", registry.Title(tag))
	fmt.Printf("Score:     %d\n", res.Score)
	fmt.Printf("Max tile:  %d\n", res.MaxTile)
	fmt.Printf("Moves:     %d\n", res.Moves)
	fmt.Printf("Won:       %v\n", res.Won)
	fmt.Printf("Time:      %s\n", res.Duration.Round(time.Millisecond))
	fmt.Printf("Seed:      %d\n", seed)

	if flagNoRecord || runErr != nil {
		return
	}
	saveRuns(runRecord(res, seed))
}

// runRecord converts a result into a run history row.
func runRecord(res autoplay.Result, seed int64) storage.Run {
	return storage.Run{
		Strategy: string(res.Strategy),
		Score:    res.Score,
		MaxTile:  res.MaxTile,
		Moves:    res.Moves,
		Won:      res.Won,
		Duration: res.Duration,
		Seed:     seed,
	}
}

// saveRuns stores finished runs in the default profile.
func saveRuns(runs ...storage.Run) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("cannot open database, runs not saved", "err", err)
		return
	}
	defer store.Close()

	for _, run := range runs {
		if _, err := store.SaveRun(run); err != nil {
			logger.Warn("cannot save run", "err", err)
			return
		}
	}
	logger.Debug("runs saved", "count", len(runs))
}
