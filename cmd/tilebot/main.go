// tilebot plays the 2048 sliding-tile game in the terminal and lets search
// strategies play it for you.
//
// Usage:
//
//	tilebot list              - List available strategies
//	tilebot play [strategy]   - Play interactively, with autoplay and hints
//	tilebot menu              - Pick a strategy from a menu, browse run history
//	tilebot solve [strategy]  - Let a strategy play one game headless
//	tilebot bench             - Play many games per strategy in parallel
//	tilebot scores [strategy] - Show run history and statistics
//	tilebot serve             - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>  - Custom YAML configuration
//	--preset <name>  - Search effort: fast, normal, deep
//	--seed <value>   - Set RNG seed for reproducible games
//	--db <path>      - Set database path (default: ~/.tilebot/tilebot.db)
//	--size <n>       - Override the board size
//	--verbose        - Debug logging, prints every autoplay move
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import strategies to register them
	_ "github.com/vovakirdan/tilebot/internal/ai"
	"github.com/vovakirdan/tilebot/internal/config"
	"github.com/vovakirdan/tilebot/internal/core"
)

var (
	// Global flags
	flagConfig  string
	flagPreset  string
	flagSeed    int64
	flagDBPath  string
	flagSize    int
	flagVerbose bool

	// Resolved in PersistentPreRunE
	appConfig config.Config
	logger    *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tilebot",
	Short: "tilebot - 2048 in your terminal, with search strategies that play it",
	Long: `tilebot is a terminal 2048 game with built-in AI strategies:
greedy, heuristic, expectimax and alpha-beta search.

Available commands:
  list     - Show all strategies
  play     - Play interactively (Space toggles autoplay, H asks for a hint)
  menu     - Strategy picker and run history
  solve    - Let a strategy play one game without a UI
  bench    - Compare strategies over many games
  scores   - View run history
  serve    - Start SSH server for remote play

Examples:
  tilebot play
  tilebot play alphabeta --preset deep
  tilebot solve expectimax --seed 42
  tilebot bench --games 20
  tilebot serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Search preset: fast, normal, deep")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tilebot/tilebot.db", "Path to game database")
	rootCmd.PersistentFlags().IntVar(&flagSize, "size", 0, "Board size (0 = from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads configuration and builds the CLI logger.
func setup(_ *cobra.Command, _ []string) error {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tilebot",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	preset, err := config.ParsePreset(flagPreset)
	if err != nil {
		return err
	}
	config.ApplyPreset(&cfg, preset)
	if flagSize > 0 {
		if flagSize < 2 {
			return fmt.Errorf("--size must be at least 2")
		}
		cfg.Game.Size = flagSize
		cfg.Game.StartTiles = min(cfg.Game.StartTiles, flagSize*flagSize)
	}

	appConfig = cfg
	logger.Debug("config loaded", "size", cfg.Game.Size, "target", cfg.Game.Target, "preset", preset)
	return nil
}

// runtimeConfig returns the per-game settings for a screen of the given size.
func runtimeConfig(width, height int) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if width > 0 && height > 0 {
		cfg.ScreenW, cfg.ScreenH = width, height
	}
	cfg.Seed = flagSeed
	if d := appConfig.Interval(); d > 0 {
		cfg.Interval = d
	}
	return cfg
}

// tuiLogger returns a logger for interactive commands. The terminal belongs
// to the UI, so debug output goes to ~/.tilebot/debug.log, and nothing is
// logged without --verbose.
func tuiLogger() (*log.Logger, func()) {
	if !flagVerbose {
		return nil, func() {}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, func() {}
	}
	dir := filepath.Join(home, ".tilebot")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		logger.Warn("cannot open debug log", "err", err)
		return nil, func() {}
	}
	l := log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: "tilebot"})
	l.SetLevel(log.DebugLevel)
	return l, func() { f.Close() }
}
