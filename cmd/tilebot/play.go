package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tilebot/internal/platform/tui"
	"github.com/vovakirdan/tilebot/internal/storage"
)

var flagProfile string

var playCmd = &cobra.Command{
	Use:   "play [strategy]",
	Short: "Play 2048 interactively",
	Long: `Start an interactive game. The strategy (default from config) drives
autoplay and hints; T cycles to the next one during play.

The game is saved after every move and resumed next time.

Controls:
  WASD/Arrows - Move
  Space/Enter - Start/stop autoplay
  H/?         - Hint from the active strategy
  T/Tab       - Next strategy
  C           - Keep playing after reaching the target
  R           - Restart
  Ctrl+S      - Save a text screenshot
  Q/Ctrl+C    - Quit

Examples:
  tilebot play
  tilebot play alphabeta
  tilebot play expectimax --preset deep
  tilebot play --size 5 --profile big`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagProfile, "profile", storage.DefaultProfile, "Save slot for game state and best score")
}

func runPlay(_ *cobra.Command, args []string) {
	strategy, err := strategyArg(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'tilebot list' to see available strategies.")
		os.Exit(1)
	}

	// Open storage; the game still works without it
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		store = nil
	}

	uiLogger, closeLog := tuiLogger()
	width, height := terminalSize()

	_, runErr := tui.Run(tui.GameOptions{
		Config:   appConfig,
		Runtime:  runtimeConfig(width, height),
		Store:    store,
		Profile:  flagProfile,
		Strategy: strategy,
		Logger:   uiLogger,
	})

	closeLog()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// terminalSize returns the size of stdout, or zero when it is not a terminal.
func terminalSize() (width, height int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0
	}
	return w, h
}
