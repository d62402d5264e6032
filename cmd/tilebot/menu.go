package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilebot/internal/platform/tui"
	"github.com/vovakirdan/tilebot/internal/registry"
	"github.com/vovakirdan/tilebot/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a strategy from a menu and browse run history",
	Long: `Start tilebot in interactive menu mode.

Pick the strategy for autoplay and hints, or press Tab to browse the
best runs of each strategy. Leaving a game with Esc/B returns here.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play with the selected strategy
  Tab          - Run history
  Q            - Quit`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagProfile, "profile", storage.DefaultProfile, "Save slot for game state and best score")
}

func runMenu(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		store = nil
	}

	uiLogger, closeLog := tuiLogger()
	width, height := terminalSize()
	cfg := runtimeConfig(width, height)
	current := registry.Tag(appConfig.Autoplay.Strategy)

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg, current)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		current = menuResult.Strategy
		backToMenu, runErr := tui.Run(tui.GameOptions{
			Config:   appConfig,
			Runtime:  cfg,
			Store:    store,
			Profile:  flagProfile,
			Strategy: current,
			Logger:   uiLogger,
		})
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		}
		if !backToMenu {
			break
		}
	}

	closeLog()
	if store != nil {
		store.Close()
	}
}
