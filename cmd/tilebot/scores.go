package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilebot/internal/registry"
	"github.com/vovakirdan/tilebot/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [strategy]",
	Short: "Show run history and statistics",
	Long: `Without arguments, show aggregate statistics for every strategy and the
best runs overall. With a strategy, show that strategy's best runs.

Examples:
  tilebot scores
  tilebot scores expectimax --limit 20
  tilebot scores greedy --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the run history (of the given strategy, or all)")
}

func runScores(_ *cobra.Command, args []string) {
	filter := ""
	title := "All strategies"
	if len(args) > 0 {
		tag, err := registry.Parse(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Run 'tilebot list' to see available strategies.")
			os.Exit(1)
		}
		filter = string(tag)
		title = registry.Title(tag)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(filter); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Printf("Run history cleared: %s\n", title)
		return
	}

	if filter == "" {
		printStrategyStats(store)
	}

	runs, err := store.TopRuns(filter, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Printf("Best runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'tilebot solve' or 'tilebot bench' to record some.")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-8s  %-6s  %-5s  %-3s  %-12s  %s\n",
		"Rank", "Strategy", "Score", "Tile", "Moves", "Won", "Profile", "Date")
	fmt.Printf("  %-4s  %-10s  %-8s  %-6s  %-5s  %-3s  %-12s  %s\n",
		"----", "--------", "-----", "----", "-----", "---", "-------", "----")

	for i, r := range runs {
		won := "no"
		if r.Won {
			won = "yes"
		}
		fmt.Printf("  %-4d  %-10s  %-8d  %-6d  %-5d  %-3s  %-12s  %s\n",
			i+1, r.Strategy, r.Score, r.MaxTile, r.Moves, won, r.Profile, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func printStrategyStats(store *storage.Store) {
	stats, err := store.AllStrategyStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving statistics: %v\n", err)
		return
	}
	if len(stats) == 0 {
		return
	}

	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Statistics")
	fmt.Println()
	fmt.Printf("  %-10s  %5s  %6s  %9s  %8s  %6s  %s\n", "Strategy", "Runs", "Win %", "Avg score", "Best", "Tile", "Last run")
	fmt.Printf("  %-10s  %5s  %6s  %9s  %8s  %6s  %s\n", "--------", "----", "-----", "---------", "----", "----", "--------")
	for _, name := range names {
		st := stats[name]
		fmt.Printf("  %-10s  %5d  %5.1f%%  %9.0f  %8d  %6d  %s\n",
			name, st.Runs, st.WinRate()*100, st.AvgScore, st.HighScore, st.BestTile, st.LastRun.Format("2006-01-02 15:04"))
	}
	fmt.Println()
}
