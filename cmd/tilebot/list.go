package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilebot/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available strategies",
	Long:  `Shows every registered strategy and the order T cycles through them in a game.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	strategies := registry.List()

	if len(strategies) == 0 {
		fmt.Println("No strategies available.")
		return
	}

	fmt.Println("Available strategies:")
	fmt.Println()

	// Calculate column widths
	maxTagLen := 3 // "Tag" header
	for _, s := range strategies {
		maxTagLen = max(maxTagLen, len(s.Tag))
	}

	fmt.Printf("  %-*s  %-12s  %s\n", maxTagLen, "Tag", "Title", "Next (T)")
	fmt.Printf("  %-*s  %-12s  %s\n", maxTagLen, "---", "-----", "--------")

	for _, s := range strategies {
		marker := ""
		if string(s.Tag) == appConfig.Autoplay.Strategy {
			marker = "  (default)"
		}
		fmt.Printf("  %-*s  %-12s  %s%s\n", maxTagLen, s.Tag, s.Title, registry.Next(s.Tag), marker)
	}

	fmt.Println()
	fmt.Println("Run 'tilebot play <tag>' to play with a strategy, or 'tilebot solve <tag>' to watch it alone.")
}

// strategyArg resolves the optional strategy argument, falling back to the configured default.
func strategyArg(args []string) (registry.Tag, error) {
	if len(args) > 0 {
		return registry.Parse(args[0])
	}
	return registry.Parse(appConfig.Autoplay.Strategy)
}
