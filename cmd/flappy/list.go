package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available variants",
	Long:  `Shows every registered variant with its best score and number of runs.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No variants available.")
		return
	}

	stats := map[string]*storage.GameStats{}
	if store, err := storage.Open(flagDBPath); err == nil {
		if all, statsErr := store.GetAllGamesStats(); statsErr == nil {
			stats = all
		}
		store.Close()
	}

	fmt.Println("Available variants:")
	fmt.Println()

	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	fmt.Printf("  %-*s  %-*s  %5s  %5s\n", maxIDLen, "ID", maxTitleLen, "Title", "Best", "Runs")
	fmt.Printf("  %-*s  %-*s  %5s  %5s\n", maxIDLen, "--", maxTitleLen, "-----", "----", "----")

	for _, g := range games {
		best, runs := 0, 0
		if s, ok := stats[g.ID]; ok {
			best, runs = s.HighScore, s.GamesCount
		}
		fmt.Printf("  %-*s  %-*s  %5d  %5d\n", maxIDLen, g.ID, maxTitleLen, g.Title, best, runs)
	}

	fmt.Println()
	fmt.Println("Run 'flappy play <id>' to play a variant.")
}
