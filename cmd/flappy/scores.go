package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresPlain  bool
	flagScoresRecent bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores",
	Long: `Display high scores.

On a terminal without a variant argument this opens the interactive
scoreboard. With a variant, or when output is piped, it prints the top
runs and the leaderboard of signed-in players as plain text.

--recent lists the latest runs instead of the best ones. --clear deletes
every run and best score of the given variant.

Examples:
  flappy scores
  flappy scores flappy
  flappy scores flappy_night --limit 20
  flappy scores flappy --recent
  flappy scores flappy --clear
  flappy scores flappy | less`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of rows to print")
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Always print plain text")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "List the latest runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores of the given variant")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if len(args) == 0 {
			return errors.New("--clear needs a variant, e.g. 'flappy scores flappy --clear'")
		}
		return clearScores(os.Stdout, store, args[0])
	}

	fd := int(os.Stdout.Fd())
	if len(args) == 0 && !flagScoresPlain && !flagScoresRecent && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, sizeErr := term.GetSize(fd); sizeErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	variants := args
	if len(variants) == 0 {
		for _, g := range registry.List() {
			variants = append(variants, g.ID)
		}
	}

	for i, id := range variants {
		if !registry.Exists(id) {
			return fmt.Errorf("unknown variant %q, run 'flappy list' to see available variants", id)
		}
		if i > 0 {
			fmt.Println()
		}
		if err := printScores(os.Stdout, store, id, flagScoresLimit, flagScoresRecent); err != nil {
			return err
		}
	}
	return nil
}

// clearScores deletes the history of one variant.
func clearScores(w io.Writer, store *storage.Store, gameID string) error {
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q, run 'flappy list' to see available variants", gameID)
	}
	if err := store.ClearScores(gameID); err != nil {
		return err
	}
	fmt.Fprintf(w, "Cleared scores for %s.\n", registry.Title(gameID))
	return nil
}

// printScores writes the top (or latest) runs and leaders of one variant.
func printScores(w io.Writer, store *storage.Store, gameID string, limit int, recent bool) error {
	list, heading := store.TopScores, "High Scores"
	if recent {
		list, heading = store.RecentScores, "Recent Runs"
	}
	scores, err := list(gameID, limit)
	if err != nil {
		return err
	}

	best, err := store.HighScore(gameID)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s - %s", heading, registry.Title(gameID))
	if best > 0 {
		fmt.Fprintf(w, "  (best %d)", best)
	}
	fmt.Fprint(w, "\n\n")

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintf(w, "Play 'flappy play %s' to set the first high score!\n", gameID)
		return nil
	}

	label := "Rank"
	if recent {
		label = "#"
	}
	fmt.Fprintf(w, "  %-4s  %-12s  %-6s  %s\n", label, "Player", "Score", "Date")
	fmt.Fprintf(w, "  %-4s  %-12s  %-6s  %s\n", "----", "------", "-----", "----")
	for i, e := range scores {
		player := e.Player
		if player == "" {
			player = "-"
		}
		fmt.Fprintf(w, "  %-4d  %-12s  %-6d  %s\n", i+1, player, e.Score, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	leaders, err := store.Leaders(gameID, limit)
	if err != nil {
		return err
	}
	if len(leaders) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Leaderboard")
		for _, l := range leaders {
			fmt.Fprintf(w, "  #%-3d  %-12s  %d\n", l.Rank, l.Player, l.Score)
		}
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Fprintf(w, "\nRuns: %d  Players: %d  Average: %.1f\n", stats.GamesCount, stats.Players, stats.AvgScore)
	}
	return nil
}
