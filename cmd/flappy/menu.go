package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play a variant.
After a game ends you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play
  Tab          - High scores
  Q            - Quit`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	for {
		res, err := tui.RunMenu(s.store, s.runtime)
		if err != nil {
			return err
		}
		s.runtime.ScreenW, s.runtime.ScreenH = res.Config.ScreenW, res.Config.ScreenH

		switch {
		case res.Quit:
			return nil
		case res.WantsScoreboard:
			if err := tui.RunScoreboard(s.store, s.runtime.ScreenW, s.runtime.ScreenH); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		case res.GameID != "":
			if err := s.play(res.GameID); err != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			}
		default:
			return nil
		}
	}
}
