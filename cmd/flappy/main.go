// flappy is a terminal Flappy Bird with a time-based simulation, SQLite
// high scores, SSH play and remote jump commands.
//
// Usage:
//
//	flappy                   - Pick a variant from the menu
//	flappy list              - List available variants
//	flappy play [variant]    - Play a variant (default: flappy)
//	flappy serve             - Start SSH server for remote play
//	flappy scores [variant]  - Show high scores
//	flappy remote            - Send jump commands to a running game
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.flappy/scores.db)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagDebug      bool
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy Bird in your terminal",
	Long: `A terminal Flappy Bird. Tap space (or click) to flap between the pipes.

Available commands:
  menu     - Interactive variant picker (default)
  list     - Show all variants
  play     - Play a variant directly
  serve    - Start SSH server for remote play
  scores   - View high scores
  remote   - Drive a running game from another terminal

Examples:
  flappy
  flappy play flappy_night --difficulty hard
  flappy play --remote-ws :8765
  flappy serve --ssh :2222
  flappy scores flappy`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flappy/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Draw collision boxes")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.flappy/flappy.log", "Log file for interactive sessions")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(remoteCmd)
}

// loadGameConfig resolves the YAML config, the difficulty preset and --debug.
func loadGameConfig() (config.FlappyConfig, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.FlappyConfig{}, err
	}
	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return cfg, err
	}
	config.ApplyFlappyPreset(&cfg, preset)
	if flagDebug {
		cfg.Debug = true
	}
	return cfg, cfg.Validate()
}

// newFileLogger logs to the --log-file path so the alt screen stays clean.
// The returned closer must be called on exit.
func newFileLogger(prefix string) (*log.Logger, io.Closer) {
	path := expandHome(flagLogFile)
	if path == "" {
		return log.New(io.Discard), io.NopCloser(nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		return log.New(io.Discard), io.NopCloser(nil)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		return log.New(io.Discard), io.NopCloser(nil)
	}

	level := log.InfoLevel
	if flagDebug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), f
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
