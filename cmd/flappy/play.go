package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/remote"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagPlayer     string
	flagRemoteFile string
	flagRemoteWS   string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the specified variant (default: flappy).

Controls:
  Space/Up/W/Enter/Click  - Flap (also starts and restarts a run)
  P                       - Pause
  Ctrl+S                  - Screenshot
  Esc/B/Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Wide gaps, slow spawns
  normal - Config defaults
  hard   - Narrow gaps, fast pipes

Remote jumps:
  --remote-file data.json  - Poll a command file written by 'flappy remote'
  --remote-ws :8765        - Accept commands over websocket at /ws

Examples:
  flappy play
  flappy play flappy_night --difficulty hard
  flappy play --player ana
  flappy play --remote-file ./data.json
  flappy play --config ./my-flappy.yaml --debug`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	for _, cmd := range []*cobra.Command{playCmd, menuCmd, rootCmd} {
		cmd.Flags().StringVar(&flagPlayer, "player", "", "Leaderboard name (empty = local only)")
		cmd.Flags().StringVar(&flagRemoteFile, "remote-file", "", "Poll this JSON command file for jumps")
		cmd.Flags().StringVar(&flagRemoteWS, "remote-ws", "", "Listen for websocket jump commands on host:port")
	}
}

// session holds what every local game needs across menu rounds.
type session struct {
	store   *storage.Store
	logger  *log.Logger
	cfg     config.FlappyConfig
	runtime core.RuntimeConfig
	queue   *remote.Queue
	poller  *remote.FilePoller
	cancel  context.CancelFunc
	closers []io.Closer
}

func newSession() (*session, error) {
	cfg, err := loadGameConfig()
	if err != nil {
		return nil, err
	}

	logger, logCloser := newFileLogger("flappy")
	s := &session{
		logger:  logger,
		cfg:     cfg,
		closers: []io.Closer{logCloser},
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores will not persist", "error", err)
	} else {
		s.store = store
		s.closers = append(s.closers, store)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	s.runtime = core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	s.startRemote()
	return s, nil
}

// startRemote runs the remote command producers, if any were requested.
func (s *session) startRemote() {
	if flagRemoteFile == "" && flagRemoteWS == "" {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.queue = remote.NewQueue(remote.DefaultQueueSize, s.logger)

	if flagRemoteFile != "" {
		s.poller = remote.NewFilePoller(flagRemoteFile, s.queue, s.logger)
		go func() {
			if err := s.poller.Run(ctx); err != nil {
				s.logger.Error("command file poller stopped", "error", err)
			}
		}()
	}
	if flagRemoteWS != "" {
		listener := remote.NewWSListener(flagRemoteWS, s.queue, s.logger)
		go func() {
			if err := listener.Run(ctx); err != nil {
				s.logger.Error("websocket listener stopped", "error", err)
			}
		}()
	}
}

// play builds and runs one variant until the player leaves it.
func (s *session) play(variant string) error {
	runtime := s.runtime
	if runtime.Seed == 0 {
		runtime.Seed = time.Now().UnixNano()
	}

	env := registry.Env{
		Runtime: runtime,
		Config:  s.cfg,
		Logger:  s.logger.With("game", variant),
	}
	if s.store != nil {
		env.BestScores = s.store.BestScores(variant, flagPlayer)
		if flagPlayer != "" {
			env.Leaderboard = s.store.Leaderboard(variant, flagPlayer)
		}
	}

	game, err := registry.Create(variant, env)
	if err != nil {
		return err
	}
	s.logger.Info("game started", "game", variant, "seed", runtime.Seed, "player", flagPlayer)

	err = tui.Run(game, tui.Options{
		Runtime: runtime,
		Store:   s.store,
		Player:  flagPlayer,
		Remote:  s.queue,
		Poller:  s.poller,
		Logger:  env.Logger,
	})
	if w, ok := game.(interface{ Wait() }); ok {
		w.Wait()
	}
	return err
}

func (s *session) close() {
	if s.cancel != nil {
		s.cancel()
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i].Close()
	}
}

func runPlay(_ *cobra.Command, args []string) error {
	variant := tui.DefaultVariant
	if len(args) > 0 {
		variant = args[0]
	}
	if !registry.Exists(variant) {
		return fmt.Errorf("unknown variant %q, run 'flappy list' to see available variants", variant)
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	return s.play(variant)
}
