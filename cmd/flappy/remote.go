package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/remote"
)

var (
	flagRemoteTarget string
	flagRemoteURL    string
)

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Send jump commands to a running game",
	Long: `Start a remote controller. Every press of space makes the bird in
another running game jump.

The controller either rewrites a command file that the game polls
(flappy play --remote-file) or sends websocket messages to a game
listening with --remote-ws.

Examples:
  flappy remote                          # writes ./data.json
  flappy remote --file /tmp/flappy.json
  flappy remote --ws localhost:8765`,
	RunE: runRemote,
}

func init() {
	remoteCmd.Flags().StringVar(&flagRemoteTarget, "file", "data.json", "Command file to write")
	remoteCmd.Flags().StringVar(&flagRemoteURL, "ws", "", "Websocket address of a game (host:port or ws:// URL)")
}

// wsURL turns host:port into the game's websocket endpoint.
func wsURL(addr string) string {
	if strings.HasPrefix(addr, "ws://") || strings.HasPrefix(addr, "wss://") {
		return addr
	}
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "ws://" + addr + "/ws"
}

func runRemote(_ *cobra.Command, _ []string) error {
	var (
		sender remote.Sender
		target string
	)

	if flagRemoteURL != "" {
		target = wsURL(flagRemoteURL)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		ws, err := remote.DialWS(ctx, target)
		if err != nil {
			return fmt.Errorf("cannot connect to %s: %w", target, err)
		}
		sender = ws
	} else {
		target = flagRemoteTarget
		fs, err := remote.NewFileSender(target)
		if err != nil {
			return err
		}
		sender = fs
	}
	defer sender.Close()

	return tui.RunController(sender, target)
}
