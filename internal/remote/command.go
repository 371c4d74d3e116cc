// Package remote carries "activate" commands from outside the process into
// the frame loop. Producers (a polled command file, a websocket endpoint)
// push commands into a Queue; the game drains it once per frame.
package remote

import (
	"encoding/json"
	"fmt"
	"time"
)

// Command is one message from a remote controller.
// Timestamp is seconds since the Unix epoch and identifies the command.
type Command struct {
	Jump      bool    `json:"jump"`
	Timestamp float64 `json:"timestamp"`
	JumpID    int     `json:"jump_id"`
}

// NewJump builds the id-th jump command issued at now.
func NewJump(id int, now time.Time) Command {
	return Command{
		Jump:      true,
		Timestamp: float64(now.UnixNano()) / float64(time.Second),
		JumpID:    id,
	}
}

// Idle is the command a controller writes on startup.
func Idle() Command {
	return Command{}
}

// Decode parses a command from JSON.
func Decode(data []byte) (Command, error) {
	var c Command
	if err := json.Unmarshal(data, &c); err != nil {
		return Command{}, fmt.Errorf("remote: cannot decode command: %w", err)
	}
	return c, nil
}

// Encode renders a command the way the controller writes it to disk.
func (c Command) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("remote: cannot encode command: %w", err)
	}
	return data, nil
}
