// Package tui provides the Bubble Tea integration for the flappy platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxFrameDelta caps the simulated time of one frame after a stall.
const maxFrameDelta = 250 * time.Millisecond

// TickMsg is sent once per frame and carries the wall time it fired at.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends the next tick after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameClock turns tick timestamps into frame durations.
type frameClock struct {
	nominal time.Duration
	last    time.Time
}

// delta returns the time since the previous tick. The first tick after
// a pause or at startup counts as one nominal frame.
func (c *frameClock) delta(now time.Time) time.Duration {
	if c.last.IsZero() {
		c.last = now
		return c.nominal
	}
	dt := now.Sub(c.last)
	c.last = now
	switch {
	case dt < 0:
		return 0
	case dt > maxFrameDelta:
		return maxFrameDelta
	}
	return dt
}

// restart forgets the previous tick.
func (c *frameClock) restart() {
	c.last = time.Time{}
}
