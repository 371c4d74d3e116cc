package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/remote"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Options configures a game session.
type Options struct {
	Runtime core.RuntimeConfig
	Store   *storage.Store // score history, may be nil
	Player  string

	// Remote jumps are drained into the frame input. Poller, when set,
	// is told whether a run is in progress so it can poll faster.
	Remote *remote.Queue
	Poller *remote.FilePoller

	Logger        *log.Logger
	ScreenshotDir string // defaults to ~/.flappy/screenshots
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	keys       *KeyMapper
	clock      frameClock
	inputFrame core.InputFrame
	gameState  core.GameState
	paused     bool
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, opts Options) Model {
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	// Commands sent before this run started must not make its first flap.
	if opts.Remote != nil {
		if n := opts.Remote.Drain(); n > 0 {
			opts.Logger.Debug("discarded stale remote commands", "count", n)
		}
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		opts:       opts,
		keys:       NewKeyMapper(),
		clock:      frameClock{nominal: opts.Runtime.FrameInterval()},
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.FrameInterval())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleAction(m.keys.MapKey(msg))

	case tea.MouseMsg:
		return m.handleAction(m.keys.MapMouse(msg))

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

func (m Model) handleAction(action core.Action) (tea.Model, tea.Cmd) {
	switch action {
	case core.ActionQuit, core.ActionBack:
		m.quitting = true
		return m, tea.Quit
	case core.ActionScreenshot:
		m.saveScreenshot()
	case core.ActionPause:
		m.paused = !m.paused
		m.clock.restart()
	case core.ActionJump:
		if !m.paused {
			m.inputFrame.Set(core.ActionJump)
		}
	}
	return m, nil
}

// handleResize processes window resize events. The world is scaled to the
// screen, so the run carries on.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Runtime.ScreenW = msg.Width
	m.opts.Runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick advances the game by the wall time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	next := tickCmd(m.opts.Runtime.FrameInterval())
	if m.paused {
		return m, next
	}

	if m.opts.Remote != nil && m.opts.Remote.Drain() > 0 {
		m.inputFrame.Set(core.ActionJump)
	}

	result := m.game.Step(m.inputFrame, m.clock.delta(now))
	m.gameState = result.State
	m.inputFrame.Clear()

	if result.Ended {
		m.saveScore(result.State.Score)
	}
	if m.opts.Poller != nil {
		m.opts.Poller.SetActive(result.State.Running)
	}

	return m, next
}

// saveScore appends a finished run to the score history.
func (m Model) saveScore(score int) {
	if m.opts.Store == nil || score <= 0 {
		return
	}
	if _, err := m.opts.Store.SaveScore(m.game.ID(), m.opts.Player, score); err != nil {
		m.opts.Logger.Warn("failed to save score", "game", m.game.ID(), "score", score, "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.opts.Logger.Warn("screenshot skipped", "error", err)
			return
		}
		dir = filepath.Join(home, ".flappy", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405.000")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.paused {
		drawOverlay(m.screen, "PAUSED", helpLine(m.keys.Keys().ShortHelp()))
	}
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for game and blocks until it exits.
func Run(game registry.Game, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
