package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/remote"
)

// ControllerKeyMap defines the key bindings for the remote controller.
type ControllerKeyMap struct {
	Jump key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ControllerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ControllerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultControllerKeyMap returns default key bindings.
func DefaultControllerKeyMap() ControllerKeyMap {
	return ControllerKeyMap{
		Jump: key.NewBinding(
			key.WithKeys(" ", "space", "up", "enter"),
			key.WithHelp("space", "jump"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ControllerModel sends a jump command to a running game on every key press.
type ControllerModel struct {
	sender  remote.Sender
	target  string
	now     func() time.Time
	keys    ControllerKeyMap
	help    help.Model
	sent    int
	lastErr error
	width   int
}

// NewControllerModel creates a controller that writes through sender.
// target is shown to the user (a file path or websocket URL).
func NewControllerModel(sender remote.Sender, target string) ControllerModel {
	return ControllerModel{
		sender: sender,
		target: target,
		now:    time.Now,
		keys:   DefaultControllerKeyMap(),
		help:   help.New(),
	}
}

// Sent returns the number of commands delivered.
func (m ControllerModel) Sent() int {
	return m.sent
}

// Init initializes the controller.
func (m ControllerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the controller.
func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Jump):
			m.jump()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m *ControllerModel) jump() {
	if err := m.sender.Send(remote.NewJump(m.sent+1, m.now())); err != nil {
		m.lastErr = err
		return
	}
	m.sent++
	m.lastErr = nil
}

// View renders the controller.
func (m ControllerModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("FLAPPY REMOTE"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("target: " + m.target))
	b.WriteString("\n\n")

	switch {
	case m.lastErr != nil:
		b.WriteString(errStyle.Render("send failed: " + m.lastErr.Error()))
	case m.sent > 0:
		b.WriteString(okStyle.Render(fmt.Sprintf("Jump command sent! (#%d)", m.sent)))
	default:
		b.WriteString("Press space to make the bird jump.")
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// RunController runs the remote controller until the user quits.
func RunController(sender remote.Sender, target string) error {
	p := tea.NewProgram(NewControllerModel(sender, target))
	_, err := p.Run()
	return err
}
