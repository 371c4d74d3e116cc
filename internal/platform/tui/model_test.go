package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/remote"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// recordingGame is a minimal registry.Game that records what the model feeds it.
type recordingGame struct {
	jumps  int
	steps  []time.Duration
	score  int
	endAt  int // step index that ends the run, -1 for never
	ended  bool
	render string
}

func newRecordingGame() *recordingGame {
	return &recordingGame{endAt: -1, render: "bird"}
}

func (g *recordingGame) ID() string    { return "stub" }
func (g *recordingGame) Title() string { return "Stub" }
func (g *recordingGame) Reset()        { g.ended = false }

func (g *recordingGame) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	if in.Has(core.ActionJump) {
		g.jumps++
	}
	g.steps = append(g.steps, dt)
	res := core.StepResult{}
	if len(g.steps)-1 == g.endAt {
		g.ended = true
		res.Ended = true
	}
	res.State = g.State()
	return res
}

func (g *recordingGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, g.render)
}

func (g *recordingGame) State() core.GameState {
	return core.GameState{Score: g.score, Running: !g.ended, GameOver: g.ended}
}

func newTestModel(g *recordingGame, opts Options) Model {
	opts.Runtime = core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 50}
	return NewModel(g, opts)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func TestModelTickUsesWallClock(t *testing.T) {
	g := newRecordingGame()
	m := newTestModel(g, Options{})

	start := time.Unix(1000, 0)
	m, _ = update(t, m, TickMsg(start))
	m, _ = update(t, m, TickMsg(start.Add(30*time.Millisecond)))
	m, _ = update(t, m, TickMsg(start.Add(2*time.Second)))
	_, _ = update(t, m, TickMsg(start.Add(time.Second)))

	want := []time.Duration{20 * time.Millisecond, 30 * time.Millisecond, maxFrameDelta, 0}
	if len(g.steps) != len(want) {
		t.Fatalf("got %d steps, expected %d", len(g.steps), len(want))
	}
	for i := range want {
		if g.steps[i] != want[i] {
			t.Errorf("step %d dt = %v, expected %v", i, g.steps[i], want[i])
		}
	}
}

func TestModelJumpInputsReachGame(t *testing.T) {
	g := newRecordingGame()
	m := newTestModel(g, Options{})
	now := time.Unix(1000, 0)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}})
	m, _ = update(t, m, TickMsg(now))
	if g.jumps != 1 {
		t.Fatalf("key press produced %d jumps", g.jumps)
	}

	// Input is cleared after each frame.
	m, _ = update(t, m, TickMsg(now.Add(20*time.Millisecond)))
	if g.jumps != 1 {
		t.Fatalf("jump repeated on the next frame")
	}

	m, _ = update(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	_, _ = update(t, m, TickMsg(now.Add(40*time.Millisecond)))
	if g.jumps != 2 {
		t.Errorf("mouse press produced %d total jumps, expected 2", g.jumps)
	}
}

func TestModelDrainsRemoteQueue(t *testing.T) {
	g := newRecordingGame()
	q := remote.NewQueue(4, nil)
	m := newTestModel(g, Options{Remote: q})

	q.Push(remote.Command{Jump: true, Timestamp: 1})
	q.Push(remote.Command{Jump: true, Timestamp: 2})
	_, _ = update(t, m, TickMsg(time.Unix(1000, 0)))

	if g.jumps != 1 {
		t.Errorf("remote commands in one frame produced %d jumps, expected 1", g.jumps)
	}
}

func TestModelDiscardsRemoteBacklog(t *testing.T) {
	now := time.Unix(1000, 0)
	tests := []struct {
		name      string
		before    int
		after     int
		wantJumps int
	}{
		{"nothing queued", 0, 0, 0},
		{"stale command only", 1, 0, 0},
		{"stale then fresh", 2, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newRecordingGame()
			q := remote.NewQueue(4, nil)
			ts := 0.0
			for i := 0; i < tt.before; i++ {
				ts++
				q.Push(remote.Command{Jump: true, Timestamp: ts})
			}

			m := newTestModel(g, Options{Remote: q})
			for i := 0; i < tt.after; i++ {
				ts++
				q.Push(remote.Command{Jump: true, Timestamp: ts})
			}
			_, _ = update(t, m, TickMsg(now))

			if g.jumps != tt.wantJumps {
				t.Errorf("first frame saw %d jumps, expected %d", g.jumps, tt.wantJumps)
			}
		})
	}
}

func TestModelPauseFreezesGame(t *testing.T) {
	g := newRecordingGame()
	m := newTestModel(g, Options{})
	now := time.Unix(1000, 0)

	m, _ = update(t, m, TickMsg(now))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	m, cmd := update(t, m, TickMsg(now.Add(time.Second)))
	if cmd == nil {
		t.Error("paused model should keep ticking")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if len(g.steps) != 1 {
		t.Fatalf("paused model stepped the game: %d steps", len(g.steps))
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("paused view should show the overlay")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	_, _ = update(t, m, TickMsg(now.Add(2*time.Second)))
	if len(g.steps) != 2 {
		t.Fatalf("resumed model did not step: %d steps", len(g.steps))
	}
	if g.steps[1] != 20*time.Millisecond {
		t.Errorf("first frame after pause dt = %v, expected one nominal frame", g.steps[1])
	}
	if g.jumps != 0 {
		t.Errorf("jump pressed while paused leaked through: %d", g.jumps)
	}
}

func TestModelSavesScoreOnEnd(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	g := newRecordingGame()
	g.score = 7
	g.endAt = 1
	m := newTestModel(g, Options{Store: store, Player: "ana"})

	now := time.Unix(1000, 0)
	for i := 0; i < 4; i++ {
		m, _ = update(t, m, TickMsg(now.Add(time.Duration(i)*20*time.Millisecond)))
	}

	scores, err := store.TopScores("stub", 10)
	if err != nil {
		t.Fatalf("TopScores failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d scores, expected exactly 1", len(scores))
	}
	if scores[0].Score != 7 || scores[0].Player != "ana" {
		t.Errorf("saved %+v", scores[0])
	}
}

func TestModelQuitAndScreenshot(t *testing.T) {
	dir := t.TempDir()
	g := newRecordingGame()
	m := newTestModel(g, Options{ScreenshotDir: dir})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one screenshot, got %d (err %v)", len(entries), err)
	}
	data, _ := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if !strings.HasPrefix(string(data), "bird") {
		t.Errorf("screenshot content = %q", data)
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColor(0, 0, "ab", core.ColorRed)
	s.DrawTextColor(2, 0, "cd", core.ColorGreen)
	s.DrawText(0, 1, "xyz")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("rendered %d lines, expected 2", len(lines))
	}
	for _, want := range []string{"ab", "cd", "xyz"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered screen missing %q", want)
		}
	}
}

func TestCenterText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"ab", 6, "  ab"},
		{"abc", 6, " abc"},
		{"toolong", 3, "toolong"},
	}
	for _, tt := range tests {
		if got := centerText(tt.text, tt.width); got != tt.want {
			t.Errorf("centerText(%q, %d) = %q, expected %q", tt.text, tt.width, got, tt.want)
		}
	}
}
