package flappy

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

const frame = 16 * time.Millisecond

type fakeStore struct {
	best   int
	getErr error
	setErr error
	sets   []int
}

func (s *fakeStore) Get() (int, error) { return s.best, s.getErr }

func (s *fakeStore) Set(score int) error {
	s.sets = append(s.sets, score)
	if s.setErr != nil {
		return s.setErr
	}
	s.best = score
	return nil
}

type fakeBoard struct {
	mu     sync.Mutex
	authed bool
	rank   int
	best   int // best already on the board before this session
	scores []int
}

func (f *fakeBoard) IsAuthenticated() bool { return f.authed }

func (f *fakeBoard) SubmitScore(_ context.Context, score int) (core.SubmitResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scores = append(f.scores, score)
	f.best = max(f.best, score)
	return core.SubmitResult{Rank: f.rank, Best: f.best}, nil
}

func (f *fakeBoard) submitted() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.scores...)
}

func newTestGame(t *testing.T, deps Deps) *Game {
	t.Helper()
	g, err := New(config.DefaultFlappyConfig(), 1, deps)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return g
}

// crash ends the current run by dropping the bird onto the ground.
func crash(t *testing.T, g *Game) core.StepResult {
	t.Helper()
	g.bird.Phase = PhaseFalling
	g.bird.Pos.Y = 10_000
	res := g.Advance(frame)
	if !res.Ended || g.Phase() != PhaseGameOver {
		t.Fatalf("bird below the ground should end the run, phase=%v", g.Phase())
	}
	return res
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.FlappyConfig)
	}{
		{"negative gap", func(c *config.FlappyConfig) { c.Pipes.GapHeight = -1 }},
		{"zero spawn interval", func(c *config.FlappyConfig) { c.Pipes.SpawnInterval = 0 }},
		{"zero jump duration", func(c *config.FlappyConfig) { c.Physics.JumpDuration = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultFlappyConfig()
			tt.mutate(&cfg)
			if _, err := New(cfg, 1, Deps{}); !errors.Is(err, config.ErrInvalid) {
				t.Errorf("New should reject the config, got %v", err)
			}
		})
	}
}

func TestGameStartsIdleAndFrozen(t *testing.T) {
	g := newTestGame(t, Deps{})
	start := g.bird.Pos

	for i := 0; i < 100; i++ {
		g.Advance(frame)
	}

	if g.Phase() != PhaseIdle {
		t.Errorf("Phase = %v, expected Idle", g.Phase())
	}
	if g.bird.Pos != start || len(g.pipes.Pipes()) != 0 || g.pipes.SpawnTimer() != 0 {
		t.Error("nothing should move before the first activate")
	}
}

func TestActivateTransitions(t *testing.T) {
	g := newTestGame(t, Deps{})

	g.Activate()
	if g.Phase() != PhaseRunning || g.bird.Phase != PhaseJumping {
		t.Fatalf("first activate should start running and jump, phase=%v bird=%v", g.Phase(), g.bird.Phase)
	}

	g.Advance(300 * time.Millisecond)
	if g.bird.Phase != PhaseFalling {
		t.Fatal("jump should be over after 300ms")
	}

	g.Activate()
	if g.Phase() != PhaseRunning || g.bird.Phase != PhaseJumping {
		t.Error("activate while running should jump again")
	}
}

func TestGameEndsOnGround(t *testing.T) {
	g := newTestGame(t, Deps{})
	g.Activate()

	ended := 0
	for i := 0; i < 600 && g.Phase() == PhaseRunning; i++ {
		if g.Advance(frame).Ended {
			ended++
		}
	}

	if g.Phase() != PhaseGameOver {
		t.Fatalf("falling bird should hit the ground, phase=%v", g.Phase())
	}
	if ended != 1 {
		t.Errorf("Ended reported %d times, expected 1", ended)
	}
	if g.Fault() != nil {
		t.Errorf("a normal crash should not be a fault: %v", g.Fault())
	}

	y := g.bird.Pos.Y
	g.Advance(frame)
	if g.bird.Pos.Y != y {
		t.Error("Advance should be a no-op after game over")
	}
}

func TestGameEndsOnPipeCollision(t *testing.T) {
	g := newTestGame(t, Deps{})
	g.Activate()
	g.pipes.pipes = append(g.pipes.pipes, Pipe{
		X: 90, GapCenterY: 500, GapHeight: 100, Width: 52, Speed: 300,
	})

	res := g.Advance(frame)
	if !res.Ended || !res.State.GameOver {
		t.Error("overlapping a pipe body should end the run")
	}
}

func TestGameOverUpdatesBest(t *testing.T) {
	store := &fakeStore{best: 5}
	g := newTestGame(t, Deps{BestScores: store})
	if g.State().Best != 5 {
		t.Fatalf("best should be loaded from the store, got %d", g.State().Best)
	}

	g.Activate()
	g.bird.Score = 7
	res := crash(t, g)

	if res.State.Best != 7 {
		t.Errorf("Best = %d, expected 7", res.State.Best)
	}
	if len(store.sets) != 1 || store.sets[0] != 7 {
		t.Errorf("store writes = %v, expected [7]", store.sets)
	}

	g.Activate()
	g.bird.Score = 3
	crash(t, g)
	if len(store.sets) != 1 {
		t.Errorf("a lower score should not be written, writes = %v", store.sets)
	}
}

func TestStoreErrorsDegradeToLocal(t *testing.T) {
	store := &fakeStore{getErr: errors.New("disk gone"), setErr: errors.New("disk gone")}
	g := newTestGame(t, Deps{BestScores: store})

	g.Activate()
	g.bird.Score = 4
	res := crash(t, g)

	if res.State.Best != 4 {
		t.Errorf("best should still be tracked in memory, got %d", res.State.Best)
	}
}

func TestResetAfterGameOver(t *testing.T) {
	g := newTestGame(t, Deps{})
	g.Activate()
	for i := 0; i < 10; i++ {
		g.Advance(frame)
	}
	g.bird.Score = 9
	crash(t, g)
	epoch := g.Epoch()

	g.Reset()

	st := g.State()
	if st.Score != 0 || g.Phase() != PhaseIdle || len(g.pipes.Pipes()) != 0 {
		t.Errorf("reset should clear the run: score=%d phase=%v pipes=%d", st.Score, g.Phase(), len(g.pipes.Pipes()))
	}
	if st.Best != 9 {
		t.Errorf("Best = %d, expected 9 to survive the reset", st.Best)
	}
	if g.pipes.SpawnTimer() != 0 {
		t.Error("spawn timer should restart")
	}
	if g.Epoch() != epoch+1 {
		t.Errorf("Epoch = %d, expected %d", g.Epoch(), epoch+1)
	}
	if g.bird.Pos.Y != config.DefaultFlappyConfig().Bird.Y {
		t.Error("bird should return to its spawn point")
	}
}

func TestActivateRestartsFromGameOver(t *testing.T) {
	g := newTestGame(t, Deps{})
	g.Activate()
	g.bird.Score = 2
	crash(t, g)

	g.Activate()

	if g.Phase() != PhaseRunning {
		t.Errorf("Phase = %v, activate should never park in GameOver", g.Phase())
	}
	if g.State().Score != 0 || g.bird.Phase != PhaseJumping {
		t.Error("restart should begin a fresh run with a jump")
	}
}

func TestStepMapsActivate(t *testing.T) {
	g := newTestGame(t, Deps{})

	res := g.Step(core.NewInputFrame(), frame)
	if res.State.Running {
		t.Fatal("no input should leave the game idle")
	}

	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	res = g.Step(in, frame)
	if !res.State.Running || g.bird.Pos.Y >= config.DefaultFlappyConfig().Bird.Y {
		t.Error("jump input should start the run and move the bird up in the same frame")
	}
}

func TestInvariantViolationEndsRun(t *testing.T) {
	g := newTestGame(t, Deps{})
	g.Activate()
	g.bird.Phase = PhaseFalling
	g.bird.Pos.Y = math.NaN()

	res := g.Advance(frame)

	if !res.Ended || g.Phase() != PhaseGameOver {
		t.Fatal("NaN position should end the run")
	}
	if !errors.Is(g.Fault(), ErrInvariant) {
		t.Errorf("Fault() = %v, expected ErrInvariant", g.Fault())
	}

	g.Reset()
	if g.Fault() != nil {
		t.Error("reset should clear the fault")
	}
}

func TestInvariantPipeOrder(t *testing.T) {
	g := newTestGame(t, Deps{})
	g.Activate()
	g.pipes.pipes = append(g.pipes.pipes,
		Pipe{X: 700, GapCenterY: 255, GapHeight: 200, Width: 52, Speed: 300},
		Pipe{X: 500, GapCenterY: 255, GapHeight: 200, Width: 52, Speed: 300},
	)

	g.Advance(frame)
	if !errors.Is(g.Fault(), ErrInvariant) {
		t.Errorf("pipes out of spawn order should be reported, got %v", g.Fault())
	}
}

func TestLeaderboardSubmission(t *testing.T) {
	board := &fakeBoard{authed: true, rank: 3}
	g := newTestGame(t, Deps{Leaderboard: board})

	g.Activate()
	g.bird.Score = 6
	crash(t, g)
	g.Wait()

	if got := board.submitted(); len(got) != 1 || got[0] != 6 {
		t.Fatalf("submitted %v, expected [6]", got)
	}

	res := g.Advance(frame)
	if res.State.Rank != 3 {
		t.Errorf("Rank = %d, expected 3 once the result arrives", res.State.Rank)
	}
}

func TestLeaderboardBestReachesHUD(t *testing.T) {
	tests := []struct {
		name      string
		boardBest int
		want      int
	}{
		{"local run is the best", 2, 6},
		{"board knows a higher best", 20, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := &fakeBoard{authed: true, rank: 1, best: tt.boardBest}
			g := newTestGame(t, Deps{Leaderboard: board})

			g.Activate()
			g.bird.Score = 6
			crash(t, g)
			g.Wait()

			res := g.Advance(frame)
			if res.State.Best != tt.want {
				t.Errorf("Best = %d, expected %d", res.State.Best, tt.want)
			}
			if snap := g.Snapshot(); snap.Best != tt.want {
				t.Errorf("HUD best = %d, expected %d", snap.Best, tt.want)
			}
		})
	}
}

func TestLeaderboardIgnoresStaleResults(t *testing.T) {
	board := &fakeBoard{authed: true, rank: 3}
	g := newTestGame(t, Deps{Leaderboard: board})

	g.Activate()
	g.bird.Score = 6
	crash(t, g)
	g.Reset()
	g.Wait()

	if res := g.Advance(frame); res.State.Rank != 0 {
		t.Errorf("Rank = %d, a result from before the reset should be ignored", res.State.Rank)
	}
}

func TestLeaderboardSkipsWhenSignedOutOrZero(t *testing.T) {
	board := &fakeBoard{authed: false}
	g := newTestGame(t, Deps{Leaderboard: board})
	g.Activate()
	g.bird.Score = 4
	crash(t, g)
	g.Wait()
	if len(board.submitted()) != 0 {
		t.Error("signed-out leaderboard should receive nothing")
	}

	board.authed = true
	g.Activate()
	crash(t, g)
	g.Wait()
	if len(board.submitted()) != 0 {
		t.Error("a zero score should not be submitted")
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() []float64 {
		g := newTestGame(t, Deps{})
		in := core.NewInputFrame()
		for i := 0; i < 400; i++ {
			in.Clear()
			if i%20 == 0 {
				in.Set(core.ActionJump)
			}
			if g.Step(in, frame).Ended {
				break
			}
		}
		var out []float64
		for _, p := range g.pipes.Pipes() {
			out = append(out, p.X, p.GapCenterY)
		}
		return append(out, g.bird.Pos.Y, float64(g.bird.Score))
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("runs diverged: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("runs diverged at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestGroundScrollStaysWithinTile(t *testing.T) {
	g := newTestGame(t, Deps{})
	g.Activate()
	tile := config.DefaultFlappyConfig().World.GroundTile

	for i := 0; i < 60; i++ {
		g.Advance(frame)
		x := g.Snapshot().GroundX
		if x > 0 || x <= -tile {
			t.Fatalf("GroundX = %v outside (-%v, 0]", x, tile)
		}
	}
}

func TestThemeFor(t *testing.T) {
	tests := []struct {
		score, every int
		want         Theme
	}{
		{0, 10, ThemeDay},
		{9, 10, ThemeDay},
		{10, 10, ThemeNight},
		{19, 10, ThemeNight},
		{20, 10, ThemeDay},
		{50, 0, ThemeDay},
	}

	for _, tt := range tests {
		if got := ThemeFor(tt.score, tt.every); got != tt.want {
			t.Errorf("ThemeFor(%d, %d) = %v, expected %v", tt.score, tt.every, got, tt.want)
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	g := newTestGame(t, Deps{})
	g.Activate()
	g.pipes.spawn()

	snap := g.Snapshot()
	snap.Pipes[0].Passed = true
	snap.Score = 100

	if g.pipes.Pipes()[0].Passed || g.State().Score != 0 {
		t.Error("mutating a snapshot should not affect the game")
	}
	if snap.Theme != ThemeDay {
		t.Errorf("Theme = %v, expected day at score 0", snap.Theme)
	}
}

func TestRenderMessages(t *testing.T) {
	g := newTestGame(t, Deps{})
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	if !strings.Contains(screen.String(), "FLAPPY BIRD") {
		t.Error("idle screen should show the title")
	}

	g.Activate()
	crash(t, g)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over screen should say so")
	}
}

func TestRenderTinyScreens(t *testing.T) {
	g := newTestGame(t, Deps{})
	g.Activate()
	g.pipes.spawn()

	for _, size := range [][2]int{{0, 0}, {1, 1}, {3, 2}, {200, 60}} {
		screen := core.NewScreen(size[0], size[1])
		g.Render(screen)
	}
}

func TestRenderDebugOutlinesPipes(t *testing.T) {
	tests := []struct {
		name  string
		debug bool
	}{
		{"debug off", false},
		{"debug on", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultFlappyConfig()
			cfg.Debug = tt.debug
			g, err := New(cfg, 1, Deps{})
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			g.Activate()
			g.pipes.spawn()
			g.pipes.pipes[0].X = cfg.World.Width * 0.6

			screen := core.NewScreen(80, 24)
			g.Render(screen)

			snap := g.Snapshot()
			vp := core.Viewport{WorldW: cfg.World.Width, WorldH: cfg.World.Height, ScreenW: 80, ScreenH: 24}
			top := vp.Rect(snap.Pipes[0].Top)
			bottom := vp.Rect(snap.Pipes[0].Bottom)

			corners := []struct {
				x, y int
				want rune
			}{
				{top.X, top.Bottom() - 1, '└'},
				{top.Right() - 1, top.Bottom() - 1, '┘'},
				{bottom.X, bottom.Y, '┌'},
				{bottom.Right() - 1, bottom.Y, '┐'},
			}
			for _, c := range corners {
				if got := screen.Get(c.x, c.y) == c.want; got != tt.debug {
					t.Errorf("cell (%d,%d) = %q, outline expected: %v", c.x, c.y, screen.Get(c.x, c.y), tt.debug)
				}
			}
		})
	}
}

func TestBirdGlyph(t *testing.T) {
	if BirdGlyph(-20) != '▲' || BirdGlyph(10) != '▶' || BirdGlyph(90) != '▼' {
		t.Error("glyph should follow the tilt")
	}
}

func TestRegisteredVariants(t *testing.T) {
	env := registry.Env{Config: config.DefaultFlappyConfig(), Runtime: core.DefaultConfig()}

	day, err := registry.Create("flappy", env)
	if err != nil {
		t.Fatalf("Create(flappy) failed: %v", err)
	}
	if day.ID() != "flappy" {
		t.Errorf("ID() = %q", day.ID())
	}

	night, err := registry.Create("flappy_night", env)
	if err != nil {
		t.Fatalf("Create(flappy_night) failed: %v", err)
	}
	if night.(*Game).Snapshot().Theme != ThemeNight {
		t.Error("night variant should always use the night theme")
	}

	if _, err := registry.Create("flappy", registry.Env{}); err == nil {
		t.Error("an empty configuration should be rejected")
	}
}
