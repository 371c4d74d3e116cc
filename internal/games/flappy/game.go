// Package flappy implements a Flappy Bird-style game.
// The player controls a bird that must navigate through gaps in vertical pipes.
//
// Motion is time based: every update takes the elapsed frame time, so the game
// plays the same at any frame rate. A Game is not safe for concurrent use; the
// platform drives it from a single goroutine.
package flappy

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/leaderboard"
)

// ErrInvariant marks a corrupted simulation state. It ends the current run only.
var ErrInvariant = errors.New("flappy: invariant violated")

// Phase is the state of a run.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseRunning:
		return "Running"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Deps are the collaborators a game talks to. All of them are optional.
type Deps struct {
	Logger      *log.Logger
	BestScores  core.BestScoreStore
	Leaderboard core.Leaderboard
}

// Game implements the Flappy Bird simulation.
type Game struct {
	id         string
	title      string
	forceNight bool

	cfg   config.FlappyConfig
	seed  int64
	epoch uint64
	phase Phase

	bird    *Bird
	pipes   *PipeManager
	groundX float64 // Ground scroll offset in (-tile, 0]

	best      core.BestScoreStore
	submitter *leaderboard.Submitter
	logger    *log.Logger

	rank  int   // Rank reported for the current epoch, 0 if unknown
	fault error // Set when an invariant check ended the run
}

// New creates a game in the Idle phase. The configuration is validated
// here and an invalid one is rejected.
func New(cfg config.FlappyConfig, seed int64, deps Deps) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("flappy: %w", err)
	}

	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	store := deps.BestScores
	if store == nil {
		store = &memoryBest{}
	}

	best, err := store.Get()
	if err != nil {
		logger.Warn("best score unavailable, starting from zero", "error", err)
		best = 0
	}

	g := &Game{
		id:     "flappy",
		title:  "Flappy Bird",
		cfg:    cfg,
		seed:   seed,
		bird:   NewBird(cfg, max(best, 0)),
		pipes:  NewPipeManager(seed, cfg),
		best:   store,
		logger: logger,
	}
	if deps.Leaderboard != nil {
		g.submitter = leaderboard.NewSubmitter(deps.Leaderboard, logger)
	}
	return g, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Phase returns the current phase of the run.
func (g *Game) Phase() Phase {
	return g.phase
}

// Epoch returns the number of resets since the game was built.
func (g *Game) Epoch() uint64 {
	return g.epoch
}

// Fault returns the invariant violation that ended the last run, if any.
func (g *Game) Fault() error {
	return g.fault
}

// Bird exposes the player entity.
func (g *Game) Bird() *Bird {
	return g.bird
}

// Pipes exposes the obstacle field.
func (g *Game) Pipes() *PipeManager {
	return g.pipes
}

// Activate handles the single player input.
// From GameOver it resets and starts a new run in the same call.
func (g *Game) Activate() {
	switch g.phase {
	case PhaseIdle:
		g.phase = PhaseRunning
		g.logger.Debug("run started", "epoch", g.epoch)
	case PhaseRunning:
	case PhaseGameOver:
		g.Reset()
		g.phase = PhaseRunning
		g.logger.Debug("run restarted", "epoch", g.epoch)
	}
	g.bird.Jump()
}

// Advance moves the simulation forward by dt. It does nothing unless running.
func (g *Game) Advance(dt time.Duration) core.StepResult {
	g.drainResults()

	if g.phase != PhaseRunning || dt <= 0 {
		return core.StepResult{State: g.State()}
	}

	g.bird.Update(dt)
	_, passed := g.pipes.Update(g.bird, dt)
	g.scrollGround(dt)

	res := core.StepResult{Passed: passed}

	if err := g.checkInvariants(); err != nil {
		g.fault = err
		g.logger.Error("run aborted", "epoch", g.epoch, "error", err)
		g.endRun()
		res.Ended = true
	} else if g.bird.OutOfBounds(g.cfg.World.Height, g.cfg.World.GroundHeight) || g.pipes.CheckCollisions(g.bird) {
		g.endRun()
		res.Ended = true
	}

	res.State = g.State()
	return res
}

// Step applies one frame of input and advances by dt.
func (g *Game) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	if in.Has(core.ActionJump) {
		g.Activate()
	}
	return g.Advance(dt)
}

// Reset starts a new epoch in the Idle phase. The best score is kept and
// leaderboard answers for earlier epochs are ignored from now on.
func (g *Game) Reset() {
	g.epoch++
	g.phase = PhaseIdle
	g.fault = nil
	g.rank = 0
	g.groundX = 0
	g.bird.reset(g.cfg.Bird)
	g.pipes.Reset(g.seed + int64(g.epoch))
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.bird.Score,
		Best:     g.bird.Best,
		Rank:     g.rank,
		Running:  g.phase == PhaseRunning,
		GameOver: g.phase == PhaseGameOver,
	}
}

// Wait blocks until pending leaderboard submissions finish.
func (g *Game) Wait() {
	if g.submitter != nil {
		g.submitter.Wait()
	}
}

func (g *Game) endRun() {
	g.phase = PhaseGameOver
	score := g.bird.Score

	if score > g.bird.Best {
		g.bird.Best = score
		if err := g.best.Set(score); err != nil {
			g.logger.Warn("cannot persist best score", "score", score, "error", err)
		}
	}

	g.logger.Info("game over", "epoch", g.epoch, "score", score, "best", g.bird.Best)

	if g.submitter != nil && score > 0 {
		g.submitter.Submit(g.epoch, score)
	}
}

func (g *Game) drainResults() {
	if g.submitter == nil {
		return
	}
	for _, r := range g.submitter.Poll() {
		if r.Epoch != g.epoch {
			g.logger.Debug("ignoring stale leaderboard result", "epoch", r.Epoch, "current", g.epoch)
			continue
		}
		if r.Err != nil {
			continue
		}
		g.rank = r.Rank
		if r.Best > g.bird.Best {
			g.logger.Debug("leaderboard best is higher", "score", r.Score, "best", r.Best, "local", g.bird.Best)
			g.bird.Best = r.Best
		}
	}
}

func (g *Game) scrollGround(dt time.Duration) {
	tile := g.cfg.World.GroundTile
	if tile <= 0 {
		return
	}
	g.groundX = math.Mod(g.groundX-dt.Seconds()*g.cfg.Pipes.Speed, tile)
}

func (g *Game) checkInvariants() error {
	b := g.bird
	if !b.Pos.IsFinite() || math.IsNaN(b.VY) || math.IsInf(b.VY, 0) {
		return fmt.Errorf("%w: bird state (%v, %v) vy=%v", ErrInvariant, b.Pos.X, b.Pos.Y, b.VY)
	}
	if b.Score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrInvariant, b.Score)
	}

	pipes := g.pipes.Pipes()
	for i, p := range pipes {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.GapCenterY) {
			return fmt.Errorf("%w: pipe %d has no position", ErrInvariant, i)
		}
		// Pipes move at one speed, so spawn order is left-to-right order.
		if i > 0 && p.X < pipes[i-1].X {
			return fmt.Errorf("%w: pipe %d is out of order", ErrInvariant, i)
		}
	}
	return nil
}

// memoryBest keeps the best score for the lifetime of the process.
type memoryBest struct {
	best int
}

func (m *memoryBest) Get() (int, error) {
	return m.best, nil
}

func (m *memoryBest) Set(score int) error {
	m.best = score
	return nil
}
