package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// BirdView is the render-side copy of the bird.
type BirdView struct {
	Pos      core.Vec2
	Box      core.RectF
	Rotation float64
	Phase    MotionPhase
}

// PipeView is the render-side copy of one pipe.
type PipeView struct {
	Top    core.RectF
	Bottom core.RectF
	Gap    core.RectF
	Passed bool
}

// Snapshot is a read-only copy of everything needed to draw one frame.
// Changing it has no effect on the game.
type Snapshot struct {
	Phase   Phase
	Epoch   uint64
	Bird    BirdView
	Pipes   []PipeView
	Score   int
	Best    int
	Rank    int
	GroundX float64
	Theme   Theme
	Debug   bool
	World   config.WorldConfig
	Fault   error
}

// Snapshot captures the current frame.
func (g *Game) Snapshot() Snapshot {
	floorY := g.cfg.FloorY()

	pipes := g.pipes.Pipes()
	views := make([]PipeView, len(pipes))
	for i, p := range pipes {
		views[i] = PipeView{
			Top:    p.TopRect(),
			Bottom: p.BottomRect(floorY),
			Gap:    p.GapRect(),
			Passed: p.Passed,
		}
	}

	theme := ThemeFor(g.bird.Score, g.cfg.Theme.NightEvery)
	if g.forceNight {
		theme = ThemeNight
	}

	return Snapshot{
		Phase: g.phase,
		Epoch: g.epoch,
		Bird: BirdView{
			Pos:      g.bird.Pos,
			Box:      g.bird.Rect(),
			Rotation: g.bird.Rotation,
			Phase:    g.bird.Phase,
		},
		Pipes:   views,
		Score:   g.bird.Score,
		Best:    g.bird.Best,
		Rank:    g.rank,
		GroundX: g.groundX,
		Theme:   theme,
		Debug:   g.cfg.Debug,
		World:   g.cfg.World,
		Fault:   g.fault,
	}
}
