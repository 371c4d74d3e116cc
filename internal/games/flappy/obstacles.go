package flappy

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Pipe represents a vertical obstacle with a gap for the player to pass through.
type Pipe struct {
	X          float64 // Leading (left) edge
	GapCenterY float64
	GapHeight  float64
	Width      float64
	Speed      float64 // Leftward speed in px/s
	Passed     bool    // Whether the bird has cleared this pipe (for scoring)
}

// Move shifts the pipe left for one frame.
func (p *Pipe) Move(dt time.Duration) {
	p.X -= p.Speed * dt.Seconds()
}

// GapTop returns the y-coordinate of the upper edge of the gap.
func (p Pipe) GapTop() float64 {
	return p.GapCenterY - p.GapHeight/2
}

// GapBottom returns the y-coordinate of the lower edge of the gap.
func (p Pipe) GapBottom() float64 {
	return p.GapCenterY + p.GapHeight/2
}

// Collides reports whether the bird's box overlaps the pipe body.
// Without horizontal overlap there is never a collision.
func (p Pipe) Collides(b *Bird) bool {
	if !(b.Pos.X+b.Radius > p.X && b.Pos.X-b.Radius < p.X+p.Width) {
		return false
	}
	return b.Pos.Y-b.Radius < p.GapTop() || b.Pos.Y+b.Radius > p.GapBottom()
}

// OffScreen reports whether the pipe has fully left the play area.
// The extra width covers the sprite overhang.
func (p Pipe) OffScreen() bool {
	return p.X+2*p.Width < 0
}

// TopRect returns the collision rectangle for the top portion of the pipe.
func (p Pipe) TopRect() core.RectF {
	return core.NewRectF(p.X, 0, p.Width, p.GapTop())
}

// BottomRect returns the collision rectangle for the bottom portion of the pipe.
func (p Pipe) BottomRect(floorY float64) core.RectF {
	return core.NewRectF(p.X, p.GapBottom(), p.Width, floorY-p.GapBottom())
}

// GapRect returns the safe opening between the two halves.
func (p Pipe) GapRect() core.RectF {
	return core.NewRectF(p.X, p.GapTop(), p.Width, p.GapHeight)
}

// PipeManager handles spawning, movement, scoring and removal of pipes.
type PipeManager struct {
	pipes      []Pipe
	rng        *rand.Rand
	spawnTimer time.Duration
	cfg        config.PipesConfig
	worldW     float64
}

// NewPipeManager creates a new pipe manager with the given RNG seed.
func NewPipeManager(seed int64, cfg config.FlappyConfig) *PipeManager {
	pm := &PipeManager{
		pipes:  make([]Pipe, 0, 8),
		cfg:    cfg.Pipes,
		worldW: cfg.World.Width,
	}
	pm.Reset(seed)
	return pm
}

// Reset clears all pipes, the spawn timer and reseeds the RNG.
func (pm *PipeManager) Reset(seed int64) {
	pm.pipes = pm.pipes[:0]
	pm.rng = rand.New(rand.NewSource(seed))
	pm.spawnTimer = 0
}

// Update spawns due pipes, moves every pipe and drops those that left the screen.
// It returns how many pipes were spawned and how many the bird cleared.
//
// The spawn timer is decremented by the interval rather than zeroed, so the
// cadence does not drift under uneven frame times.
func (pm *PipeManager) Update(b *Bird, dt time.Duration) (spawned, passed int) {
	pm.spawnTimer += dt
	for pm.spawnTimer >= pm.cfg.SpawnInterval {
		pm.spawn()
		pm.spawnTimer -= pm.cfg.SpawnInterval
		spawned++
	}

	for i := range pm.pipes {
		p := &pm.pipes[i]
		p.Move(dt)
		if !p.Passed && p.X+p.Width < b.Pos.X {
			p.Passed = true
			b.Score++
			passed++
		}
	}

	valid := pm.pipes[:0]
	for _, p := range pm.pipes {
		if !p.OffScreen() {
			valid = append(valid, p)
		}
	}
	pm.pipes = valid

	return spawned, passed
}

// spawn appends a pipe just past the right edge with a random gap center.
func (pm *PipeManager) spawn() {
	span := pm.cfg.MaxGapCenter - pm.cfg.MinGapCenter
	pm.pipes = append(pm.pipes, Pipe{
		X:          pm.worldW + pm.cfg.SpawnMargin,
		GapCenterY: pm.cfg.MinGapCenter + pm.rng.Float64()*span,
		GapHeight:  pm.cfg.GapHeight,
		Width:      pm.cfg.Width,
		Speed:      pm.cfg.Speed,
	})
}

// CheckCollisions reports whether any pipe collides with the bird.
func (pm *PipeManager) CheckCollisions(b *Bird) bool {
	for _, p := range pm.pipes {
		if p.Collides(b) {
			return true
		}
	}
	return false
}

// Pipes returns the current list of pipes in spawn order.
func (pm *PipeManager) Pipes() []Pipe {
	return pm.pipes
}

// SpawnTimer returns the time accumulated towards the next spawn.
func (pm *PipeManager) SpawnTimer() time.Duration {
	return pm.spawnTimer
}
