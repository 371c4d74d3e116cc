package flappy

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// MotionPhase selects which kinematic rule moves the bird.
type MotionPhase int

const (
	PhaseFalling MotionPhase = iota
	PhaseJumping
)

func (p MotionPhase) String() string {
	if p == PhaseJumping {
		return "Jumping"
	}
	return "Falling"
}

// Bird is the player-controlled entity.
//
// Jumps are time-driven: the arc is a function of the time since Jump, not an
// integration of velocity, so jump height and duration do not depend on frame
// pacing. Falling is semi-implicit Euler with a terminal velocity.
type Bird struct {
	Pos      core.Vec2
	VY       float64 // Vertical velocity in px/s, positive is down
	Rotation float64 // Visual tilt in degrees
	Phase    MotionPhase
	Radius   float64
	Score    int
	Best     int

	now          time.Duration // Bird clock, advanced by Update
	jumpStart    time.Duration
	initialJumpY float64

	physics config.PhysicsConfig
}

// NewBird creates a bird at the configured spawn point.
func NewBird(cfg config.FlappyConfig, best int) *Bird {
	b := &Bird{
		Radius:  cfg.Bird.Radius,
		Best:    best,
		physics: cfg.Physics,
	}
	b.reset(cfg.Bird)
	return b
}

func (b *Bird) reset(spawn config.BirdConfig) {
	b.Pos = core.Vec2{X: spawn.X, Y: spawn.Y}
	b.VY = 0
	b.Rotation = 0
	b.Phase = PhaseFalling
	b.Score = 0
	b.now = 0
	b.jumpStart = 0
	b.initialJumpY = spawn.Y
}

// Jump starts a new jump arc from the current height.
// Calling it mid-jump restarts the arc.
func (b *Bird) Jump() {
	b.Phase = PhaseJumping
	b.jumpStart = b.now
	b.initialJumpY = b.Pos.Y
	b.VY = 0
}

// Update advances the bird by one frame.
func (b *Bird) Update(dt time.Duration) {
	b.now += dt

	if b.Phase == PhaseJumping {
		b.updateJump()
	} else {
		b.updateFall(dt.Seconds())
	}

	b.updateRotation()
}

func (b *Bird) updateJump() {
	p := b.physics
	elapsed := b.now - b.jumpStart

	if elapsed >= p.JumpDuration {
		b.Phase = PhaseFalling
		b.VY = 0
		b.Pos.Y = b.initialJumpY - p.JumpAmount
		return
	}

	progress := float64(elapsed) / float64(p.JumpDuration)
	easeOut := 1 - (1-progress)*(1-progress)
	b.Pos.Y = b.initialJumpY - p.JumpAmount*easeOut
	b.VY = -(p.JumpAmount / p.JumpDuration.Seconds()) * (1 - progress)
}

func (b *Bird) updateFall(dts float64) {
	b.VY += b.physics.FallAcceleration * dts
	b.VY = math.Min(b.VY, b.physics.TerminalVelocity)
	b.Pos.Y += b.VY * dts
}

func (b *Bird) updateRotation() {
	if b.Phase == PhaseJumping || b.VY < 0 {
		b.Rotation = b.physics.MaxRotationUp
		return
	}
	progress := core.ClampF(b.VY/b.physics.RotationFalloffSpeed, 0, 1)
	b.Rotation = progress * b.physics.MaxRotationDown
}

// OutOfBounds reports whether the bird touches the ceiling or the ground.
func (b *Bird) OutOfBounds(playAreaHeight, groundHeight float64) bool {
	return b.Pos.Y-b.Radius < 0 || b.Pos.Y+b.Radius > playAreaHeight-groundHeight
}

// Rect returns the bird's bounding box.
func (b *Bird) Rect() core.RectF {
	return core.NewRectF(b.Pos.X-b.Radius, b.Pos.Y-b.Radius, 2*b.Radius, 2*b.Radius)
}
