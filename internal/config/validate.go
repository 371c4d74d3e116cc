package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid is wrapped by every configuration error.
var ErrInvalid = errors.New("config: invalid")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}

// Validate checks that the configuration describes a playable game.
// All violations are reported together.
func (c FlappyConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, invalidf(format, args...))
		}
	}
	positive := func(name string, v float64) {
		check(v > 0 && !math.IsInf(v, 0), "%s must be positive, got %v", name, v)
	}

	positive("world.width", c.World.Width)
	positive("world.height", c.World.Height)
	check(c.World.GroundHeight >= 0, "world.ground_height must not be negative, got %v", c.World.GroundHeight)
	check(c.World.GroundHeight < c.World.Height, "world.ground_height %v must be below world.height %v", c.World.GroundHeight, c.World.Height)
	check(c.World.GroundTile >= 0, "world.ground_tile must not be negative, got %v", c.World.GroundTile)

	positive("bird.radius", c.Bird.Radius)
	check(c.Bird.X >= 0 && c.Bird.X <= c.World.Width, "bird.x %v must be inside the play area", c.Bird.X)
	check(c.Bird.Y-c.Bird.Radius >= 0 && c.Bird.Y+c.Bird.Radius <= c.FloorY(),
		"bird.y %v with radius %v must start between the ceiling and the ground", c.Bird.Y, c.Bird.Radius)

	positive("physics.jump_amount", c.Physics.JumpAmount)
	check(c.Physics.JumpDuration > 0, "physics.jump_duration must be positive, got %v", c.Physics.JumpDuration)
	positive("physics.fall_acceleration", c.Physics.FallAcceleration)
	positive("physics.terminal_velocity", c.Physics.TerminalVelocity)
	positive("physics.rotation_falloff_speed", c.Physics.RotationFalloffSpeed)
	check(c.Physics.MaxRotationUp <= 0, "physics.max_rotation_up must be <= 0, got %v", c.Physics.MaxRotationUp)
	check(c.Physics.MaxRotationDown >= 0, "physics.max_rotation_down must be >= 0, got %v", c.Physics.MaxRotationDown)

	positive("pipes.speed", c.Pipes.Speed)
	positive("pipes.width", c.Pipes.Width)
	check(c.Pipes.SpawnInterval > 0, "pipes.spawn_interval must be positive, got %v", c.Pipes.SpawnInterval)
	check(c.Pipes.SpawnMargin >= 0, "pipes.spawn_margin must not be negative, got %v", c.Pipes.SpawnMargin)
	positive("pipes.gap_height", c.Pipes.GapHeight)
	check(c.Pipes.MinGapCenter <= c.Pipes.MaxGapCenter,
		"pipes.min_gap_center %v must not exceed pipes.max_gap_center %v", c.Pipes.MinGapCenter, c.Pipes.MaxGapCenter)
	check(c.Pipes.GapHeight < c.FloorY(), "pipes.gap_height %v must fit above the ground", c.Pipes.GapHeight)
	check(c.Pipes.GapHeight > 2*c.Bird.Radius, "pipes.gap_height %v must be wider than the bird", c.Pipes.GapHeight)

	check(c.Theme.NightEvery >= 0, "theme.night_every must not be negative, got %d", c.Theme.NightEvery)

	return errors.Join(errs...)
}
