package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in configuration.
// It mirrors defaults/flappy.yaml and is used when the embedded file is unreadable.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: WorldConfig{
			Width:        800,
			Height:       600,
			GroundHeight: 50,
			GroundTile:   200,
		},
		Bird: BirdConfig{
			X:      100,
			Y:      250,
			Radius: 20,
		},
		Physics: PhysicsConfig{
			JumpAmount:           80,
			JumpDuration:         266 * time.Millisecond,
			FallAcceleration:     500,
			TerminalVelocity:     400,
			RotationFalloffSpeed: 300,
			MaxRotationUp:        -20,
			MaxRotationDown:      90,
		},
		Pipes: PipesConfig{
			Speed:         300,
			Width:         52,
			SpawnInterval: 1500 * time.Millisecond,
			SpawnMargin:   100,
			GapHeight:     200,
			MinGapCenter:  50,
			MaxGapCenter:  400,
		},
		Theme: ThemeConfig{
			NightEvery: 10,
		},
	}
}
