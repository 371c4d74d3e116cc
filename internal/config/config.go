// Package config provides YAML-based game configuration loading, validation
// and difficulty presets for the flappy platform.
package config

import "time"

// FlappyConfig contains every tunable of the simulation.
// Values are world units (pixels of an 800x600 play area) and durations.
type FlappyConfig struct {
	World   WorldConfig   `yaml:"world"`
	Bird    BirdConfig    `yaml:"bird"`
	Physics PhysicsConfig `yaml:"physics"`
	Pipes   PipesConfig   `yaml:"pipes"`
	Theme   ThemeConfig   `yaml:"theme"`
	Debug   bool          `yaml:"debug"` // Draw collision boxes
}

// WorldConfig defines the play area.
type WorldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundHeight float64 `yaml:"ground_height"`
	GroundTile   float64 `yaml:"ground_tile"` // Scroll period of the ground pattern
}

// BirdConfig defines the player's spawn point and hitbox.
type BirdConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

// PhysicsConfig defines jump and fall kinematics.
type PhysicsConfig struct {
	JumpAmount           float64       `yaml:"jump_amount"`
	JumpDuration         time.Duration `yaml:"jump_duration"`
	FallAcceleration     float64       `yaml:"fall_acceleration"`
	TerminalVelocity     float64       `yaml:"terminal_velocity"`
	RotationFalloffSpeed float64       `yaml:"rotation_falloff_speed"`
	MaxRotationUp        float64       `yaml:"max_rotation_up"`
	MaxRotationDown      float64       `yaml:"max_rotation_down"`
}

// PipesConfig defines obstacle spawning and motion.
type PipesConfig struct {
	Speed         float64       `yaml:"speed"`
	Width         float64       `yaml:"width"`
	SpawnInterval time.Duration `yaml:"spawn_interval"`
	SpawnMargin   float64       `yaml:"spawn_margin"`
	GapHeight     float64       `yaml:"gap_height"`
	MinGapCenter  float64       `yaml:"min_gap_center"`
	MaxGapCenter  float64       `yaml:"max_gap_center"`
}

// ThemeConfig controls the day/night palette switch.
type ThemeConfig struct {
	// NightEvery toggles between day and night every N points. 0 keeps day.
	NightEvery int `yaml:"night_every"`
}

// FloorY returns the y-coordinate of the top of the ground.
func (c FlappyConfig) FloorY() float64 {
	return c.World.Height - c.World.GroundHeight
}

// DifficultyPreset represents a named difficulty level.
// Presets are applied once before a game is built; they never change mid-run.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI value to a preset. Empty input yields "".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "":
		return "", nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), nil
	}
	return "", invalidf("difficulty: unknown preset %q (want easy, normal or hard)", s)
}
