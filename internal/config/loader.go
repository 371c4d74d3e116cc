package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadFlappy loads the game configuration and validates it.
// Search order: customPath -> ~/.flappy/configs/flappy.yaml -> ./configs/flappy.yaml -> embedded default.
// Files are decoded over the defaults, so partial files only override what they name.
func LoadFlappy(customPath string) (FlappyConfig, error) {
	cfg, err := loadFlappy(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFlappy(customPath string) (FlappyConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return FlappyConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseFlappy(data)
		if err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("flappy.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseFlappy(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/flappy.yaml"); err == nil {
		if cfg, err := ParseFlappy(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseFlappy(defaultFlappyYAML)
	if err != nil {
		return DefaultFlappyConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseFlappy decodes YAML on top of DefaultFlappyConfig.
func ParseFlappy(data []byte) (FlappyConfig, error) {
	cfg := DefaultFlappyConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flappy", "configs", filename)
}

// ApplyFlappyPreset modifies the config based on a difficulty preset.
// Gap height and spawn cadence are fixed for the whole run. Every preset
// sets the same fields, so the result does not depend on what was applied before.
func ApplyFlappyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	def := DefaultFlappyConfig()
	switch preset {
	case DifficultyEasy:
		cfg.Pipes.GapHeight = 240
		cfg.Pipes.SpawnInterval = 1800 * time.Millisecond
		cfg.Pipes.Speed = def.Pipes.Speed
	case DifficultyHard:
		cfg.Pipes.GapHeight = 160
		cfg.Pipes.SpawnInterval = 1200 * time.Millisecond
		cfg.Pipes.Speed = 360
	case DifficultyNormal:
		cfg.Pipes.GapHeight = def.Pipes.GapHeight
		cfg.Pipes.SpawnInterval = def.Pipes.SpawnInterval
		cfg.Pipes.Speed = def.Pipes.Speed
	}
}
