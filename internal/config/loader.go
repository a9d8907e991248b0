package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBowling loads lane configuration.
// Search order: customPath -> ~/.bowling/configs/bowling.yaml -> ./configs/bowling.yaml -> embedded default.
// Files are layered over the defaults, so they only need the keys they change.
func LoadBowling(customPath string) (BowlingConfig, error) {
	cfg := DefaultBowlingConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{"configs/bowling.yaml"}
	if userCfgPath := userConfigPath("bowling.yaml"); userCfgPath != "" {
		candidates = append([]string{userCfgPath}, candidates...)
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		layered := DefaultBowlingConfig()
		if err := yaml.Unmarshal(data, &layered); err != nil {
			continue
		}
		if layered.Validate() == nil {
			return layered, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultBowlingYAML, &cfg); err != nil {
		return DefaultBowlingConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with.
func (c BowlingConfig) Validate() error {
	var errs []error
	if c.Physics.StepHz <= 0 {
		errs = append(errs, fmt.Errorf("physics.step_hz must be positive, got %v", c.Physics.StepHz))
	}
	if c.Physics.StallGuard <= 0 {
		errs = append(errs, fmt.Errorf("physics.stall_guard must be positive, got %v", c.Physics.StallGuard))
	}
	if c.Physics.Gravity < 0 {
		errs = append(errs, fmt.Errorf("physics.gravity must not be negative, got %v", c.Physics.Gravity))
	}
	if c.Ball.Radius <= 0 {
		errs = append(errs, fmt.Errorf("ball.radius must be positive, got %v", c.Ball.Radius))
	}
	if c.Ball.Density <= 0 {
		errs = append(errs, fmt.Errorf("ball.density must be positive, got %v", c.Ball.Density))
	}
	if c.Pins.Density <= 0 {
		errs = append(errs, fmt.Errorf("pins.density must be positive, got %v", c.Pins.Density))
	}
	he := c.Pins.HalfExtents
	if he.X() <= 0 || he.Y() <= 0 || he.Z() <= 0 {
		errs = append(errs, fmt.Errorf("pins.half_extents must be positive, got %v", he))
	}
	if c.Pins.WakeCounter < 0 {
		errs = append(errs, fmt.Errorf("pins.wake_counter must not be negative, got %v", c.Pins.WakeCounter))
	}
	if err := c.Ball.Material.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("ball.material: %w", err))
	}
	if err := c.Pins.Material.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("pins.material: %w", err))
	}
	if err := c.Ground.Material.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("ground.material: %w", err))
	}
	return errors.Join(errs...)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bowling", "configs", filename)
}
