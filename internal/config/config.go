// Package config provides YAML-based lane configuration loading.
package config

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-bowling/internal/physics"
)

// BowlingConfig contains all tunables of a lane.
type BowlingConfig struct {
	Physics PhysicsConfig `yaml:"physics"`
	Ball    BallConfig    `yaml:"ball"`
	Pins    PinConfig     `yaml:"pins"`
	Ground  GroundConfig  `yaml:"ground"`
	Rules   RulesConfig   `yaml:"rules"`
}

// PhysicsConfig defines world and timestep parameters.
type PhysicsConfig struct {
	Gravity           float64 `yaml:"gravity"`
	StepHz            float64 `yaml:"step_hz"`     // fixed physics steps per simulated second
	StallGuard        float64 `yaml:"stall_guard"` // frame times at or above this are dropped
	Iterations        uint    `yaml:"iterations"`
	SleepTime         float64 `yaml:"sleep_time"`
	IdleSpeed         float64 `yaml:"idle_speed"`
	RollingResistance float64 `yaml:"rolling_resistance"`
}

// Step returns the fixed step size in seconds.
func (p PhysicsConfig) Step() float64 {
	return 1 / p.StepHz
}

// BallConfig defines the ball body and how commands move it.
type BallConfig struct {
	Radius         float64          `yaml:"radius"`
	Density        float64          `yaml:"density"`
	Rest           mgl64.Vec3       `yaml:"rest"`
	LaunchVelocity mgl64.Vec3       `yaml:"launch_velocity"`
	Nudge          float64          `yaml:"nudge"`
	Material       physics.Material `yaml:"material"`
}

// PinConfig defines the pin bodies.
type PinConfig struct {
	HalfExtents     mgl64.Vec3       `yaml:"half_extents"`
	Density         float64          `yaml:"density"`
	CenterOfMass    mgl64.Vec3       `yaml:"center_of_mass"`
	WakeCounter     float64          `yaml:"wake_counter"`
	KnockedDistance float64          `yaml:"knocked_distance"` // displacement that counts a pin as down
	Material        physics.Material `yaml:"material"`
}

// GroundConfig defines the lane surface.
type GroundConfig struct {
	Material physics.Material `yaml:"material"`
}

// RulesConfig toggles gameplay rules.
type RulesConfig struct {
	LockNudgeAfterLaunch bool `yaml:"lock_nudge_after_launch"`
}
