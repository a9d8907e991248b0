package config

import (
	_ "embed"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-bowling/internal/physics"
)

//go:embed defaults/bowling.yaml
var defaultBowlingYAML []byte

// DefaultBowlingConfig returns the default lane configuration.
func DefaultBowlingConfig() BowlingConfig {
	return BowlingConfig{
		Physics: PhysicsConfig{
			Gravity:           10,
			StepHz:            60,
			StallGuard:        1.0,
			Iterations:        10,
			SleepTime:         0.5,
			IdleSpeed:         0.1,
			RollingResistance: 0.02,
		},
		Ball: BallConfig{
			Radius:         1,
			Density:        1200,
			Rest:           mgl64.Vec3{-1, 3, 30},
			LaunchVelocity: mgl64.Vec3{0, 0, -50},
			Nudge:          0.1,
			Material: physics.Material{
				StaticFriction:  0.3,
				DynamicFriction: 0.3,
				Restitution:     0.1,
			},
		},
		Pins: PinConfig{
			HalfExtents:     mgl64.Vec3{0.5, 3, 0.5},
			Density:         300,
			CenterOfMass:    mgl64.Vec3{0, -0.3, 0},
			WakeCounter:     1,
			KnockedDistance: 0.5,
			Material: physics.Material{
				StaticFriction:  0.5,
				DynamicFriction: 0.5,
				Restitution:     0.2,
			},
		},
		Ground: GroundConfig{
			Material: physics.Material{
				StaticFriction:  0.5,
				DynamicFriction: 0.5,
				Restitution:     0.6,
			},
		},
	}
}
