package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Up is the world vertical axis.
var Up = mgl64.Vec3{0, 1, 0}

// Transform is a rigid pose: rotation followed by translation.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// Identity returns the pose at the origin with no rotation.
func Identity() Transform {
	return Transform{Rotation: mgl64.QuatIdent()}
}

// At returns an upright pose at p.
func At(p mgl64.Vec3) Transform {
	return Transform{Position: p, Rotation: mgl64.QuatIdent()}
}

// WithYaw returns an upright pose at p rotated by angle radians about Up.
func WithYaw(p mgl64.Vec3, angle float64) Transform {
	return Transform{Position: p, Rotation: mgl64.QuatRotate(angle, Up)}
}

// Yaw extracts the rotation about Up, in radians.
func (t Transform) Yaw() float64 {
	fwd := t.Rotation.Rotate(mgl64.Vec3{1, 0, 0})
	return math.Atan2(-fwd.Z(), fwd.X())
}

// Mat4 returns the 4×4 world matrix of the pose.
func (t Transform) Mat4() mgl64.Mat4 {
	return mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).Mul4(t.Rotation.Mat4())
}

// Apply maps a point from body-local space to world space.
func (t Transform) Apply(local mgl64.Vec3) mgl64.Vec3 {
	return t.Position.Add(t.Rotation.Rotate(local))
}

// ApproxEqual compares two poses within a small tolerance.
func (t Transform) ApproxEqual(o Transform) bool {
	if !t.Position.ApproxEqualThreshold(o.Position, 1e-9) {
		return false
	}
	return t.Rotation.OrientationEqualThreshold(o.Rotation, 1e-9)
}
