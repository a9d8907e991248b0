// Package physics defines the rigid-body world the lane simulation drives.
// Implementations own all bodies; callers hold only BodyID handles.
package physics

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyID is an opaque handle to a body owned by a World.
// The zero value never names a body.
type BodyID uint32

// NoBody is the zero BodyID.
const NoBody BodyID = 0

var (
	// ErrUnknownBody is returned when a BodyID does not belong to the world.
	ErrUnknownBody = errors.New("physics: unknown body")
	// ErrBackReferenceSet is returned when a body is bound a second time.
	ErrBackReferenceSet = errors.New("physics: back-reference already attached")
	// ErrInvalidShape is returned for shapes with non-positive extents.
	ErrInvalidShape = errors.New("physics: invalid shape")
	// ErrInvalidMaterial is returned for negative friction or restitution.
	ErrInvalidMaterial = errors.New("physics: invalid material")
)

// ShapeKind selects the collision geometry of a body.
type ShapeKind int

const (
	ShapePlane ShapeKind = iota // infinite ground plane facing +Y
	ShapeBox
	ShapeSphere
)

func (k ShapeKind) String() string {
	switch k {
	case ShapePlane:
		return "plane"
	case ShapeBox:
		return "box"
	case ShapeSphere:
		return "sphere"
	default:
		return "unknown"
	}
}

// Shape describes collision geometry in body-local space.
type Shape struct {
	Kind        ShapeKind
	HalfExtents mgl64.Vec3 // ShapeBox only
	Radius      float64    // ShapeSphere only
}

// Plane returns an infinite ground plane shape.
func Plane() Shape { return Shape{Kind: ShapePlane} }

// Box returns a box shape with the given half extents.
func Box(halfExtents mgl64.Vec3) Shape { return Shape{Kind: ShapeBox, HalfExtents: halfExtents} }

// Sphere returns a sphere shape with the given radius.
func Sphere(radius float64) Shape { return Shape{Kind: ShapeSphere, Radius: radius} }

// Volume returns the shape volume, or 0 for the plane.
func (s Shape) Volume() float64 {
	switch s.Kind {
	case ShapeBox:
		return 8 * s.HalfExtents.X() * s.HalfExtents.Y() * s.HalfExtents.Z()
	case ShapeSphere:
		return 4.0 / 3.0 * math.Pi * s.Radius * s.Radius * s.Radius
	default:
		return 0
	}
}

// Validate reports whether the shape can be instantiated.
func (s Shape) Validate() error {
	switch s.Kind {
	case ShapePlane:
		return nil
	case ShapeBox:
		if s.HalfExtents.X() <= 0 || s.HalfExtents.Y() <= 0 || s.HalfExtents.Z() <= 0 {
			return ErrInvalidShape
		}
		return nil
	case ShapeSphere:
		if s.Radius <= 0 {
			return ErrInvalidShape
		}
		return nil
	default:
		return ErrInvalidShape
	}
}

// Material holds contact response coefficients.
type Material struct {
	StaticFriction  float64 `yaml:"static_friction"`
	DynamicFriction float64 `yaml:"dynamic_friction"`
	Restitution     float64 `yaml:"restitution"`
}

// Validate reports whether the coefficients are usable.
func (m Material) Validate() error {
	if m.StaticFriction < 0 || m.DynamicFriction < 0 || m.Restitution < 0 {
		return ErrInvalidMaterial
	}
	return nil
}

// BodyDesc describes a body to create.
type BodyDesc struct {
	Name     string // diagnostic label
	Shape    Shape
	Material Material
	Pose     Transform

	// Dynamic bodies only.
	Density      float64
	CenterOfMass mgl64.Vec3 // offset from the shape origin in body space
	LockYaw      bool       // forbid rotation about the vertical axis
}

// World is the rigid-body engine as seen by the lane simulation.
// All methods must be called from the goroutine that owns the world.
type World interface {
	CreateStatic(desc BodyDesc) (BodyID, error)
	CreateDynamic(desc BodyDesc) (BodyID, error)

	// AttachBackReference stores ref on the body. It succeeds once per body.
	AttachBackReference(id BodyID, ref int) error
	BackReference(id BodyID) (int, bool)

	// Bodies lists every body in creation order.
	Bodies() []BodyID

	// Step advances the simulation by h seconds.
	Step(h float64)

	Pose(id BodyID) Transform
	IsSleeping(id BodyID) bool

	SetLinearVelocity(id BodyID, v mgl64.Vec3)
	SetAngularVelocity(id BodyID, w mgl64.Vec3)
	// ClearForces drops accumulated force and torque.
	ClearForces(id BodyID)
	// Wake keeps the body simulated for at least counter seconds.
	Wake(id BodyID, counter float64)
	// SetPose teleports the body.
	SetPose(id BodyID, pose Transform)
}
