// Package chipmunk implements physics.World with Chipmunk2D.
//
// The lane is simulated from above: world X and Z map onto the cp plane and
// every body keeps the height it was created or last posed at. Rotation is
// yaw only. Contact with the ground plane is modelled as Coulomb friction
// applied during velocity integration, so the cp space itself runs without
// gravity.
package chipmunk

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/tui-bowling/internal/physics"
)

// Settings tunes the cp space.
type Settings struct {
	Gravity           float64 // downward acceleration pressing bodies onto the lane
	Iterations        uint    // solver iterations per step
	SleepTime         float64 // idle seconds before a body sleeps
	IdleSpeed         float64 // speed below which a body counts as idle
	RollingResistance float64 // friction coefficient for spheres rolling on the lane
}

// DefaultSettings returns settings matching the default lane config.
func DefaultSettings() Settings {
	return Settings{
		Gravity:           10,
		Iterations:        10,
		SleepTime:         0.5,
		IdleSpeed:         0.1,
		RollingResistance: 0.02,
	}
}

type entry struct {
	id       physics.BodyID
	name     string
	body     *cp.Body
	kind     physics.ShapeKind
	dynamic  bool
	height   float64
	friction float64
	hasRef   bool

	awakeUntil float64
}

// World is a cp-backed physics.World. It is not safe for concurrent use.
type World struct {
	space    *cp.Space
	settings Settings
	entries  []*entry

	laneFriction float64
	time         float64
}

var _ physics.World = (*World)(nil)

// New creates an empty world.
func New(s Settings) *World {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	if s.Iterations > 0 {
		space.Iterations = s.Iterations
	}
	if s.SleepTime > 0 {
		space.SleepTimeThreshold = s.SleepTime
	}
	space.IdleSpeedThreshold = s.IdleSpeed

	return &World{space: space, settings: s}
}

// Time returns the simulated seconds stepped so far.
func (w *World) Time() float64 {
	return w.time
}

func (w *World) lookup(id physics.BodyID) (*entry, bool) {
	i := int(id) - 1
	if i < 0 || i >= len(w.entries) {
		return nil, false
	}
	return w.entries[i], true
}

func (w *World) add(e *entry) physics.BodyID {
	e.id = physics.BodyID(len(w.entries) + 1)
	w.entries = append(w.entries, e)
	return e.id
}

func validate(desc physics.BodyDesc) error {
	if err := desc.Shape.Validate(); err != nil {
		return fmt.Errorf("%s %q: %w", desc.Shape.Kind, desc.Name, err)
	}
	if err := desc.Material.Validate(); err != nil {
		return fmt.Errorf("%q: %w", desc.Name, err)
	}
	return nil
}

func toPlane(p mgl64.Vec3) cp.Vector {
	return cp.Vector{X: p.X(), Y: p.Z()}
}

// CreateStatic adds an immovable body. A plane becomes the lane surface and
// sets the friction dynamic bodies slide against.
func (w *World) CreateStatic(desc physics.BodyDesc) (physics.BodyID, error) {
	if err := validate(desc); err != nil {
		return physics.NoBody, err
	}

	body := cp.NewStaticBody()
	body.SetPosition(toPlane(desc.Pose.Position))
	body.SetAngle(-desc.Pose.Yaw())
	w.space.AddBody(body)

	switch desc.Shape.Kind {
	case physics.ShapePlane:
		w.laneFriction = desc.Material.DynamicFriction
	default:
		shape := w.space.AddShape(newShape(body, desc.Shape))
		shape.SetFriction(desc.Material.DynamicFriction)
		shape.SetElasticity(desc.Material.Restitution)
	}

	return w.add(&entry{
		name:     desc.Name,
		body:     body,
		kind:     desc.Shape.Kind,
		height:   desc.Pose.Position.Y(),
		friction: desc.Material.DynamicFriction,
	}), nil
}

// CreateDynamic adds a simulated body whose mass follows from its density
// and three-dimensional volume.
func (w *World) CreateDynamic(desc physics.BodyDesc) (physics.BodyID, error) {
	if err := validate(desc); err != nil {
		return physics.NoBody, err
	}
	if desc.Shape.Kind == physics.ShapePlane {
		return physics.NoBody, fmt.Errorf("plane %q cannot be dynamic: %w", desc.Name, physics.ErrInvalidShape)
	}
	mass := desc.Density * desc.Shape.Volume()
	if mass <= 0 || math.IsInf(mass, 0) || math.IsNaN(mass) {
		return physics.NoBody, fmt.Errorf("body %q: non-positive mass %v", desc.Name, mass)
	}

	var moment float64
	switch {
	case desc.LockYaw:
		moment = cp.INFINITY
	case desc.Shape.Kind == physics.ShapeBox:
		he := desc.Shape.HalfExtents
		moment = cp.MomentForBox(mass, 2*he.X(), 2*he.Z())
	default:
		moment = 0.4 * mass * desc.Shape.Radius * desc.Shape.Radius
	}

	body := cp.NewBody(mass, moment)
	body.SetPosition(toPlane(desc.Pose.Position))
	body.SetAngle(-desc.Pose.Yaw())
	w.space.AddBody(body)

	shape := w.space.AddShape(newShape(body, desc.Shape))
	shape.SetFriction(desc.Material.DynamicFriction)
	shape.SetElasticity(desc.Material.Restitution)

	e := &entry{
		name:     desc.Name,
		body:     body,
		kind:     desc.Shape.Kind,
		dynamic:  true,
		height:   desc.Pose.Position.Y(),
		friction: desc.Material.DynamicFriction,
	}
	body.SetVelocityUpdateFunc(w.groundContact(e))
	return w.add(e), nil
}

func newShape(body *cp.Body, s physics.Shape) *cp.Shape {
	if s.Kind == physics.ShapeSphere {
		return cp.NewCircle(body, s.Radius, cp.Vector{})
	}
	return cp.NewBox(body, 2*s.HalfExtents.X(), 2*s.HalfExtents.Z(), 0)
}

// groundContact integrates velocity with kinetic friction against the lane.
// The friction is folded into the damping factor because the cp setters
// would reset the body's idle timer and keep it from ever sleeping.
func (w *World) groundContact(e *entry) cp.BodyVelocityFunc {
	return func(body *cp.Body, gravity cp.Vector, damping, dt float64) {
		mu := (w.laneFriction + e.friction) / 2
		if e.kind == physics.ShapeSphere {
			mu = w.settings.RollingResistance
		}

		factor := damping
		if speed := body.Velocity().Length(); speed > 0 {
			factor *= math.Max(0, 1-mu*w.settings.Gravity*dt/speed)
		}
		cp.BodyUpdateVelocity(body, gravity, factor, dt)
	}
}

// AttachBackReference stores ref in the body's user data.
func (w *World) AttachBackReference(id physics.BodyID, ref int) error {
	e, ok := w.lookup(id)
	if !ok {
		return physics.ErrUnknownBody
	}
	if e.hasRef {
		return fmt.Errorf("body %q: %w", e.name, physics.ErrBackReferenceSet)
	}
	e.body.UserData = ref
	e.hasRef = true
	return nil
}

// BackReference returns the reference attached to the body, if any.
func (w *World) BackReference(id physics.BodyID) (int, bool) {
	e, ok := w.lookup(id)
	if !ok || !e.hasRef {
		return 0, false
	}
	ref, ok := e.body.UserData.(int)
	return ref, ok
}

// Bodies lists every body in creation order.
func (w *World) Bodies() []physics.BodyID {
	ids := make([]physics.BodyID, len(w.entries))
	for i, e := range w.entries {
		ids[i] = e.id
	}
	return ids
}

// Step advances the space by h seconds.
func (w *World) Step(h float64) {
	w.space.Step(h)
	w.time += h
}

// Pose returns the body's world pose, or the identity for unknown bodies.
func (w *World) Pose(id physics.BodyID) physics.Transform {
	e, ok := w.lookup(id)
	if !ok {
		return physics.Identity()
	}
	p := e.body.Position()
	return physics.WithYaw(mgl64.Vec3{p.X, e.height, p.Y}, -e.body.Angle())
}

// IsSleeping reports whether a dynamic body is at rest and past its wake
// counter. Static bodies never move and always report true.
func (w *World) IsSleeping(id physics.BodyID) bool {
	e, ok := w.lookup(id)
	if !ok {
		return false
	}
	if !e.dynamic {
		return true
	}
	return e.body.IsSleeping() && w.time >= e.awakeUntil
}

func (w *World) dynamicBody(id physics.BodyID) *cp.Body {
	e, ok := w.lookup(id)
	if !ok || !e.dynamic {
		return nil
	}
	return e.body
}

// SetLinearVelocity sets the planar velocity; the vertical component is dropped.
func (w *World) SetLinearVelocity(id physics.BodyID, v mgl64.Vec3) {
	if body := w.dynamicBody(id); body != nil {
		body.SetVelocityVector(toPlane(v))
	}
}

// SetAngularVelocity sets the yaw rate; other components are dropped.
func (w *World) SetAngularVelocity(id physics.BodyID, av mgl64.Vec3) {
	if body := w.dynamicBody(id); body != nil {
		body.SetAngularVelocity(-av.Y())
	}
}

// ClearForces drops accumulated force and torque.
func (w *World) ClearForces(id physics.BodyID) {
	if body := w.dynamicBody(id); body != nil {
		body.SetForce(cp.Vector{})
		body.SetTorque(0)
	}
}

// Wake activates the body and keeps it reported awake for counter seconds.
func (w *World) Wake(id physics.BodyID, counter float64) {
	e, ok := w.lookup(id)
	if !ok || !e.dynamic {
		return
	}
	e.body.Activate()
	e.awakeUntil = w.time + counter
}

// SetPose teleports a dynamic body. Static bodies are left in place.
func (w *World) SetPose(id physics.BodyID, pose physics.Transform) {
	e, ok := w.lookup(id)
	if !ok || !e.dynamic {
		return
	}
	e.body.SetPosition(toPlane(pose.Position))
	e.body.SetAngle(-pose.Yaw())
	e.height = pose.Position.Y()
}
