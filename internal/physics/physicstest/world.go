// Package physicstest provides a scripted in-memory physics.World for tests.
// Bodies never move on their own: tests pose them, flip their sleep flags
// and inspect the commands the code under test issued.
package physicstest

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-bowling/internal/physics"
)

// ErrInjected is returned by creation calls for names listed in FailOn.
var ErrInjected = errors.New("physicstest: injected failure")

// Body is the recorded state of one fake body.
type Body struct {
	Desc     physics.BodyDesc
	Static   bool
	Pose     physics.Transform
	Sleeping bool

	LinearVelocity  mgl64.Vec3
	AngularVelocity mgl64.Vec3
	Force           mgl64.Vec3 // set by tests; zeroed by ClearForces
	Torque          mgl64.Vec3

	Ref    int
	HasRef bool

	Wakes        int
	LastWake     float64
	VelocitySets int
	PoseSets     int
	ForceClears  int
}

// World implements physics.World without simulating anything.
type World struct {
	bodies []*Body

	// FailOn makes CreateStatic/CreateDynamic fail for the named bodies.
	FailOn map[string]bool
	// OnStep runs after every Step with the step size.
	OnStep func(h float64)

	Steps     []float64
	StepCount int
}

var _ physics.World = (*World)(nil)

// New returns an empty fake world.
func New() *World {
	return &World{FailOn: map[string]bool{}}
}

func (w *World) create(desc physics.BodyDesc, static bool) (physics.BodyID, error) {
	if w.FailOn[desc.Name] {
		return physics.NoBody, fmt.Errorf("create %q: %w", desc.Name, ErrInjected)
	}
	if err := desc.Shape.Validate(); err != nil {
		return physics.NoBody, err
	}
	if err := desc.Material.Validate(); err != nil {
		return physics.NoBody, err
	}
	w.bodies = append(w.bodies, &Body{Desc: desc, Static: static, Pose: desc.Pose})
	return physics.BodyID(len(w.bodies)), nil
}

func (w *World) CreateStatic(desc physics.BodyDesc) (physics.BodyID, error) {
	return w.create(desc, true)
}

func (w *World) CreateDynamic(desc physics.BodyDesc) (physics.BodyID, error) {
	return w.create(desc, false)
}

// Body returns the recorded state for id, or nil.
func (w *World) Body(id physics.BodyID) *Body {
	i := int(id) - 1
	if i < 0 || i >= len(w.bodies) {
		return nil
	}
	return w.bodies[i]
}

// Find returns the first body created with the given name.
func (w *World) Find(name string) (physics.BodyID, *Body) {
	for i, b := range w.bodies {
		if b.Desc.Name == name {
			return physics.BodyID(i + 1), b
		}
	}
	return physics.NoBody, nil
}

// AddUnbound creates a dynamic body with no back-reference, as a foreign
// subsystem sharing the world would.
func (w *World) AddUnbound(name string, pose physics.Transform) physics.BodyID {
	w.bodies = append(w.bodies, &Body{
		Desc: physics.BodyDesc{Name: name, Shape: physics.Sphere(1), Pose: pose},
		Pose: pose,
	})
	return physics.BodyID(len(w.bodies))
}

// SetAllSleeping sets the sleep flag of every dynamic body.
func (w *World) SetAllSleeping(sleeping bool) {
	for _, b := range w.bodies {
		if !b.Static {
			b.Sleeping = sleeping
		}
	}
}

func (w *World) AttachBackReference(id physics.BodyID, ref int) error {
	b := w.Body(id)
	if b == nil {
		return physics.ErrUnknownBody
	}
	if b.HasRef {
		return physics.ErrBackReferenceSet
	}
	b.Ref, b.HasRef = ref, true
	return nil
}

// ForceBackReference overwrites a body's reference, bypassing the
// attach-once rule, to simulate corrupted bindings.
func (w *World) ForceBackReference(id physics.BodyID, ref int) {
	if b := w.Body(id); b != nil {
		b.Ref, b.HasRef = ref, true
	}
}

func (w *World) BackReference(id physics.BodyID) (int, bool) {
	b := w.Body(id)
	if b == nil || !b.HasRef {
		return 0, false
	}
	return b.Ref, true
}

func (w *World) Bodies() []physics.BodyID {
	ids := make([]physics.BodyID, len(w.bodies))
	for i := range w.bodies {
		ids[i] = physics.BodyID(i + 1)
	}
	return ids
}

func (w *World) Step(h float64) {
	w.Steps = append(w.Steps, h)
	w.StepCount++
	if w.OnStep != nil {
		w.OnStep(h)
	}
}

func (w *World) Pose(id physics.BodyID) physics.Transform {
	if b := w.Body(id); b != nil {
		return b.Pose
	}
	return physics.Identity()
}

func (w *World) IsSleeping(id physics.BodyID) bool {
	if b := w.Body(id); b != nil {
		return b.Static || b.Sleeping
	}
	return false
}

func (w *World) SetLinearVelocity(id physics.BodyID, v mgl64.Vec3) {
	if b := w.Body(id); b != nil {
		b.LinearVelocity = v
		b.VelocitySets++
	}
}

func (w *World) SetAngularVelocity(id physics.BodyID, av mgl64.Vec3) {
	if b := w.Body(id); b != nil {
		b.AngularVelocity = av
	}
}

func (w *World) ClearForces(id physics.BodyID) {
	if b := w.Body(id); b != nil {
		b.Force = mgl64.Vec3{}
		b.Torque = mgl64.Vec3{}
		b.ForceClears++
	}
}

func (w *World) Wake(id physics.BodyID, counter float64) {
	if b := w.Body(id); b != nil {
		b.Sleeping = false
		b.Wakes++
		b.LastWake = counter
	}
}

func (w *World) SetPose(id physics.BodyID, pose physics.Transform) {
	if b := w.Body(id); b != nil {
		b.Pose = pose
		b.PoseSets++
	}
}
