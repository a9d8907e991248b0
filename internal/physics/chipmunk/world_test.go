package chipmunk

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-bowling/internal/physics"
)

var wood = physics.Material{StaticFriction: 0.5, DynamicFriction: 0.5, Restitution: 0.1}

func newLane(t *testing.T) *World {
	t.Helper()
	w := New(DefaultSettings())
	if _, err := w.CreateStatic(physics.BodyDesc{
		Name:     "lane",
		Shape:    physics.Plane(),
		Material: wood,
		Pose:     physics.Identity(),
	}); err != nil {
		t.Fatalf("CreateStatic(lane) error: %v", err)
	}
	return w
}

func addBall(t *testing.T, w *World, at mgl64.Vec3) physics.BodyID {
	t.Helper()
	id, err := w.CreateDynamic(physics.BodyDesc{
		Name:     "ball",
		Shape:    physics.Sphere(1),
		Material: wood,
		Pose:     physics.At(at),
		Density:  1200,
	})
	if err != nil {
		t.Fatalf("CreateDynamic(ball) error: %v", err)
	}
	return id
}

func addPin(t *testing.T, w *World, at mgl64.Vec3) physics.BodyID {
	t.Helper()
	id, err := w.CreateDynamic(physics.BodyDesc{
		Name:     "pin",
		Shape:    physics.Box(mgl64.Vec3{0.5, 3, 0.5}),
		Material: wood,
		Pose:     physics.At(at),
		Density:  300,
		LockYaw:  true,
	})
	if err != nil {
		t.Fatalf("CreateDynamic(pin) error: %v", err)
	}
	return id
}

func stepFor(w *World, seconds float64) {
	const h = 1.0 / 60
	for n := int(math.Round(seconds / h)); n > 0; n-- {
		w.Step(h)
	}
}

func TestCreateRejectsBadBodies(t *testing.T) {
	tests := []struct {
		name string
		desc physics.BodyDesc
		want error
	}{
		{
			name: "dynamic plane",
			desc: physics.BodyDesc{Shape: physics.Plane(), Density: 1},
			want: physics.ErrInvalidShape,
		},
		{
			name: "zero radius",
			desc: physics.BodyDesc{Shape: physics.Sphere(0), Density: 1},
			want: physics.ErrInvalidShape,
		},
		{
			name: "negative friction",
			desc: physics.BodyDesc{
				Shape:    physics.Sphere(1),
				Material: physics.Material{DynamicFriction: -1},
				Density:  1,
			},
			want: physics.ErrInvalidMaterial,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New(DefaultSettings())
			_, err := w.CreateDynamic(tt.desc)
			if !errors.Is(err, tt.want) {
				t.Errorf("CreateDynamic() error = %v, want %v", err, tt.want)
			}
		})
	}

	w := New(DefaultSettings())
	if _, err := w.CreateDynamic(physics.BodyDesc{Shape: physics.Sphere(1)}); err == nil {
		t.Error("CreateDynamic() with zero density should fail")
	}
}

func TestBackReferenceAttachesOnce(t *testing.T) {
	w := newLane(t)
	ball := addBall(t, w, mgl64.Vec3{0, 1, 0})

	if _, ok := w.BackReference(ball); ok {
		t.Fatal("fresh body should have no back-reference")
	}
	if err := w.AttachBackReference(ball, 7); err != nil {
		t.Fatalf("AttachBackReference() error: %v", err)
	}
	if ref, ok := w.BackReference(ball); !ok || ref != 7 {
		t.Errorf("BackReference() = %d, %v, want 7, true", ref, ok)
	}
	if err := w.AttachBackReference(ball, 8); !errors.Is(err, physics.ErrBackReferenceSet) {
		t.Errorf("second AttachBackReference() error = %v, want ErrBackReferenceSet", err)
	}
	if ref, _ := w.BackReference(ball); ref != 7 {
		t.Errorf("BackReference() after rejected attach = %d, want 7", ref)
	}

	if err := w.AttachBackReference(physics.BodyID(99), 1); !errors.Is(err, physics.ErrUnknownBody) {
		t.Errorf("AttachBackReference(unknown) error = %v, want ErrUnknownBody", err)
	}
	if err := w.AttachBackReference(physics.NoBody, 1); !errors.Is(err, physics.ErrUnknownBody) {
		t.Errorf("AttachBackReference(NoBody) error = %v, want ErrUnknownBody", err)
	}
}

func TestBodiesInCreationOrder(t *testing.T) {
	w := newLane(t)
	ball := addBall(t, w, mgl64.Vec3{0, 1, 10})
	pin := addPin(t, w, mgl64.Vec3{0, 3, 0})

	got := w.Bodies()
	if len(got) != 3 || got[1] != ball || got[2] != pin {
		t.Errorf("Bodies() = %v, want [lane %d %d]", got, ball, pin)
	}
	for _, id := range got {
		if id == physics.NoBody {
			t.Error("Bodies() returned NoBody")
		}
	}
}

func TestPoseRoundTrip(t *testing.T) {
	w := newLane(t)
	pin := addPin(t, w, mgl64.Vec3{0, 3, 0})

	want := physics.WithYaw(mgl64.Vec3{1.5, 2, -4}, 0.5)
	w.SetPose(pin, want)

	got := w.Pose(pin)
	if !got.Position.ApproxEqualThreshold(want.Position, 1e-9) {
		t.Errorf("Pose().Position = %v, want %v", got.Position, want.Position)
	}
	if math.Abs(got.Yaw()-0.5) > 1e-9 {
		t.Errorf("Pose().Yaw() = %v, want 0.5", got.Yaw())
	}

	if p := w.Pose(physics.BodyID(42)); !p.ApproxEqual(physics.Identity()) {
		t.Errorf("Pose(unknown) = %v, want identity", p)
	}
}

func TestStaticBodiesIgnoreCommands(t *testing.T) {
	w := New(DefaultSettings())
	wall, err := w.CreateStatic(physics.BodyDesc{
		Name:     "wall",
		Shape:    physics.Box(mgl64.Vec3{1, 1, 10}),
		Material: wood,
		Pose:     physics.At(mgl64.Vec3{5, 1, 0}),
	})
	if err != nil {
		t.Fatalf("CreateStatic(wall) error: %v", err)
	}

	w.SetLinearVelocity(wall, mgl64.Vec3{1, 0, 0})
	w.SetPose(wall, physics.At(mgl64.Vec3{0, 0, 0}))
	w.Wake(wall, 1)
	stepFor(w, 0.5)

	if p := w.Pose(wall).Position; !p.ApproxEqualThreshold(mgl64.Vec3{5, 1, 0}, 1e-9) {
		t.Errorf("static body moved to %v", p)
	}
	if !w.IsSleeping(wall) {
		t.Error("static bodies should always report sleeping")
	}
	if w.IsSleeping(physics.BodyID(42)) {
		t.Error("unknown bodies should not report sleeping")
	}
}

func TestBallRollsAndKeepsHeight(t *testing.T) {
	w := newLane(t)
	ball := addBall(t, w, mgl64.Vec3{-1, 1, 30})

	w.SetLinearVelocity(ball, mgl64.Vec3{0, 5, -50})
	stepFor(w, 0.25)

	p := w.Pose(ball).Position
	if p.Z() > 20 {
		t.Errorf("ball z = %v after 0.25s at 50/s, want < 20", p.Z())
	}
	if p.Y() != 1 {
		t.Errorf("ball height = %v, want 1", p.Y())
	}
	if math.Abs(p.X()+1) > 1e-9 {
		t.Errorf("ball drifted sideways to x = %v", p.X())
	}
}

func TestLaneFrictionStopsSlidingPin(t *testing.T) {
	w := newLane(t)
	pin := addPin(t, w, mgl64.Vec3{0, 3, 0})

	// mu 0.5 and g 10 stop a 1/s slide after 0.2s and 0.1 units.
	w.SetLinearVelocity(pin, mgl64.Vec3{0, 0, 1})
	stepFor(w, 1)

	stopped := w.Pose(pin).Position
	if stopped.Z() < 0.05 || stopped.Z() > 0.15 {
		t.Errorf("pin slid to z = %v, want about 0.1", stopped.Z())
	}

	stepFor(w, 0.5)
	if p := w.Pose(pin).Position; !p.ApproxEqualThreshold(stopped, 1e-9) {
		t.Errorf("pin still moving: %v -> %v", stopped, p)
	}
}

func TestBallKnocksPinWithoutTurningIt(t *testing.T) {
	w := newLane(t)
	ball := addBall(t, w, mgl64.Vec3{0, 1, 10})
	pin := addPin(t, w, mgl64.Vec3{0, 3, 0})

	w.SetLinearVelocity(ball, mgl64.Vec3{0, 0, -20})
	stepFor(w, 1)

	p := w.Pose(pin)
	if p.Position.Z() > -0.1 {
		t.Errorf("pin z = %v, want pushed down the lane", p.Position.Z())
	}
	if p.Yaw() != 0 {
		t.Errorf("yaw-locked pin turned to %v", p.Yaw())
	}
}

func TestWakeHoldsBodyAwake(t *testing.T) {
	w := newLane(t)
	pin := addPin(t, w, mgl64.Vec3{0, 3, 0})

	w.Wake(pin, 1)
	stepFor(w, 0.5)
	if w.IsSleeping(pin) {
		t.Error("pin reported sleeping inside its wake counter")
	}
	if got := w.Time(); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Time() = %v, want 0.5", got)
	}
}
