package bowling

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-bowling/internal/config"
	"github.com/vovakirdan/tui-bowling/internal/physics"
	"github.com/vovakirdan/tui-bowling/internal/render"
)

// PinCount is the number of pins in a rack.
const PinCount = 10

// FormationRow is one row of the rack, back row first.
type FormationRow struct {
	Count  int
	Depth  float64 // z of the row
	Height float64 // y of the pin centres
	Shift  float64 // lateral offset of the whole row
}

// Formation places pins in rows, Spacing apart within a row.
type Formation struct {
	Rows    []FormationRow
	Spacing float64
}

// ReferenceFormation is the rack used by every lane.
func ReferenceFormation() Formation {
	return Formation{
		Spacing: 2,
		Rows: []FormationRow{
			{Count: 4, Depth: -10, Height: 2.5, Shift: 0},
			{Count: 3, Depth: -8, Height: 3, Shift: -1},
			{Count: 2, Depth: -6, Height: 3, Shift: -1},
			{Count: 1, Depth: -4, Height: 3, Shift: -1},
		},
	}
}

// RestPositions lists the pin spots row by row.
func (f Formation) RestPositions() []mgl64.Vec3 {
	var out []mgl64.Vec3
	for _, row := range f.Rows {
		for i := 0; i < row.Count; i++ {
			lateral := (float64(i)-float64(row.Count-1)/2)*f.Spacing + row.Shift
			out = append(out, mgl64.Vec3{lateral, row.Height, row.Depth})
		}
	}
	return out
}

// Scene is the set of bodies and records making up a lane.
type Scene struct {
	World   physics.World
	Records Records
	Ground  RecordID
	Ball    RecordID
	Pins    []RecordID
}

// BuildScene creates the ground, the pins of f and the ball in world.
func BuildScene(world physics.World, cfg config.BowlingConfig, f Formation) (*Scene, error) {
	spots := f.RestPositions()
	if len(spots) != PinCount {
		return nil, fmt.Errorf("bowling: formation holds %d pins, want %d", len(spots), PinCount)
	}

	s := &Scene{World: world}

	ground, err := s.bind(world.CreateStatic, physics.BodyDesc{
		Name:     "ground",
		Shape:    physics.Plane(),
		Material: cfg.Ground.Material,
		Pose:     physics.Identity(),
	}, RoleGround, render.MeshGround, render.MaterialLane)
	if err != nil {
		return nil, err
	}
	s.Ground = ground

	for i, spot := range spots {
		pin, err := s.bind(world.CreateDynamic, physics.BodyDesc{
			Name:         fmt.Sprintf("pin-%d", i),
			Shape:        physics.Box(cfg.Pins.HalfExtents),
			Material:     cfg.Pins.Material,
			Pose:         physics.At(spot),
			Density:      cfg.Pins.Density,
			CenterOfMass: cfg.Pins.CenterOfMass,
			LockYaw:      true,
		}, RolePin, render.MeshPin, render.MaterialPin)
		if err != nil {
			return nil, err
		}
		s.Pins = append(s.Pins, pin)
	}

	ball, err := s.bind(world.CreateDynamic, physics.BodyDesc{
		Name:     "ball",
		Shape:    physics.Sphere(cfg.Ball.Radius),
		Material: cfg.Ball.Material,
		Pose:     physics.At(cfg.Ball.Rest),
		Density:  cfg.Ball.Density,
	}, RoleBall, render.MeshBall, render.MaterialBall)
	if err != nil {
		return nil, err
	}
	s.Ball = ball

	return s, nil
}

// bind creates a body and its record and links them through the
// record's arena index.
func (s *Scene) bind(
	create func(physics.BodyDesc) (physics.BodyID, error),
	desc physics.BodyDesc,
	role Role,
	mesh render.Mesh,
	material render.Material,
) (RecordID, error) {
	body, err := create(desc)
	if err != nil {
		return 0, fmt.Errorf("bowling: create %s: %w", desc.Name, err)
	}

	id := s.Records.add(RenderRecord{
		mesh:      mesh,
		material:  material,
		role:      role,
		rest:      desc.Pose.Position,
		body:      body,
		transform: desc.Pose.Mat4(),
	})

	if err := s.World.AttachBackReference(body, int(id)); err != nil {
		return 0, fmt.Errorf("bowling: bind %s: %w", desc.Name, err)
	}
	return id, nil
}
