// Package bowling runs the lane: it builds the scene, advances the physics
// world on a fixed timestep, mirrors body poses into render records and
// applies the round rules.
package bowling

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-bowling/internal/physics"
	"github.com/vovakirdan/tui-bowling/internal/render"
)

// Role tells the rules what a record stands for. It never changes after
// the record is created.
type Role int

const (
	RoleGround Role = iota
	RolePin
	RoleBall
)

func (r Role) String() string {
	switch r {
	case RoleGround:
		return "ground"
	case RolePin:
		return "pin"
	case RoleBall:
		return "ball"
	default:
		return "unknown"
	}
}

// RecordID indexes the record arena. Bodies carry it as their back-reference.
type RecordID int

// RenderRecord is the drawable counterpart of one physics body.
type RenderRecord struct {
	mesh      render.Mesh
	material  render.Material
	role      Role
	rest      mgl64.Vec3
	body      physics.BodyID
	transform mgl64.Mat4
}

func (r *RenderRecord) Mesh() render.Mesh         { return r.mesh }
func (r *RenderRecord) Material() render.Material { return r.material }
func (r *RenderRecord) Role() Role                { return r.role }
func (r *RenderRecord) Rest() mgl64.Vec3          { return r.rest }
func (r *RenderRecord) Body() physics.BodyID      { return r.body }

// Transform returns the world matrix written by the last pose sync.
func (r *RenderRecord) Transform() mgl64.Mat4 { return r.transform }

// Position returns the translation of Transform.
func (r *RenderRecord) Position() mgl64.Vec3 { return render.Translation(r.transform) }

// Records is the arena owning every render record of a scene. Records are
// appended during construction and never removed.
type Records struct {
	items []RenderRecord
}

func (rs *Records) add(rec RenderRecord) RecordID {
	rs.items = append(rs.items, rec)
	return RecordID(len(rs.items) - 1)
}

// Get returns the record for id.
func (rs *Records) Get(id RecordID) (*RenderRecord, bool) {
	if id < 0 || int(id) >= len(rs.items) {
		return nil, false
	}
	return &rs.items[id], true
}

// Len returns the number of records.
func (rs *Records) Len() int {
	return len(rs.items)
}
