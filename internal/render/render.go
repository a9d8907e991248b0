// Package render turns lane render records into terminal cells.
package render

import "github.com/go-gl/mathgl/mgl64"

// Mesh names the geometry drawn for a record.
type Mesh int

const (
	MeshGround Mesh = iota
	MeshPin
	MeshBall
)

// Material names the look of a record.
type Material int

const (
	MaterialLane Material = iota
	MaterialPin
	MaterialPinDown // pin displaced from its spot
	MaterialBall
)

// Renderer consumes records once per frame.
type Renderer interface {
	DrawMesh(mesh Mesh, transform mgl64.Mat4, material Material)
}

// Translation returns the position part of a world matrix.
func Translation(m mgl64.Mat4) mgl64.Vec3 {
	return m.Col(3).Vec3()
}
