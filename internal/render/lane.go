package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-bowling/internal/core"
)

// Glyphs used on the lane.
const (
	BoardChar  = '·'
	GutterChar = '║'
	FoulChar   = '─'
	PinChar    = '▲'
	PinDown    = '▼'
	BallChar   = '●'
)

// Camera is a top-down orthographic view of the lane.
// Far depth is drawn on the top row, near depth on the bottom row.
type Camera struct {
	MinX, MaxX  float64
	FarZ, NearZ float64
}

// DefaultCamera frames the pin deck and the ball's starting spot.
func DefaultCamera() Camera {
	return Camera{MinX: -8, MaxX: 8, FarZ: -13, NearZ: 33}
}

// Lane geometry in world units, relative to the ground transform.
const (
	laneHalfWidth = 5.5
	foulLineZ     = 26.0
)

// LaneRenderer draws records into a rectangle of a core.Screen.
type LaneRenderer struct {
	dst    *core.Screen
	area   core.Rect
	camera Camera
}

var _ Renderer = (*LaneRenderer)(nil)

// NewLaneRenderer creates a renderer targeting area of dst.
func NewLaneRenderer(dst *core.Screen, area core.Rect, camera Camera) *LaneRenderer {
	return &LaneRenderer{dst: dst, area: area, camera: camera}
}

// Project maps a world point to a screen cell. ok is false when the point
// falls outside the drawing area.
func (r *LaneRenderer) Project(p mgl64.Vec3) (x, y int, ok bool) {
	if r.area.W <= 0 || r.area.H <= 0 {
		return 0, 0, false
	}
	c := r.camera
	u := (p.X() - c.MinX) / (c.MaxX - c.MinX)
	v := (p.Z() - c.FarZ) / (c.NearZ - c.FarZ)
	x = r.area.X + int(math.Round(u*float64(r.area.W-1)))
	y = r.area.Y + int(math.Round(v*float64(r.area.H-1)))
	return x, y, r.area.Contains(x, y)
}

// DrawMesh draws one record.
func (r *LaneRenderer) DrawMesh(mesh Mesh, transform mgl64.Mat4, material Material) {
	pos := Translation(transform)
	switch mesh {
	case MeshGround:
		r.drawLane(pos)
	case MeshPin:
		if x, y, ok := r.Project(pos); ok {
			if material == MaterialPinDown {
				r.dst.SetColored(x, y, PinDown, core.ColorGray)
			} else {
				r.dst.SetColored(x, y, PinChar, core.ColorBrightWhite)
			}
		}
	case MeshBall:
		if x, y, ok := r.Project(pos); ok {
			r.dst.SetColored(x, y, BallChar, core.ColorBrightRed)
		}
	}
}

func (r *LaneRenderer) drawLane(origin mgl64.Vec3) {
	left, _, _ := r.Project(origin.Add(mgl64.Vec3{-laneHalfWidth, 0, 0}))
	right, _, _ := r.Project(origin.Add(mgl64.Vec3{laneHalfWidth, 0, 0}))
	left = core.Clamp(left, r.area.X, r.area.Right()-1)
	right = core.Clamp(right, r.area.X, r.area.Right()-1)

	for y := r.area.Y; y < r.area.Bottom(); y++ {
		r.dst.DrawHLine(left+1, y, right-left-1, BoardChar, core.ColorWood)
		r.dst.SetColored(left, y, GutterChar, core.ColorGray)
		r.dst.SetColored(right, y, GutterChar, core.ColorGray)
	}

	if _, y, ok := r.Project(origin.Add(mgl64.Vec3{0, 0, foulLineZ})); ok {
		r.dst.DrawHLine(left+1, y, right-left-1, FoulChar, core.ColorRed)
	}
}
