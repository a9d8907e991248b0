package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-bowling/internal/core"
)

func newTestRenderer() (*core.Screen, *LaneRenderer) {
	s := core.NewScreen(33, 47)
	// One cell per half unit across, one row per unit of depth.
	return s, NewLaneRenderer(s, core.NewRect(0, 0, 33, 47), DefaultCamera())
}

func TestProject(t *testing.T) {
	_, r := newTestRenderer()

	tests := []struct {
		name   string
		p      mgl64.Vec3
		x, y   int
		inside bool
	}{
		{"far left corner", mgl64.Vec3{-8, 0, -13}, 0, 0, true},
		{"near right corner", mgl64.Vec3{8, 0, 33}, 32, 46, true},
		{"lane centre", mgl64.Vec3{0, 3, 10}, 16, 23, true},
		{"height is ignored", mgl64.Vec3{0, 100, 10}, 16, 23, true},
		{"beyond the pit", mgl64.Vec3{0, 0, -20}, 16, -7, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y, ok := r.Project(tc.p)
			if x != tc.x || y != tc.y || ok != tc.inside {
				t.Errorf("Project(%v) = (%d, %d, %v), expected (%d, %d, %v)", tc.p, x, y, ok, tc.x, tc.y, tc.inside)
			}
		})
	}
}

func TestDrawMesh(t *testing.T) {
	s, r := newTestRenderer()

	r.DrawMesh(MeshGround, mgl64.Ident4(), MaterialLane)
	r.DrawMesh(MeshPin, mgl64.Translate3D(-3, 2.5, -10), MaterialPin)
	r.DrawMesh(MeshPin, mgl64.Translate3D(3, 3, -4), MaterialPinDown)
	r.DrawMesh(MeshBall, mgl64.Translate3D(-1, 3, 30), MaterialBall)
	// Off-screen meshes are clipped silently
	r.DrawMesh(MeshBall, mgl64.Translate3D(0, 0, 500), MaterialBall)

	tests := []struct {
		name  string
		x, y  int
		glyph rune
		color core.Color
	}{
		{"gutter", 5, 20, GutterChar, core.ColorGray},
		{"board", 16, 20, BoardChar, core.ColorWood},
		{"foul line", 16, 39, FoulChar, core.ColorRed},
		{"standing pin", 10, 3, PinChar, core.ColorBrightWhite},
		{"fallen pin", 22, 9, PinDown, core.ColorGray},
		{"ball", 14, 43, BallChar, core.ColorBrightRed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := s.GetCell(tc.x, tc.y)
			if got.Rune != tc.glyph || got.Color != tc.color {
				t.Errorf("cell (%d, %d) = %q/%v, expected %q/%v", tc.x, tc.y, got.Rune, got.Color, tc.glyph, tc.color)
			}
		})
	}
}
