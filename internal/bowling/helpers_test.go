package bowling

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-bowling/internal/config"
	"github.com/vovakirdan/tui-bowling/internal/physics"
	"github.com/vovakirdan/tui-bowling/internal/physics/physicstest"
)

const frame = 1.0 / 60.0

// newFakeSession builds a session over a scripted world and runs one
// zero-length frame so the ball is bound.
func newFakeSession(t *testing.T, opts Options) (*Session, *physicstest.World) {
	t.Helper()
	if opts.Config == (config.BowlingConfig{}) {
		opts.Config = config.DefaultBowlingConfig()
	}
	w := physicstest.New()
	s, err := NewSession(w, opts)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	s.Frame(0)
	if !s.BallReady() {
		t.Fatal("ball should be bound after the first frame")
	}
	return s, w
}

func ballBody(t *testing.T, w *physicstest.World) *physicstest.Body {
	t.Helper()
	_, b := w.Find("ball")
	if b == nil {
		t.Fatal("no ball body")
	}
	return b
}

func pinBodies(t *testing.T, s *Session, w *physicstest.World) []*physicstest.Body {
	t.Helper()
	var out []*physicstest.Body
	for _, id := range s.Scene().Pins {
		rec, _ := s.Scene().Records.Get(id)
		out = append(out, w.Body(rec.Body()))
	}
	if len(out) != PinCount {
		t.Fatalf("got %d pins, expected %d", len(out), PinCount)
	}
	return out
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s should panic", name)
		}
	}()
	fn()
}

func knock(b *physicstest.Body) {
	b.Pose = physics.At(b.Pose.Position.Add(mgl64.Vec3{2, 0, -3}))
}
