package registry

import (
	"testing"

	"github.com/vovakirdan/tui-bowling/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Frame(float64, core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("test_lane_b", func() Game { return &stubGame{id: "test_lane_b"} })
	Register("test_lane_a", func() Game { return &stubGame{id: "test_lane_a"} })

	if !Exists("test_lane_a") {
		t.Fatal("Exists(test_lane_a) = false after Register")
	}
	if Exists("test_lane_missing") {
		t.Error("Exists() reported an unregistered id")
	}

	g1, err := Create("test_lane_a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	g2, _ := Create("test_lane_a")
	if g1 == g2 {
		t.Error("Create() should return a new instance per call")
	}

	if _, err := Create("test_lane_missing"); err == nil {
		t.Error("Create() of unknown id should fail")
	}

	var ids []string
	for _, info := range List() {
		if info.ID == "test_lane_a" && info.Title != "Stub test_lane_a" {
			t.Errorf("title = %q", info.Title)
		}
		ids = append(ids, info.ID)
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Errorf("List() not sorted: %v", ids)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test_lane_dup", func() Game { return &stubGame{id: "test_lane_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() should panic")
		}
	}()
	Register("test_lane_dup", func() Game { return &stubGame{id: "test_lane_dup"} })
}
