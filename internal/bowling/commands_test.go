package bowling

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-bowling/internal/config"
	"github.com/vovakirdan/tui-bowling/internal/core"
	"github.com/vovakirdan/tui-bowling/internal/physics"
	"github.com/vovakirdan/tui-bowling/internal/physics/physicstest"
)

func TestCommandsIgnoredBeforeBallIsBound(t *testing.T) {
	w := physicstest.New()
	s, err := NewSession(w, Options{Config: config.DefaultBowlingConfig()})
	if err != nil {
		t.Fatal(err)
	}

	for _, cmd := range []Command{CommandMoveLeft, CommandMoveRight, CommandLaunch, CommandReset} {
		if s.Apply(cmd) {
			t.Errorf("Apply(%v) before the first frame should be a no-op", cmd)
		}
	}

	ball := ballBody(t, w)
	if ball.VelocitySets != 0 || ball.PoseSets != 0 {
		t.Errorf("ball touched before binding: %d velocity sets, %d pose sets", ball.VelocitySets, ball.PoseSets)
	}
	if s.State() != StateIdle {
		t.Errorf("State() = %v, expected idle", s.State())
	}
}

func TestNudgeUsesBallFrame(t *testing.T) {
	tests := []struct {
		name     string
		yaw      float64
		cmd      Command
		expected mgl64.Vec3
	}{
		{"left, upright", 0, CommandMoveLeft, mgl64.Vec3{-1.1, 3, 30}},
		{"right, upright", 0, CommandMoveRight, mgl64.Vec3{-0.9, 3, 30}},
		{"right, quarter turn", math.Pi / 2, CommandMoveRight, mgl64.Vec3{-1, 3, 29.9}},
		{"left, half turn", math.Pi, CommandMoveLeft, mgl64.Vec3{-0.9, 3, 30}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, w := newFakeSession(t, Options{})
			ball := ballBody(t, w)
			ball.Pose = physics.WithYaw(mgl64.Vec3{-1, 3, 30}, tc.yaw)

			if !s.Apply(tc.cmd) {
				t.Fatalf("Apply(%v) should apply", tc.cmd)
			}
			if !ball.Pose.Position.ApproxEqualThreshold(tc.expected, 1e-9) {
				t.Errorf("ball at %v, expected %v", ball.Pose.Position, tc.expected)
			}
			if ball.Pose.Rotation != mgl64.QuatIdent() {
				t.Errorf("nudged ball rotation = %v, expected identity", ball.Pose.Rotation)
			}
		})
	}
}

func TestNudgeAfterLaunch(t *testing.T) {
	t.Run("allowed by default", func(t *testing.T) {
		s, _ := newFakeSession(t, Options{})
		s.Apply(CommandLaunch)
		if !s.Apply(CommandMoveLeft) {
			t.Error("nudge during a roll should apply")
		}
	})

	t.Run("locked when configured", func(t *testing.T) {
		cfg := config.DefaultBowlingConfig()
		cfg.Rules.LockNudgeAfterLaunch = true
		s, w := newFakeSession(t, Options{Config: cfg})

		if !s.Apply(CommandMoveRight) {
			t.Error("nudge before launch should apply")
		}
		s.Apply(CommandLaunch)
		before := ballBody(t, w).PoseSets
		if s.Apply(CommandMoveRight) || s.Apply(CommandMoveLeft) {
			t.Error("nudge during a roll should be ignored")
		}
		if ballBody(t, w).PoseSets != before {
			t.Error("ignored nudge moved the ball")
		}
	})
}

func TestCommandForAction(t *testing.T) {
	tests := []struct {
		action core.Action
		cmd    Command
		ok     bool
	}{
		{core.ActionMoveLeft, CommandMoveLeft, true},
		{core.ActionMoveRight, CommandMoveRight, true},
		{core.ActionReset, CommandReset, true},
		{core.ActionLaunch, CommandLaunch, true},
		{core.ActionConfirm, 0, false},
		{core.ActionQuit, 0, false},
	}

	for _, tc := range tests {
		cmd, ok := CommandForAction(tc.action)
		if ok != tc.ok || (ok && cmd != tc.cmd) {
			t.Errorf("CommandForAction(%v) = (%v, %v), expected (%v, %v)", tc.action, cmd, ok, tc.cmd, tc.ok)
		}
	}
}
