package bowling

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-bowling/internal/physics/physicstest"
)

func TestLaunchIsGated(t *testing.T) {
	s, w := newFakeSession(t, Options{})
	ball := ballBody(t, w)
	before := ball.VelocitySets

	if !s.Apply(CommandLaunch) {
		t.Fatal("first launch should apply")
	}
	if s.Apply(CommandLaunch) {
		t.Error("second launch should be ignored")
	}

	if s.State() != StateLaunched {
		t.Errorf("State() = %v, expected launched", s.State())
	}
	if ball.VelocitySets-before != 1 {
		t.Errorf("ball velocity set %d times, expected 1", ball.VelocitySets-before)
	}
	if ball.LinearVelocity != (mgl64.Vec3{0, 0, -50}) {
		t.Errorf("launch velocity = %v, expected (0, 0, -50)", ball.LinearVelocity)
	}
	for i, pin := range pinBodies(t, s, w) {
		if pin.Wakes != 1 || pin.LastWake != 1 {
			t.Errorf("pin %d woken %d times with counter %v, expected once with 1", i, pin.Wakes, pin.LastWake)
		}
	}
}

func TestWinRequiresEveryPinAsleep(t *testing.T) {
	s, w := newFakeSession(t, Options{})
	s.Apply(CommandLaunch)
	pins := pinBodies(t, s, w)

	w.SetAllSleeping(true)
	pins[6].Sleeping = false

	res := s.Frame(frame)
	if s.State() != StateLaunched || len(res.Rounds) != 0 || res.Awaiting {
		t.Fatalf("9 of 10 pins asleep ended the round: state=%v result=%+v", s.State(), res)
	}

	pins[6].Sleeping = true
	res = s.Frame(frame)
	if s.State() != StateIdle {
		t.Errorf("State() = %v, expected idle", s.State())
	}
	if len(res.Rounds) != 1 || res.Rounds[0].EndedBy != EndSettled {
		t.Fatalf("Rounds = %+v, expected one settled round", res.Rounds)
	}
	if res.Rounds[0].Steps != 2 {
		t.Errorf("round steps = %d, expected 2", res.Rounds[0].Steps)
	}
	if s.Round() != 2 {
		t.Errorf("Round() = %d, expected 2", s.Round())
	}
}

func TestIdleLaneNeverEndsRound(t *testing.T) {
	s, w := newFakeSession(t, Options{})
	w.SetAllSleeping(true)

	for i := 0; i < 5; i++ {
		if res := s.Frame(frame); len(res.Rounds) != 0 || res.Awaiting {
			t.Fatalf("frame %d: idle lane reported %+v", i, res)
		}
	}
}

func TestPinsDownAreCounted(t *testing.T) {
	s, w := newFakeSession(t, Options{})
	s.Apply(CommandLaunch)
	pins := pinBodies(t, s, w)
	knock(pins[0])
	knock(pins[5])
	knock(pins[9])
	// A wobble inside the threshold is not a knockdown
	pins[2].Pose.Position = pins[2].Pose.Position.Add(mgl64.Vec3{0.2, 0, 0})

	w.SetAllSleeping(true)
	res := s.Frame(frame)

	if len(res.Rounds) != 1 || res.Rounds[0].PinsDown != 3 {
		t.Fatalf("Rounds = %+v, expected one round with 3 pins down", res.Rounds)
	}
	if s.Score() != 3 {
		t.Errorf("Score() = %d, expected 3", s.Score())
	}
}

func TestResetProtocol(t *testing.T) {
	s, w := newFakeSession(t, Options{})
	s.Apply(CommandLaunch)

	pins := pinBodies(t, s, w)
	for _, pin := range pins {
		knock(pin)
		pin.LinearVelocity = mgl64.Vec3{4, 0, -7}
		pin.AngularVelocity = mgl64.Vec3{0, 2, 0}
		pin.Force = mgl64.Vec3{1, 1, 1}
	}
	s.Frame(frame)

	if !s.Apply(CommandReset) {
		t.Fatal("reset should apply")
	}
	first := snapshotBodies(w)

	for i, pin := range pins {
		rec, _ := s.Scene().Records.Get(s.Scene().Pins[i])
		if pin.Pose.Position != rec.Rest() {
			t.Errorf("pin %d at %v, expected rest %v", i, pin.Pose.Position, rec.Rest())
		}
		if pin.Pose.Rotation != mgl64.QuatIdent() {
			t.Errorf("pin %d rotation = %v, expected upright", i, pin.Pose.Rotation)
		}
		if pin.LinearVelocity != (mgl64.Vec3{}) || pin.AngularVelocity != (mgl64.Vec3{}) || pin.Force != (mgl64.Vec3{}) {
			t.Errorf("pin %d still moving: v=%v w=%v f=%v", i, pin.LinearVelocity, pin.AngularVelocity, pin.Force)
		}
	}
	ball := ballBody(t, w)
	if ball.Pose.Position != (mgl64.Vec3{-1, 3, 30}) || ball.LinearVelocity != (mgl64.Vec3{}) {
		t.Errorf("ball at %v moving %v, expected at rest on its spot", ball.Pose.Position, ball.LinearVelocity)
	}

	s.Apply(CommandReset)
	second := snapshotBodies(w)
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("body %d differs after a second reset: %+v vs %+v", i, first[i], second[i])
		}
	}
}

type bodyState struct {
	pose   [7]float64
	v, w   mgl64.Vec3
	f, trq mgl64.Vec3
}

func snapshotBodies(w *physicstest.World) []bodyState {
	var out []bodyState
	for _, id := range w.Bodies() {
		b := w.Body(id)
		p, q := b.Pose.Position, b.Pose.Rotation
		out = append(out, bodyState{
			pose: [7]float64{p[0], p[1], p[2], q.W, q.V[0], q.V[1], q.V[2]},
			v:    b.LinearVelocity, w: b.AngularVelocity,
			f: b.Force, trq: b.Torque,
		})
	}
	return out
}

func TestResetEndsLaunchedRound(t *testing.T) {
	s, w := newFakeSession(t, Options{})
	s.Apply(CommandLaunch)
	knock(pinBodies(t, s, w)[3])
	s.Frame(frame)

	// Pins still awake: reset ends the round anyway
	s.Apply(CommandReset)
	if s.State() != StateIdle {
		t.Fatalf("State() = %v, expected idle", s.State())
	}

	res := s.Frame(frame)
	if len(res.Rounds) != 1 {
		t.Fatalf("Rounds = %+v, expected one", res.Rounds)
	}
	if r := res.Rounds[0]; r.EndedBy != EndReset || r.PinsDown != 1 || r.Round != 1 {
		t.Errorf("round = %+v, expected round 1 reset with 1 pin down", r)
	}

	// Reset while idle repositions but records nothing
	s.Apply(CommandReset)
	if res := s.Frame(frame); len(res.Rounds) != 0 {
		t.Errorf("idle reset recorded %+v", res.Rounds)
	}
}

func TestDeclinedConfirmationHoldsTheLane(t *testing.T) {
	answers := []bool{false, false, true}
	asked := 0
	confirm := ConfirmerFunc(func(r RoundResult) bool {
		ok := answers[asked]
		asked++
		return ok
	})

	s, w := newFakeSession(t, Options{Confirmer: confirm})
	s.Apply(CommandLaunch)
	w.SetAllSleeping(true)

	res := s.Frame(frame)
	if !res.Awaiting || s.State() != StateLaunched {
		t.Fatalf("first decline: awaiting=%v state=%v", res.Awaiting, s.State())
	}
	steps := w.StepCount
	remainder := s.Remainder()

	res = s.Frame(0.5)
	if !res.Awaiting || res.Steps != 0 || w.StepCount != steps {
		t.Errorf("held frame stepped: %+v (world steps %d -> %d)", res, steps, w.StepCount)
	}
	if s.Remainder() != remainder {
		t.Errorf("held frame filled the accumulator: %v -> %v", remainder, s.Remainder())
	}
	if s.Apply(CommandReset) || s.Apply(CommandMoveLeft) {
		t.Error("commands should be ignored while a round end is pending")
	}

	res = s.Frame(frame)
	if res.Awaiting || s.State() != StateIdle || len(res.Rounds) != 1 {
		t.Errorf("acknowledged frame: %+v state=%v", res, s.State())
	}
	if asked != 3 {
		t.Errorf("confirmer asked %d times, expected 3", asked)
	}
}
