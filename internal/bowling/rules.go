package bowling

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-bowling/internal/physics"
)

// RoundState is the phase of the current round.
type RoundState int

const (
	StateIdle     RoundState = iota // ball at rest, can be nudged and launched
	StateLaunched                   // ball rolling, waiting for the pins to settle
)

func (s RoundState) String() string {
	if s == StateLaunched {
		return "launched"
	}
	return "idle"
}

// EndReason tells how a round finished.
type EndReason int

const (
	EndSettled EndReason = iota // every pin came to rest
	EndReset                    // the player reset mid-roll
)

func (r EndReason) String() string {
	if r == EndReset {
		return "reset"
	}
	return "settled"
}

// RoundResult summarises one launched round.
type RoundResult struct {
	Round    int
	PinsDown int
	Steps    int
	SimTime  float64
	EndedBy  EndReason
}

// Confirmer acknowledges the end of a round. Returning false keeps the
// lane paused; the question is repeated every frame until it returns true.
type Confirmer interface {
	ConfirmRoundEnd(result RoundResult) bool
}

// ConfirmerFunc adapts a function to Confirmer.
type ConfirmerFunc func(RoundResult) bool

func (f ConfirmerFunc) ConfirmRoundEnd(r RoundResult) bool { return f(r) }

// AlwaysConfirm acknowledges every round end immediately.
var AlwaysConfirm Confirmer = ConfirmerFunc(func(RoundResult) bool { return true })

// launch rolls the ball and wakes every pin. It does nothing once launched.
func (s *Session) launch() bool {
	if s.state == StateLaunched {
		return false
	}

	s.world.SetLinearVelocity(s.ball, s.cfg.Ball.LaunchVelocity)
	for _, pin := range s.pinBodies() {
		s.world.Wake(pin, s.cfg.Pins.WakeCounter)
	}

	s.state = StateLaunched
	s.roundSteps = 0
	s.logger.Info("ball launched", "round", s.round, "at", s.world.Pose(s.ball).Position)
	return true
}

// checkRoundEnd starts the round-end handshake once every pin sleeps.
func (s *Session) checkRoundEnd() {
	if s.state != StateLaunched {
		return
	}
	for _, pin := range s.pinBodies() {
		if !s.world.IsSleeping(pin) {
			return
		}
	}

	s.pending = s.result(EndSettled)
	s.awaiting = true
	s.logger.Debug("pins settled", "round", s.round, "down", s.pending.PinsDown)
	s.askConfirm()
}

func (s *Session) askConfirm() {
	if !s.confirm.ConfirmRoundEnd(s.pending) {
		return
	}
	s.awaiting = false
	s.finish(s.pending)
	s.resetLane()
}

// reset ends a launched round early and puts everything back.
func (s *Session) reset() bool {
	if s.state == StateLaunched {
		s.finish(s.result(EndReset))
	}
	s.resetLane()
	return true
}

func (s *Session) finish(r RoundResult) {
	s.finished = append(s.finished, r)
	s.score += r.PinsDown
	s.round++
	s.logger.Info("round over", "round", r.Round, "down", r.PinsDown, "by", r.EndedBy, "steps", r.Steps)
}

func (s *Session) result(reason EndReason) RoundResult {
	return RoundResult{
		Round:    s.round,
		PinsDown: s.PinsDown(),
		Steps:    s.roundSteps,
		SimTime:  float64(s.roundSteps) * s.acc.Step(),
		EndedBy:  reason,
	}
}

func (s *Session) resetLane() {
	s.resetBall()
	s.resetPins()
	s.state = StateIdle
	s.roundSteps = 0
}

func (s *Session) resetBall() {
	s.world.ClearForces(s.ball)
	s.world.SetLinearVelocity(s.ball, mgl64.Vec3{})
	s.world.SetAngularVelocity(s.ball, mgl64.Vec3{})
	s.world.SetPose(s.ball, physics.At(s.cfg.Ball.Rest))
}

// resetPins stands every pin back on its spot, at rest and upright.
func (s *Session) resetPins() {
	for i, pin := range s.pinBodies() {
		rec, _ := s.scene.Records.Get(s.scene.Pins[i])
		s.world.ClearForces(pin)
		s.world.SetLinearVelocity(pin, mgl64.Vec3{})
		s.world.SetAngularVelocity(pin, mgl64.Vec3{})
		s.world.SetPose(pin, physics.At(rec.rest))
	}
}

func (s *Session) knocked(rec *RenderRecord) bool {
	return rec.Position().Sub(rec.rest).Len() > s.cfg.Pins.KnockedDistance
}

// PinsDown counts pins displaced from their spot as of the last pose sync.
func (s *Session) PinsDown() int {
	n := 0
	for _, id := range s.scene.Pins {
		rec, _ := s.scene.Records.Get(id)
		if s.knocked(rec) {
			n++
		}
	}
	return n
}
