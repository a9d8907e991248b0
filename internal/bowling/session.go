package bowling

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bowling/internal/config"
	"github.com/vovakirdan/tui-bowling/internal/physics"
	"github.com/vovakirdan/tui-bowling/internal/render"
)

// Options configures a Session.
type Options struct {
	Config    config.BowlingConfig
	Formation Formation   // zero value selects ReferenceFormation
	Confirmer Confirmer   // nil acknowledges every round end
	Logger    *log.Logger // nil discards
}

// Session owns one lane: its scene, timestep state and round rules.
// A Session must only be used from the goroutine that owns its world.
type Session struct {
	cfg     config.BowlingConfig
	world   physics.World
	scene   *Scene
	acc     Accumulator
	confirm Confirmer
	logger  *log.Logger

	ball  physics.BodyID // set by the first pose sync
	state RoundState

	awaiting bool
	pending  RoundResult
	finished []RoundResult

	round      int
	score      int
	frames     int
	steps      int
	roundSteps int
}

// FrameResult reports what one call to Frame did.
type FrameResult struct {
	Steps    int
	Awaiting bool          // a round end waits for acknowledgment
	Rounds   []RoundResult // rounds ended since the previous frame
}

// NewSession builds the scene in world and returns an Idle session.
func NewSession(world physics.World, opts Options) (*Session, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("bowling: %w", err)
	}
	if len(opts.Formation.Rows) == 0 {
		opts.Formation = ReferenceFormation()
	}
	if opts.Confirmer == nil {
		opts.Confirmer = AlwaysConfirm
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	scene, err := BuildScene(world, opts.Config, opts.Formation)
	if err != nil {
		return nil, err
	}

	return &Session{
		cfg:     opts.Config,
		world:   world,
		scene:   scene,
		acc:     NewAccumulator(opts.Config.Physics.Step(), opts.Config.Physics.StallGuard),
		confirm: opts.Confirmer,
		logger:  opts.Logger,
		state:   StateIdle,
		round:   1,
	}, nil
}

// Frame runs one host frame: fixed steps for dtime, pose sync, then the
// round-end check. While a round end waits for acknowledgment the
// confirmer is asked again and nothing is stepped.
func (s *Session) Frame(dtime float64) FrameResult {
	s.frames++

	var res FrameResult
	if s.awaiting {
		s.askConfirm()
	} else {
		res.Steps = s.acc.Advance(dtime, s.step)
		s.syncPoses()
		s.checkRoundEnd()
	}

	res.Awaiting = s.awaiting
	res.Rounds = s.finished
	s.finished = nil
	return res
}

func (s *Session) step(h float64) {
	s.world.Step(h)
	s.steps++
	if s.state == StateLaunched {
		s.roundSteps++
	}
}

// Draw hands every record to r. Pins away from their spot are drawn with
// the knocked-down material.
func (s *Session) Draw(r render.Renderer) {
	for i := 0; i < s.scene.Records.Len(); i++ {
		rec, _ := s.scene.Records.Get(RecordID(i))
		material := rec.Material()
		if rec.Role() == RolePin && s.knocked(rec) {
			material = render.MaterialPinDown
		}
		r.DrawMesh(rec.Mesh(), rec.Transform(), material)
	}
}

// State returns the current round state.
func (s *Session) State() RoundState { return s.state }

// Awaiting reports whether a round end waits for acknowledgment.
func (s *Session) Awaiting() bool { return s.awaiting }

// Pending returns the round waiting for acknowledgment.
func (s *Session) Pending() (RoundResult, bool) { return s.pending, s.awaiting }

// Round returns the number of the round in progress.
func (s *Session) Round() int { return s.round }

// Score returns the pins knocked down over all finished rounds.
func (s *Session) Score() int { return s.score }

// Scene exposes the records and bodies of the lane.
func (s *Session) Scene() *Scene { return s.scene }

// BallReady reports whether commands can act on the ball yet.
func (s *Session) BallReady() bool { return s.ball != physics.NoBody }

// Remainder returns the unconsumed simulated time.
func (s *Session) Remainder() float64 { return s.acc.Remainder() }

// TotalSteps returns the physics steps taken over the session.
func (s *Session) TotalSteps() int { return s.steps }
