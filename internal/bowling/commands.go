package bowling

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-bowling/internal/core"
	"github.com/vovakirdan/tui-bowling/internal/physics"
)

// Command is a discrete player instruction.
type Command int

const (
	CommandMoveLeft Command = iota
	CommandMoveRight
	CommandReset
	CommandLaunch
)

func (c Command) String() string {
	switch c {
	case CommandMoveLeft:
		return "move-left"
	case CommandMoveRight:
		return "move-right"
	case CommandReset:
		return "reset"
	case CommandLaunch:
		return "launch"
	default:
		return "unknown"
	}
}

// CommandForAction maps a host action to a lane command.
func CommandForAction(a core.Action) (Command, bool) {
	switch a {
	case core.ActionMoveLeft:
		return CommandMoveLeft, true
	case core.ActionMoveRight:
		return CommandMoveRight, true
	case core.ActionReset:
		return CommandReset, true
	case core.ActionLaunch:
		return CommandLaunch, true
	default:
		return 0, false
	}
}

// Apply executes cmd and reports whether it had any effect. Commands are
// ignored until the first frame has located the ball, and while a round
// end waits for acknowledgment.
func (s *Session) Apply(cmd Command) bool {
	if s.ball == physics.NoBody || s.awaiting {
		s.logger.Debug("command ignored", "cmd", cmd, "ballReady", s.ball != physics.NoBody, "awaiting", s.awaiting)
		return false
	}

	var applied bool
	switch cmd {
	case CommandMoveLeft:
		applied = s.nudge(-s.cfg.Ball.Nudge)
	case CommandMoveRight:
		applied = s.nudge(s.cfg.Ball.Nudge)
	case CommandReset:
		applied = s.reset()
	case CommandLaunch:
		applied = s.launch()
	}
	if !applied {
		s.logger.Debug("command ignored", "cmd", cmd, "state", s.state)
	}
	return applied
}

// nudge slides the ball sideways along its own x axis and stands it upright.
func (s *Session) nudge(dx float64) bool {
	if s.cfg.Rules.LockNudgeAfterLaunch && s.state == StateLaunched {
		return false
	}
	pose := s.world.Pose(s.ball)
	s.world.SetPose(s.ball, physics.At(pose.Apply(mgl64.Vec3{dx, 0, 0})))
	return true
}
