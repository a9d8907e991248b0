package bowling

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bowling/internal/config"
	"github.com/vovakirdan/tui-bowling/internal/core"
	"github.com/vovakirdan/tui-bowling/internal/physics"
	"github.com/vovakirdan/tui-bowling/internal/physics/chipmunk"
	"github.com/vovakirdan/tui-bowling/internal/registry"
	"github.com/vovakirdan/tui-bowling/internal/render"
)

// Minimum screen size for the lane view.
const (
	MinScreenW = 30
	MinScreenH = 12
)

// configPath stores the custom config path set via CLI
var configPath string

// logger receives session events for games created by the registry
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger sets the logger handed to lanes created from the registry.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// WorldFactory creates the physics world for a new lane.
type WorldFactory func(cfg config.BowlingConfig) physics.World

// ChipmunkWorld builds a Chipmunk2D world from the physics config.
func ChipmunkWorld(cfg config.BowlingConfig) physics.World {
	return chipmunk.New(chipmunk.Settings{
		Gravity:           cfg.Physics.Gravity,
		Iterations:        cfg.Physics.Iterations,
		SleepTime:         cfg.Physics.SleepTime,
		IdleSpeed:         cfg.Physics.IdleSpeed,
		RollingResistance: cfg.Physics.RollingResistance,
	})
}

// Game adapts a Session to the registry.Game interface. Round ends are
// acknowledged with core.ActionConfirm.
type Game struct {
	id     string
	title  string
	strict bool

	cfg      config.BowlingConfig
	newWorld WorldFactory
	logger   *log.Logger

	runtime core.RuntimeConfig
	session *Session
	input   core.InputFrame
	err     error
}

var _ registry.Game = (*Game)(nil)

// New creates the standard lane, where the ball can be nudged mid-roll.
func New() *Game {
	return newGame("bowling", "Bowling", false)
}

// NewStrict creates a lane where the ball can only be lined up before launch.
func NewStrict() *Game {
	return newGame("bowling_strict", "Bowling (strict)", true)
}

func newGame(id, title string, strict bool) *Game {
	return &Game{
		id:       id,
		title:    title,
		strict:   strict,
		newWorld: ChipmunkWorld,
		logger:   logger,
	}
}

// NewWithConfig creates a lane from an explicit config and world factory.
func NewWithConfig(id, title string, cfg config.BowlingConfig, newWorld WorldFactory, l *log.Logger) *Game {
	g := newGame(id, title, cfg.Rules.LockNudgeAfterLaunch)
	g.cfg = cfg
	g.newWorld = newWorld
	if l != nil {
		g.logger = l
	}
	return g
}

// ID returns the variant identifier.
func (g *Game) ID() string { return g.id }

// Title returns the display name.
func (g *Game) Title() string { return g.title }

// Err returns the setup error of the last Reset, if any.
func (g *Game) Err() error { return g.err }

// Session returns the running session, nil before Reset or after a failed one.
func (g *Game) Session() *Session { return g.session }

// Reset loads configuration and builds a fresh lane.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.runtime = rt
	g.session = nil
	g.err = nil

	cfg := g.cfg
	if cfg == (config.BowlingConfig{}) {
		loaded, err := config.LoadBowling(configPath)
		if err != nil {
			g.err = fmt.Errorf("bowling: %w", err)
			return
		}
		cfg = loaded
	}
	if g.strict {
		cfg.Rules.LockNudgeAfterLaunch = true
	}

	session, err := NewSession(g.newWorld(cfg), Options{
		Config:    cfg,
		Confirmer: ConfirmerFunc(g.confirmed),
		Logger:    g.logger.With("lane", g.id),
	})
	if err != nil {
		g.err = err
		return
	}
	g.session = session
}

// confirmed acknowledges a round end when the player pressed confirm in
// the frame being processed.
func (g *Game) confirmed(RoundResult) bool {
	return g.input.Has(core.ActionConfirm)
}

// Frame applies the frame's actions in arrival order, then runs the session.
func (g *Game) Frame(dtime float64, in core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{State: g.State()}
	}

	g.input = in
	defer func() { g.input = core.InputFrame{} }()

	for _, a := range in.Actions {
		if cmd, ok := CommandForAction(a); ok {
			g.session.Apply(cmd)
		}
	}
	fr := g.session.Frame(dtime)

	outcomes := make([]core.RoundOutcome, 0, len(fr.Rounds))
	for _, r := range fr.Rounds {
		outcomes = append(outcomes, core.RoundOutcome{
			Round:    r.Round,
			PinsDown: r.PinsDown,
			Steps:    r.Steps,
			SimTime:  r.SimTime,
			EndedBy:  r.EndedBy.String(),
		})
	}

	return core.StepResult{State: g.State(), Steps: fr.Steps, Rounds: outcomes}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	s := g.session
	st := core.GameState{
		Score:    s.Score(),
		Round:    s.Round(),
		Launched: s.State() == StateLaunched,
		Standing: PinCount - s.PinsDown(),
	}
	if r, ok := s.Pending(); ok {
		st.Prompt = fmt.Sprintf("Round %d: %d pins down", r.Round, r.PinsDown)
	}
	return st
}

// Render draws the HUD, the lane and any pending prompt.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		dst.DrawTextCentered(dst.Height()/2, "Lane failed to start")
		dst.DrawTextCentered(dst.Height()/2+1, g.err.Error())
		return
	}
	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
		return
	}
	if g.session == nil {
		return
	}

	st := g.State()
	g.renderHUD(dst, st)

	area := core.NewRect(0, 1, dst.Width(), dst.Height()-2)
	g.session.Draw(render.NewLaneRenderer(dst, area, render.DefaultCamera()))

	g.renderFooter(dst, st)
	if st.AwaitingConfirm() {
		drawCenteredBox(dst, st.Prompt, "Press ENTER to continue")
	}
}

func (g *Game) renderHUD(dst *core.Screen, st core.GameState) {
	dst.DrawText(1, 0, fmt.Sprintf("Round %d", st.Round))
	dst.DrawTextCentered(0, fmt.Sprintf("Standing: %d/%d", st.Standing, PinCount))
	score := fmt.Sprintf("Score: %d", st.Score)
	dst.DrawText(dst.Width()-len(score)-1, 0, score)
}

func (g *Game) renderFooter(dst *core.Screen, st core.GameState) {
	y := dst.Height() - 1
	switch {
	case st.AwaitingConfirm():
		return
	case !g.session.BallReady():
		dst.DrawTextCentered(y, "Setting up lane...")
	case st.Launched && g.strict:
		dst.DrawTextCentered(y, "R reset")
	case st.Launched:
		dst.DrawTextCentered(y, "A/D steer  R reset")
	default:
		dst.DrawTextCentered(y, "A/D aim  E/SPACE roll  R reset  Q quit")
	}
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	boxW := max(len(title), len(subtitle)) + 4
	box := core.CenteredRect(dst.Width(), dst.Height(), boxW, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawText(box.X+(boxW-len(title))/2, box.Y+1, title)
	dst.DrawText(box.X+(boxW-len(subtitle))/2, box.Y+3, subtitle)
}

func init() {
	registry.Register("bowling", func() registry.Game {
		return New()
	})
	registry.Register("bowling_strict", func() registry.Game {
		return NewStrict()
	})
}
