package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bowling/internal/bowling"
	"github.com/vovakirdan/tui-bowling/internal/config"
)

var (
	flagSimFrames   int
	flagSimDT       float64
	flagSimLaunchAt int
	flagSimNudge    int
	flagSimRelaunch bool
	flagSimStrict   bool
	flagSimEvery    int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a lane without a terminal UI",
	Long: `Run a lane headless with a fixed frame time and print what happened.

The lane locates its ball during frame 0. The ball is then nudged --nudge
times (negative is left) before frame 1 and rolled before frame --launch-at.
Round ends are acknowledged immediately. The final snapshot hash is stable
for a given config and flag set.

Examples:
  bowling simulate
  bowling simulate --frames 1200 --relaunch
  bowling simulate --dt 0.033 --nudge -3 --every 30`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimFrames, "frames", 600, "Number of host frames to run")
	simulateCmd.Flags().Float64Var(&flagSimDT, "dt", 1.0/60, "Seconds of wall-clock time per frame")
	simulateCmd.Flags().IntVar(&flagSimLaunchAt, "launch-at", 2, "Frame before which the ball is rolled (>= 1)")
	simulateCmd.Flags().IntVar(&flagSimNudge, "nudge", 0, "Nudges before launch (negative = left)")
	simulateCmd.Flags().BoolVar(&flagSimRelaunch, "relaunch", false, "Roll again right after every round")
	simulateCmd.Flags().BoolVar(&flagSimStrict, "strict", false, "Lock nudging after launch")
	simulateCmd.Flags().IntVar(&flagSimEvery, "every", 0, "Print a digest line every N frames (0 = off)")
}

func runSimulate(cmd *cobra.Command, _ []string) {
	cfg, err := config.LoadBowling(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	if flagSimStrict {
		cfg.Rules.LockNudgeAfterLaunch = true
	}

	logger := newLogger(os.Stderr, "simulate")
	session, err := bowling.NewSession(bowling.ChipmunkWorld(cfg), bowling.Options{
		Config:    cfg,
		Confirmer: bowling.AlwaysConfirm,
		Logger:    logger,
	})
	if err != nil {
		fail("%v", err)
	}

	out := cmd.OutOrStdout()
	rounds := 0
	for frame := 0; frame < flagSimFrames; frame++ {
		if frame == 1 {
			nudge(session, flagSimNudge)
		}
		if frame == flagSimLaunchAt {
			session.Apply(bowling.CommandLaunch)
		}

		fr := session.Frame(flagSimDT)
		for _, r := range fr.Rounds {
			rounds++
			fmt.Fprintf(out, "round %d: %d pins down, %d steps, %.2fs, %s\n",
				r.Round, r.PinsDown, r.Steps, r.SimTime, r.EndedBy)
			if flagSimRelaunch {
				session.Apply(bowling.CommandLaunch)
			}
		}

		if flagSimEvery > 0 && (frame+1)%flagSimEvery == 0 {
			snap := session.Snapshot()
			fmt.Fprintf(out, "frame %5d: steps=%d state=%s standing=%d hash=%016x\n",
				frame+1, snap.Steps, session.State(), bowling.PinCount-session.PinsDown(), snap.Hash())
		}
	}

	snap := session.Snapshot()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "frames:  %d\n", snap.Frames)
	fmt.Fprintf(out, "steps:   %d\n", snap.Steps)
	fmt.Fprintf(out, "rounds:  %d\n", rounds)
	fmt.Fprintf(out, "score:   %d\n", session.Score())
	fmt.Fprintf(out, "state:   %s (%d pins down)\n", session.State(), session.PinsDown())
	fmt.Fprintf(out, "hash:    %016x\n", snap.Hash())
}

func nudge(s *bowling.Session, n int) {
	cmd := bowling.CommandMoveRight
	if n < 0 {
		cmd, n = bowling.CommandMoveLeft, -n
	}
	for i := 0; i < n; i++ {
		s.Apply(cmd)
	}
}
