package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-bowling/internal/bowling"
	"github.com/vovakirdan/tui-bowling/internal/config"
	"github.com/vovakirdan/tui-bowling/internal/core"
	"github.com/vovakirdan/tui-bowling/internal/platform/tui"
	"github.com/vovakirdan/tui-bowling/internal/registry"
	"github.com/vovakirdan/tui-bowling/internal/storage"
)

var flagPlayer string

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Bowl on a lane",
	Long: `Start bowling. Without a variant a lane picker is shown first and you
return to it after leaving a lane.

Controls:
  A/D, Left/Right  - Nudge the ball
  E/Space          - Roll
  R                - Put ball and pins back
  Enter            - Continue after a round
  Esc/B            - Leave the lane
  Ctrl+S           - Save a screenshot to ~/.bowling/screenshots
  Q/Ctrl+C         - Quit

Logs go to ~/.bowling/bowling.log while the lane is on screen.

Examples:
  bowling play
  bowling play bowling
  bowling play bowling_strict --player ann
  bowling play --config ./my-lane.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", os.Getenv("USER"), "Name recorded with your rounds")
}

func runPlay(_ *cobra.Command, args []string) {
	// Fail before taking over the terminal
	if _, err := config.LoadBowling(flagConfig); err != nil {
		fail("%v", err)
	}

	logger, closeLog := fileLogger()
	defer closeLog()
	bowling.SetLogger(logger)

	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open rounds database: %v\n", err)
		// Continue without storage - the lane still works
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	if len(args) == 1 {
		if err := playLane(args[0], store, cfg, logger); err != nil {
			closeLog()
			fail("%v", err)
		}
		return
	}

	if err := pickerLoop(store, cfg, logger); err != nil {
		closeLog()
		fail("%v", err)
	}
}

// pickerLoop alternates between the lane picker and the chosen screen
// until the player quits.
func pickerLoop(store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		switch {
		case result.Quit:
			return nil
		case result.WantsScoreboard:
			back, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !back {
				return nil
			}
		default:
			if err := playLane(result.GameID, store, cfg, logger); err != nil {
				return err
			}
		}
	}
}

func playLane(id string, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	if !registry.Exists(id) {
		return fmt.Errorf("unknown lane %q (run 'bowling list' to see lanes)", id)
	}
	game, err := registry.Create(id)
	if err != nil {
		return err
	}

	logger.Info("lane opened", "lane", id, "player", flagPlayer)
	if err := tui.Run(game, store, cfg, flagPlayer, logger); err != nil {
		return fmt.Errorf("running lane: %w", err)
	}
	if g, ok := game.(*bowling.Game); ok && g.Err() != nil {
		return g.Err()
	}
	return nil
}

// fileLogger logs to ~/.bowling/bowling.log since the terminal belongs to
// the UI. Falls back to discarding if the file cannot be opened.
func fileLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	dir := filepath.Join(home, ".bowling")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "bowling.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.New(io.Discard), func() {}
	}

	var once sync.Once
	return newLogger(f, "bowling"), func() { once.Do(func() { f.Close() }) }
}
