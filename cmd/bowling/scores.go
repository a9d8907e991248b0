package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-bowling/internal/platform/tui"
	"github.com/vovakirdan/tui-bowling/internal/registry"
	"github.com/vovakirdan/tui-bowling/internal/storage"
)

var (
	flagScoresLimit       int
	flagScoresRecent      bool
	flagScoresInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show the best rounds on a lane",
	Long: `Display the best rounds for a lane: most pins first, quickest to
settle breaks ties. Defaults to the "bowling" lane.

Examples:
  bowling scores
  bowling scores bowling_strict --recent
  bowling scores --interactive`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of rounds to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the latest rounds instead of the best")
	scoresCmd.Flags().BoolVarP(&flagScoresInteractive, "interactive", "i", false, "Browse all lanes in a table")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := "bowling"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fail("unknown lane %q (run 'bowling list' to see lanes)", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening rounds database: %v", err)
	}
	defer store.Close()

	if flagScoresInteractive {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		if _, err := tui.RunScoreboard(store, width, height); err != nil {
			store.Close()
			fail("%v", err)
		}
		return
	}

	query, kind := store.TopRounds, "Best rounds"
	if flagScoresRecent {
		query, kind = store.RecentRounds, "Recent rounds"
	}
	rounds, err := query(gameID, flagScoresLimit)
	if err != nil {
		store.Close()
		fail("%v", err)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		store.Close()
		fail("%v", err)
	}
	fmt.Printf("%s - %s\n", kind, game.Title())
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'bowling play %s' to get on the board!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-12s  %-4s  %-7s  %-8s  %s\n", "#", "Player", "Pins", "Time", "Ended", "Date")
	fmt.Printf("  %-4s  %-12s  %-4s  %-7s  %-8s  %s\n", "-", "------", "----", "----", "-----", "----")
	for i, r := range rounds {
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-12s  %-4d  %-7s  %-8s  %s\n",
			i+1, player, r.PinsDown, fmt.Sprintf("%.1fs", r.SimTime), r.EndedBy,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetLaneStats(gameID); err == nil && stats.Rounds > 0 {
		fmt.Println()
		fmt.Printf("Rounds: %d  Strikes: %d  Best: %d  Average: %.1f\n",
			stats.Rounds, stats.Strikes, stats.BestPins, stats.AvgPins)
	}
}
