package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bowling/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List lane variants",
	Long:  `Shows every registered lane variant.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	lanes := registry.List()

	if len(lanes) == 0 {
		fmt.Println("No lanes available.")
		return
	}

	fmt.Println("Available lanes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range lanes {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range lanes {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'bowling play <id>' to bowl.")
}
