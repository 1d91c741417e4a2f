package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lanerush/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all match modes",
	Long:  `Shows every registered match mode and its title.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	modes := registry.List()

	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Match modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, m := range modes {
		if len(m.ID) > maxIDLen {
			maxIDLen = len(m.ID)
		}
	}

	dim := color.New(color.Faint)

	// Print header
	dim.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	dim.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	// Print modes
	for _, m := range modes {
		fmt.Printf("  %-*s  %s\n", maxIDLen, m.ID, m.Title)
	}

	fmt.Println()
	fmt.Println("Race with 'lanerush play', 'lanerush duo', or 'lanerush watch'.")
}
