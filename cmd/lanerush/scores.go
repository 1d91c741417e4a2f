package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lanerush/internal/registry"
	"github.com/vovakirdan/lanerush/internal/storage"
)

var flagRecentMatches int

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show survival-time leaderboards",
	Long: `Display the top 10 survival times for the given mode, along with
aggregate stats. With --matches, also list recent match results.

Examples:
  lanerush scores
  lanerush scores rush_duo
  lanerush scores rush --matches 5`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecentMatches, "matches", 0, "Also show the N most recent matches")
}

func runScores(_ *cobra.Command, args []string) {
	modeID := "rush"
	if len(args) > 0 {
		modeID = args[0]
	}

	// Check if mode exists
	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'lanerush list' to see available modes.")
		os.Exit(1)
	}

	// Get mode title
	game, err := registry.Create(modeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating match: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Get top runs
	runs, err := store.TopRuns(modeID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	header := color.New(color.FgCyan, color.Bold)
	gold := color.New(color.FgYellow, color.Bold)
	dim := color.New(color.Faint)

	header.Printf("Survival Times - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Race 'lanerush play' to set the first time!\n")
		return
	}

	// Print header
	dim.Printf("  %-4s  %-14s  %-10s  %s\n", "Rank", "Player", "Survived", "Date")
	dim.Printf("  %-4s  %-14s  %-10s  %s\n", "----", "------", "--------", "----")

	// Print runs
	for i, entry := range runs {
		line := fmt.Sprintf("  %-4d  %-14s  %-10s  %s",
			i+1, entry.Player, fmt.Sprintf("%.1fs", entry.Seconds),
			entry.CreatedAt.Format("2006-01-02 15:04"))
		if i == 0 {
			gold.Println(line)
		} else {
			fmt.Println(line)
		}
	}

	// Show aggregate stats
	if stats, statsErr := store.Stats(modeID); statsErr == nil && stats != nil {
		fmt.Println()
		fmt.Printf("Runs: %d   Best: %.1fs   Average: %.1fs\n",
			stats.RunCount, stats.BestTime, stats.AvgTime)
	}

	if flagRecentMatches > 0 {
		printRecentMatches(store, flagRecentMatches)
	}
}

// printRecentMatches lists the latest match results with their lineups.
func printRecentMatches(store *storage.Store, limit int) {
	matches, err := store.RecentMatches(limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving matches: %v\n", err)
		return
	}
	if len(matches) == 0 {
		return
	}

	header := color.New(color.FgCyan, color.Bold)
	winner := color.New(color.FgGreen)
	dim := color.New(color.Faint)

	fmt.Println()
	header.Println("Recent Matches")

	for _, m := range matches {
		fmt.Println()
		fmt.Printf("  %s  %s  (%.1fs)\n",
			m.CreatedAt.Format("2006-01-02 15:04"), m.ModeID, m.Duration)
		for _, lane := range m.Lanes {
			tag := ""
			if lane.IsBot {
				tag = " (bot)"
			}
			line := fmt.Sprintf("    %d. %s%s - %.1fs", lane.Rank, lane.Player, tag, lane.Seconds)
			if lane.Rank == 1 {
				winner.Println(line)
			} else {
				dim.Println(line)
			}
		}
	}
}
