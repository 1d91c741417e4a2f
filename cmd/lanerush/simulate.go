package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lanerush/internal/config"
	"github.com/vovakirdan/lanerush/internal/core"
	"github.com/vovakirdan/lanerush/internal/games/rush"
	"github.com/vovakirdan/lanerush/internal/storage"
)

var (
	flagSimMatches    int
	flagSimMaxSeconds float64
	flagSimSave       bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run headless bot matches",
	Long: `Run bots-only matches without a terminal UI, as fast as the CPU
allows, and print the standings. Useful for tuning track configs and
bot error rates.

With --seed, match N uses seed+N, so a batch is reproducible.

Examples:
  lanerush simulate
  lanerush simulate --matches 100
  lanerush simulate --matches 20 --seed 42 --config ./my-track.yaml
  lanerush simulate --matches 50 --save`,
	Run: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimMatches, "matches", 1, "Number of matches to run")
	simulateCmd.Flags().Float64Var(&flagSimMaxSeconds, "max-seconds", 600, "Simulated-clock cap per match")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record match results in the database")
	simulateCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom track config YAML")
}

func runSimulate(_ *cobra.Command, _ []string) {
	if flagSimMatches < 1 {
		flagSimMatches = 1
	}

	cfg, err := config.LoadRush(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
		cfg = config.DefaultRushConfig()
	}

	var store *storage.Store
	if flagSimSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	baseSeed := flagSeed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	wins := make(map[string]int)
	var totalDuration float64
	completed := 0

	winner := color.New(color.FgGreen)

	for i := 0; i < flagSimMatches; i++ {
		match := rush.NewMatch(cfg, nil, baseSeed+int64(i))

		results, simErr := rush.Simulate(match, flagFPS, flagSimMaxSeconds)
		if simErr != nil {
			fmt.Fprintf(os.Stderr, "Match %d: %v\n", i+1, simErr)
			continue
		}

		top := results[0]
		wins[top.Name]++
		totalDuration += top.Time
		completed++

		winner.Printf("Match %3d:  %s wins at %.1fs", i+1, top.Name, top.Time)
		for _, r := range results[1:] {
			fmt.Printf("   %s %.1fs", r.Name, r.Time)
		}
		fmt.Println()

		if store != nil {
			saveSimulated(store, results, baseSeed+int64(i))
		}
	}

	if completed == 0 {
		os.Exit(1)
	}

	// Aggregate standings
	names := make([]string, 0, len(wins))
	for name := range wins {
		names = append(names, name)
	}
	sort.Slice(names, func(a, b int) bool {
		if wins[names[a]] != wins[names[b]] {
			return wins[names[a]] > wins[names[b]]
		}
		return names[a] < names[b]
	})

	header := color.New(color.FgCyan, color.Bold)
	fmt.Println()
	header.Printf("Standings over %d matches\n", completed)
	for _, name := range names {
		fmt.Printf("  %-14s %3d wins  (%.0f%%)\n",
			name, wins[name], 100*float64(wins[name])/float64(completed))
	}
	fmt.Printf("Average winning time: %.1fs\n", totalDuration/float64(completed))
}

// saveSimulated records one headless match, best-effort.
func saveSimulated(store *storage.Store, results []core.LaneResult, seed int64) {
	rec := storage.MatchRecord{
		MatchID:  fmt.Sprintf("sim-%d", seed),
		ModeID:   "rush_bots",
		Winner:   results[0].Name,
		Duration: results[0].Time,
	}
	for i, r := range results {
		rec.Lanes = append(rec.Lanes, storage.MatchLane{
			Lane:    r.Lane,
			Player:  r.Name,
			IsBot:   r.IsBot,
			Seconds: r.Time,
			Rank:    i + 1,
		})
	}
	//nolint:errcheck // Best-effort save
	store.SaveMatch(rec)
}
