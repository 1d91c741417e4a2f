package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lanerush/internal/core"
	"github.com/vovakirdan/lanerush/internal/games/rush"
	"github.com/vovakirdan/lanerush/internal/platform/tui"
	"github.com/vovakirdan/lanerush/internal/registry"
	"github.com/vovakirdan/lanerush/internal/storage"
)

var (
	flagConfig string
	flagName   string
	flagName2  string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Race against two bots",
	Long: `Start a solo match: your runner in lane 1, bots in lanes 2 and 3.

Controls:
  Space/W    - Jump (press again mid-air for a double jump)
  P          - Pause
  R          - Restart (after the match ends)
  Q/Ctrl+C   - Quit

Bot skill comes from the track config's per-bot error rates; edit
~/.lanerush/configs/rush.yaml (see 'lanerush config') to tune it.

Examples:
  lanerush play
  lanerush play --name Ada
  lanerush play --config ./my-track.yaml
  lanerush play --seed 42`,
	Run: func(_ *cobra.Command, _ []string) {
		runMode("rush")
	},
}

var duoCmd = &cobra.Command{
	Use:   "duo",
	Short: "Two keyboard seats on one machine",
	Long: `Start a shared-keyboard match: two runners side by side, one bot.

Controls:
  Space/W    - Player 1 jump
  Up         - Player 2 jump
  P          - Pause
  R          - Restart (after the match ends)
  Q/Ctrl+C   - Quit

Examples:
  lanerush duo
  lanerush duo --name Ada --name2 Lin`,
	Run: func(_ *cobra.Command, _ []string) {
		runMode("rush_duo")
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a bots-only exhibition match",
	Long: `Run an exhibition match with all three lanes driven by bots.

Examples:
  lanerush watch
  lanerush watch --seed 7  # The same seed replays the same race`,
	Run: func(_ *cobra.Command, _ []string) {
		runMode("rush_bots")
	},
}

func init() {
	for _, cmd := range []*cobra.Command{playCmd, duoCmd, watchCmd} {
		cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom track config YAML")
	}
	playCmd.Flags().StringVar(&flagName, "name", "", "Display name for your runner")
	duoCmd.Flags().StringVar(&flagName, "name", "", "Display name for player 1")
	duoCmd.Flags().StringVar(&flagName2, "name2", "", "Display name for player 2")
}

// runMode starts one match in the given mode and returns when it ends.
func runMode(modeID string) {
	rush.SetConfigPath(flagConfig)
	rush.SetPlayerNames(flagName, flagName2)

	game, err := registry.Create(modeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating match: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - the match still works
		store = nil
	}

	runErr := tui.Run(game, store, cfg, modeID == "rush_duo")

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running match: %v\n", runErr)
		os.Exit(1)
	}
}
