package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lanerush/internal/core"
	"github.com/vovakirdan/lanerush/internal/games/rush"
	"github.com/vovakirdan/lanerush/internal/lobby"
	"github.com/vovakirdan/lanerush/internal/platform/tui"
	"github.com/vovakirdan/lanerush/internal/registry"
	"github.com/vovakirdan/lanerush/internal/storage"
)

var flagHostName string

var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Open a waiting room and race its lineup",
	Long: `Open a waiting room with a join code, then race the lineup.

The room only carries display names: every participant races their own
local match against bot-driven stand-ins for the other seats. Join
codes are shared between players connected to the same 'lanerush serve'
instance; this command runs the same flow on one machine, so empty
seats simply race as bots.

Examples:
  lanerush host
  lanerush host --name Ada`,
	Run: runHost,
}

func init() {
	hostCmd.Flags().StringVar(&flagHostName, "name", "", "Display name for your runner")
	hostCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom track config YAML")
}

func runHost(_ *cobra.Command, _ []string) {
	name := flagHostName
	if name == "" {
		name = core.Player1.String()
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	board := lobby.NewBoard(lobby.DefaultBoardConfig())
	board.Start()
	defer board.Stop()

	result, err := tui.RunRoom(board, name, width, height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !result.Start {
		return
	}

	rush.SetConfigPath(flagConfig)
	rush.SetPlayerNames(name)
	rush.SetBotNames(botNamesFromLineup(result.Lineup, result.Lane)...)

	game, err := registry.Create("rush")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating match: %v\n", err)
		os.Exit(1)
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     time.Now().UnixNano(),
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	runErr := tui.Run(game, store, cfg, false)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running match: %v\n", runErr)
		os.Exit(1)
	}
}

// botNamesFromLineup maps a waiting-room lineup onto the bot roster, in
// lane order, skipping the local player's own seat. Empty entries keep
// the configured roster names.
func botNamesFromLineup(lineup [3]lobby.Seat, ownLane int) []string {
	names := make([]string, 0, 2)
	for lane, seat := range lineup {
		if lane == ownLane {
			continue
		}
		if seat.IsBot {
			names = append(names, "")
		} else {
			names = append(names, seat.Name)
		}
	}
	return names
}
