// lanerush is a three-lane endless-runner race for the terminal.
//
// Usage:
//
//	lanerush play             - Race two bots on your own
//	lanerush duo              - Two keyboard seats on one machine
//	lanerush watch            - Bots-only exhibition match
//	lanerush menu             - Interactive mode picker
//	lanerush host             - Open a waiting room with a join code
//	lanerush serve            - Start SSH server for remote play
//	lanerush scores [mode]    - Show survival-time leaderboards
//	lanerush simulate         - Run headless bot matches
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible matches
//	--db <path>     - Set database path (default: ~/.lanerush/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register its modes
	_ "github.com/vovakirdan/lanerush/internal/games/rush"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lanerush",
	Short: "Lane Rush - a three-lane survival race in your terminal",
	Long: `Lane Rush is a terminal racing game: three runners share one
obstacle track, the track keeps speeding up, and the longest survivor
wins the match.

Available commands:
  play      - Race against two bots
  duo       - Two keyboard seats on one machine
  watch     - Bots-only exhibition match
  menu      - Interactive mode picker
  host      - Open a waiting room with a join code
  serve     - Start SSH server for remote play
  scores    - View survival-time leaderboards
  simulate  - Run headless bot matches
  list      - Show all match modes

Examples:
  lanerush play
  lanerush duo --name Ada --name2 Lin
  lanerush serve --ssh :2222
  lanerush scores rush
  lanerush simulate --matches 100`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.lanerush/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(duoCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(hostCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
}
