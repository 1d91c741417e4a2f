package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lanerush/internal/config"
)

var flagConfigWrite bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or write the default track config",
	Long: `Print the default track configuration YAML. With --write, save it
to ~/.lanerush/configs/rush.yaml as a starting point for edits; matches
pick it up automatically on the next run.

Examples:
  lanerush config
  lanerush config --write
  lanerush config > my-track.yaml`,
	Run: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigWrite, "write", false, "Write the default config to the user config directory")
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) {
	data := config.DefaultYAML()

	if !flagConfigWrite {
		fmt.Print(string(data))
		return
	}

	path := config.UserConfigPath("rush.yaml")
	if path == "" {
		fmt.Fprintln(os.Stderr, "Error: cannot resolve home directory")
		os.Exit(1)
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(os.Stderr, "Error: %s already exists, not overwriting\n", path)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating config directory: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s\n", path)
}
