package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "deckhand",
	Short: "Install and maintain an AI agent crew in your projects",
	Long: `deckhand ships a catalog of agent personas and skill documents and
installs a selected subset of it into a project directory.

Pick the specialists your project needs, re-run any time to add more or to
refresh payloads from a newer catalog, and wire up optional tracker sync -
deckhand reconciles the target tree instead of blindly copying.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("deckhand %s (commit: %s, built: %s)\n", Version, Commit, Date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
