package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avelebit/deckhand/internal/core"
)

var statusCmd = &cobra.Command{
	Use:   "status <dir>",
	Short: "Show what is installed in a target directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		targetDir := args[0]
		state, err := core.ReadState(targetDir)
		if err != nil {
			return err
		}
		if !state.Initialized {
			return core.ErrNotInitialized(targetDir)
		}

		fmt.Fprintf(os.Stdout, "%s\n", headerStyle.Render("Installed crew in "+core.CrewDir(targetDir)))
		for _, agent := range d.cat.Agents() {
			if agent.Selectable() && !state.Installed(agent.Name) {
				continue
			}
			count := state.Counts[agent.Name]
			if !agent.Selectable() {
				fmt.Fprintf(os.Stdout, "  %-16s %s\n", agent.Name, mutedStyle.Render("core"))
				continue
			}
			fmt.Fprintf(os.Stdout, "  %-16s x%d\n", agent.Name, count)
		}

		fmt.Fprintln(os.Stdout)
		fmt.Fprintln(os.Stdout, headerStyle.Render("Tracker"))
		fmt.Fprintf(os.Stdout, "  URL:     %s\n", orUnset(state.Tracker.URL))
		fmt.Fprintf(os.Stdout, "  Account: %s\n", orUnset(state.Tracker.Account))
		fmt.Fprintf(os.Stdout, "  Board:   %s\n", orUnset(state.Tracker.Board))
		fmt.Fprintf(os.Stdout, "  Token:   %s\n", maskToken(state.Tracker.Token))
		fmt.Fprintf(os.Stdout, "  Sync:    %s\n", yesNo(state.Tracker.SyncEnabled))
		return nil
	},
}

func orUnset(s string) string {
	if s == "" {
		return mutedStyle.Render("(not set)")
	}
	return s
}

func maskToken(s string) string {
	if s == "" {
		return mutedStyle.Render("(not set)")
	}
	return "****"
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
