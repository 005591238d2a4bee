package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avelebit/deckhand/internal/core"
)

var updateCmd = &cobra.Command{
	Use:   "update <dir>",
	Short: "Refresh an existing installation from the current catalog",
	Long: `Re-resolve the crew persisted in <dir> and rewrite agent personas,
skills, and support scripts from the embedded catalog.

No new agents are added and persisted instance counts are preserved; update
only refreshes payloads that a newer deckhand release may have changed.`,
	Args: cobra.ExactArgs(1),
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

		// Empty request: operate on existing state only.
		plan := core.BuildPlan(d.cat, state, &core.SelectionRequest{})
		res, err := core.NewInstaller(d.cat).Install(plan, core.InstallOptions{TargetDir: targetDir})
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Refreshed %d agents and %d skills in %s\n",
			res.AgentsInstalled, res.SkillsInstalled, core.CrewDir(targetDir))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
