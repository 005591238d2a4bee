package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/avelebit/deckhand/internal/core"
	"github.com/avelebit/deckhand/internal/tui"
)

var installCmd = &cobra.Command{
	Use:   "install <dir>",
	Short: "Install a crew of agents into a project directory",
	Long: `Install agents from the catalog into <dir>.

Without --agents, deckhand prompts for a selection (a full-screen wizard on
a terminal, plain line prompts when piped). With --agents, the given
selectable agents are installed without prompting:

  deckhand install . --agents backend-dev,devops --count 2

Core agents are always installed. Re-running adds to the existing crew; it
never removes agents, and --count applies only to agents selected this run.
The skills directory is rebuilt from the catalog on every run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		targetDir := args[0]
		count, _ := cmd.Flags().GetInt("count")
		if count < 0 {
			return &core.ValidationError{Message: fmt.Sprintf("invalid count %d: must be a positive integer", count)}
		}

		tracker, err := trackerPatchFromFlags(cmd)
		if err != nil {
			return err
		}

		state, err := core.ReadState(targetDir)
		if err != nil {
			return err
		}

		agentsFlag, _ := cmd.Flags().GetString("agents")

		var req *core.SelectionRequest
		switch {
		case agentsFlag != "":
			req, err = core.ExplicitSelection(d.cat, splitCSV(agentsFlag), count)
		case term.IsTerminal(int(os.Stdin.Fd())):
			req, err = tui.RunInstallWizard(d.cat, state)
		default:
			req, err = core.InteractiveSelection(d.cat, state, os.Stdin, os.Stdout)
		}
		if err != nil {
			return err
		}
		if req.GlobalCount == 0 {
			req.GlobalCount = count
		}

		plan := core.BuildPlan(d.cat, state, req)
		res, err := core.NewInstaller(d.cat).Install(plan, core.InstallOptions{
			TargetDir: targetDir,
			Tracker:   tracker,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Installed %d agents and %d skills into %s\n",
			res.AgentsInstalled, res.SkillsInstalled, core.CrewDir(targetDir))
		if tracker != nil {
			fmt.Fprintf(os.Stdout, "Tracker settings updated: %s\n", yesNo(res.TrackerUpdated))
		}
		return nil
	},
}

func init() {
	installCmd.Flags().String("agents", "", "Comma-separated selectable agents to install (skips prompts)")
	installCmd.Flags().Int("count", 0, "Instance count for newly selected agents")
	addTrackerFlags(installCmd)
	rootCmd.AddCommand(installCmd)
}
