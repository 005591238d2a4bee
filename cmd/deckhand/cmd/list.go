package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avelebit/deckhand/internal/core"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the agents available in the catalog",
	Long: `List every agent in the embedded catalog, grouped by category.

With --dir, agents already installed in that directory are marked and show
their instance count. list never writes to the target.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		state := &core.InstallState{}
		dir, _ := cmd.Flags().GetString("dir")
		if dir != "" {
			state, err = core.ReadState(dir)
			if err != nil {
				return err
			}
		}

		groups := []struct {
			title    string
			category core.AgentCategory
		}{
			{"Core (always installed)", core.CategoryCore},
			{"Development", core.CategoryDev},
			{"Operations", core.CategoryOps},
		}

		for _, g := range groups {
			fmt.Fprintln(os.Stdout, headerStyle.Render(g.title))
			for _, agent := range d.cat.ListAgents(g.category) {
				marker := "  "
				if state.Installed(agent.Name) {
					n := state.Counts[agent.Name]
					marker = installedStyle.Render(fmt.Sprintf("* x%d", n)) + " "
				}
				fmt.Fprintf(os.Stdout, "  %s%-16s %s\n", marker, agent.Name, mutedStyle.Render(agent.Summary))
			}
			fmt.Fprintln(os.Stdout)
		}

		fmt.Fprintln(os.Stdout, headerStyle.Render("Utility skills (always installed)"))
		for _, name := range d.cat.UtilitySkills() {
			meta, err := d.cat.SkillMeta(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "    %-16s %s\n", name, mutedStyle.Render(meta.Description))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().String("dir", "", "Mark agents installed in this target directory")
	rootCmd.AddCommand(listCmd)
}
