package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/avelebit/deckhand/internal/core"
)

var showCmd = &cobra.Command{
	Use:   "show <agent-or-skill>",
	Short: "Render an agent persona or skill document from the catalog",
	Long: `Render the catalog document for an agent or a skill.

Agent names are tried first, then skill names. Output is rendered as
markdown on a terminal and printed raw when piped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		name := args[0]
		doc, err := d.cat.AgentDoc(name)
		if err != nil {
			var nf *core.NotFoundError
			if !errors.As(err, &nf) {
				return err
			}
			doc, err = d.cat.SkillDoc(name)
			if err != nil {
				return &core.NotFoundError{Kind: "agent or skill", Name: name}
			}
		}

		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprint(os.Stdout, string(doc))
			return nil
		}

		width, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || width <= 0 || width > 100 {
			width = 100
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			// Fall back to raw output if the renderer cannot be built.
			fmt.Fprint(os.Stdout, string(doc))
			return nil
		}
		out, err := r.Render(string(doc))
		if err != nil {
			fmt.Fprint(os.Stdout, string(doc))
			return nil
		}
		fmt.Fprint(os.Stdout, out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
