package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avelebit/deckhand/internal/core"
)

var configureCmd = &cobra.Command{
	Use:   "configure <dir>",
	Short: "Set tracker integration settings on an installed target",
	Long: `Merge tracker integration settings into <dir>'s settings file.

Only the flags you pass are changed; everything else in the settings file -
including fields configured in earlier passes - is preserved. deckhand
stores these settings for the sync hook but never calls the tracker itself.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		targetDir := args[0]

		state, err := core.ReadState(targetDir)
		if err != nil {
			return err
		}
		if !state.Initialized {
			return core.ErrNotInitialized(targetDir)
		}

		patch, err := trackerPatchFromFlags(cmd)
		if err != nil {
			return err
		}
		if patch == nil {
			return &core.ValidationError{
				Message: "no tracker settings provided; pass --tracker-url, --tracker-account, --tracker-token, --tracker-board, --enable-sync, or --disable-sync",
			}
		}

		changed, err := core.UpsertTracker(targetDir, patch)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Tracker settings updated: %s\n", yesNo(changed))
		return nil
	},
}

func init() {
	addTrackerFlags(configureCmd)
	rootCmd.AddCommand(configureCmd)
}
