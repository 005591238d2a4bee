package cmd

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/avelebit/deckhand/catalog"
	"github.com/avelebit/deckhand/internal/core"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	installedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// deps bundles what every command needs. The catalog is re-parsed per
// invocation; it is embedded, so this is cheap and keeps commands stateless.
type deps struct {
	cat *core.Catalog
}

func newDeps() (*deps, error) {
	cat, err := core.NewCatalog(catalog.FS)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return &deps{cat: cat}, nil
}

// splitCSV splits a comma-separated flag value into trimmed parts.
func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// addTrackerFlags registers the integration-settings flags shared by
// install and configure.
func addTrackerFlags(cmd *cobra.Command) {
	cmd.Flags().String("tracker-url", "", "Tracker endpoint URL")
	cmd.Flags().String("tracker-account", "", "Tracker account identifier")
	cmd.Flags().String("tracker-token", "", "Tracker API token")
	cmd.Flags().String("tracker-board", "", "Tracker board identifier")
	cmd.Flags().Bool("enable-sync", false, "Enable tracker sync (requires curl)")
	cmd.Flags().Bool("disable-sync", false, "Disable tracker sync")
}

// trackerPatchFromFlags builds the tracker patch from flags. Returns nil
// when no tracker flag was used. Enabling sync verifies that curl - the
// tool the sync hook shells out to - is available, before any writes.
func trackerPatchFromFlags(cmd *cobra.Command) (*core.TrackerPatch, error) {
	patch := &core.TrackerPatch{}
	patch.URL, _ = cmd.Flags().GetString("tracker-url")
	patch.Account, _ = cmd.Flags().GetString("tracker-account")
	patch.Token, _ = cmd.Flags().GetString("tracker-token")
	patch.Board, _ = cmd.Flags().GetString("tracker-board")

	enable, _ := cmd.Flags().GetBool("enable-sync")
	disable, _ := cmd.Flags().GetBool("disable-sync")
	switch {
	case enable:
		if _, err := exec.LookPath("curl"); err != nil {
			return nil, core.ErrToolUnavailable("curl")
		}
		v := true
		patch.SyncEnabled = &v
	case disable:
		v := false
		patch.SyncEnabled = &v
	}

	if patch.Empty() {
		return nil, nil
	}
	return patch, nil
}
