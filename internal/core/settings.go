package core

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/sjson"
)

// defaultSettings is what a fresh install writes as the top-level config.
// The tracker block ships with template placeholders the user replaces via
// 'deckhand configure'.
func defaultSettings() map[string]any {
	return map[string]any{
		"version": 1,
		"tracker": TrackerSettings{
			URL:   TrackerURLPlaceholder,
			Token: TrackerTokenPlaceholder,
		},
	}
}

// EnsureSettings creates the top-level settings file if it does not exist.
// An existing file is left byte-identical, whatever its content.
func EnsureSettings(targetDir string) error {
	path := SettingsPath(targetDir)
	if fileExists(path) {
		return nil
	}

	data, err := json.MarshalIndent(defaultSettings(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling default settings: %w", err)
	}
	return writeFileAtomic(path, append(data, '\n'))
}

// UpsertTracker merges a tracker patch into settings.json one field at a
// time. Fields the patch does not set keep their current values, so a board
// configured in an earlier pass survives a later URL change. The file is
// never replaced wholesale.
func UpsertTracker(targetDir string, patch *TrackerPatch) (bool, error) {
	if patch.Empty() {
		return false, nil
	}

	path := SettingsPath(targetDir)
	raw, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading settings: %w", err)
	}

	content := string(standardizeJSON(raw))
	original := content

	set := func(field, value string) {
		if value == "" || err != nil {
			return
		}
		content, err = sjson.Set(content, "tracker."+field, value)
	}
	set("url", patch.URL)
	set("account", patch.Account)
	set("token", patch.Token)
	set("board", patch.Board)
	if err == nil && patch.SyncEnabled != nil {
		content, err = sjson.Set(content, "tracker.syncEnabled", *patch.SyncEnabled)
	}
	if err != nil {
		return false, fmt.Errorf("patching tracker settings: %w", err)
	}

	if content == original {
		return false, nil
	}
	if err := writeFileAtomic(path, []byte(content)); err != nil {
		return false, err
	}
	return true, nil
}
