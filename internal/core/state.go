package core

import (
	"fmt"
	"os"
	"strings"

	"github.com/tailscale/hujson"
	"github.com/tidwall/gjson"
)

// Template placeholders shipped in the default settings file. When read
// back, they mean "not configured", exactly like an absent field; otherwise
// a user who never touched the tracker would be shown a bogus default.
const (
	TrackerURLPlaceholder   = "https://your-team.example.com"
	TrackerTokenPlaceholder = "YOUR_API_TOKEN"
)

// ReadState reconstructs the installed state of a target directory.
// A missing or never-initialized target yields an empty state, not an error.
func ReadState(targetDir string) (*InstallState, error) {
	state := &InstallState{Counts: make(map[string]int)}

	data, err := os.ReadFile(SettingsPath(targetDir))
	switch {
	case err == nil:
		state.Initialized = true
		state.Tracker = parseTracker(data)
	case os.IsNotExist(err):
		// Fresh target.
	default:
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	entries, err := os.ReadDir(FragmentsDir(targetDir))
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return nil, fmt.Errorf("reading agent fragments: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".json")

		// The fragment's presence is what marks the agent installed; a
		// missing persona file does not change that. The count falls back
		// to 1 when the field is absent or unusable.
		state.Counts[name] = readFragmentCount(FragmentPath(targetDir, name))
	}

	return state, nil
}

// readFragmentCount extracts the count field from a fragment file.
// Anything other than a positive integer yields 1.
func readFragmentCount(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 1
	}
	res := gjson.GetBytes(standardizeJSON(data), "count")
	if !res.Exists() {
		return 1
	}
	n := int(res.Int())
	if n < 1 || float64(n) != res.Num {
		return 1
	}
	return n
}

// parseTracker reads the tracker object from settings.json content.
// Placeholder URL and token values are normalized to empty.
func parseTracker(data []byte) TrackerSettings {
	std := standardizeJSON(data)

	t := TrackerSettings{
		URL:         gjson.GetBytes(std, "tracker.url").String(),
		Account:     gjson.GetBytes(std, "tracker.account").String(),
		Token:       gjson.GetBytes(std, "tracker.token").String(),
		Board:       gjson.GetBytes(std, "tracker.board").String(),
		SyncEnabled: gjson.GetBytes(std, "tracker.syncEnabled").Bool(),
	}
	if t.URL == TrackerURLPlaceholder {
		t.URL = ""
	}
	if t.Token == TrackerTokenPlaceholder {
		t.Token = ""
	}
	return t
}

// standardizeJSON normalizes hand-edited JSON (comments, trailing commas)
// to standard JSON. Content that won't standardize is returned as-is and
// left for gjson to make sense of.
func standardizeJSON(data []byte) []byte {
	std, err := hujson.Standardize(data)
	if err != nil {
		return data
	}
	return std
}
