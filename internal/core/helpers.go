package core

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Target tree layout, relative to the project root.
const (
	crewDirName      = ".crew"
	agentsDirName    = "agents"
	skillsDirName    = "skills"
	scriptsDirName   = "scripts"
	hooksDirName     = "hooks"
	configDirName    = "config"
	settingsFileName = "settings.json"
)

// CrewDir returns the root of the deckhand-managed tree in a project.
func CrewDir(targetDir string) string {
	return filepath.Join(targetDir, crewDirName)
}

// SettingsPath returns the top-level config file path for a target.
func SettingsPath(targetDir string) string {
	return filepath.Join(targetDir, crewDirName, configDirName, settingsFileName)
}

// FragmentsDir returns the per-agent config fragment directory for a target.
func FragmentsDir(targetDir string) string {
	return filepath.Join(targetDir, crewDirName, configDirName, agentsDirName)
}

// FragmentPath returns the config fragment file path for one agent.
func FragmentPath(targetDir, agent string) string {
	return filepath.Join(FragmentsDir(targetDir), agent+".json")
}

// copyFSDir copies a directory tree out of an fs.FS onto disk. Shell scripts
// get the executable bit; embedded file modes are not meaningful.
func copyFSDir(fsys fs.FS, src, dst string) error {
	return fs.WalkDir(fsys, src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		dstPath := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(dstPath, 0o755)
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		mode := os.FileMode(0o644)
		if strings.HasSuffix(path, ".sh") {
			mode = 0o755
		}
		if err := os.WriteFile(dstPath, data, mode); err != nil {
			return fmt.Errorf("writing %s: %w", dstPath, err)
		}
		// WriteFile does not chmod an existing file.
		return os.Chmod(dstPath, mode)
	})
}

// writeFileAtomic writes data via a temp file and rename so a crash never
// leaves a half-written config file behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// sortedKeys returns the keys of a string-keyed map in sorted order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
