package core

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/sjson"
)

// Installer performs the file-tree side effects of an install plan. Writes
// happen in a fixed order - agents, skills, scripts/hooks, config - so an
// interrupted run leaves a partially-upgraded but never contradictory tree;
// the next successful run repairs it. Concurrent invocations against the
// same target are a caller error: there is no locking.
type Installer struct {
	cat *Catalog
}

// NewInstaller creates an Installer backed by the given catalog.
func NewInstaller(cat *Catalog) *Installer {
	return &Installer{cat: cat}
}

// InstallOptions configures one Install run.
type InstallOptions struct {
	TargetDir string        // Project root to install into
	Tracker   *TrackerPatch // Optional integration settings to merge
}

// Install reconciles the target tree with the plan. The catalog is
// authoritative: persona, skill, and script payloads overwrite any local
// edits. The skills subtree is the one destructive step - it is rebuilt
// from scratch every run so a deselected agent's skills never linger.
func (inst *Installer) Install(plan *InstallPlan, opts InstallOptions) (*InstallResult, error) {
	if opts.TargetDir == "" {
		return nil, fmt.Errorf("target directory is required")
	}

	crewDir := CrewDir(opts.TargetDir)
	for _, sub := range []string{agentsDirName, scriptsDirName, hooksDirName} {
		if err := os.MkdirAll(filepath.Join(crewDir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("creating target skeleton: %w", err)
		}
	}
	if err := os.MkdirAll(FragmentsDir(opts.TargetDir), 0o755); err != nil {
		return nil, fmt.Errorf("creating target skeleton: %w", err)
	}

	// Agents.
	for _, name := range plan.Agents {
		if err := inst.copyAgentDoc(name, crewDir); err != nil {
			return nil, fmt.Errorf("installing agent %q: %w", name, err)
		}
	}

	// Skills: full replacement of the subtree.
	skillsDir := filepath.Join(crewDir, skillsDirName)
	if err := os.RemoveAll(skillsDir); err != nil {
		return nil, fmt.Errorf("clearing skills directory: %w", err)
	}
	if err := os.MkdirAll(skillsDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating skills directory: %w", err)
	}
	for _, name := range plan.Skills {
		dst := filepath.Join(skillsDir, name)
		if err := copyFSDir(inst.cat.fsys, skillDirPath(name), dst); err != nil {
			return nil, fmt.Errorf("installing skill %q: %w", name, err)
		}
	}

	// Support scripts and hooks, always refreshed.
	for _, sub := range []string{scriptsDirName, hooksDirName} {
		if err := inst.copySupportDir(sub, crewDir); err != nil {
			return nil, err
		}
	}

	// Config tree last: fragments first, then the optional tracker merge.
	if err := EnsureSettings(opts.TargetDir); err != nil {
		return nil, err
	}
	for _, name := range plan.Agents {
		if err := writeFragment(FragmentPath(opts.TargetDir, name), plan.Counts[name]); err != nil {
			return nil, fmt.Errorf("writing config fragment for %q: %w", name, err)
		}
	}

	trackerUpdated := false
	if opts.Tracker != nil {
		changed, err := UpsertTracker(opts.TargetDir, opts.Tracker)
		if err != nil {
			return nil, err
		}
		trackerUpdated = changed
	}

	return &InstallResult{
		AgentsInstalled: len(plan.Agents),
		SkillsInstalled: len(plan.Skills),
		TrackerUpdated:  trackerUpdated,
	}, nil
}

// copyAgentDoc writes one persona payload into the target, overwriting any
// local edits.
func (inst *Installer) copyAgentDoc(name, crewDir string) error {
	data, err := inst.cat.AgentDoc(name)
	if err != nil {
		return err
	}
	dst := filepath.Join(crewDir, agentsDirName, name+".md")
	return os.WriteFile(dst, data, 0o644)
}

// copySupportDir refreshes one support payload directory (scripts or hooks).
// A catalog without that directory is fine; nothing to copy.
func (inst *Installer) copySupportDir(sub, crewDir string) error {
	if _, err := fs.Stat(inst.cat.fsys, sub); err != nil {
		return nil
	}
	if err := copyFSDir(inst.cat.fsys, sub, filepath.Join(crewDir, sub)); err != nil {
		return fmt.Errorf("installing %s: %w", sub, err)
	}
	return nil
}

// writeFragment creates or patches one per-agent config fragment. An
// existing fragment keeps every field it has beyond count; only count is
// upserted.
func writeFragment(path string, count int) error {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		content := fmt.Sprintf("{\n  \"count\": %d\n}\n", count)
		return writeFileAtomic(path, []byte(content))
	}
	if err != nil {
		return fmt.Errorf("reading fragment: %w", err)
	}

	content, err := sjson.Set(string(standardizeJSON(raw)), "count", count)
	if err != nil {
		return fmt.Errorf("patching fragment: %w", err)
	}
	return writeFileAtomic(path, []byte(content))
}
