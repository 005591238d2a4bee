// Package core provides the business logic for deckhand.
// It has zero UI dependencies and is independently testable.
package core

// AgentCategory classifies an agent in the catalog manifest.
type AgentCategory string

const (
	// CategoryCore agents are always installed, regardless of selection.
	CategoryCore AgentCategory = "core"
	// CategoryDev agents are user-selected development specialists.
	CategoryDev AgentCategory = "selectable-dev"
	// CategoryOps agents are user-selected infra/ops specialists.
	CategoryOps AgentCategory = "selectable-ops"
)

// AgentDescriptor is one agent entry from the catalog manifest.
// Descriptors are immutable; they are never modified after catalog load.
type AgentDescriptor struct {
	Name     string        `json:"name"`
	Category AgentCategory `json:"category"`
	Summary  string        `json:"summary"`
	Skills   []string      `json:"skills"`
}

// Selectable reports whether the agent is chosen per-invocation
// (as opposed to a core agent that is always installed).
func (a AgentDescriptor) Selectable() bool {
	return a.Category == CategoryDev || a.Category == CategoryOps
}

// manifest is the parsed agents.json from the embedded catalog.
type manifest struct {
	Agents        []AgentDescriptor `json:"agents"`
	UtilitySkills []string          `json:"utilitySkills"`
}

// SkillMetadata is the YAML frontmatter parsed from a SKILL.md file.
type SkillMetadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// TrackerSettings is the integration configuration persisted in the target's
// settings.json. deckhand writes these settings but never calls the tracker
// itself; the sync hook is the external collaborator that does.
type TrackerSettings struct {
	URL         string `json:"url"`
	Account     string `json:"account"`
	Token       string `json:"token"`
	Board       string `json:"board,omitempty"`
	SyncEnabled bool   `json:"syncEnabled"`
}

// TrackerPatch is a partial update to TrackerSettings. Zero-valued string
// fields and a nil SyncEnabled are left untouched on merge.
type TrackerPatch struct {
	URL         string
	Account     string
	Token       string
	Board       string
	SyncEnabled *bool
}

// Empty reports whether the patch would change nothing.
func (p *TrackerPatch) Empty() bool {
	if p == nil {
		return true
	}
	return p.URL == "" && p.Account == "" && p.Token == "" && p.Board == "" && p.SyncEnabled == nil
}

// InstallState is the reconstructed view of a target directory. It is read
// fresh at the start of every invocation and never cached across runs.
type InstallState struct {
	// Counts maps each agent with a persisted config fragment to its
	// instance count. Fragment presence is what makes an agent "installed";
	// a missing persona file does not remove it from this map.
	Counts map[string]int

	// Tracker holds the persisted integration settings, with template
	// placeholders already normalized to "not configured".
	Tracker TrackerSettings

	// Initialized reports whether the target has a settings.json, i.e.
	// whether deckhand has ever completed an install there.
	Initialized bool
}

// Installed reports whether the named agent has a persisted fragment.
func (s *InstallState) Installed(name string) bool {
	_, ok := s.Counts[name]
	return ok
}

// SelectionRequest is the user's intent for one invocation. It is consumed
// to produce the next InstallState and never persisted itself.
type SelectionRequest struct {
	// Agents are the requested selectable agent names. Empty means
	// "no new agents, operate on existing state only".
	Agents []string

	// GlobalCount, when > 0, is the instance count applied to agents newly
	// requested in this invocation. It never resizes already-installed
	// agents that were not re-specified.
	GlobalCount int

	// AgentCounts are explicit per-agent counts that win over everything.
	AgentCounts map[string]int

	// Tracker, when non-nil, is merged into the target settings.
	Tracker *TrackerPatch
}

// InstallPlan is the resolved output of one invocation: every agent to
// install (core plus the merged selectable set), the deduplicated skill set,
// and the negotiated count per agent.
type InstallPlan struct {
	Agents []string
	Skills []string
	Counts map[string]int
}

// InstallResult summarizes what an Install call wrote.
type InstallResult struct {
	AgentsInstalled int
	SkillsInstalled int
	TrackerUpdated  bool
}
