package core

// Resolve computes the merged selectable agent set and the full skill set
// for one invocation. It is a pure function over the catalog, the state,
// and the request: no filesystem access, no side effects.
//
// The union is set algebra on agent identity: existing ∪ requested, no
// duplicates. The skill set is the union of the fixed utility skills, every
// core agent's declared skills, and every unioned agent's declared skills,
// deduplicated by skill name.
func Resolve(cat *Catalog, state *InstallState, req *SelectionRequest) (unionAgents, skillSet []string) {
	union := make(map[string]struct{})

	// Persisted fragments for agents the catalog no longer knows (or core
	// agents, which are not part of the selectable union) are skipped; the
	// catalog is authoritative for what can be installed.
	for name := range state.Counts {
		if a, err := cat.Agent(name); err == nil && a.Selectable() {
			union[name] = struct{}{}
		}
	}
	for _, name := range req.Agents {
		if a, err := cat.Agent(name); err == nil && a.Selectable() {
			union[name] = struct{}{}
		}
	}

	skills := make(map[string]struct{})
	for _, s := range cat.UtilitySkills() {
		skills[s] = struct{}{}
	}
	for _, a := range cat.CoreAgents() {
		for _, s := range a.Skills {
			skills[s] = struct{}{}
		}
	}
	for name := range union {
		declared, _ := cat.SkillsOf(name)
		for _, s := range declared {
			skills[s] = struct{}{}
		}
	}

	return sortedKeys(union), sortedKeys(skills)
}

// BuildPlan resolves the request against the state and negotiates counts,
// producing the final install plan. Plan agents are the core agents (in
// manifest order) followed by the selectable union (sorted).
func BuildPlan(cat *Catalog, state *InstallState, req *SelectionRequest) *InstallPlan {
	union, skills := Resolve(cat, state, req)

	var agents []string
	for _, a := range cat.CoreAgents() {
		agents = append(agents, a.Name)
	}
	agents = append(agents, union...)

	return &InstallPlan{
		Agents: agents,
		Skills: skills,
		Counts: NegotiateCounts(agents, state.Counts, req.Agents, req.GlobalCount, req.AgentCounts),
	}
}
