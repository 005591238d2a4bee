package core

// NegotiateCounts resolves the effective instance count for every agent in
// the plan. Precedence per agent, highest first:
//
//  1. an explicit per-agent override from this invocation
//  2. the global override, but only for agents newly requested this run
//  3. the persisted count from a previous install
//  4. 1
//
// The global override deliberately never resizes an already-installed agent
// that was not re-specified: re-running the installer to add one agent must
// not silently change unrelated ones.
func NegotiateCounts(agents []string, existing map[string]int, requested []string, globalCount int, perAgent map[string]int) map[string]int {
	requestedSet := make(map[string]bool, len(requested))
	for _, name := range requested {
		requestedSet[name] = true
	}

	counts := make(map[string]int, len(agents))
	for _, name := range agents {
		switch {
		case perAgent[name] > 0:
			counts[name] = perAgent[name]
		case requestedSet[name] && globalCount > 0:
			counts[name] = globalCount
		case existing[name] > 0:
			counts[name] = existing[name]
		default:
			counts[name] = 1
		}
	}
	return counts
}
