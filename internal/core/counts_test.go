package core

import "testing"

func TestNegotiateCounts_Precedence(t *testing.T) {
	tests := []struct {
		name      string
		agents    []string
		existing  map[string]int
		requested []string
		global    int
		perAgent  map[string]int
		want      map[string]int
	}{
		{
			name:   "default is one",
			agents: []string{"a"},
			want:   map[string]int{"a": 1},
		},
		{
			name:     "persisted count survives",
			agents:   []string{"a"},
			existing: map[string]int{"a": 2},
			want:     map[string]int{"a": 2},
		},
		{
			name:      "global applies to newly requested only",
			agents:    []string{"a", "b"},
			existing:  map[string]int{"a": 2},
			requested: []string{"b"},
			global:    5,
			want:      map[string]int{"a": 2, "b": 5},
		},
		{
			name:      "re-specified agent does take the global override",
			agents:    []string{"a"},
			existing:  map[string]int{"a": 2},
			requested: []string{"a"},
			global:    5,
			want:      map[string]int{"a": 5},
		},
		{
			name:      "per-agent override beats everything",
			agents:    []string{"a"},
			existing:  map[string]int{"a": 2},
			requested: []string{"a"},
			global:    5,
			perAgent:  map[string]int{"a": 3},
			want:      map[string]int{"a": 3},
		},
		{
			name:      "newly requested without overrides defaults to one",
			agents:    []string{"b"},
			requested: []string{"b"},
			want:      map[string]int{"b": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NegotiateCounts(tt.agents, tt.existing, tt.requested, tt.global, tt.perAgent)
			if len(got) != len(tt.want) {
				t.Fatalf("counts = %v, want %v", got, tt.want)
			}
			for name, n := range tt.want {
				if got[name] != n {
					t.Errorf("counts[%s] = %d, want %d", name, got[name], n)
				}
			}
		})
	}
}

// TestNegotiateCounts_GlobalOverrideAsymmetry pins the load-bearing rule:
// adding one agent with a global override must not resize agents installed
// in an earlier run and not re-specified now.
func TestNegotiateCounts_GlobalOverrideAsymmetry(t *testing.T) {
	counts := NegotiateCounts(
		[]string{"old", "new"},
		map[string]int{"old": 2},
		[]string{"new"},
		5,
		nil,
	)
	if counts["old"] != 2 {
		t.Errorf("counts[old] = %d, want 2 (global override must not leak)", counts["old"])
	}
	if counts["new"] != 5 {
		t.Errorf("counts[new] = %d, want 5", counts["new"])
	}
}
