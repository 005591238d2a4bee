package core

import (
	"errors"
	"strings"
	"testing"
)

func TestExplicitSelection(t *testing.T) {
	cat := mustCatalog(t)

	req, err := ExplicitSelection(cat, []string{" dev-a ", "ops-a", "dev-a"}, 2)
	if err != nil {
		t.Fatalf("ExplicitSelection() error: %v", err)
	}
	if len(req.Agents) != 2 || req.Agents[0] != "dev-a" || req.Agents[1] != "ops-a" {
		t.Errorf("Agents = %v", req.Agents)
	}
	if req.GlobalCount != 2 {
		t.Errorf("GlobalCount = %d", req.GlobalCount)
	}
}

func TestExplicitSelection_UnknownAgent(t *testing.T) {
	cat := mustCatalog(t)

	tests := []struct {
		name  string
		input []string
	}{
		{"unknown name", []string{"dev-a", "nosuch"}},
		{"core agent is not selectable", []string{"lead"}},
		// An identity that is a prefix of a real one must not match it.
		{"prefix of a valid name", []string{"dev"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExplicitSelection(cat, tt.input, 0)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error = %v, want ValidationError", err)
			}
			if !strings.Contains(ve.Message, "unknown agent identifier") {
				t.Errorf("message = %q", ve.Message)
			}
			if !strings.Contains(ve.Message, "dev-a") {
				t.Errorf("message does not list valid agents: %q", ve.Message)
			}
		})
	}
}

func TestExplicitSelection_NegativeCount(t *testing.T) {
	cat := mustCatalog(t)
	_, err := ExplicitSelection(cat, []string{"dev-a"}, -1)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}

func TestParseIndexSelection(t *testing.T) {
	cat := mustCatalog(t)
	devs := cat.ListAgents(CategoryDev) // dev-a, dev-b

	tests := []struct {
		input string
		want  []string
	}{
		{"1", []string{"dev-a"}},
		{"1 2", []string{"dev-a", "dev-b"}},
		{"1,2", []string{"dev-a", "dev-b"}},
		{"2, 1", []string{"dev-b", "dev-a"}},
		{"1 1 1", []string{"dev-a"}},
		// Out-of-range and malformed tokens are ignored, not errors:
		// hand-typed input with a typo must not abort the selection.
		{"1 9", []string{"dev-a"}},
		{"0 2", []string{"dev-b"}},
		{"1 x", []string{"dev-a"}},
		{"", nil},
		{"zz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseIndexSelection(tt.input, devs)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseIndexSelection(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseIndexSelection(%q) = %v, want %v", tt.input, got, tt.want)
				}
			}
		})
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		input string
		def   int
		want  int
	}{
		{"3", 1, 3},
		{" 2 ", 1, 2},
		{"", 2, 2},
		{"0", 1, 1},
		{"-4", 1, 1},
		{"abc", 5, 5},
	}
	for _, tt := range tests {
		if got := ParseCount(tt.input, tt.def); got != tt.want {
			t.Errorf("ParseCount(%q, %d) = %d, want %d", tt.input, tt.def, got, tt.want)
		}
	}
}

func TestInteractiveSelection_FullFlow(t *testing.T) {
	cat := mustCatalog(t)
	state := &InstallState{Counts: map[string]int{}}

	// Pick dev-a and dev-b, then ops-a; counts 2, default, 3.
	input := "1 2\n1\n2\n\n3\n"
	var out strings.Builder

	req, err := InteractiveSelection(cat, state, strings.NewReader(input), &out)
	if err != nil {
		t.Fatalf("InteractiveSelection() error: %v", err)
	}

	wantAgents := []string{"dev-a", "dev-b", "ops-a"}
	if len(req.Agents) != len(wantAgents) {
		t.Fatalf("Agents = %v, want %v", req.Agents, wantAgents)
	}
	for i, name := range wantAgents {
		if req.Agents[i] != name {
			t.Errorf("Agents = %v, want %v", req.Agents, wantAgents)
		}
	}

	wantCounts := map[string]int{"dev-a": 2, "dev-b": 1, "ops-a": 3}
	for name, n := range wantCounts {
		if req.AgentCounts[name] != n {
			t.Errorf("AgentCounts[%s] = %d, want %d", name, req.AgentCounts[name], n)
		}
	}
}

func TestInteractiveSelection_RequiresDevAgent(t *testing.T) {
	cat := mustCatalog(t)
	state := &InstallState{Counts: map[string]int{}}

	// Empty dev choice twice, then input runs out.
	_, err := InteractiveSelection(cat, state, strings.NewReader("\n\n"), &strings.Builder{})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}

func TestInteractiveSelection_EmptyKeepsExisting(t *testing.T) {
	cat := mustCatalog(t)
	state := &InstallState{Counts: map[string]int{"dev-a": 2}}

	// Empty dev and ops selections are valid: a dev agent is installed.
	req, err := InteractiveSelection(cat, state, strings.NewReader("\n\n"), &strings.Builder{})
	if err != nil {
		t.Fatalf("InteractiveSelection() error: %v", err)
	}
	if len(req.Agents) != 0 {
		t.Errorf("Agents = %v, want empty", req.Agents)
	}
}

func TestInteractiveSelection_CountDefaultsToPersisted(t *testing.T) {
	cat := mustCatalog(t)
	state := &InstallState{Counts: map[string]int{"dev-a": 4}}

	// Re-pick dev-a, accept the default count.
	req, err := InteractiveSelection(cat, state, strings.NewReader("1\n\n\n"), &strings.Builder{})
	if err != nil {
		t.Fatalf("InteractiveSelection() error: %v", err)
	}
	if req.AgentCounts["dev-a"] != 4 {
		t.Errorf("AgentCounts[dev-a] = %d, want persisted default 4", req.AgentCounts["dev-a"])
	}
}

func TestHasInstalledDevAgent(t *testing.T) {
	cat := mustCatalog(t)

	if HasInstalledDevAgent(cat, &InstallState{Counts: map[string]int{"ops-a": 1}}) {
		t.Error("ops-only state reported as having a dev agent")
	}
	if !HasInstalledDevAgent(cat, &InstallState{Counts: map[string]int{"dev-b": 1}}) {
		t.Error("dev-b state not reported as having a dev agent")
	}
	// Core agents and stale fragments don't count.
	if HasInstalledDevAgent(cat, &InstallState{Counts: map[string]int{"lead": 1, "gone": 1}}) {
		t.Error("core/stale fragments reported as dev agents")
	}
}
