package core

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ExplicitSelection builds a SelectionRequest from a caller-supplied agent
// list. Validation is all-or-nothing: any unknown or non-selectable name
// fails the whole selection before anything is applied.
func ExplicitSelection(cat *Catalog, names []string, globalCount int) (*SelectionRequest, error) {
	if globalCount < 0 {
		return nil, validationf("invalid count %d: must be a positive integer", globalCount)
	}

	var agents []string
	seen := make(map[string]bool)
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" || seen[name] {
			continue
		}

		a, err := cat.Agent(name)
		if err != nil || !a.Selectable() {
			return nil, validationf("unknown agent identifier %q; valid agents: %s",
				name, strings.Join(cat.SelectableNames(), ", "))
		}

		seen[name] = true
		agents = append(agents, name)
	}

	return &SelectionRequest{Agents: agents, GlobalCount: globalCount}, nil
}

// ParseIndexSelection maps entered 1-based index tokens onto the displayed
// choice list. Out-of-range and malformed tokens are silently ignored: the
// prompt is hand-typed and a stray character must not abort the selection.
func ParseIndexSelection(input string, choices []AgentDescriptor) []string {
	tokens := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	var names []string
	seen := make(map[string]bool)
	for _, tok := range tokens {
		idx, err := strconv.Atoi(tok)
		if err != nil || idx < 1 || idx > len(choices) {
			continue
		}
		name := choices[idx-1].Name
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// ParseCount parses a hand-typed instance count, falling back to def for
// empty or unusable input.
func ParseCount(input string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// HasInstalledDevAgent reports whether the state already contains at least
// one dev-class agent. When it does, an empty interactive dev selection is
// valid and means "keep existing".
func HasInstalledDevAgent(cat *Catalog, state *InstallState) bool {
	for name := range state.Counts {
		if a, err := cat.Agent(name); err == nil && a.Category == CategoryDev {
			return true
		}
	}
	return false
}

// InteractiveSelection runs the line-oriented selection flow: dev agents
// (minimum one unless already installed), then ops agents (no minimum),
// then an instance count per chosen agent defaulting to the persisted count
// or 1. It reads from in so the flow works piped as well as on a terminal.
func InteractiveSelection(cat *Catalog, state *InstallState, in io.Reader, out io.Writer) (*SelectionRequest, error) {
	scanner := bufio.NewScanner(in)

	devChoices := cat.ListAgents(CategoryDev)
	opsChoices := cat.ListAgents(CategoryOps)

	printChoices(out, "Development agents", devChoices, state)

	var devPicked []string
	for {
		fmt.Fprint(out, "Select development agents (e.g. 1 3): ")
		line, ok := readLine(scanner)
		if !ok {
			return nil, validationf("at least one development agent must be selected")
		}
		devPicked = ParseIndexSelection(line, devChoices)
		if len(devPicked) > 0 || HasInstalledDevAgent(cat, state) {
			break
		}
		fmt.Fprintln(out, "Pick at least one development agent (none installed yet).")
	}

	printChoices(out, "Infra/ops agents", opsChoices, state)
	fmt.Fprint(out, "Select infra/ops agents (optional): ")
	opsLine, _ := readLine(scanner)
	opsPicked := ParseIndexSelection(opsLine, opsChoices)

	picked := append(devPicked, opsPicked...)

	counts := make(map[string]int, len(picked))
	for _, name := range picked {
		def := 1
		if n, ok := state.Counts[name]; ok {
			def = n
		}
		fmt.Fprintf(out, "Instances for %s [%d]: ", name, def)
		line, _ := readLine(scanner)
		counts[name] = ParseCount(line, def)
	}

	return &SelectionRequest{Agents: picked, AgentCounts: counts}, nil
}

// readLine returns the next input line, reporting false once input is
// exhausted.
func readLine(scanner *bufio.Scanner) (string, bool) {
	if !scanner.Scan() {
		return "", false
	}
	return scanner.Text(), true
}

func printChoices(out io.Writer, title string, choices []AgentDescriptor, state *InstallState) {
	fmt.Fprintf(out, "\n%s:\n", title)
	for i, a := range choices {
		marker := " "
		if state.Installed(a.Name) {
			marker = "*"
		}
		fmt.Fprintf(out, "  %d) %s%s - %s\n", i+1, a.Name, marker, a.Summary)
	}
	fmt.Fprintln(out, "  (* = already installed)")
}
