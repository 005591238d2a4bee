// Package tui provides the interactive install wizard. It is a thin
// front-end: all parsing and validation semantics live in internal/core so
// the piped (non-terminal) flow behaves identically.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avelebit/deckhand/internal/core"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	numberStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA"))
	installedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

type step int

const (
	stepDev step = iota
	stepOps
	stepCounts
)

// wizardModel walks the user through dev selection, ops selection, and
// per-agent instance counts.
type wizardModel struct {
	cat   *core.Catalog
	state *core.InstallState

	devChoices []core.AgentDescriptor
	opsChoices []core.AgentDescriptor

	step    step
	input   textinput.Model
	errText string

	picked   []string
	countIdx int
	counts   map[string]int

	done    bool
	aborted bool
}

func newWizardModel(cat *core.Catalog, state *core.InstallState) wizardModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "e.g. 1 3"
	ti.Focus()

	return wizardModel{
		cat:        cat,
		state:      state,
		devChoices: cat.ListAgents(core.CategoryDev),
		opsChoices: cat.ListAgents(core.CategoryOps),
		input:      ti,
		counts:     make(map[string]int),
	}
}

func (m wizardModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.advance(m.input.Value())
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// advance consumes the entered line for the current step.
func (m wizardModel) advance(value string) (tea.Model, tea.Cmd) {
	m.errText = ""

	switch m.step {
	case stepDev:
		picked := core.ParseIndexSelection(value, m.devChoices)
		if len(picked) == 0 && !core.HasInstalledDevAgent(m.cat, m.state) {
			m.errText = "pick at least one development agent (none installed yet)"
			return m, nil
		}
		m.picked = picked
		m.step = stepOps
		m.input.SetValue("")
		m.input.Placeholder = "optional"
		return m, nil

	case stepOps:
		m.picked = append(m.picked, core.ParseIndexSelection(value, m.opsChoices)...)
		if len(m.picked) == 0 {
			m.done = true
			return m, tea.Quit
		}
		m.step = stepCounts
		m.input.SetValue("")
		m.input.Placeholder = ""
		return m, nil

	case stepCounts:
		name := m.picked[m.countIdx]
		m.counts[name] = core.ParseCount(value, m.countDefault(name))
		m.countIdx++
		m.input.SetValue("")
		if m.countIdx >= len(m.picked) {
			m.done = true
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

func (m wizardModel) countDefault(name string) int {
	if n, ok := m.state.Counts[name]; ok {
		return n
	}
	return 1
}

func (m wizardModel) View() string {
	// bubbletea renders the final model once more after Quit; there is no
	// current prompt to show then.
	if m.done || m.aborted {
		return ""
	}

	var b strings.Builder

	switch m.step {
	case stepDev:
		m.renderChoices(&b, "Development agents", m.devChoices)
		b.WriteString(mutedStyle.Render("Select development agents by number, then enter."))
	case stepOps:
		m.renderChoices(&b, "Infra/ops agents", m.opsChoices)
		b.WriteString(mutedStyle.Render("Select infra/ops agents (optional), then enter."))
	case stepCounts:
		name := m.picked[m.countIdx]
		b.WriteString(titleStyle.Render("Instance counts"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "Instances for %s [%d]:", name, m.countDefault(name))
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	if m.errText != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errText))
	}
	b.WriteString("\n")
	return b.String()
}

func (m wizardModel) renderChoices(b *strings.Builder, title string, choices []core.AgentDescriptor) {
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	for i, a := range choices {
		marker := " "
		if m.state.Installed(a.Name) {
			marker = installedStyle.Render("*")
		}
		fmt.Fprintf(b, "  %s %s%s %s\n",
			numberStyle.Render(fmt.Sprintf("%d)", i+1)),
			a.Name, marker, mutedStyle.Render(a.Summary))
	}
	b.WriteString(mutedStyle.Render("  (* = already installed)"))
	b.WriteString("\n")
}

// RunInstallWizard runs the interactive selection flow on the terminal and
// returns the resulting request. The request carries per-agent counts only;
// global overrides come from flags.
func RunInstallWizard(cat *core.Catalog, state *core.InstallState) (*core.SelectionRequest, error) {
	final, err := tea.NewProgram(newWizardModel(cat, state)).Run()
	if err != nil {
		return nil, fmt.Errorf("running install wizard: %w", err)
	}

	m, ok := final.(wizardModel)
	if !ok || m.aborted {
		return nil, fmt.Errorf("selection aborted")
	}

	return &core.SelectionRequest{Agents: m.picked, AgentCounts: m.counts}, nil
}
