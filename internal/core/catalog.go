package core

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	manifestFileName = "agents.json"
	skillFileName    = "SKILL.md"
)

// Catalog is the read-only registry of available agents and skills, loaded
// from the distribution's embedded resource tree.
type Catalog struct {
	fsys    fs.FS
	agents  []AgentDescriptor // manifest order
	byName  map[string]AgentDescriptor
	utility []string
}

// NewCatalog parses and validates the catalog manifest from fsys.
// Every skill any agent declares (and every utility skill) must have a
// payload directory with a parseable SKILL.md, and every agent must have a
// persona document; a distribution that fails these checks is broken.
func NewCatalog(fsys fs.FS) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, manifestFileName)
	if err != nil {
		return nil, fmt.Errorf("reading catalog manifest: %w", err)
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing catalog manifest: %w", err)
	}

	cat := &Catalog{
		fsys:    fsys,
		agents:  m.Agents,
		byName:  make(map[string]AgentDescriptor, len(m.Agents)),
		utility: m.UtilitySkills,
	}

	for _, a := range m.Agents {
		if a.Name == "" {
			return nil, fmt.Errorf("catalog manifest: agent with empty name")
		}
		if _, dup := cat.byName[a.Name]; dup {
			return nil, fmt.Errorf("catalog manifest: duplicate agent %q", a.Name)
		}
		switch a.Category {
		case CategoryCore, CategoryDev, CategoryOps:
		default:
			return nil, fmt.Errorf("catalog manifest: agent %q has unknown category %q", a.Name, a.Category)
		}
		if _, err := fs.Stat(fsys, agentDocPath(a.Name)); err != nil {
			return nil, fmt.Errorf("catalog: agent %q has no persona document: %w", a.Name, err)
		}
		cat.byName[a.Name] = a
	}

	for _, skill := range cat.allDeclaredSkills() {
		meta, err := parseSkillDoc(fsys, skillDocPath(skill))
		if err != nil {
			return nil, fmt.Errorf("catalog: skill %q: %w", skill, err)
		}
		if meta.Name != skill {
			return nil, fmt.Errorf("catalog: skill dir %q declares name %q", skill, meta.Name)
		}
	}

	return cat, nil
}

// Agents returns all agents in manifest order.
func (c *Catalog) Agents() []AgentDescriptor {
	out := make([]AgentDescriptor, len(c.agents))
	copy(out, c.agents)
	return out
}

// ListAgents returns the agents of one category, in manifest order.
func (c *Catalog) ListAgents(category AgentCategory) []AgentDescriptor {
	var out []AgentDescriptor
	for _, a := range c.agents {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

// Agent looks up an agent by name.
func (c *Catalog) Agent(name string) (AgentDescriptor, error) {
	a, ok := c.byName[name]
	if !ok {
		return AgentDescriptor{}, &NotFoundError{Kind: "agent", Name: name}
	}
	return a, nil
}

// SkillsOf returns the skill names declared by an agent. An agent with no
// declared skills yields an empty set, not an error.
func (c *Catalog) SkillsOf(name string) ([]string, error) {
	a, ok := c.byName[name]
	if !ok {
		return nil, &NotFoundError{Kind: "agent", Name: name}
	}
	out := make([]string, len(a.Skills))
	copy(out, a.Skills)
	return out, nil
}

// CoreAgents returns the agents installed on every run.
func (c *Catalog) CoreAgents() []AgentDescriptor {
	return c.ListAgents(CategoryCore)
}

// SelectableNames returns the names of all selectable agents, in manifest
// order. Used for validation messages.
func (c *Catalog) SelectableNames() []string {
	var names []string
	for _, a := range c.agents {
		if a.Selectable() {
			names = append(names, a.Name)
		}
	}
	return names
}

// UtilitySkills returns the fixed skill set included in every install.
func (c *Catalog) UtilitySkills() []string {
	out := make([]string, len(c.utility))
	copy(out, c.utility)
	return out
}

// AgentDoc returns the raw persona document for an agent.
func (c *Catalog) AgentDoc(name string) ([]byte, error) {
	if _, ok := c.byName[name]; !ok {
		return nil, &NotFoundError{Kind: "agent", Name: name}
	}
	return fs.ReadFile(c.fsys, agentDocPath(name))
}

// SkillDoc returns the raw SKILL.md for a skill.
func (c *Catalog) SkillDoc(name string) ([]byte, error) {
	data, err := fs.ReadFile(c.fsys, skillDocPath(name))
	if err != nil {
		return nil, &NotFoundError{Kind: "skill", Name: name}
	}
	return data, nil
}

// SkillMeta parses the frontmatter of a skill's SKILL.md.
func (c *Catalog) SkillMeta(name string) (*SkillMetadata, error) {
	meta, err := parseSkillDoc(c.fsys, skillDocPath(name))
	if err != nil {
		return nil, &NotFoundError{Kind: "skill", Name: name}
	}
	return meta, nil
}

// allDeclaredSkills returns the union of utility skills and every agent's
// declared skills, deduplicated.
func (c *Catalog) allDeclaredSkills() []string {
	set := make(map[string]struct{})
	for _, s := range c.utility {
		set[s] = struct{}{}
	}
	for _, a := range c.agents {
		for _, s := range a.Skills {
			set[s] = struct{}{}
		}
	}
	return sortedKeys(set)
}

func agentDocPath(name string) string {
	return agentsDirName + "/" + name + ".md"
}

func skillDirPath(name string) string {
	return skillsDirName + "/" + name
}

func skillDocPath(name string) string {
	return skillDirPath(name) + "/" + skillFileName
}

// parseSkillDoc reads the YAML frontmatter from a SKILL.md inside fsys.
func parseSkillDoc(fsys fs.FS, path string) (*SkillMetadata, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	if !scanner.Scan() {
		return nil, fmt.Errorf("empty file: %s", path)
	}
	if strings.TrimSpace(scanner.Text()) != "---" {
		return nil, fmt.Errorf("no frontmatter in %s", path)
	}

	var frontmatter bytes.Buffer
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "---" {
			break
		}
		frontmatter.WriteString(line)
		frontmatter.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var meta SkillMetadata
	if err := yaml.Unmarshal(frontmatter.Bytes(), &meta); err != nil {
		return nil, fmt.Errorf("parsing frontmatter in %s: %w", path, err)
	}
	if meta.Name == "" {
		return nil, fmt.Errorf("SKILL.md missing name field: %s", path)
	}
	return &meta, nil
}
