package swarm

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hivemind/pkg/models"
)

// DefaultRoster returns the built-in twelve-agent roster. An empty
// Model means the agent runs on the configured default model.
func DefaultRoster() models.Roster {
	return models.Roster{
		{
			Name:           "atlas",
			Persona:        "systems architect weighing tradeoffs before committing to structure",
			Specialization: "Architecture",
			Capabilities:   []models.Capability{models.CapabilityArchitecture, models.CapabilityCoding},
			ResourceCost:   3,
			ParallelSafe:   true,
			Priority:       1,
		},
		{
			Name:           "scout",
			Persona:        "researcher who surveys prior art and surfaces unknowns",
			Specialization: "Research & Discovery",
			Capabilities:   []models.Capability{models.CapabilityResearch, models.CapabilityWebSearch},
			ResourceCost:   1,
			ParallelSafe:   true,
			Priority:       2,
		},
		{
			Name:           "forge",
			Persona:        "implementation engineer focused on working code",
			Specialization: "Implementation",
			Capabilities:   []models.Capability{models.CapabilityCoding, models.CapabilityRefactoring},
			ResourceCost:   3,
			ParallelSafe:   true,
			Priority:       3,
		},
		{
			Name:           "vault",
			Persona:        "data engineer careful with schemas and migrations",
			Specialization: "Data & Storage",
			Capabilities:   []models.Capability{models.CapabilityDatabase, models.CapabilityCoding},
			ResourceCost:   3,
			ParallelSafe:   false,
			Priority:       4,
		},
		{
			Name:           "probe",
			Persona:        "adversarial tester hunting for the breaking input",
			Specialization: "Quality & Testing",
			Capabilities:   []models.Capability{models.CapabilityTesting, models.CapabilityDebugging},
			ResourceCost:   2,
			ParallelSafe:   true,
			Priority:       5,
		},
		{
			Name:           "sentinel",
			Persona:        "security reviewer assuming hostile input everywhere",
			Specialization: "Security Review",
			Capabilities:   []models.Capability{models.CapabilitySecurity, models.CapabilityReview, models.CapabilityCodeReview},
			ResourceCost:   2,
			ParallelSafe:   true,
			Priority:       6,
		},
		{
			Name:           "arbiter",
			Persona:        "code reviewer judging clarity and correctness",
			Specialization: "Code Review",
			Capabilities:   []models.Capability{models.CapabilityReview, models.CapabilityCodeReview},
			ResourceCost:   2,
			ParallelSafe:   true,
			Priority:       7,
		},
		{
			Name:           "tracer",
			Persona:        "debugger reconstructing failure from symptoms",
			Specialization: "Debugging",
			Capabilities:   []models.Capability{models.CapabilityDebugging, models.CapabilityCoding},
			ResourceCost:   2,
			ParallelSafe:   true,
			Priority:       8,
		},
		{
			Name:           "lens",
			Persona:        "analyst extracting structure from messy data",
			Specialization: "Data Analysis",
			Capabilities:   []models.Capability{models.CapabilityDataAnalysis, models.CapabilityResearch},
			ResourceCost:   2,
			ParallelSafe:   true,
			Priority:       9,
		},
		{
			Name:           "quill",
			Persona:        "technical writer translating decisions into prose",
			Specialization: "Documentation",
			Capabilities:   []models.Capability{models.CapabilityDocumentation},
			ResourceCost:   1,
			ParallelSafe:   true,
			Priority:       10,
		},
		{
			Name:           "chisel",
			Persona:        "refactoring specialist who shrinks code without changing it",
			Specialization: "Refactoring",
			Capabilities:   []models.Capability{models.CapabilityRefactoring, models.CapabilityCoding},
			ResourceCost:   2,
			ParallelSafe:   true,
			Priority:       11,
		},
		{
			Name:           "weaver",
			Persona:        "synthesizer merging competing drafts into one answer",
			Specialization: "Synthesis",
			Capabilities:   []models.Capability{models.CapabilitySynthesis, models.CapabilityDocumentation},
			ResourceCost:   1,
			ParallelSafe:   true,
			Priority:       12,
		},
	}
}

// LoadRoster reads a roster override from a YAML file. Profiles must
// carry unique non-empty names.
func LoadRoster(path string) (models.Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}

	var roster models.Roster
	if err := yaml.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	if len(roster) == 0 {
		return nil, fmt.Errorf("roster %s defines no agents", path)
	}

	seen := make(map[string]bool, len(roster))
	for i := range roster {
		name := roster[i].Name
		if name == "" {
			return nil, fmt.Errorf("roster %s: agent %d has no name", path, i)
		}
		if seen[name] {
			return nil, fmt.Errorf("roster %s: duplicate agent %q", path, name)
		}
		seen[name] = true
	}
	return roster, nil
}

// FilterRoster restricts a roster to the requested agent names,
// preserving roster order. Unknown names become warnings; an empty
// request means the full roster.
func FilterRoster(roster models.Roster, requested []string) (models.Roster, []string) {
	if len(requested) == 0 {
		return roster, nil
	}

	wanted := make(map[string]bool, len(requested))
	for _, name := range requested {
		wanted[name] = true
	}

	var filtered models.Roster
	for i := range roster {
		if wanted[roster[i].Name] {
			filtered = append(filtered, roster[i])
			delete(wanted, roster[i].Name)
		}
	}

	var warnings []string
	for _, name := range requested {
		if wanted[name] {
			warnings = append(warnings, fmt.Sprintf("unknown agent %q ignored", name))
			delete(wanted, name)
		}
	}
	return filtered, warnings
}
