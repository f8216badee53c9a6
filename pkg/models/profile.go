// Package models contains the shared value types for Hivemind:
// agent profiles, task analyses, execution plans, resource estimates,
// and swarm run results.
package models

// Capability is a closed tag describing something an agent can do.
type Capability string

const (
	CapabilityResearch       Capability = "research"
	CapabilityWebSearch      Capability = "web-search"
	CapabilityPlanning       Capability = "planning"
	CapabilityArchitecture   Capability = "architecture"
	CapabilityCoding         Capability = "coding"
	CapabilityRefactoring    Capability = "refactoring"
	CapabilityDebugging      Capability = "debugging"
	CapabilityTesting        Capability = "testing"
	CapabilityReview         Capability = "review"
	CapabilityCodeReview     Capability = "code-review"
	CapabilitySecurity       Capability = "security"
	CapabilityDatabase       Capability = "database"
	CapabilityDocumentation  Capability = "documentation"
	CapabilityDataAnalysis   Capability = "data-analysis"
	CapabilitySynthesis      Capability = "synthesis"
	CapabilityCreativeWriting Capability = "creative-writing"
)

// TaskType classifies the primary nature of a task.
type TaskType string

const (
	TaskTypeResearch       TaskType = "research"
	TaskTypeImplementation TaskType = "implementation"
	TaskTypeDebugging      TaskType = "debugging"
	TaskTypeRefactoring    TaskType = "refactoring"
	TaskTypeTesting        TaskType = "testing"
	TaskTypeReview         TaskType = "review"
	TaskTypeDocumentation  TaskType = "documentation"
	TaskTypeAnalysis       TaskType = "analysis"
	TaskTypeGeneral        TaskType = "general"
)

// TaskTypeCapabilities maps each task type to the capabilities it requires.
// The analyzer derives its detection keywords from this table (hyphens become
// spaces), and the selector scores agents against it, so detection and
// selection cannot drift apart.
var TaskTypeCapabilities = map[TaskType][]Capability{
	TaskTypeResearch:       {CapabilityResearch, CapabilityWebSearch},
	TaskTypeImplementation: {CapabilityCoding, CapabilityArchitecture},
	TaskTypeDebugging:      {CapabilityDebugging, CapabilityCoding},
	TaskTypeRefactoring:    {CapabilityRefactoring, CapabilityCoding},
	TaskTypeTesting:        {CapabilityTesting},
	TaskTypeReview:         {CapabilityReview, CapabilityCodeReview},
	TaskTypeDocumentation:  {CapabilityDocumentation},
	TaskTypeAnalysis:       {CapabilityDataAnalysis, CapabilityResearch},
}

// TaskTypeOrder fixes the iteration order for type detection. The first
// matching type in this order becomes the primary type of an analysis.
var TaskTypeOrder = []TaskType{
	TaskTypeResearch,
	TaskTypeImplementation,
	TaskTypeDebugging,
	TaskTypeRefactoring,
	TaskTypeTesting,
	TaskTypeReview,
	TaskTypeDocumentation,
	TaskTypeAnalysis,
}

// AgentProfile describes one persona-bound agent in the roster.
// Profiles are constructed once at startup and never mutated.
type AgentProfile struct {
	// Name is the unique roster name of the agent.
	Name string `yaml:"name"`
	// Persona is the persona label injected into the agent's prompt.
	Persona string `yaml:"persona"`
	// Specialization is a human-readable specialization label.
	Specialization string `yaml:"specialization"`
	// Capabilities is the set of capability tags the agent carries.
	Capabilities []Capability `yaml:"capabilities"`
	// ResourceCost is a small positive weight; higher means heavier.
	ResourceCost int `yaml:"resource_cost"`
	// ParallelSafe reports whether the agent may run alongside others.
	ParallelSafe bool `yaml:"parallel_safe"`
	// Priority breaks score ties during selection; lower wins.
	Priority int `yaml:"priority"`
	// Model is the agent's preferred model identifier.
	Model string `yaml:"model"`
}

// HasCapability returns true if the profile carries the given capability.
func (p *AgentProfile) HasCapability(c Capability) bool {
	for _, cap := range p.Capabilities {
		if cap == c {
			return true
		}
	}
	return false
}

// HasAnyCapability returns true if the profile carries any of the given capabilities.
func (p *AgentProfile) HasAnyCapability(caps ...Capability) bool {
	for _, c := range caps {
		if p.HasCapability(c) {
			return true
		}
	}
	return false
}

// Roster is an immutable collection of agent profiles.
type Roster []AgentProfile

// ByName returns the profile with the given name, or nil if absent.
func (r Roster) ByName(name string) *AgentProfile {
	for i := range r {
		if r[i].Name == name {
			return &r[i]
		}
	}
	return nil
}

// Names returns the roster names in declaration order.
func (r Roster) Names() []string {
	names := make([]string, len(r))
	for i := range r {
		names[i] = r[i].Name
	}
	return names
}
