package planner

import (
	"sort"

	"hivemind/pkg/models"
)

// phaseTemplate describes one hand-templated plan phase.
type phaseTemplate struct {
	id          string
	name        string
	description string
	outputs     []string
	// capabilities gates the phase: it is emitted only when a selected
	// agent carries one of them. Empty means always emitted.
	capabilities []models.Capability
	// coordinator marks phases bound to a single coordinating agent.
	coordinator bool
	// durations holds {low/medium, high} estimated minutes.
	durations [2]int
	// dependsOn names template phases this one is gated behind. Missing
	// phases are dropped from the final dependency set.
	dependsOn []string
}

// phaseTemplates is the fixed seven-phase plan template. Planning and
// synthesis are always present; synthesis additionally depends on every
// other emitted phase.
var phaseTemplates = []phaseTemplate{
	{
		id:           "research",
		name:         "Research",
		description:  "Gather background, prior art, and constraints",
		outputs:      []string{"findings", "references"},
		capabilities: []models.Capability{models.CapabilityResearch, models.CapabilityWebSearch},
		durations:    [2]int{15, 30},
	},
	{
		id:          "planning",
		name:        "Planning",
		description: "Break the task into concrete work items",
		outputs:     []string{"work breakdown"},
		coordinator: true,
		durations:   [2]int{10, 15},
		dependsOn:   []string{"research"},
	},
	{
		id:           "implementation",
		name:         "Implementation",
		description:  "Produce the primary deliverable",
		outputs:      []string{"implementation"},
		capabilities: []models.Capability{models.CapabilityCoding, models.CapabilityArchitecture},
		durations:    [2]int{30, 60},
		dependsOn:    []string{"planning"},
	},
	{
		id:           "testing",
		name:         "Testing",
		description:  "Verify the deliverable against the task",
		outputs:      []string{"test results"},
		capabilities: []models.Capability{models.CapabilityTesting},
		durations:    [2]int{20, 30},
		dependsOn:    []string{"implementation"},
	},
	{
		id:           "review",
		name:         "Review",
		description:  "Critique the deliverable for defects and risks",
		outputs:      []string{"review notes"},
		capabilities: []models.Capability{models.CapabilityReview, models.CapabilityCodeReview},
		durations:    [2]int{15, 20},
		dependsOn:    []string{"implementation"},
	},
	{
		id:           "documentation",
		name:         "Documentation",
		description:  "Document the outcome and decisions",
		outputs:      []string{"documentation"},
		capabilities: []models.Capability{models.CapabilityDocumentation},
		durations:    [2]int{10, 15},
		dependsOn:    []string{"review", "testing"},
	},
	{
		id:          "synthesis",
		name:        "Synthesis",
		description: "Combine all phase outputs into the final answer",
		outputs:     []string{"final answer"},
		coordinator: true,
		durations:   [2]int{10, 15},
	},
}

// Planner builds execution plans from agent selections.
type Planner struct{}

// NewPlanner creates a Planner.
func NewPlanner() *Planner {
	return &Planner{}
}

// CreateExecutionPlan builds a dependency-ordered phase plan for the task
// from the selected agents. Phases gate on the selection's capabilities;
// planning and synthesis are always present and bound to the coordinating
// agent (the highest-scoring selection).
func (p *Planner) CreateExecutionPlan(task string, selection models.AgentSelection) *models.ExecutionPlan {
	plan := &models.ExecutionPlan{
		Task:       task,
		Complexity: selection.Analysis.Complexity,
	}
	if len(selection.Agents) == 0 {
		return plan
	}
	coordinator := selection.Agents[0].Agent

	emitted := make(map[string]bool, len(phaseTemplates))
	order := 0
	for _, tpl := range phaseTemplates {
		agents := p.phaseAgents(tpl, selection, coordinator)
		if len(agents) == 0 {
			continue
		}

		phase := models.Phase{
			ID:                tpl.id,
			Name:              tpl.name,
			Order:             order,
			Agents:            agentNames(agents),
			Parallel:          phaseParallel(selection.Analysis, agents),
			Description:       tpl.description,
			EstimatedDuration: tpl.durations[durationIndex(selection.Analysis.Complexity)],
			Outputs:           append([]string(nil), tpl.outputs...),
		}
		if tpl.id == "synthesis" {
			// Synthesis waits for everything else in the plan.
			for id := range emitted {
				phase.DependsOn = append(phase.DependsOn, id)
			}
			sort.Strings(phase.DependsOn)
		} else {
			for _, dep := range tpl.dependsOn {
				if emitted[dep] {
					phase.DependsOn = append(phase.DependsOn, dep)
				}
			}
		}

		plan.Phases = append(plan.Phases, phase)
		plan.ExecutionOrder = append(plan.ExecutionOrder, phase.ID)
		emitted[phase.ID] = true
		order++
	}

	plan.RepartitionModes()
	return plan
}

// phaseAgents resolves which selected agents staff a template phase.
func (p *Planner) phaseAgents(
	tpl phaseTemplate,
	selection models.AgentSelection,
	coordinator *models.AgentProfile,
) []*models.AgentProfile {
	if tpl.coordinator {
		return []*models.AgentProfile{coordinator}
	}
	var agents []*models.AgentProfile
	for i := range selection.Agents {
		if selection.Agents[i].Agent.HasAnyCapability(tpl.capabilities...) {
			agents = append(agents, selection.Agents[i].Agent)
		}
	}
	return agents
}

// phaseParallel reports whether a phase may run its agents concurrently:
// the task must not require sequential execution and every assigned agent
// must be parallel-safe.
func phaseParallel(analysis models.TaskAnalysis, agents []*models.AgentProfile) bool {
	if analysis.RequiresSequential {
		return false
	}
	for _, a := range agents {
		if !a.ParallelSafe {
			return false
		}
	}
	return true
}

func durationIndex(c models.Complexity) int {
	if c == models.ComplexityHigh {
		return 1
	}
	return 0
}

func agentNames(agents []*models.AgentProfile) []string {
	names := make([]string, len(agents))
	for i, a := range agents {
		names[i] = a.Name
	}
	return names
}
