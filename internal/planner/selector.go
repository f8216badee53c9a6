package planner

import (
	"fmt"
	"sort"
	"strings"

	"hivemind/pkg/models"
)

// DefaultMaxAgents caps a selection when the caller does not say otherwise.
const DefaultMaxAgents = 5

// SelectOptions tune a single agent selection.
type SelectOptions struct {
	// MaxAgents caps the number of selected agents (default 5).
	MaxAgents int
	// IncludeReviewer forces a review-capable agent into the result
	// when the roster allows it (best effort).
	IncludeReviewer bool
	// IncludeResearcher forces a research-capable agent into the
	// result when the roster allows it (best effort).
	IncludeResearcher bool
}

// Selector scores and ranks a static roster against a task analysis.
type Selector struct {
	roster   models.Roster
	analyzer *Analyzer
}

// NewSelector creates a Selector bound to an immutable roster.
func NewSelector(roster models.Roster) *Selector {
	return &Selector{
		roster:   roster,
		analyzer: NewAnalyzer(),
	}
}

// SelectAgents analyzes the task and returns the best-matching agents.
func (s *Selector) SelectAgents(task string, opts SelectOptions) models.AgentSelection {
	if opts.MaxAgents <= 0 {
		opts.MaxAgents = DefaultMaxAgents
	}

	analysis := s.analyzer.Analyze(task)
	scored := s.scoreRoster(analysis)

	// Highest score first; ties broken by ascending priority.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Agent.Priority < scored[j].Agent.Priority
	})

	selected := scored
	if len(selected) > opts.MaxAgents {
		selected = selected[:opts.MaxAgents]
	}
	selected = append([]models.ScoredAgent(nil), selected...)

	// Best-effort guarantee passes. The reviewer pass runs first; with a
	// small roster the researcher pass can still displace it.
	if opts.IncludeReviewer {
		selected = s.ensureCapability(selected, scored, opts.MaxAgents,
			models.CapabilityReview, models.CapabilityCodeReview)
	}
	if opts.IncludeResearcher {
		selected = s.ensureCapability(selected, scored, opts.MaxAgents,
			models.CapabilityResearch, models.CapabilityWebSearch)
	}

	return models.AgentSelection{
		Agents:   selected,
		Analysis: analysis,
		Criteria: models.SelectionCriteria{
			MaxAgents:         opts.MaxAgents,
			IncludeReviewer:   opts.IncludeReviewer,
			IncludeResearcher: opts.IncludeResearcher,
		},
	}
}

// scoreRoster computes a match score and rationale for every profile.
func (s *Selector) scoreRoster(analysis models.TaskAnalysis) []models.ScoredAgent {
	scored := make([]models.ScoredAgent, 0, len(s.roster))
	for i := range s.roster {
		agent := &s.roster[i]
		score := 0
		var rationale []string

		for _, tt := range analysis.AllTypes {
			for _, required := range models.TaskTypeCapabilities[tt] {
				if agent.HasCapability(required) {
					score += 2
					rationale = append(rationale,
						fmt.Sprintf("capability %s matches %s task", required, tt))
				}
			}
		}

		if analysis.Complexity == models.ComplexityHigh && agent.ResourceCost >= 3 {
			score++
			rationale = append(rationale, "suitable for heavy work")
		}
		if analysis.Complexity == models.ComplexityLow && agent.ResourceCost <= 2 {
			score++
			rationale = append(rationale, "efficient for simple work")
		}
		if analysis.RiskLevel == models.RiskHigh &&
			strings.Contains(agent.Specialization, "Security") {
			score += 2
			rationale = append(rationale, "security specialization for high-risk task")
		}
		if analysis.HasDataDependencies && agent.HasCapability(models.CapabilityDatabase) {
			score += 2
			rationale = append(rationale, "database capability for data dependencies")
		}

		scored = append(scored, models.ScoredAgent{
			Agent:     agent,
			Score:     score,
			Rationale: rationale,
		})
	}
	return scored
}

// ensureCapability replaces the lowest-scoring selected agent with the
// best unselected agent carrying one of the wanted capabilities. It only
// acts when no selected agent already qualifies and the roster has more
// candidates than maxAgents. This is a best-effort pass, not a solver.
func (s *Selector) ensureCapability(
	selected, all []models.ScoredAgent,
	maxAgents int,
	wanted ...models.Capability,
) []models.ScoredAgent {
	for _, sa := range selected {
		if sa.Agent.HasAnyCapability(wanted...) {
			return selected
		}
	}
	if len(all) <= maxAgents {
		return selected
	}

	inSelection := make(map[string]bool, len(selected))
	for _, sa := range selected {
		inSelection[sa.Agent.Name] = true
	}

	// all is already sorted best-first, so the first qualifying
	// unselected agent is the best one.
	for _, candidate := range all {
		if inSelection[candidate.Agent.Name] {
			continue
		}
		if !candidate.Agent.HasAnyCapability(wanted...) {
			continue
		}
		replaced := candidate
		replaced.Rationale = append(append([]string(nil), candidate.Rationale...),
			fmt.Sprintf("included to guarantee %s coverage", wanted[0]))
		out := append([]models.ScoredAgent(nil), selected[:len(selected)-1]...)
		return append(out, replaced)
	}
	return selected
}
