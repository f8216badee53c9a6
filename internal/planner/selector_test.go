package planner

import (
	"testing"

	"hivemind/pkg/models"
)

// testRoster returns a small fixed roster used across planner tests.
func testRoster() models.Roster {
	return models.Roster{
		{
			Name:           "scout",
			Persona:        "curious researcher",
			Specialization: "Research & Discovery",
			Capabilities:   []models.Capability{models.CapabilityResearch, models.CapabilityWebSearch},
			ResourceCost:   1,
			ParallelSafe:   true,
			Priority:       1,
			Model:          "fast-model",
		},
		{
			Name:           "forge",
			Persona:        "pragmatic engineer",
			Specialization: "Implementation",
			Capabilities:   []models.Capability{models.CapabilityCoding, models.CapabilityRefactoring, models.CapabilityArchitecture},
			ResourceCost:   3,
			ParallelSafe:   true,
			Priority:       2,
			Model:          "default-model",
		},
		{
			Name:           "vault",
			Persona:        "careful data engineer",
			Specialization: "Data & Storage",
			Capabilities:   []models.Capability{models.CapabilityDatabase, models.CapabilityCoding},
			ResourceCost:   3,
			ParallelSafe:   false,
			Priority:       3,
			Model:          "default-model",
		},
		{
			Name:           "probe",
			Persona:        "adversarial tester",
			Specialization: "Quality",
			Capabilities:   []models.Capability{models.CapabilityTesting, models.CapabilityDebugging},
			ResourceCost:   2,
			ParallelSafe:   true,
			Priority:       4,
			Model:          "default-model",
		},
		{
			Name:           "sentinel",
			Persona:        "skeptical reviewer",
			Specialization: "Security Review",
			Capabilities:   []models.Capability{models.CapabilityReview, models.CapabilityCodeReview, models.CapabilitySecurity},
			ResourceCost:   2,
			ParallelSafe:   true,
			Priority:       5,
			Model:          "default-model",
		},
		{
			Name:           "quill",
			Persona:        "clear technical writer",
			Specialization: "Documentation",
			Capabilities:   []models.Capability{models.CapabilityDocumentation},
			ResourceCost:   1,
			ParallelSafe:   true,
			Priority:       6,
			Model:          "fast-model",
		},
	}
}

func TestSelectAgents_RespectsMaxAgents(t *testing.T) {
	tests := []struct {
		name      string
		maxAgents int
	}{
		{"one agent", 1},
		{"three agents", 3},
		{"more than roster", 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelector(testRoster())
			sel := s.SelectAgents("Implement the export endpoint", SelectOptions{MaxAgents: tt.maxAgents})

			limit := tt.maxAgents
			if limit > len(testRoster()) {
				limit = len(testRoster())
			}
			if len(sel.Agents) > tt.maxAgents {
				t.Errorf("selected %d agents, max is %d", len(sel.Agents), tt.maxAgents)
			}
			if len(sel.Agents) != limit {
				t.Errorf("selected %d agents, want %d", len(sel.Agents), limit)
			}
		})
	}
}

func TestSelectAgents_ScoresDescending(t *testing.T) {
	s := NewSelector(testRoster())
	sel := s.SelectAgents("Refactor the coding style of the ingestion module", SelectOptions{MaxAgents: 6})

	for i := 1; i < len(sel.Agents); i++ {
		if sel.Agents[i].Score > sel.Agents[i-1].Score {
			t.Errorf("agents not sorted by score: %d at %d after %d",
				sel.Agents[i].Score, i, sel.Agents[i-1].Score)
		}
	}
}

func TestSelectAgents_DatabaseBonus(t *testing.T) {
	s := NewSelector(testRoster())
	sel := s.SelectAgents("Update the database schema for orders", SelectOptions{MaxAgents: 3})

	found := false
	for _, sa := range sel.Agents {
		if sa.Agent.Name == "vault" {
			found = true
		}
	}
	if !found {
		t.Errorf("data-dependent task did not select vault; got %v", sel.Names())
	}
}

func TestSelectAgents_SecurityBonusOnHighRisk(t *testing.T) {
	s := NewSelector(testRoster())
	sel := s.SelectAgents("Delete the legacy production cleanup job", SelectOptions{MaxAgents: 2})

	found := false
	for _, sa := range sel.Agents {
		if sa.Agent.Name == "sentinel" {
			found = true
		}
	}
	if !found {
		t.Errorf("high-risk task did not select sentinel; got %v", sel.Names())
	}
}

func TestSelectAgents_IncludeReviewerGuarantee(t *testing.T) {
	s := NewSelector(testRoster())
	// A prompt that scores implementation agents, not reviewers.
	sel := s.SelectAgents("Implement coding changes for the parser architecture", SelectOptions{
		MaxAgents:       2,
		IncludeReviewer: true,
	})

	if len(sel.Agents) > 2 {
		t.Fatalf("selected %d agents, max is 2", len(sel.Agents))
	}
	hasReviewer := false
	for _, sa := range sel.Agents {
		if sa.Agent.HasAnyCapability(models.CapabilityReview, models.CapabilityCodeReview) {
			hasReviewer = true
		}
	}
	if !hasReviewer {
		t.Errorf("IncludeReviewer did not force a reviewer; got %v", sel.Names())
	}
}

func TestSelectAgents_IncludeResearcherGuarantee(t *testing.T) {
	s := NewSelector(testRoster())
	sel := s.SelectAgents("Implement coding changes for the parser architecture", SelectOptions{
		MaxAgents:         2,
		IncludeResearcher: true,
	})

	hasResearcher := false
	for _, sa := range sel.Agents {
		if sa.Agent.HasAnyCapability(models.CapabilityResearch, models.CapabilityWebSearch) {
			hasResearcher = true
		}
	}
	if !hasResearcher {
		t.Errorf("IncludeResearcher did not force a researcher; got %v", sel.Names())
	}
}

func TestSelectAgents_TieBreakByPriority(t *testing.T) {
	roster := models.Roster{
		{Name: "late", Capabilities: nil, ResourceCost: 2, Priority: 9},
		{Name: "early", Capabilities: nil, ResourceCost: 2, Priority: 1},
	}
	s := NewSelector(roster)
	sel := s.SelectAgents("Make it nicer", SelectOptions{MaxAgents: 2})

	if sel.Agents[0].Agent.Name != "early" {
		t.Errorf("tie not broken by priority: got %v first", sel.Agents[0].Agent.Name)
	}
}
