package models

import "testing"

func samplePlan() *ExecutionPlan {
	return &ExecutionPlan{
		Task:       "sample",
		Complexity: ComplexityMedium,
		Phases: []Phase{
			{ID: "a", Agents: []string{"x", "y"}, Parallel: true, DependsOn: nil},
			{ID: "b", Agents: []string{"z"}, DependsOn: []string{"a"}, Outputs: []string{"report"}},
		},
		ExecutionOrder:   []string{"a", "b"},
		ParallelPhases:   []string{"a"},
		SequentialPhases: []string{"b"},
	}
}

func TestClone_Independence(t *testing.T) {
	original := samplePlan()
	clone := original.Clone()

	clone.Phases[0].Agents[0] = "mutated"
	clone.Phases[1].DependsOn[0] = "mutated"
	clone.ExecutionOrder[0] = "mutated"
	clone.Phases[0].Parallel = false

	if original.Phases[0].Agents[0] != "x" {
		t.Error("clone shares the agents slice")
	}
	if original.Phases[1].DependsOn[0] != "a" {
		t.Error("clone shares the depends-on slice")
	}
	if original.ExecutionOrder[0] != "a" {
		t.Error("clone shares the execution order slice")
	}
	if !original.Phases[0].Parallel {
		t.Error("clone shares phase structs")
	}
}

func TestClone_Nil(t *testing.T) {
	var plan *ExecutionPlan
	if plan.Clone() != nil {
		t.Error("nil plan clone is not nil")
	}
}

func TestRepartitionModes(t *testing.T) {
	plan := samplePlan()
	plan.Phases[0].Parallel = false
	plan.Phases[1].Parallel = true
	plan.RepartitionModes()

	if len(plan.ParallelPhases) != 1 || plan.ParallelPhases[0] != "b" {
		t.Errorf("parallel partition = %v", plan.ParallelPhases)
	}
	if len(plan.SequentialPhases) != 1 || plan.SequentialPhases[0] != "a" {
		t.Errorf("sequential partition = %v", plan.SequentialPhases)
	}
}

func TestDependencyGraph(t *testing.T) {
	plan := samplePlan()
	graph := plan.DependencyGraph()

	if len(graph) != 2 {
		t.Fatalf("graph has %d nodes, want 2", len(graph))
	}
	if len(graph["a"]) != 0 || len(graph["b"]) != 1 || graph["b"][0] != "a" {
		t.Errorf("graph = %v", graph)
	}

	// The adjacency is a copy, not a view.
	graph["b"][0] = "mutated"
	if plan.Phases[1].DependsOn[0] != "a" {
		t.Error("graph shares the depends-on slice")
	}
}

func TestDistinctAgents(t *testing.T) {
	plan := samplePlan()
	plan.Phases[1].Agents = []string{"x", "z"}
	if got := plan.DistinctAgents(); got != 3 {
		t.Errorf("DistinctAgents = %d, want 3", got)
	}
}
