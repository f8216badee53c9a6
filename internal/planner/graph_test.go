package planner

import (
	"errors"
	"testing"

	"hivemind/pkg/models"
)

func TestPhaseGraph_UnknownDependency(t *testing.T) {
	plan := &models.ExecutionPlan{
		Phases: []models.Phase{
			{ID: "a", DependsOn: []string{"ghost"}},
		},
	}
	if _, err := buildPhaseGraph(plan); err == nil {
		t.Error("unknown dependency not rejected")
	}
}

func TestPhaseGraph_TopologicalSort(t *testing.T) {
	plan := &models.ExecutionPlan{
		Phases: []models.Phase{
			{ID: "synthesis", DependsOn: []string{"planning", "implementation", "testing"}},
			{ID: "testing", DependsOn: []string{"implementation"}},
			{ID: "implementation", DependsOn: []string{"planning"}},
			{ID: "planning"},
		},
	}
	g, err := buildPhaseGraph(plan)
	if err != nil {
		t.Fatalf("buildPhaseGraph: %v", err)
	}
	order, err := g.topologicalSort()
	if err != nil {
		t.Fatalf("topologicalSort: %v", err)
	}
	if len(order) != 4 {
		t.Fatalf("order has %d entries, want 4", len(order))
	}

	pos := make(map[string]int)
	for i, id := range order {
		pos[id] = i
	}
	for i := range plan.Phases {
		for _, dep := range plan.Phases[i].DependsOn {
			if pos[dep] > pos[plan.Phases[i].ID] {
				t.Errorf("dependency %s ordered after %s", dep, plan.Phases[i].ID)
			}
		}
	}
}

func TestPhaseGraph_CycleRejected(t *testing.T) {
	plan := &models.ExecutionPlan{
		Phases: []models.Phase{
			{ID: "a", DependsOn: []string{"b"}},
			{ID: "b", DependsOn: []string{"c"}},
			{ID: "c", DependsOn: []string{"a"}},
		},
	}
	g, err := buildPhaseGraph(plan)
	if err != nil {
		t.Fatalf("buildPhaseGraph: %v", err)
	}
	if !g.hasCycle() {
		t.Error("cycle not detected")
	}
	if _, err := g.topologicalSort(); !errors.Is(err, ErrCycleDetected) {
		t.Errorf("topologicalSort error = %v, want ErrCycleDetected", err)
	}
}

func TestPhaseGraph_SelfCycle(t *testing.T) {
	plan := &models.ExecutionPlan{
		Phases: []models.Phase{
			{ID: "a", DependsOn: []string{"a"}},
		},
	}
	g, err := buildPhaseGraph(plan)
	if err != nil {
		t.Fatalf("buildPhaseGraph: %v", err)
	}
	if !g.hasCycle() {
		t.Error("self-dependency not detected as cycle")
	}
}
