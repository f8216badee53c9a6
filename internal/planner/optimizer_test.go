package planner

import (
	"errors"
	"testing"

	"hivemind/pkg/models"
)

func optimizerUnderTest() *Optimizer {
	return NewOptimizer(testRoster(), NewEstimator(5))
}

func TestOptimizePlan_NeverMutatesInput(t *testing.T) {
	plan := &models.ExecutionPlan{
		Complexity: models.ComplexityMedium,
		Phases: []models.Phase{
			{ID: "work", Agents: []string{"scout", "probe", "quill"}, Parallel: false, EstimatedDuration: 15},
			{ID: "wrap", Agents: []string{"forge"}, Parallel: false, EstimatedDuration: 15, DependsOn: []string{"work"}},
		},
	}
	plan.RepartitionModes()

	if _, err := optimizerUnderTest().OptimizePlan(plan, OptimizeOptions{}); err != nil {
		t.Fatalf("OptimizePlan: %v", err)
	}

	if plan.Phases[0].Parallel {
		t.Error("caller's plan was mutated: phase flipped to parallel")
	}
	if len(plan.Phases[0].Agents) != 3 {
		t.Error("caller's plan was mutated: agents trimmed")
	}
}

func TestOptimizePlan_PromotesParallelSafePhase(t *testing.T) {
	// One sequential phase, three agents, all parallel-safe.
	plan := &models.ExecutionPlan{
		Complexity: models.ComplexityMedium,
		Phases: []models.Phase{
			{ID: "work", Agents: []string{"scout", "probe", "quill"}, Parallel: false, EstimatedDuration: 15},
		},
	}
	plan.RepartitionModes()

	res, err := optimizerUnderTest().OptimizePlan(plan, OptimizeOptions{})
	if err != nil {
		t.Fatalf("OptimizePlan: %v", err)
	}

	work := res.Plan.Phase("work")
	if work == nil || !work.Parallel {
		t.Error("parallel-safe sequential phase was not promoted to parallel")
	}
}

func TestOptimizePlan_KeepsUnsafePhaseSequential(t *testing.T) {
	// vault is not parallel-safe, so the phase must stay sequential.
	plan := &models.ExecutionPlan{
		Complexity: models.ComplexityMedium,
		Phases: []models.Phase{
			{ID: "work", Agents: []string{"vault", "forge"}, Parallel: false, EstimatedDuration: 15},
		},
	}
	plan.RepartitionModes()

	res, err := optimizerUnderTest().OptimizePlan(plan, OptimizeOptions{})
	if err != nil {
		t.Fatalf("OptimizePlan: %v", err)
	}
	if res.Plan.Phase("work").Parallel {
		t.Error("phase with a non-parallel-safe agent was promoted")
	}
}

func TestOptimizePlan_DefaultNeverWorsens(t *testing.T) {
	tests := []struct {
		name string
		plan *models.ExecutionPlan
	}{
		{
			name: "mixed plan",
			plan: &models.ExecutionPlan{
				Complexity: models.ComplexityHigh,
				Phases: []models.Phase{
					{ID: "research", Agents: []string{"scout"}, Parallel: true, EstimatedDuration: 30},
					{ID: "build", Agents: []string{"forge", "probe", "quill"}, Parallel: false, EstimatedDuration: 60, DependsOn: []string{"research"}},
					{ID: "wrap", Agents: []string{"forge"}, Parallel: false, EstimatedDuration: 15, DependsOn: []string{"build"}},
				},
			},
		},
		{
			name: "already optimal",
			plan: &models.ExecutionPlan{
				Complexity: models.ComplexityLow,
				Phases: []models.Phase{
					{ID: "only", Agents: []string{"scout"}, Parallel: true, EstimatedDuration: 15},
				},
			},
		},
	}

	est := NewEstimator(5)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.plan.RepartitionModes()
			before := est.EstimateResources(tt.plan)

			res, err := optimizerUnderTest().OptimizePlan(tt.plan, OptimizeOptions{})
			if err != nil {
				t.Fatalf("OptimizePlan: %v", err)
			}
			after := res.Metrics.After

			if after.TotalDuration > before.TotalDuration {
				t.Errorf("duration grew: %d -> %d", before.TotalDuration, after.TotalDuration)
			}
			if after.TotalTokens > before.TotalTokens {
				t.Errorf("tokens grew: %d -> %d", before.TotalTokens, after.TotalTokens)
			}
		})
	}
}

func TestOptimizePlan_MinimizeCostTrimsAgents(t *testing.T) {
	plan := &models.ExecutionPlan{
		Complexity: models.ComplexityMedium,
		Phases: []models.Phase{
			// Costs: scout 1, quill 1, probe 2, forge 3.
			{ID: "work", Agents: []string{"forge", "scout", "probe", "quill"}, Parallel: true, EstimatedDuration: 15},
		},
	}
	plan.RepartitionModes()

	res, err := optimizerUnderTest().OptimizePlan(plan, OptimizeOptions{
		MaximizeParallelism: true,
		MinimizeCost:        true,
	})
	if err != nil {
		t.Fatalf("OptimizePlan: %v", err)
	}

	work := res.Plan.Phase("work")
	if len(work.Agents) != 2 {
		t.Fatalf("phase has %d agents after cost trim, want 2", len(work.Agents))
	}
	for _, name := range work.Agents {
		if name == "forge" || name == "probe" {
			t.Errorf("cost trim kept expensive agent %s; agents: %v", name, work.Agents)
		}
	}
}

func TestOptimizePlan_CyclicPlanRejected(t *testing.T) {
	plan := &models.ExecutionPlan{
		Complexity: models.ComplexityLow,
		Phases: []models.Phase{
			{ID: "a", Agents: []string{"scout"}, DependsOn: []string{"b"}, EstimatedDuration: 15},
			{ID: "b", Agents: []string{"probe"}, DependsOn: []string{"a"}, EstimatedDuration: 15},
		},
	}
	plan.RepartitionModes()

	_, err := optimizerUnderTest().OptimizePlan(plan, OptimizeOptions{})
	if !errors.Is(err, ErrCycleDetected) {
		t.Errorf("cyclic plan error = %v, want ErrCycleDetected", err)
	}
}

func TestOptimizePlan_TopologicalOrder(t *testing.T) {
	plan := &models.ExecutionPlan{
		Complexity: models.ComplexityLow,
		Phases: []models.Phase{
			// Deliberately declared out of dependency order.
			{ID: "wrap", Agents: []string{"forge"}, DependsOn: []string{"build"}, EstimatedDuration: 15},
			{ID: "build", Agents: []string{"forge"}, DependsOn: []string{"start"}, EstimatedDuration: 15},
			{ID: "start", Agents: []string{"scout"}, EstimatedDuration: 15},
		},
	}
	plan.RepartitionModes()

	res, err := optimizerUnderTest().OptimizePlan(plan, OptimizeOptions{})
	if err != nil {
		t.Fatalf("OptimizePlan: %v", err)
	}

	pos := make(map[string]int)
	for i, id := range res.Plan.ExecutionOrder {
		pos[id] = i
	}
	if !(pos["start"] < pos["build"] && pos["build"] < pos["wrap"]) {
		t.Errorf("execution order not topological: %v", res.Plan.ExecutionOrder)
	}
	for i := range res.Plan.Phases {
		if res.Plan.Phases[i].Order != i {
			t.Errorf("phase %s has order %d at index %d", res.Plan.Phases[i].ID, res.Plan.Phases[i].Order, i)
		}
	}
}
