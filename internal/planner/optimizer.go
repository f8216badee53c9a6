package planner

import (
	"fmt"
	"sort"
	"strings"

	"hivemind/pkg/models"
)

// OptimizeOptions select which optimization passes run.
type OptimizeOptions struct {
	// MaximizeParallelism flips sequential phases whose agents are all
	// parallel-safe.
	MaximizeParallelism bool
	// MinimizeDuration enables the duration-oriented reporting pass.
	MinimizeDuration bool
	// MinimizeCost trims phases with more than two agents down to the
	// two cheapest.
	MinimizeCost bool
}

// DefaultOptimizeOptions returns the options used when a caller passes
// the zero value: parallelism and duration on, cost trimming off.
func DefaultOptimizeOptions() OptimizeOptions {
	return OptimizeOptions{
		MaximizeParallelism: true,
		MinimizeDuration:    true,
	}
}

// OptimizeMetrics reports the before/after improvement of an optimization.
type OptimizeMetrics struct {
	Before models.ResourceEstimate `json:"before"`
	After  models.ResourceEstimate `json:"after"`
	// DurationImprovementPct is the percentage drop in total duration.
	DurationImprovementPct float64 `json:"duration_improvement_pct"`
	// TokenImprovementPct is the percentage drop in total tokens.
	TokenImprovementPct float64 `json:"token_improvement_pct"`
}

// OptimizeResult bundles the rewritten plan with what was done to it.
type OptimizeResult struct {
	Plan          *models.ExecutionPlan `json:"optimized_plan"`
	Optimizations []string              `json:"optimizations"`
	Metrics       OptimizeMetrics       `json:"metrics"`
}

// Optimizer rewrites plans for more parallelism and lower cost.
type Optimizer struct {
	roster    models.Roster
	estimator *Estimator
}

// NewOptimizer creates an Optimizer. The roster resolves agent names in
// phases back to profiles for parallel-safety and cost checks.
func NewOptimizer(roster models.Roster, estimator *Estimator) *Optimizer {
	return &Optimizer{roster: roster, estimator: estimator}
}

// OptimizePlan applies the selected passes to a deep copy of the plan;
// the caller's plan is never mutated. Cyclic plans are rejected with
// ErrCycleDetected rather than silently repaired.
func (o *Optimizer) OptimizePlan(plan *models.ExecutionPlan, opts OptimizeOptions) (*OptimizeResult, error) {
	if plan == nil || len(plan.Phases) == 0 {
		return nil, fmt.Errorf("optimize: empty plan")
	}
	if opts == (OptimizeOptions{}) {
		opts = DefaultOptimizeOptions()
	}

	before := o.estimator.EstimateResources(plan)
	optimized := plan.Clone()
	var applied []string

	// Pass 1: report phase groups that already share a dependency set
	// and run in parallel. Informational only.
	if groups := parallelSiblingGroups(optimized); len(groups) > 0 {
		applied = append(applied, fmt.Sprintf(
			"%d phase group(s) already execute in parallel", len(groups)))
	}

	// Pass 2: flip sequential phases whose agents are all parallel-safe.
	if opts.MaximizeParallelism {
		applied = append(applied, o.promoteParallel(optimized)...)
	}

	// Pass 3: keep only the two cheapest agents in oversized phases.
	if opts.MinimizeCost {
		applied = append(applied, o.trimCost(optimized)...)
	}

	// Pass 4: topologically reorder by dependency.
	graph, err := buildPhaseGraph(optimized)
	if err != nil {
		return nil, fmt.Errorf("optimize: %w", err)
	}
	order, err := graph.topologicalSort()
	if err != nil {
		return nil, fmt.Errorf("optimize: %w", err)
	}
	reorderPhases(optimized, order)
	applied = append(applied, "phases topologically reordered by dependency")

	optimized.RepartitionModes()
	after := o.estimator.EstimateResources(optimized)

	return &OptimizeResult{
		Plan:          optimized,
		Optimizations: applied,
		Metrics: OptimizeMetrics{
			Before:                 before,
			After:                  after,
			DurationImprovementPct: improvementPct(before.TotalDuration, after.TotalDuration),
			TokenImprovementPct:    improvementPct(before.TotalTokens, after.TotalTokens),
		},
	}, nil
}

// parallelSiblingGroups finds already-parallel phases sharing an
// identical dependency set.
func parallelSiblingGroups(plan *models.ExecutionPlan) [][]string {
	byDeps := make(map[string][]string)
	for i := range plan.Phases {
		phase := &plan.Phases[i]
		if !phase.Parallel {
			continue
		}
		deps := append([]string(nil), phase.DependsOn...)
		sort.Strings(deps)
		key := strings.Join(deps, ",")
		byDeps[key] = append(byDeps[key], phase.ID)
	}

	var groups [][]string
	for _, ids := range byDeps {
		if len(ids) > 1 {
			groups = append(groups, ids)
		}
	}
	return groups
}

// promoteParallel flips sequential multi-agent phases to parallel when
// every assigned agent is parallel-safe.
func (o *Optimizer) promoteParallel(plan *models.ExecutionPlan) []string {
	var applied []string
	for i := range plan.Phases {
		phase := &plan.Phases[i]
		if phase.Parallel || len(phase.Agents) <= 1 {
			continue
		}
		if !o.allParallelSafe(phase.Agents) {
			continue
		}
		phase.Parallel = true
		applied = append(applied, fmt.Sprintf(
			"phase %s promoted to parallel (%d parallel-safe agents)", phase.ID, len(phase.Agents)))
	}
	return applied
}

// trimCost drops all but the two cheapest agents from phases staffed with
// more than two.
func (o *Optimizer) trimCost(plan *models.ExecutionPlan) []string {
	var applied []string
	for i := range plan.Phases {
		phase := &plan.Phases[i]
		if len(phase.Agents) <= 2 {
			continue
		}
		names := append([]string(nil), phase.Agents...)
		sort.SliceStable(names, func(a, b int) bool {
			return o.resourceCost(names[a]) < o.resourceCost(names[b])
		})
		dropped := len(phase.Agents) - 2
		phase.Agents = names[:2]
		applied = append(applied, fmt.Sprintf(
			"phase %s trimmed to 2 cheapest agents (%d dropped)", phase.ID, dropped))
	}
	return applied
}

// allParallelSafe reports whether every named agent resolves to a
// parallel-safe profile. Unknown names count as unsafe.
func (o *Optimizer) allParallelSafe(names []string) bool {
	for _, name := range names {
		profile := o.roster.ByName(name)
		if profile == nil || !profile.ParallelSafe {
			return false
		}
	}
	return true
}

// resourceCost looks up an agent's cost; unknown agents sort last.
func (o *Optimizer) resourceCost(name string) int {
	if profile := o.roster.ByName(name); profile != nil {
		return profile.ResourceCost
	}
	return 1 << 30
}

// reorderPhases rewrites phase order and execution order to match the
// topological order.
func reorderPhases(plan *models.ExecutionPlan, order []string) {
	position := make(map[string]int, len(order))
	for i, id := range order {
		position[id] = i
	}
	sort.SliceStable(plan.Phases, func(a, b int) bool {
		return position[plan.Phases[a].ID] < position[plan.Phases[b].ID]
	})
	for i := range plan.Phases {
		plan.Phases[i].Order = i
	}
	plan.ExecutionOrder = append(plan.ExecutionOrder[:0], order...)
}

// improvementPct returns the percentage drop from before to after,
// rounded to two decimals. Zero before yields zero.
func improvementPct(before, after int) float64 {
	if before <= 0 {
		return 0
	}
	pct := float64(before-after) / float64(before) * 100
	return float64(int(pct*100)) / 100
}
