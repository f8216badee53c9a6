package planner

import (
	"fmt"
	"math"

	"hivemind/pkg/models"
)

// Estimator heuristics. Tokens are scaled from a per-complexity base;
// sequential phases pay a 20% coordination penalty.
const (
	baseTokensLow    = 500
	baseTokensMedium = 1200
	baseTokensHigh   = 2500

	sequentialPenalty = 1.2

	// memoryBaseMB plus memoryPerAgentMB per distinct agent.
	memoryBaseMB     = 500
	memoryPerAgentMB = 100

	// costPerThousandTokens is the rough API price used for estimates.
	costPerThousandTokens = 0.002

	tokenBudgetNote   = 50000
	durationBudgetMin = 120
)

// Estimator derives resource projections for execution plans.
type Estimator struct {
	// concurrencyLimit is the configured ceiling that raises a
	// constraint warning when a plan needs more simultaneous agents.
	concurrencyLimit int
}

// NewEstimator creates an Estimator with the given concurrency limit.
func NewEstimator(concurrencyLimit int) *Estimator {
	if concurrencyLimit <= 0 {
		concurrencyLimit = 5
	}
	return &Estimator{concurrencyLimit: concurrencyLimit}
}

// EstimateResources projects tokens, duration, concurrency, memory, and
// cost for a plan. Constraints are informational, never blocking. A nil
// or empty plan returns a zeroed estimate carrying an error note instead
// of failing.
func (e *Estimator) EstimateResources(plan *models.ExecutionPlan) models.ResourceEstimate {
	if plan == nil || len(plan.Phases) == 0 {
		return models.ResourceEstimate{Err: "invalid plan: no phases"}
	}

	est := models.ResourceEstimate{}
	base := baseTokens(plan.Complexity)

	concurrency := 0
	for i := range plan.Phases {
		phase := &plan.Phases[i]

		penalty := sequentialPenalty
		if phase.Parallel {
			penalty = 1.0
			if len(phase.Agents) > concurrency {
				concurrency = len(phase.Agents)
			}
		}

		tokens := int(math.Ceil(float64(base) * float64(len(phase.Agents)) *
			penalty * float64(phase.EstimatedDuration) / 15.0))

		est.Phases = append(est.Phases, models.PhaseEstimate{
			PhaseID:  phase.ID,
			Tokens:   tokens,
			Duration: phase.EstimatedDuration,
		})
		est.TotalTokens += tokens
		est.TotalDuration += phase.EstimatedDuration
	}

	if concurrency < 1 {
		concurrency = 1
	}
	est.ConcurrencyRequired = concurrency
	est.MemoryRequired = memoryBaseMB + memoryPerAgentMB*plan.DistinctAgents()
	est.Cost = models.CostEstimate{
		Local:       0,
		APIEstimate: float64(est.TotalTokens) / 1000 * costPerThousandTokens,
	}

	if est.ConcurrencyRequired > e.concurrencyLimit {
		est.Constraints = append(est.Constraints, models.Constraint{
			Type:     "concurrency",
			Message:  fmt.Sprintf("plan needs %d simultaneous agents, limit is %d", est.ConcurrencyRequired, e.concurrencyLimit),
			Severity: models.SeverityWarning,
		})
	}
	if est.TotalTokens > tokenBudgetNote {
		est.Constraints = append(est.Constraints, models.Constraint{
			Type:     "tokens",
			Message:  fmt.Sprintf("estimated %d tokens exceeds %d", est.TotalTokens, tokenBudgetNote),
			Severity: models.SeverityInfo,
		})
	}
	if est.TotalDuration > durationBudgetMin {
		est.Constraints = append(est.Constraints, models.Constraint{
			Type:     "duration",
			Message:  fmt.Sprintf("estimated %d minutes exceeds %d", est.TotalDuration, durationBudgetMin),
			Severity: models.SeverityWarning,
		})
	}

	return est
}

func baseTokens(c models.Complexity) int {
	switch c {
	case models.ComplexityHigh:
		return baseTokensHigh
	case models.ComplexityMedium:
		return baseTokensMedium
	default:
		return baseTokensLow
	}
}
