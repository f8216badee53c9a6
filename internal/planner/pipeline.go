package planner

import (
	"fmt"

	"hivemind/pkg/models"
)

// Pipeline chains the generic planning components: analyze, select,
// plan, estimate, optimize. It is the inspectable alternative to the
// swarm executor and shares the same roster.
type Pipeline struct {
	analyzer  *Analyzer
	selector  *Selector
	planner   *Planner
	estimator *Estimator
	optimizer *Optimizer
}

// NewPipeline creates a Pipeline over an immutable roster.
func NewPipeline(roster models.Roster, concurrencyLimit int) *Pipeline {
	estimator := NewEstimator(concurrencyLimit)
	return &Pipeline{
		analyzer:  NewAnalyzer(),
		selector:  NewSelector(roster),
		planner:   NewPlanner(),
		estimator: estimator,
		optimizer: NewOptimizer(roster, estimator),
	}
}

// PipelineResult carries every intermediate artifact of one planning run.
type PipelineResult struct {
	Selection    models.AgentSelection   `json:"selection"`
	Plan         *models.ExecutionPlan   `json:"plan"`
	Estimate     models.ResourceEstimate `json:"estimate"`
	Optimization *OptimizeResult         `json:"optimization"`
}

// Analyze exposes the analyzer for callers that only need an assessment.
func (p *Pipeline) Analyze(task string) models.TaskAnalysis {
	return p.analyzer.Analyze(task)
}

// SelectAgents exposes agent selection on its own.
func (p *Pipeline) SelectAgents(task string, opts SelectOptions) models.AgentSelection {
	return p.selector.SelectAgents(task, opts)
}

// CreateExecutionPlan exposes plan construction on its own.
func (p *Pipeline) CreateExecutionPlan(task string, selection models.AgentSelection) *models.ExecutionPlan {
	return p.planner.CreateExecutionPlan(task, selection)
}

// EstimateResources exposes resource estimation on its own.
func (p *Pipeline) EstimateResources(plan *models.ExecutionPlan) models.ResourceEstimate {
	return p.estimator.EstimateResources(plan)
}

// OptimizePlan exposes plan optimization on its own.
func (p *Pipeline) OptimizePlan(plan *models.ExecutionPlan, opts OptimizeOptions) (*OptimizeResult, error) {
	return p.optimizer.OptimizePlan(plan, opts)
}

// Plan runs the full pipeline for one task.
func (p *Pipeline) Plan(task string, selOpts SelectOptions, optOpts OptimizeOptions) (*PipelineResult, error) {
	selection := p.selector.SelectAgents(task, selOpts)
	if len(selection.Agents) == 0 {
		return nil, fmt.Errorf("plan: no agents selected from roster")
	}

	plan := p.planner.CreateExecutionPlan(task, selection)
	estimate := p.estimator.EstimateResources(plan)

	optimization, err := p.optimizer.OptimizePlan(plan, optOpts)
	if err != nil {
		return nil, err
	}

	return &PipelineResult{
		Selection:    selection,
		Plan:         plan,
		Estimate:     estimate,
		Optimization: optimization,
	}, nil
}
