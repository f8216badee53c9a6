package planner

import (
	"errors"
	"fmt"

	"hivemind/pkg/models"
)

// ErrCycleDetected indicates a circular dependency between plan phases.
// Cyclic plans are rejected outright rather than executed with dropped
// edges.
var ErrCycleDetected = errors.New("circular dependency detected")

// phaseGraph is a directed graph over the phases of one plan.
// Edges represent "depends on" relationships.
type phaseGraph struct {
	// ids preserves the plan's declared phase order.
	ids []string
	// edges maps a phase ID to the IDs it depends on.
	edges map[string][]string
}

// buildPhaseGraph constructs the graph from a plan. Every dependency must
// name another phase in the same plan.
func buildPhaseGraph(plan *models.ExecutionPlan) (*phaseGraph, error) {
	g := &phaseGraph{
		edges: make(map[string][]string, len(plan.Phases)),
	}
	for i := range plan.Phases {
		g.ids = append(g.ids, plan.Phases[i].ID)
		g.edges[plan.Phases[i].ID] = nil
	}
	for i := range plan.Phases {
		phase := &plan.Phases[i]
		for _, dep := range phase.DependsOn {
			if _, ok := g.edges[dep]; !ok {
				return nil, fmt.Errorf("phase %s depends on unknown phase %s", phase.ID, dep)
			}
			g.edges[phase.ID] = append(g.edges[phase.ID], dep)
		}
	}
	return g, nil
}

// hasCycle reports whether the graph contains a circular dependency.
// Depth-first search with coloring: a gray node reached again is a back edge.
func (g *phaseGraph) hasCycle() bool {
	const (
		white = 0 // unvisited
		gray  = 1 // in progress
		black = 2 // done
	)
	colors := make(map[string]int, len(g.ids))

	var visit func(id string) bool
	visit = func(id string) bool {
		colors[id] = gray
		for _, dep := range g.edges[id] {
			switch colors[dep] {
			case gray:
				return true
			case white:
				if visit(dep) {
					return true
				}
			}
		}
		colors[id] = black
		return false
	}

	for _, id := range g.ids {
		if colors[id] == white && visit(id) {
			return true
		}
	}
	return false
}

// topologicalSort returns phase IDs with every dependency before its
// dependents. Returns ErrCycleDetected for cyclic graphs.
func (g *phaseGraph) topologicalSort() ([]string, error) {
	if g.hasCycle() {
		return nil, ErrCycleDetected
	}

	visited := make(map[string]bool, len(g.ids))
	var order []string

	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, dep := range g.edges[id] {
			visit(dep)
		}
		order = append(order, id)
	}

	// Iterate the declared order so independent phases keep their
	// relative positions.
	for _, id := range g.ids {
		visit(id)
	}
	return order, nil
}
