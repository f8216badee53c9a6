package models

// Phase is one named unit of work in an execution plan.
type Phase struct {
	// ID is the phase identifier, unique within its plan.
	ID string `json:"id"`
	// Name is the human-readable phase name.
	Name string `json:"name"`
	// Order is the declared position of the phase in the plan.
	Order int `json:"order"`
	// Agents holds the names of the agents assigned to the phase.
	Agents []string `json:"agents"`
	// Parallel reports whether the phase's agents may run concurrently.
	Parallel bool `json:"parallel"`
	// Description explains what the phase produces.
	Description string `json:"description"`
	// EstimatedDuration is the expected duration in minutes.
	EstimatedDuration int `json:"estimated_duration"`
	// Outputs labels the artifacts the phase yields.
	Outputs []string `json:"outputs"`
	// DependsOn lists the IDs of phases that must complete first.
	DependsOn []string `json:"depends_on"`
}

// clone returns a deep copy of the phase.
func (p *Phase) clone() Phase {
	c := *p
	c.Agents = append([]string(nil), p.Agents...)
	c.Outputs = append([]string(nil), p.Outputs...)
	c.DependsOn = append([]string(nil), p.DependsOn...)
	return c
}

// ExecutionPlan is a dependency-ordered set of phases for one task.
type ExecutionPlan struct {
	// Task is the raw task text the plan was built for.
	Task string `json:"task"`
	// Complexity is the analyzed complexity the plan was scaled to.
	Complexity Complexity `json:"complexity"`
	// Phases is the ordered phase list.
	Phases []Phase `json:"phases"`
	// ExecutionOrder is the declared phase-ID order (insertion order;
	// topological verification happens in the optimizer).
	ExecutionOrder []string `json:"execution_order"`
	// ParallelPhases lists the IDs of parallel-flagged phases.
	ParallelPhases []string `json:"parallel_phases"`
	// SequentialPhases lists the IDs of sequential phases.
	SequentialPhases []string `json:"sequential_phases"`
}

// Clone returns a deep copy of the plan. Optimization passes mutate the
// copy so the caller's plan is never altered.
func (p *ExecutionPlan) Clone() *ExecutionPlan {
	if p == nil {
		return nil
	}
	c := &ExecutionPlan{
		Task:       p.Task,
		Complexity: p.Complexity,
	}
	c.Phases = make([]Phase, len(p.Phases))
	for i := range p.Phases {
		c.Phases[i] = p.Phases[i].clone()
	}
	c.ExecutionOrder = append([]string(nil), p.ExecutionOrder...)
	c.ParallelPhases = append([]string(nil), p.ParallelPhases...)
	c.SequentialPhases = append([]string(nil), p.SequentialPhases...)
	return c
}

// Phase returns the phase with the given ID, or nil if absent.
func (p *ExecutionPlan) Phase(id string) *Phase {
	for i := range p.Phases {
		if p.Phases[i].ID == id {
			return &p.Phases[i]
		}
	}
	return nil
}

// DependencyGraph returns the phase-ID -> dependency-ID adjacency of the plan.
func (p *ExecutionPlan) DependencyGraph() map[string][]string {
	graph := make(map[string][]string, len(p.Phases))
	for i := range p.Phases {
		graph[p.Phases[i].ID] = append([]string(nil), p.Phases[i].DependsOn...)
	}
	return graph
}

// DistinctAgents returns the number of distinct agent names across all phases.
func (p *ExecutionPlan) DistinctAgents() int {
	seen := make(map[string]bool)
	for i := range p.Phases {
		for _, name := range p.Phases[i].Agents {
			seen[name] = true
		}
	}
	return len(seen)
}

// RepartitionModes recomputes the parallel/sequential phase-ID partition
// from the current parallel flags. Optimizer passes call this after
// flipping phase modes.
func (p *ExecutionPlan) RepartitionModes() {
	p.ParallelPhases = p.ParallelPhases[:0]
	p.SequentialPhases = p.SequentialPhases[:0]
	for i := range p.Phases {
		if p.Phases[i].Parallel {
			p.ParallelPhases = append(p.ParallelPhases, p.Phases[i].ID)
		} else {
			p.SequentialPhases = append(p.SequentialPhases, p.Phases[i].ID)
		}
	}
}
