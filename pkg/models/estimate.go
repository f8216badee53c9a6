package models

// ConstraintSeverity grades an estimator constraint.
type ConstraintSeverity string

const (
	SeverityInfo    ConstraintSeverity = "info"
	SeverityWarning ConstraintSeverity = "warning"
)

// Constraint is an informational, non-blocking finding about a plan.
type Constraint struct {
	Type     string             `json:"type"`
	Message  string             `json:"message"`
	Severity ConstraintSeverity `json:"severity"`
}

// PhaseEstimate holds the per-phase resource figures.
type PhaseEstimate struct {
	PhaseID  string `json:"phase_id"`
	Tokens   int    `json:"tokens"`
	Duration int    `json:"duration"`
}

// CostEstimate splits estimated cost between local and API execution.
type CostEstimate struct {
	Local       float64 `json:"local"`
	APIEstimate float64 `json:"api_estimate"`
}

// ResourceEstimate is the derived resource projection for a plan.
// It is never persisted.
type ResourceEstimate struct {
	// Phases holds the per-phase token/duration figures.
	Phases []PhaseEstimate `json:"phases"`
	// TotalTokens is the sum of all phase token estimates.
	TotalTokens int `json:"total_tokens"`
	// TotalDuration is the sum of all phase durations in minutes.
	TotalDuration int `json:"total_duration"`
	// ConcurrencyRequired is the max simultaneous agents across
	// parallel phases, floored at 1.
	ConcurrencyRequired int `json:"concurrency_required"`
	// MemoryRequired is a heuristic memory figure in MB.
	MemoryRequired int `json:"memory_required"`
	// Cost is the heuristic cost split.
	Cost CostEstimate `json:"cost"`
	// Constraints lists informational findings about the plan.
	Constraints []Constraint `json:"constraints"`
	// Err carries the reason for a zeroed estimate on invalid input.
	Err string `json:"error,omitempty"`
}
