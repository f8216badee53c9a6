package models

// Complexity classifies how demanding a task is.
type Complexity string

const (
	ComplexityLow     Complexity = "low"
	ComplexityMedium  Complexity = "medium"
	ComplexityHigh    Complexity = "high"
	ComplexityUnknown Complexity = "unknown"
)

// RiskLevel classifies the blast radius of a task.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// KeywordHit records one complexity keyword or pattern match.
type KeywordHit struct {
	// Keyword is the matched keyword or pattern source.
	Keyword string `json:"keyword"`
	// Level is the complexity tier the match contributed to.
	Level Complexity `json:"level"`
}

// TextMetrics holds the raw size measurements of the task text.
type TextMetrics struct {
	Words int `json:"words"`
	Lines int `json:"lines"`
	Chars int `json:"chars"`
}

// TaskAnalysis is the structured assessment of one task prompt.
// It is created fresh per call and never persisted.
type TaskAnalysis struct {
	// Complexity is the classified complexity tier.
	Complexity Complexity `json:"complexity"`
	// ComplexityScore is the raw additive score behind the tier.
	ComplexityScore int `json:"complexity_score"`
	// Type is the primary detected task type.
	Type TaskType `json:"type"`
	// AllTypes lists every detected task type in detection order.
	AllTypes []TaskType `json:"all_types"`
	// DetectedKeywords lists the keyword/level pairs that scored.
	DetectedKeywords []KeywordHit `json:"detected_keywords"`
	// EstimatedTokens approximates the token footprint of the task.
	EstimatedTokens int `json:"estimated_tokens"`
	// RequiresSequential reports whether phases must run in order.
	RequiresSequential bool `json:"requires_sequential"`
	// HasDataDependencies reports whether the task touches stored data.
	HasDataDependencies bool `json:"has_data_dependencies"`
	// RiskLevel is the classified risk tier.
	RiskLevel RiskLevel `json:"risk_level"`
	// Confidence is how confident the analyzer is, in [0,1].
	Confidence float64 `json:"confidence"`
	// Metrics holds the raw word/line/char counts.
	Metrics TextMetrics `json:"metrics"`
}

// SelectionCriteria records the options a selection was derived with.
type SelectionCriteria struct {
	MaxAgents         int  `json:"max_agents"`
	IncludeReviewer   bool `json:"include_reviewer"`
	IncludeResearcher bool `json:"include_researcher"`
}

// ScoredAgent is one roster agent with its selection score and rationale.
type ScoredAgent struct {
	Agent     *AgentProfile `json:"agent"`
	Score     int           `json:"score"`
	Rationale []string      `json:"rationale"`
}

// AgentSelection is the ranked result of matching the roster against an analysis.
type AgentSelection struct {
	// Agents is the ordered list of selected agents, best first.
	Agents []ScoredAgent `json:"agents"`
	// Analysis is the task analysis the selection was derived from.
	Analysis TaskAnalysis `json:"analysis"`
	// Criteria echoes the options used for the selection.
	Criteria SelectionCriteria `json:"criteria"`
}

// Names returns the selected agent names in rank order.
func (s *AgentSelection) Names() []string {
	names := make([]string, len(s.Agents))
	for i := range s.Agents {
		names[i] = s.Agents[i].Agent.Name
	}
	return names
}
