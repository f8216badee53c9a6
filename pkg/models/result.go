package models

// AgentRunRecord is the per-agent outcome of one swarm run.
type AgentRunRecord struct {
	// Name is the roster name of the agent.
	Name string `json:"name"`
	// Model is the model that actually served the agent.
	Model string `json:"model"`
	// FallbackUsed reports whether the preferred model was unavailable
	// and the default model was substituted.
	FallbackUsed bool `json:"fallback_used"`
	// Preview is the agent's output truncated for display.
	Preview string `json:"preview"`
	// Success reports whether the agent call completed.
	Success bool `json:"success"`
	// Error carries the failure message when Success is false.
	Error string `json:"error,omitempty"`
}

// MemoryRef points at the persisted artifacts of a completed run.
type MemoryRef struct {
	// ArchivePath is the path to the run's archive document.
	ArchivePath string `json:"archive_path,omitempty"`
	// LogPath is the path to the append-only run log.
	LogPath string `json:"log_path,omitempty"`
	// Error carries the persistence failure, if any. Persistence
	// failures never abort a run.
	Error string `json:"error,omitempty"`
}

// SwarmTranscript captures the intermediate stage outputs of a run.
type SwarmTranscript struct {
	Speculation string   `json:"speculation"`
	Plan        string   `json:"plan"`
	AgentOutputs []string `json:"agent_outputs"`
}

// SwarmRunResult is the single return value of a swarm run.
// The executor never fails with an error; every failure mode is a field.
type SwarmRunResult struct {
	// Mode is always "swarm".
	Mode string `json:"mode"`
	// Title is the optional caller-supplied run title.
	Title string `json:"title,omitempty"`
	// Summary is the bullet-form run summary from the logging stage.
	Summary string `json:"summary"`
	// Final is the synthesized answer.
	Final string `json:"final"`
	// Agents holds one record per attempted agent, in roster order.
	Agents []AgentRunRecord `json:"agents"`
	// Warnings lists non-fatal issues, e.g. unknown requested agents.
	Warnings []string `json:"warnings,omitempty"`
	// Transcript is the optional full stage transcript.
	Transcript *SwarmTranscript `json:"transcript,omitempty"`
	// Memory references the archived run, or its write error.
	Memory MemoryRef `json:"memory"`
	// Error is set when the run failed fatally.
	Error string `json:"error,omitempty"`
	// IsError reports a fatal run failure: zero successful agents or
	// an exception escaping all stage guards.
	IsError bool `json:"is_error"`
}

// SwarmMemoryEntry is the payload handed to the memory writer after a run.
type SwarmMemoryEntry struct {
	Title       string           `json:"title"`
	Prompt      string           `json:"prompt"`
	Speculation string           `json:"speculation"`
	Plan        string           `json:"plan"`
	Agents      []AgentRunRecord `json:"agents"`
	Summary     string           `json:"summary"`
	FinalAnswer string           `json:"final_answer"`
}
