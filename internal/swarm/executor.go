package swarm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hivemind/internal/backend"
	"hivemind/pkg/models"
)

// DefaultMaxWorkers is the agent fan-out concurrency when none is configured.
const DefaultMaxWorkers = 5

// DefaultMemoryTimeout bounds the post-run memory write independently
// of the run's own context.
const DefaultMemoryTimeout = 10 * time.Second

const summaryPlaceholder = "(run summary unavailable)"

// MemoryWriter persists a completed run. Implementations live outside
// the executor; a write failure is recorded, never fatal.
type MemoryWriter interface {
	WriteSwarmMemory(ctx context.Context, entry models.SwarmMemoryEntry) (models.MemoryRef, error)
}

// Config carries the executor's tuning knobs.
type Config struct {
	// DefaultModel serves planning, agent fallback, and synthesis.
	DefaultModel string
	// FastModel serves speculation and the logging summary.
	FastModel string
	// MaxWorkers bounds the agent fan-out. Zero means DefaultMaxWorkers.
	MaxWorkers int
	// PreviewChars bounds per-agent output previews. Zero means
	// DefaultPreviewChars.
	PreviewChars int
	// MemoryTimeout bounds the memory write. Zero means DefaultMemoryTimeout.
	MemoryTimeout time.Duration
}

// Request describes one swarm run.
type Request struct {
	Prompt string
	// Title optionally labels the run in results and memory.
	Title string
	// Agents optionally restricts the roster by name. Unknown names
	// produce warnings, not errors.
	Agents []string
	// IncludeTranscript attaches the full stage transcript to the result.
	IncludeTranscript bool
	// SaveMemory persists the run through the memory writer.
	SaveMemory bool
}

// Executor runs the five-stage swarm pipeline over a fixed roster.
type Executor struct {
	gen      backend.Generator
	resolver *ModelResolver
	roster   models.Roster
	memory   MemoryWriter
	logger   Logger
	cfg      Config
}

// NewExecutor creates an Executor. The memory writer may be nil when
// persistence is disabled; the logger may be nil for silence.
func NewExecutor(gen backend.Generator, resolver *ModelResolver, roster models.Roster, memory MemoryWriter, logger Logger, cfg Config) *Executor {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = DefaultMaxWorkers
	}
	if cfg.PreviewChars <= 0 {
		cfg.PreviewChars = DefaultPreviewChars
	}
	if cfg.MemoryTimeout <= 0 {
		cfg.MemoryTimeout = DefaultMemoryTimeout
	}
	if logger == nil {
		logger = NopLogger()
	}
	return &Executor{
		gen:      gen,
		resolver: resolver,
		roster:   roster,
		memory:   memory,
		logger:   logger,
		cfg:      cfg,
	}
}

// Run executes the pipeline: speculation, planning, bounded agent
// fan-out, synthesis, logging summary, then the optional memory write.
// Run never panics; every failure mode lands in the result.
func (e *Executor) Run(ctx context.Context, req Request) (result models.SwarmRunResult) {
	result.Mode = "swarm"
	result.Title = req.Title

	defer func() {
		if r := recover(); r != nil {
			e.logger.Errorf("swarm run panicked: %v", r)
			result.Error = fmt.Sprintf("internal error: %v", r)
			result.IsError = true
		}
	}()

	if strings.TrimSpace(req.Prompt) == "" {
		result.Error = "empty prompt"
		result.IsError = true
		return result
	}

	roster, warnings := FilterRoster(e.roster, req.Agents)
	result.Warnings = warnings
	for _, w := range warnings {
		e.logger.Warnf("%s", w)
	}
	if len(roster) == 0 {
		result.Error = "no known agents requested"
		result.IsError = true
		return result
	}

	// Stage 1: speculation. Soft failure, inline substitution.
	speculation := e.softGenerate(ctx, e.cfg.FastModel, "", speculationPrompt(req.Prompt), "Speculation failed")
	e.logger.Debugf("speculation complete (%d chars)", len(speculation))

	// Stage 2: planning. Same soft-failure policy.
	plan := e.softGenerate(ctx, e.cfg.DefaultModel, "", planningPrompt(req.Prompt, speculation), "Planning failed")
	e.logger.Debugf("planning complete (%d chars)", len(plan))

	// Stage 3: bounded agent fan-out.
	records, outputs := e.runAgents(ctx, roster, req.Prompt, plan)
	result.Agents = records

	successes := 0
	for i := range records {
		if records[i].Success {
			successes++
		}
	}
	e.logger.Infof("agent stage: %d/%d succeeded", successes, len(records))
	if successes == 0 {
		result.Error = "all agents failed"
		result.IsError = true
		return result
	}

	// Stage 4: synthesis over truncated previews, with deterministic
	// concatenation of the raw outputs as fallback.
	final, err := e.generate(ctx, e.cfg.DefaultModel, "", synthesisPrompt(req.Prompt, records))
	if err != nil {
		e.logger.Warnf("synthesis failed, falling back to concatenation: %v", err)
		final = concatenateOutputs(outputs)
	}
	result.Final = final

	// Stage 5: logging summary. Placeholder on failure, never escalated.
	summary, err := e.generate(ctx, e.cfg.FastModel, "", summaryPrompt(req.Prompt, final))
	if err != nil {
		e.logger.Warnf("summary generation failed: %v", err)
		summary = summaryPlaceholder
	}
	result.Summary = summary

	if req.IncludeTranscript {
		result.Transcript = &models.SwarmTranscript{
			Speculation:  speculation,
			Plan:         plan,
			AgentOutputs: outputs,
		}
	}

	if req.SaveMemory && e.memory != nil {
		result.Memory = e.writeMemory(req, speculation, plan, records, summary, final)
	}
	return result
}

// runAgents fans the prompt out over the roster through the worker
// pool. It returns one record per agent in roster order plus the raw
// outputs of the successful agents, also in roster order.
func (e *Executor) runAgents(ctx context.Context, roster models.Roster, prompt, plan string) ([]models.AgentRunRecord, []string) {
	type agentOutput struct {
		record models.AgentRunRecord
		raw    string
	}

	results := runPool(ctx, roster, e.cfg.MaxWorkers, func(ctx context.Context, i int, profile models.AgentProfile) (agentOutput, error) {
		model, fallbackUsed := e.resolver.Resolve(ctx, profile.Model)
		if fallbackUsed {
			e.logger.Debugf("agent %s: model %s unavailable, using %s", profile.Name, profile.Model, model)
		}

		out := agentOutput{record: models.AgentRunRecord{
			Name:         profile.Name,
			Model:        model,
			FallbackUsed: fallbackUsed,
		}}

		res, err := e.gen.Generate(ctx, backend.GenerateOptions{
			Model:  model,
			Prompt: agentPrompt(prompt, plan),
			System: agentSystemPrompt(&profile),
		})
		if err != nil {
			return out, err
		}
		out.raw = res.Text
		out.record.Preview = truncate(res.Text, e.cfg.PreviewChars)
		out.record.Success = true
		return out, nil
	})

	records := make([]models.AgentRunRecord, len(results))
	var outputs []string
	for i, res := range results {
		records[i] = res.Value.record
		if records[i].Name == "" {
			// A panicked worker never filled its record.
			records[i].Name = roster[i].Name
		}
		if res.Err != nil {
			records[i].Success = false
			records[i].Error = res.Err.Error()
			e.logger.Warnf("agent %s failed: %v", records[i].Name, res.Err)
			continue
		}
		outputs = append(outputs, res.Value.raw)
	}
	return records, outputs
}

// writeMemory persists the run under its own timeout so a hung writer
// cannot stall the caller.
func (e *Executor) writeMemory(req Request, speculation, plan string, records []models.AgentRunRecord, summary, final string) models.MemoryRef {
	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.MemoryTimeout)
	defer cancel()

	ref, err := e.memory.WriteSwarmMemory(ctx, models.SwarmMemoryEntry{
		Title:       req.Title,
		Prompt:      req.Prompt,
		Speculation: speculation,
		Plan:        plan,
		Agents:      records,
		Summary:     summary,
		FinalAnswer: final,
	})
	if err != nil {
		e.logger.Errorf("memory write failed: %v", err)
		return models.MemoryRef{Error: err.Error()}
	}
	return ref
}

// softGenerate performs one model call whose failure degrades to an
// inline message instead of aborting the run.
func (e *Executor) softGenerate(ctx context.Context, model, system, prompt, failurePrefix string) string {
	text, err := e.generate(ctx, model, system, prompt)
	if err != nil {
		e.logger.Warnf("%s: %v", failurePrefix, err)
		return fmt.Sprintf("%s: %v", failurePrefix, err)
	}
	return text
}

func (e *Executor) generate(ctx context.Context, model, system, prompt string) (string, error) {
	res, err := e.gen.Generate(ctx, backend.GenerateOptions{
		Model:  model,
		Prompt: prompt,
		System: system,
	})
	if err != nil {
		return "", err
	}
	return res.Text, nil
}
