// Package backend abstracts the model backends that power agent turns.
// A Generator produces one completion per call; backends that can also
// enumerate their installed models implement ModelLister.
package backend

import (
	"context"
	"errors"
)

// ErrUnavailable reports that a backend cannot be reached at all, as
// opposed to a single failed generation.
var ErrUnavailable = errors.New("backend unavailable")

// GenerateOptions describe one completion request.
type GenerateOptions struct {
	Model     string
	Prompt    string
	System    string
	MaxTokens int
}

// GenerateResult carries one completion and its token accounting.
// Token counts are zero when the backend does not report them.
type GenerateResult struct {
	Text         string
	Model        string
	InputTokens  int
	OutputTokens int
}

// ModelInfo describes one installed model.
type ModelInfo struct {
	Name       string `json:"name"`
	Size       int64  `json:"size"`
	ModifiedAt string `json:"modified_at"`
}

// Generator is the single-completion interface the swarm runs against.
type Generator interface {
	Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error)
}

// ModelLister enumerates the models a backend has available.
type ModelLister interface {
	ListModels(ctx context.Context) ([]ModelInfo, error)
}

// HealthChecker probes whether a backend is reachable.
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}
