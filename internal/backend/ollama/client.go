// Package ollama implements the backend.Generator interface against a
// local Ollama server.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"hivemind/internal/backend"
)

// DefaultBaseURL is where a locally installed Ollama listens.
const DefaultBaseURL = "http://127.0.0.1:11434"

// Client talks to an Ollama server over its HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client. An empty baseURL selects the local
// default; trailing slashes are trimmed.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	for len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 300 * time.Second,
		},
	}
}

type generateRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	System  string                 `json:"system,omitempty"`
	Stream  bool                   `json:"stream"`
	Options map[string]interface{} `json:"options,omitempty"`
}

type generateResponse struct {
	Model           string `json:"model"`
	Response        string `json:"response"`
	Done            bool   `json:"done"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
}

type tagsResponse struct {
	Models []backend.ModelInfo `json:"models"`
}

// Generate performs one non-streaming completion.
func (c *Client) Generate(ctx context.Context, opts backend.GenerateOptions) (*backend.GenerateResult, error) {
	if opts.Model == "" {
		return nil, fmt.Errorf("ollama: model is required")
	}

	reqBody := generateRequest{
		Model:  opts.Model,
		Prompt: opts.Prompt,
		System: opts.System,
		Stream: false,
	}
	if opts.MaxTokens > 0 {
		reqBody.Options = map[string]interface{}{"num_predict": opts.MaxTokens}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("ollama: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("ollama: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama: %w: %v", backend.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("ollama: generate returned %d: %s", resp.StatusCode, body)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("ollama: decode response: %w", err)
	}

	return &backend.GenerateResult{
		Text:         out.Response,
		Model:        out.Model,
		InputTokens:  out.PromptEvalCount,
		OutputTokens: out.EvalCount,
	}, nil
}

// ListModels returns the models installed on the server.
func (c *Client) ListModels(ctx context.Context) ([]backend.ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("ollama: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama: %w: %v", backend.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama: tags returned %d", resp.StatusCode)
	}

	var out tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("ollama: decode tags: %w", err)
	}
	return out.Models, nil
}

// CheckHealth probes the server. The tags endpoint doubles as the
// health endpoint.
func (c *Client) CheckHealth(ctx context.Context) error {
	_, err := c.ListModels(ctx)
	return err
}

// BatchResult pairs one prompt's outcome with its input position.
type BatchResult struct {
	Index    int
	Response string
	Err      error
}

// BatchGenerate runs one completion per prompt against the same model.
// Results align with prompts by index; a failed prompt records its
// error without aborting the rest.
func (c *Client) BatchGenerate(ctx context.Context, model string, prompts []string) []BatchResult {
	results := make([]BatchResult, len(prompts))
	for i, prompt := range prompts {
		results[i].Index = i
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		out, err := c.Generate(ctx, backend.GenerateOptions{Model: model, Prompt: prompt})
		if err != nil {
			results[i].Err = err
			continue
		}
		results[i].Response = out.Text
	}
	return results
}
