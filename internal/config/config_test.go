package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
backend:
  provider: anthropic
  default_model: claude-sonnet-4-20250514
swarm:
  max_workers: 3
  cache_ttl: 30s
memory:
  enabled: false
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}

	if cfg.Backend.Provider != "anthropic" {
		t.Errorf("provider = %q", cfg.Backend.Provider)
	}
	if cfg.Backend.DefaultModel != "claude-sonnet-4-20250514" {
		t.Errorf("default model = %q", cfg.Backend.DefaultModel)
	}
	if cfg.Swarm.MaxWorkers != 3 {
		t.Errorf("max workers = %d", cfg.Swarm.MaxWorkers)
	}
	if cfg.Swarm.CacheTTL != 30*time.Second {
		t.Errorf("cache ttl = %v", cfg.Swarm.CacheTTL)
	}
	if cfg.Memory.Enabled {
		t.Error("memory.enabled override ignored")
	}
}

func TestLoadFromPath_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}

	if cfg.Backend.Provider != "ollama" {
		t.Errorf("default provider = %q", cfg.Backend.Provider)
	}
	if cfg.Ollama.Host != "http://127.0.0.1:11434" {
		t.Errorf("default ollama host = %q", cfg.Ollama.Host)
	}
	if cfg.Swarm.MaxWorkers != 5 {
		t.Errorf("default max workers = %d", cfg.Swarm.MaxWorkers)
	}
	if cfg.Swarm.PreviewChars != 1500 {
		t.Errorf("default preview chars = %d", cfg.Swarm.PreviewChars)
	}
	if cfg.Swarm.CacheTTL != 5*time.Second {
		t.Errorf("default cache ttl = %v", cfg.Swarm.CacheTTL)
	}
	if !cfg.Memory.Enabled {
		t.Error("memory not enabled by default")
	}
	if cfg.Memory.WriteTimeout != 10*time.Second {
		t.Errorf("default write timeout = %v", cfg.Memory.WriteTimeout)
	}
}

func TestLoadFromPath_ExpandsAPIKey(t *testing.T) {
	t.Setenv("TEST_HIVEMIND_KEY", "sk-secret")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "anthropic:\n  api_key: ${TEST_HIVEMIND_KEY}\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Anthropic.APIKey != "sk-secret" {
		t.Errorf("api key = %q, env reference not expanded", cfg.Anthropic.APIKey)
	}
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	if _, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing file accepted")
	}
}
