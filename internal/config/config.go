// Package config handles configuration loading for Hivemind.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for Hivemind.
type Config struct {
	Backend   BackendConfig   `mapstructure:"backend"`
	Ollama    OllamaConfig    `mapstructure:"ollama"`
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	Swarm     SwarmConfig     `mapstructure:"swarm"`
	Planner   PlannerConfig   `mapstructure:"planner"`
	Memory    MemoryConfig    `mapstructure:"memory"`
}

// BackendConfig selects and tunes the model backend.
type BackendConfig struct {
	// Provider is "ollama" or "anthropic".
	Provider string `mapstructure:"provider"`
	// DefaultModel serves planning, synthesis, and agent fallback.
	DefaultModel string `mapstructure:"default_model"`
	// FastModel serves speculation and run summaries.
	FastModel string `mapstructure:"fast_model"`
}

// OllamaConfig holds Ollama server settings.
type OllamaConfig struct {
	Host string `mapstructure:"host"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	// UseBedrock routes calls through AWS Bedrock instead of the direct API.
	UseBedrock bool   `mapstructure:"use_bedrock"`
	AWSRegion  string `mapstructure:"aws_region"`
	AWSProfile string `mapstructure:"aws_profile"`
}

// SwarmConfig tunes the swarm executor.
type SwarmConfig struct {
	// MaxWorkers bounds the agent fan-out.
	MaxWorkers int `mapstructure:"max_workers"`
	// PreviewChars bounds per-agent output previews.
	PreviewChars int `mapstructure:"preview_chars"`
	// CacheTTL is how long one model-availability snapshot stays valid.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	// RosterFile optionally replaces the built-in roster.
	RosterFile string `mapstructure:"roster_file"`
	// LogFile optionally receives the debug log.
	LogFile string `mapstructure:"log_file"`
}

// PlannerConfig tunes the generic planning pipeline.
type PlannerConfig struct {
	// MaxAgents caps agent selection.
	MaxAgents int `mapstructure:"max_agents"`
	// ConcurrencyLimit feeds the estimator's constraint checks.
	ConcurrencyLimit int `mapstructure:"concurrency_limit"`
}

// MemoryConfig controls run persistence.
type MemoryConfig struct {
	// Enabled turns on the post-run memory write.
	Enabled bool `mapstructure:"enabled"`
	// Dir overrides the archive directory.
	Dir string `mapstructure:"dir"`
	// WriteTimeout bounds the memory write.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (OLLAMA_HOST, ANTHROPIC_API_KEY, HIVEMIND_*)
// 2. Project config (.hivemind.yaml in current directory or parent)
// 3. User config (~/.config/hivemind/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	userConfigDir := getUserConfigDir()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	if projectConfig := findProjectConfig(); projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("HIVEMIND")

	v.BindEnv("ollama.host", "OLLAMA_HOST")
	v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")
	v.BindEnv("backend.provider", "HIVEMIND_BACKEND")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = os.ExpandEnv(cfg.Anthropic.APIKey)

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = os.ExpandEnv(cfg.Anthropic.APIKey)

	return cfg, nil
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("backend.provider", "ollama")
	v.SetDefault("backend.default_model", "llama3")
	v.SetDefault("backend.fast_model", "llama3")

	v.SetDefault("ollama.host", "http://127.0.0.1:11434")

	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.use_bedrock", false)

	v.SetDefault("swarm.max_workers", 5)
	v.SetDefault("swarm.preview_chars", 1500)
	v.SetDefault("swarm.cache_ttl", "5s")
	v.SetDefault("swarm.roster_file", "")
	v.SetDefault("swarm.log_file", "")

	v.SetDefault("planner.max_agents", 5)
	v.SetDefault("planner.concurrency_limit", 5)

	v.SetDefault("memory.enabled", true)
	v.SetDefault("memory.dir", "")
	v.SetDefault("memory.write_timeout", "10s")
}

// getUserConfigDir returns the XDG config directory for Hivemind.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "hivemind")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "hivemind")
	}
	return filepath.Join(home, ".config", "hivemind")
}

// findProjectConfig searches for .hivemind.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".hivemind.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}
