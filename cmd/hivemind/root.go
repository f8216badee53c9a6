package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hivemind/internal/backend"
	"hivemind/internal/backend/anthropic"
	"hivemind/internal/backend/ollama"
	"hivemind/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "hivemind",
	Short: "Multi-agent swarm orchestration over local and API models",
	Long: `Hivemind runs a roster of persona-bound agents against one task,
either through the fixed swarm pipeline (speculate, plan, fan out,
synthesize, summarize) or through the inspectable planning pipeline
that analyzes a task and emits an optimized execution plan.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	Execute()
}

// newBackend builds the configured generator plus, when the provider
// supports it, a model lister for availability checks.
func newBackend(cfg *config.Config) (backend.Generator, backend.ModelLister, error) {
	switch cfg.Backend.Provider {
	case "", "ollama":
		client := ollama.NewClient(cfg.Ollama.Host)
		return client, client, nil
	case "anthropic":
		client, err := anthropic.NewClient(anthropic.ClientConfig{
			APIKey:        cfg.Anthropic.APIKey,
			UseAWSBedrock: cfg.Anthropic.UseBedrock,
			AWSRegion:     cfg.Anthropic.AWSRegion,
			AWSProfile:    cfg.Anthropic.AWSProfile,
		})
		if err != nil {
			return nil, nil, err
		}
		return client, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend provider %q", cfg.Backend.Provider)
	}
}
