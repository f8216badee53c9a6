package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hivemind/internal/config"
	"hivemind/internal/memory"
	"hivemind/internal/swarm"
	"hivemind/pkg/models"
)

var (
	runTitle      string
	runAgents     []string
	runTranscript bool
	runNoMemory   bool
)

var runCmd = &cobra.Command{
	Use:   "run \"<prompt>\"",
	Short: "Run the agent swarm on a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		gen, lister, err := newBackend(cfg)
		if err != nil {
			return err
		}

		roster := swarm.DefaultRoster()
		if cfg.Swarm.RosterFile != "" {
			roster, err = swarm.LoadRoster(cfg.Swarm.RosterFile)
			if err != nil {
				return err
			}
		}

		var writer swarm.MemoryWriter
		if cfg.Memory.Enabled {
			dir := cfg.Memory.Dir
			if dir == "" {
				dir = memory.DefaultArchiveDir()
			}
			store, err := memory.NewStore(memory.DefaultDBPath())
			if err != nil {
				return fmt.Errorf("open run index: %w", err)
			}
			defer store.Close()
			writer, err = memory.NewArchiver(dir, store)
			if err != nil {
				return err
			}
		}

		logger, err := swarm.NewDebugLogger(cfg.Swarm.LogFile)
		if err != nil {
			return err
		}
		defer logger.Close()

		resolver := swarm.NewModelResolver(lister, cfg.Backend.DefaultModel, cfg.Swarm.CacheTTL)
		executor := swarm.NewExecutor(gen, resolver, roster, writer, logger, swarm.Config{
			DefaultModel:  cfg.Backend.DefaultModel,
			FastModel:     cfg.Backend.FastModel,
			MaxWorkers:    cfg.Swarm.MaxWorkers,
			PreviewChars:  cfg.Swarm.PreviewChars,
			MemoryTimeout: cfg.Memory.WriteTimeout,
		})

		result := executor.Run(context.Background(), swarm.Request{
			Prompt:            args[0],
			Title:             runTitle,
			Agents:            runAgents,
			IncludeTranscript: runTranscript,
			SaveMemory:        cfg.Memory.Enabled && !runNoMemory,
		})

		printRunResult(result)
		if result.IsError {
			return fmt.Errorf("swarm run failed: %s", result.Error)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runTitle, "title", "", "Label for the run in results and memory")
	runCmd.Flags().StringSliceVar(&runAgents, "agents", nil, "Restrict the roster to these agent names")
	runCmd.Flags().BoolVar(&runTranscript, "transcript", false, "Print the full stage transcript")
	runCmd.Flags().BoolVar(&runNoMemory, "no-memory", false, "Skip the post-run memory write")
}

func printRunResult(result models.SwarmRunResult) {
	for _, w := range result.Warnings {
		color.Yellow("⚠ %s", w)
	}

	if result.IsError {
		color.Red("✗ %s", result.Error)
		for _, rec := range result.Agents {
			if !rec.Success {
				fmt.Printf("  %s: %s\n", rec.Name, rec.Error)
			}
		}
		return
	}

	fmt.Println(headerStyle.Render("Agents"))
	for _, rec := range result.Agents {
		status := color.GreenString("✓")
		note := rec.Model
		if rec.FallbackUsed {
			note += " (fallback)"
		}
		if !rec.Success {
			status = color.RedString("✗")
			note = rec.Error
		}
		fmt.Printf("  %s %-12s %s\n", status, rec.Name, note)
	}

	if result.Transcript != nil {
		fmt.Println(headerStyle.Render("Speculation"))
		fmt.Println(result.Transcript.Speculation)
		fmt.Println(headerStyle.Render("Plan"))
		fmt.Println(result.Transcript.Plan)
	}

	fmt.Println(headerStyle.Render("Final Answer"))
	fmt.Println(strings.TrimSpace(result.Final))

	if result.Summary != "" {
		fmt.Println(headerStyle.Render("Summary"))
		fmt.Println(result.Summary)
	}

	if result.Memory.ArchivePath != "" {
		fmt.Printf("\nArchived: %s\n", result.Memory.ArchivePath)
	}
	if result.Memory.Error != "" {
		color.Yellow("⚠ memory write failed: %s", result.Memory.Error)
	}
}
