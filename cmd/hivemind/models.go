package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hivemind/internal/config"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Probe the backend and list its installed models",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		_, lister, err := newBackend(cfg)
		if err != nil {
			return err
		}
		if lister == nil {
			fmt.Printf("backend %q does not enumerate models\n", cfg.Backend.Provider)
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		models, err := lister.ListModels(ctx)
		if err != nil {
			color.Red("✗ backend unreachable: %v", err)
			return err
		}

		color.Green("✓ backend healthy (%d models)", len(models))
		for _, m := range models {
			marker := " "
			if m.Name == cfg.Backend.DefaultModel {
				marker = "*"
			}
			fmt.Printf("  %s %-30s %s\n", marker, m.Name, formatSize(m.Size))
		}
		return nil
	},
}

func formatSize(bytes int64) string {
	if bytes <= 0 {
		return ""
	}
	const gb = 1 << 30
	if bytes >= gb {
		return fmt.Sprintf("%.1f GB", float64(bytes)/gb)
	}
	return fmt.Sprintf("%.0f MB", float64(bytes)/(1<<20))
}
