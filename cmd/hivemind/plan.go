package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hivemind/internal/config"
	"hivemind/internal/planner"
	"hivemind/internal/swarm"
	"hivemind/pkg/models"
)

var (
	planMaxAgents  int
	planReviewer   bool
	planResearcher bool
	planCost       bool
)

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("15")).
	Padding(0, 1)

var dimStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("244"))

var planCmd = &cobra.Command{
	Use:   "plan \"<prompt>\"",
	Short: "Analyze a task and print an optimized execution plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
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

		pipeline := planner.NewPipeline(roster, cfg.Planner.ConcurrencyLimit)

		maxAgents := planMaxAgents
		if maxAgents <= 0 {
			maxAgents = cfg.Planner.MaxAgents
		}
		optOpts := planner.DefaultOptimizeOptions()
		optOpts.MinimizeCost = planCost

		result, err := pipeline.Plan(args[0], planner.SelectOptions{
			MaxAgents:         maxAgents,
			IncludeReviewer:   planReviewer,
			IncludeResearcher: planResearcher,
		}, optOpts)
		if err != nil {
			return err
		}

		printPlan(result)
		return nil
	},
}

func init() {
	planCmd.Flags().IntVar(&planMaxAgents, "max-agents", 0, "Cap agent selection (default from config)")
	planCmd.Flags().BoolVar(&planReviewer, "reviewer", false, "Guarantee a review-capable agent")
	planCmd.Flags().BoolVar(&planResearcher, "researcher", false, "Guarantee a research-capable agent")
	planCmd.Flags().BoolVar(&planCost, "minimize-cost", false, "Trim oversized phases to the two cheapest agents")
}

func printPlan(result *planner.PipelineResult) {
	analysis := result.Selection.Analysis
	fmt.Println(headerStyle.Render("Analysis"))
	fmt.Printf("  complexity: %s (score %d, confidence %.2f)\n", analysis.Complexity, analysis.ComplexityScore, analysis.Confidence)
	fmt.Printf("  type: %s  risk: %s\n", analysis.Type, analysis.RiskLevel)
	if analysis.RequiresSequential {
		fmt.Println("  execution: sequential (data dependencies)")
	}

	fmt.Println(headerStyle.Render("Selected Agents"))
	for _, sa := range result.Selection.Agents {
		fmt.Printf("  %-12s score %-3d %s\n", sa.Agent.Name, sa.Score, dimStyle.Render(strings.Join(sa.Rationale, "; ")))
	}

	plan := result.Optimization.Plan
	fmt.Println(headerStyle.Render("Phases"))
	for i := range plan.Phases {
		phase := &plan.Phases[i]
		mode := "sequential"
		if phase.Parallel {
			mode = "parallel"
		}
		deps := ""
		if len(phase.DependsOn) > 0 {
			deps = dimStyle.Render(" after " + strings.Join(phase.DependsOn, ", "))
		}
		fmt.Printf("  %d. %-15s %-10s %2dmin  agents: %s%s\n",
			phase.Order+1, phase.ID, mode, phase.EstimatedDuration, strings.Join(phase.Agents, ", "), deps)
	}

	printEstimate(result.Optimization.Metrics.After)

	if opts := result.Optimization.Optimizations; len(opts) > 0 {
		fmt.Println(headerStyle.Render("Optimizations"))
		for _, o := range opts {
			fmt.Printf("  - %s\n", o)
		}
		m := result.Optimization.Metrics
		if m.DurationImprovementPct > 0 || m.TokenImprovementPct > 0 {
			fmt.Printf("  improvement: %.2f%% duration, %.2f%% tokens\n",
				m.DurationImprovementPct, m.TokenImprovementPct)
		}
	}
}

func printEstimate(est models.ResourceEstimate) {
	fmt.Println(headerStyle.Render("Estimate"))
	fmt.Printf("  tokens: %d  duration: %dmin  concurrency: %d  memory: %dMB  api cost: $%.4f\n",
		est.TotalTokens, est.TotalDuration, est.ConcurrencyRequired, est.MemoryRequired, est.Cost.APIEstimate)
	for _, c := range est.Constraints {
		if c.Severity == models.SeverityWarning {
			color.Yellow("  ⚠ %s", c.Message)
		} else {
			fmt.Printf("  i %s\n", c.Message)
		}
	}
}
