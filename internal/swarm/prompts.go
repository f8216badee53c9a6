package swarm

import (
	"fmt"
	"strings"

	"hivemind/pkg/models"
)

// DefaultPreviewChars bounds how much of each agent's output the
// synthesis prompt includes.
const DefaultPreviewChars = 1500

func speculationPrompt(task string) string {
	var b strings.Builder
	b.WriteString("Before any work begins, think out loud about this task.\n")
	b.WriteString("List the relevant context, the main risks, and the open questions.\n\n")
	b.WriteString("Task:\n")
	b.WriteString(task)
	return b.String()
}

func planningPrompt(task, speculation string) string {
	var b strings.Builder
	b.WriteString("Draft a short working plan for the task below. ")
	b.WriteString("Name the steps in order and what each should produce.\n\n")
	b.WriteString("Task:\n")
	b.WriteString(task)
	b.WriteString("\n\nPrior notes:\n")
	b.WriteString(speculation)
	return b.String()
}

func agentSystemPrompt(profile *models.AgentProfile) string {
	return fmt.Sprintf("You are %s, %s. Your specialization is %s. Answer from that perspective only.",
		profile.Name, profile.Persona, profile.Specialization)
}

func agentPrompt(task, plan string) string {
	var b strings.Builder
	b.WriteString("Work on this task and report your contribution.\n\n")
	b.WriteString("Task:\n")
	b.WriteString(task)
	b.WriteString("\n\nWorking plan:\n")
	b.WriteString(plan)
	return b.String()
}

func synthesisPrompt(task string, records []models.AgentRunRecord) string {
	var b strings.Builder
	b.WriteString("Combine the agent contributions below into one final answer to the task. ")
	b.WriteString("Resolve disagreements; do not enumerate the agents.\n\n")
	b.WriteString("Task:\n")
	b.WriteString(task)
	for _, rec := range records {
		if !rec.Success {
			continue
		}
		fmt.Fprintf(&b, "\n\n--- %s (%s) ---\n%s", rec.Name, rec.Model, rec.Preview)
	}
	return b.String()
}

func summaryPrompt(task, final string) string {
	var b strings.Builder
	b.WriteString("Summarize this completed run as a short bullet list.\n\n")
	b.WriteString("Task:\n")
	b.WriteString(task)
	b.WriteString("\n\nFinal answer:\n")
	b.WriteString(final)
	return b.String()
}

// truncate bounds s to at most n runes, marking the cut.
func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + " [truncated]"
}

// concatenateOutputs is the deterministic synthesis fallback: the raw
// untruncated outputs of every successful agent, in roster order.
func concatenateOutputs(outputs []string) string {
	return strings.Join(outputs, "\n\n---\n\n")
}
