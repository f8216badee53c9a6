package memory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"hivemind/pkg/models"
)

// Archiver writes swarm runs as markdown archives and indexes them in
// the run store. It implements the executor's memory writer interface.
type Archiver struct {
	dir   string
	store *Store
	now   func() time.Time
}

// DefaultArchiveDir returns the archive directory under the XDG data
// directory.
func DefaultArchiveDir() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, _ := os.UserHomeDir()
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "hivemind", "archive")
}

// NewArchiver creates an Archiver rooted at dir. The store may be nil
// when indexing is disabled.
func NewArchiver(dir string, store *Store) (*Archiver, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}
	return &Archiver{dir: dir, store: store, now: time.Now}, nil
}

// WriteSwarmMemory archives one completed run. The markdown document
// carries every stage output; the log file gets a one-line entry.
func (a *Archiver) WriteSwarmMemory(ctx context.Context, entry models.SwarmMemoryEntry) (models.MemoryRef, error) {
	if err := ctx.Err(); err != nil {
		return models.MemoryRef{}, err
	}

	runID := uuid.New().String()[:8]
	now := a.now()

	archivePath := filepath.Join(a.dir, fmt.Sprintf("swarm-%s-%s.md", now.Format("20060102-150405"), runID))
	if err := os.WriteFile(archivePath, []byte(renderArchive(runID, now, entry)), 0644); err != nil {
		return models.MemoryRef{}, fmt.Errorf("write archive: %w", err)
	}

	logPath := filepath.Join(a.dir, "runs.log")
	if err := appendRunLog(logPath, runID, now, entry); err != nil {
		return models.MemoryRef{}, fmt.Errorf("append run log: %w", err)
	}

	if a.store != nil {
		successes := 0
		for _, rec := range entry.Agents {
			if rec.Success {
				successes++
			}
		}
		rate := 0.0
		if len(entry.Agents) > 0 {
			rate = float64(successes) / float64(len(entry.Agents))
		}
		err := a.store.IndexRun(ctx, RunRecord{
			ID:          runID,
			Title:       entry.Title,
			Prompt:      entry.Prompt,
			AgentCount:  len(entry.Agents),
			SuccessRate: rate,
			ArchivePath: archivePath,
			CreatedAt:   now,
		})
		if err != nil {
			return models.MemoryRef{}, err
		}
	}

	return models.MemoryRef{ArchivePath: archivePath, LogPath: logPath}, nil
}

func renderArchive(runID string, now time.Time, entry models.SwarmMemoryEntry) string {
	var b strings.Builder

	title := entry.Title
	if title == "" {
		title = "Swarm run " + runID
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "- Run: %s\n- Date: %s\n- Agents: %d\n\n", runID, now.Format(time.RFC3339), len(entry.Agents))

	b.WriteString("## Prompt\n\n")
	b.WriteString(entry.Prompt)
	b.WriteString("\n\n## Speculation\n\n")
	b.WriteString(entry.Speculation)
	b.WriteString("\n\n## Plan\n\n")
	b.WriteString(entry.Plan)

	b.WriteString("\n\n## Agents\n")
	for _, rec := range entry.Agents {
		status := "ok"
		if !rec.Success {
			status = "failed: " + rec.Error
		}
		fmt.Fprintf(&b, "\n### %s (%s)\n\nStatus: %s\n", rec.Name, rec.Model, status)
		if rec.Preview != "" {
			fmt.Fprintf(&b, "\n%s\n", rec.Preview)
		}
	}

	b.WriteString("\n## Summary\n\n")
	b.WriteString(entry.Summary)
	b.WriteString("\n\n## Final Answer\n\n")
	b.WriteString(entry.FinalAnswer)
	b.WriteString("\n")
	return b.String()
}

func appendRunLog(logPath, runID string, now time.Time, entry models.SwarmMemoryEntry) error {
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	prompt := entry.Prompt
	if len(prompt) > 80 {
		prompt = prompt[:80]
	}
	_, err = fmt.Fprintf(f, "[%s] %s agents=%d %q\n", now.Format(time.RFC3339), runID, len(entry.Agents), prompt)
	return err
}
