// Package artifacts regenerates the derived per-task files from the
// document. Artifacts are write-only outputs: they are rebuilt wholesale
// after every mutating operation and never read back.
package artifacts

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/taskforge-ai/taskforge/models"
)

// Generator writes one markdown file per task. Callers invoke Regenerate
// as a best-effort post-step: a failure is logged by the caller, never
// fatal to the operation that triggered it.
type Generator struct {
	fs afero.Fs
}

// NewGenerator creates a Generator over the given filesystem.
func NewGenerator(fs afero.Fs) *Generator {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Generator{fs: fs}
}

// Regenerate writes dir/task_NNN.md for every task in the document.
func (g *Generator) Regenerate(dir string, doc models.Document) error {
	if err := g.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create artifacts directory %s: %w", dir, err)
	}
	for _, task := range doc.Tasks {
		path := filepath.Join(dir, fmt.Sprintf("task_%03d.md", task.ID))
		if err := afero.WriteFile(g.fs, path, []byte(renderTask(task)), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}

func renderTask(t models.Task) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Task %d: %s\n\n", t.ID, t.Title)
	fmt.Fprintf(&sb, "- Status: %s\n", t.Status)
	if t.Priority != "" {
		fmt.Fprintf(&sb, "- Priority: %s\n", t.Priority)
	}
	if len(t.Dependencies) > 0 {
		deps := make([]string, len(t.Dependencies))
		for i, d := range t.Dependencies {
			deps[i] = fmt.Sprintf("%d", d)
		}
		fmt.Fprintf(&sb, "- Dependencies: %s\n", strings.Join(deps, ", "))
	}
	sb.WriteString("\n")

	if t.Description != "" {
		fmt.Fprintf(&sb, "## Description\n\n%s\n\n", t.Description)
	}
	if t.Details != "" {
		fmt.Fprintf(&sb, "## Details\n\n%s\n\n", t.Details)
	}
	if t.TestStrategy != "" {
		fmt.Fprintf(&sb, "## Test Strategy\n\n%s\n\n", t.TestStrategy)
	}

	if len(t.Subtasks) > 0 {
		sb.WriteString("## Subtasks\n\n")
		for _, st := range t.Subtasks {
			mark := " "
			if st.Status.IsTerminal() {
				mark = "x"
			}
			fmt.Fprintf(&sb, "- [%s] %d.%d %s", mark, t.ID, st.ID, st.Title)
			if st.Status != "" {
				fmt.Fprintf(&sb, " (%s)", st.Status)
			}
			sb.WriteString("\n")
			if st.Description != "" {
				fmt.Fprintf(&sb, "  %s\n", st.Description)
			}
		}
	}
	return sb.String()
}
