package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/taskforge-ai/taskforge/artifacts"
	"github.com/taskforge-ai/taskforge/models"
	"github.com/taskforge-ai/taskforge/types"
)

// newLogger returns the slog logger used by commands. Verbose mode drops
// the level to Debug.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if GetConfig().Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadDocument reads the canonical task document from the configured path.
func loadDocument() (models.Document, error) {
	return GetStore().Load(TasksFilePath())
}

// saveDocument stamps generation metadata, persists the document and then
// regenerates per-task artifacts. Artifact failures are logged but never
// fail the save: the document is the source of truth, artifacts are
// derived.
func saveDocument(doc models.Document) error {
	doc.Metadata = &models.DocumentMetadata{
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		GenerationID: uuid.NewString(),
		Source:       "taskforge",
		TaskCount:    len(doc.Tasks),
	}

	if err := GetStore().Save(TasksFilePath(), doc); err != nil {
		return err
	}

	if err := artifacts.NewGenerator(nil).Regenerate(ArtifactsDirPath(), doc); err != nil {
		LogError("artifact regeneration failed", err)
	}
	return nil
}

// emitJSON prints a uniform result envelope to stdout when --json is on.
// Returns false when plain-text output should be produced instead.
func emitJSON(data any, message string, opErr error) bool {
	if !outputJSON {
		return false
	}
	env := types.Ok(data, message)
	if opErr != nil {
		env = types.Fail(opErr)
	}
	b, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		LogError("failed to encode result envelope", err)
		return false
	}
	fmt.Println(string(b))
	return true
}

// loadComplexityReport reads the complexity report if one exists. A missing
// or unreadable report is not an error: commands fall back to defaults.
func loadComplexityReport() *types.ComplexityReport {
	data, err := os.ReadFile(ReportFilePath())
	if err != nil {
		return nil
	}
	var report types.ComplexityReport
	if err := json.Unmarshal(data, &report); err != nil {
		LogError("complexity report is unreadable, ignoring it", err)
		return nil
	}
	return &report
}
