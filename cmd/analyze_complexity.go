package cmd

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskforge-ai/taskforge/models"
	"github.com/taskforge-ai/taskforge/types"
)

var analyzeComplexityCmd = &cobra.Command{
	Use:   "analyze-complexity",
	Short: "Score task complexity and write a report",
	Long: `Analyze-complexity scores every non-finished task from 1 to 10 using
structural heuristics (description length, dependency fan-in, existing
subtasks) and writes the report JSON. The expand command consults the
report to size subtask generation when --count is not given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument()
		if err != nil {
			PrintError("failed to load tasks", err)
			return err
		}

		report := buildComplexityReport(doc)

		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		path := ReportFilePath()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			PrintError("failed to create report directory", err)
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			PrintError("failed to write complexity report", err)
			return err
		}

		fmt.Printf("Analyzed %d tasks (low %d, medium %d, high %d) -> %s\n",
			report.Stats.Total, report.Stats.Low, report.Stats.Medium, report.Stats.High, path)
		return nil
	},
}

// buildComplexityReport scores each non-finished task heuristically.
func buildComplexityReport(doc models.Document) types.ComplexityReport {
	report := types.ComplexityReport{
		GeneratedAt:        time.Now().UTC().Format(time.RFC3339),
		ComplexityAnalysis: []types.TaskComplexity{},
	}
	for _, t := range doc.Tasks {
		if t.Status.IsTerminal() {
			continue
		}
		score, why := scoreTask(t)
		entry := types.TaskComplexity{
			ID:                 t.ID,
			Title:              t.Title,
			ComplexityScore:    score,
			Justification:      why,
			RecommendExpansion: score >= 5 && len(t.Subtasks) == 0,
		}
		if entry.RecommendExpansion {
			entry.RecommendedSubtasks = recommendedSubtasks(score)
		}
		report.ComplexityAnalysis = append(report.ComplexityAnalysis, entry)

		report.Stats.Total++
		switch {
		case score <= 3:
			report.Stats.Low++
		case score <= 7:
			report.Stats.Medium++
		default:
			report.Stats.High++
		}
	}
	return report
}

// scoreTask assigns a 1-10 score from structural signals. It is a cheap
// stand-in for model-based analysis, and deliberately errs low: the score
// only sizes subtask generation.
func scoreTask(t models.Task) (int, string) {
	score := 1
	var reasons []string

	textLen := len(t.Description) + len(t.Details)
	switch {
	case textLen > 800:
		score += 4
		reasons = append(reasons, "long description")
	case textLen > 300:
		score += 2
		reasons = append(reasons, "substantial description")
	}

	if n := len(t.Dependencies); n > 0 {
		score += n
		if score > 10 {
			score = 10
		}
		reasons = append(reasons, fmt.Sprintf("%d dependencies", n))
	}

	if len(t.Subtasks) > 0 {
		score += 1
		reasons = append(reasons, "already decomposed")
	}

	if t.Priority == models.PriorityHigh {
		score += 1
		reasons = append(reasons, "high priority")
	}

	if score > 10 {
		score = 10
	}
	why := "simple task"
	if len(reasons) > 0 {
		why = reasons[0]
		for _, r := range reasons[1:] {
			why += ", " + r
		}
	}
	return score, why
}

// recommendedSubtasks mirrors the expansion planner sizing: high scores
// scale with the score, everything else gets the small default.
func recommendedSubtasks(score int) int {
	if score >= 8 {
		n := int(math.Ceil(float64(score) / 1.5))
		if n < 3 {
			n = 3
		}
		if n > 10 {
			n = 10
		}
		return n
	}
	return 3
}

func init() {
	rootCmd.AddCommand(analyzeComplexityCmd)
}
