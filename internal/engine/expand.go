package engine

import (
	"context"
	"log/slog"
	"math"

	"github.com/taskforge-ai/taskforge/models"
	"github.com/taskforge-ai/taskforge/types"
)

// Expansion sizing policy. The target is a suggestion passed to the
// generator ("approximately N subtasks"), never a hard contract: a result
// of a different length is applied as-is and only logged.
const (
	DefaultSubtaskCount     = 5
	reportFallbackCount     = 3
	minRecommendedSubtasks  = 3
	maxRecommendedSubtasks  = 10
	highComplexityThreshold = 8
)

// SubtaskGenerator produces candidate subtasks for a parent task. The
// returned list is untrusted: ids and statuses are normalized by the
// planner before they enter the document.
type SubtaskGenerator interface {
	GenerateSubtasks(ctx context.Context, task models.Task, count int) ([]models.Subtask, error)
}

// TargetCount resolves how many subtasks to ask the generator for.
// Resolution order, first match wins:
//  1. explicit requested count
//  2. complexity report entry for the task: clamp(ceil(score/1.5), 3, 10)
//     when score >= 8, otherwise 3
//  3. the default of 5
func TargetCount(task models.Task, requested int, report *types.ComplexityReport) int {
	if requested > 0 {
		return requested
	}
	if entry := report.Entry(task.ID); entry != nil {
		if entry.ComplexityScore >= highComplexityThreshold {
			n := int(math.Ceil(float64(entry.ComplexityScore) / 1.5))
			if n < minRecommendedSubtasks {
				n = minRecommendedSubtasks
			}
			if n > maxRecommendedSubtasks {
				n = maxRecommendedSubtasks
			}
			return n
		}
		return reportFallbackCount
	}
	return DefaultSubtaskCount
}

// ExpandOutcome reports what ApplyExpansion did to one task.
type ExpandOutcome struct {
	Skipped bool
	Added   int
}

// ApplyExpansion attaches generated subtasks to a task.
//
// Expansion is idempotent by default: when the task already has subtasks
// and force is false, the call is a no-op reported as skipped, not an
// error. With force, the entire existing subtask list is discarded —
// completed subtasks included. That is deliberately narrower protection
// than the merge path offers: force-overwrite encodes the caller intent
// "regenerate this task's subtasks from scratch".
//
// Generated subtasks are renumbered positionally starting after whatever
// subtasks survive, and default to status pending when the generator
// omitted one.
func ApplyExpansion(task models.Task, generated []models.Subtask, force bool) (models.Task, ExpandOutcome) {
	if len(task.Subtasks) > 0 && !force {
		return task, ExpandOutcome{Skipped: true}
	}

	out := task.Clone()
	if force {
		out.Subtasks = nil
	}

	next := NextSubtaskID(out.Subtasks)
	incoming := make([]models.Subtask, len(generated))
	for i, st := range generated {
		if st.Status == "" {
			st.Status = models.StatusPending
		}
		incoming[i] = st
	}
	out.Subtasks = append(out.Subtasks, RenumberSubtasksFrom(incoming, next)...)
	return out, ExpandOutcome{Added: len(incoming)}
}

// ExpandOptions configures a single-task expansion.
type ExpandOptions struct {
	Count  int
	Force  bool
	Report *types.ComplexityReport
}

// ExpandTask plans and applies the expansion of one task, returning the
// updated document. The document is never mutated in place.
func ExpandTask(ctx context.Context, doc models.Document, id models.ID, gen SubtaskGenerator, opts ExpandOptions, log *slog.Logger) (models.Document, ExpandOutcome, error) {
	if log == nil {
		log = slog.Default()
	}

	task := doc.Task(id)
	if task == nil {
		return doc, ExpandOutcome{}, types.NotFoundError("task %d not found", id)
	}

	// Skip before spending a generator call.
	if len(task.Subtasks) > 0 && !opts.Force {
		return doc, ExpandOutcome{Skipped: true}, nil
	}

	target := TargetCount(*task, opts.Count, opts.Report)
	generated, err := gen.GenerateSubtasks(ctx, *task, target)
	if err != nil {
		return doc, ExpandOutcome{}, err
	}
	if len(generated) == 0 {
		return doc, ExpandOutcome{}, types.GeneratorError("generator returned no subtasks", nil)
	}
	if len(generated) != target {
		log.Warn("subtask count mismatch", "task", id, "target", target, "got", len(generated))
	}

	expanded, outcome := ApplyExpansion(*task, generated, opts.Force)

	out := doc.Clone()
	*out.Task(id) = expanded
	return out, outcome, nil
}
