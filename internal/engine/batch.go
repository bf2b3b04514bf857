package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taskforge-ai/taskforge/models"
	"github.com/taskforge-ai/taskforge/types"
)

// ExpandAllOptions configures a batch expansion pass.
type ExpandAllOptions struct {
	Count  int
	Force  bool
	Report *types.ComplexityReport

	// Eligible overrides the default eligibility predicate:
	// status == pending AND (no subtasks OR force).
	Eligible func(models.Task) bool
}

// ExpandAll applies the expansion planner across every eligible task.
//
// Tasks are processed sequentially so the returned document reflects all
// accumulated subtask updates for a single save. One task's failure is
// recorded and processing continues; the batch never aborts early. Zero
// eligible tasks, or all of them failing, is still a success envelope with
// an explanatory message — "nothing to do" is not itself a failure.
func ExpandAll(ctx context.Context, doc models.Document, gen SubtaskGenerator, opts ExpandAllOptions, log *slog.Logger) (models.Document, types.ExpandAllResponse) {
	if log == nil {
		log = slog.Default()
	}

	eligible := opts.Eligible
	if eligible == nil {
		eligible = func(t models.Task) bool {
			return t.Status == models.StatusPending && (len(t.Subtasks) == 0 || opts.Force)
		}
	}

	var targets []models.ID
	for _, t := range doc.Tasks {
		if eligible(t) {
			targets = append(targets, t.ID)
		}
	}

	resp := types.ExpandAllResponse{
		Results:  []types.TaskExpansionResult{},
		Failures: []types.TaskExpansionFailure{},
	}
	if len(targets) == 0 {
		resp.Message = "no tasks eligible for expansion"
		return doc, resp
	}

	current := doc
	for _, id := range targets {
		next, outcome, err := ExpandTask(ctx, current, id, gen, ExpandOptions{
			Count:  opts.Count,
			Force:  opts.Force,
			Report: opts.Report,
		}, log)
		if err != nil {
			log.Warn("expansion failed", "task", id, "error", err)
			resp.Failures = append(resp.Failures, types.TaskExpansionFailure{TaskID: id, Reason: err.Error()})
			continue
		}
		if outcome.Skipped {
			continue
		}
		current = next
		resp.Results = append(resp.Results, types.TaskExpansionResult{TaskID: id, SubtaskCount: outcome.Added})
	}

	switch {
	case len(resp.Results) == 0 && len(resp.Failures) > 0:
		resp.Message = fmt.Sprintf("all %d eligible tasks failed to expand", len(resp.Failures))
	case len(resp.Failures) > 0:
		resp.Message = fmt.Sprintf("expanded %d tasks, %d failed", len(resp.Results), len(resp.Failures))
	default:
		resp.Message = fmt.Sprintf("expanded %d tasks", len(resp.Results))
	}
	return current, resp
}
