package cmd

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/taskforge-ai/taskforge/internal/engine"
	"github.com/taskforge-ai/taskforge/models"
	"github.com/taskforge-ai/taskforge/types"
)

// textResult builds a tool result with both a human-readable summary and
// the structured payload.
func textResult[T any](text string, payload T) *mcpsdk.CallToolResultFor[T] {
	return &mcpsdk.CallToolResultFor[T]{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: text},
		},
		StructuredContent: payload,
	}
}

// expandTaskHandler expands a single task into generated subtasks.
func expandTaskHandler() mcpsdk.ToolHandlerFor[types.ExpandTaskParams, types.ExpandTaskResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.ExpandTaskParams]) (*mcpsdk.CallToolResultFor[types.ExpandTaskResponse], error) {
		args := params.Arguments
		if args.ID <= 0 {
			return nil, types.ValidationError("id must be a positive task ID, got %d", args.ID)
		}

		doc, err := loadDocument()
		if err != nil {
			return nil, err
		}

		log := newLogger()
		updated, outcome, err := engine.ExpandTask(ctx, doc, models.ID(args.ID), NewGenerator(log), engine.ExpandOptions{
			Count:  args.Count,
			Force:  args.Force,
			Report: loadComplexityReport(),
		}, log)
		if err != nil {
			return nil, err
		}

		resp := types.ExpandTaskResponse{TaskID: models.ID(args.ID), Skipped: outcome.Skipped}
		if outcome.Skipped {
			resp.Message = fmt.Sprintf("task %d already has subtasks; pass force to regenerate", args.ID)
			return textResult(resp.Message, resp), nil
		}

		if err := saveDocument(updated); err != nil {
			return nil, err
		}
		resp.SubtaskCount = outcome.Added
		resp.Message = fmt.Sprintf("expanded task %d into %d subtasks", args.ID, outcome.Added)
		return textResult(resp.Message, resp), nil
	}
}

// expandAllHandler expands every eligible task. The batch reports per-task
// failures instead of aborting, so the handler itself only errors on load
// or save problems.
func expandAllHandler() mcpsdk.ToolHandlerFor[types.ExpandAllParams, types.ExpandAllResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.ExpandAllParams]) (*mcpsdk.CallToolResultFor[types.ExpandAllResponse], error) {
		args := params.Arguments

		doc, err := loadDocument()
		if err != nil {
			return nil, err
		}

		log := newLogger()
		updated, resp := engine.ExpandAll(ctx, doc, NewGenerator(log), engine.ExpandAllOptions{
			Count:  args.Count,
			Force:  args.Force,
			Report: loadComplexityReport(),
		}, log)

		if len(resp.Results) > 0 {
			if err := saveDocument(updated); err != nil {
				return nil, err
			}
		}
		return textResult(resp.Message, resp), nil
	}
}

// updateTasksHandler rewrites tasks from an ID onward and merges the
// generated replacements back into the document.
func updateTasksHandler() mcpsdk.ToolHandlerFor[types.UpdateTasksParams, types.UpdateTasksResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.UpdateTasksParams]) (*mcpsdk.CallToolResultFor[types.UpdateTasksResponse], error) {
		args := params.Arguments

		from, ok := engine.ParseIDFilter(args.From)
		if !ok {
			return nil, types.ValidationError("from must be a numeric task ID, got %q", args.From)
		}
		if args.Prompt == "" {
			return nil, types.ValidationError("prompt is required")
		}

		doc, err := loadDocument()
		if err != nil {
			return nil, err
		}

		candidates := make([]models.Task, 0, len(doc.Tasks))
		for _, t := range engine.FilterTasksFromID(doc.Tasks, from) {
			if !t.Status.IsTerminal() {
				candidates = append(candidates, t)
			}
		}
		if len(candidates) == 0 {
			resp := types.UpdateTasksResponse{
				Updated: []models.ID{},
				Added:   []models.ID{},
				Message: fmt.Sprintf("no updatable tasks from ID %s", args.From),
			}
			return textResult(resp.Message, resp), nil
		}

		log := newLogger()
		updates, err := NewGenerator(log).GenerateTaskUpdates(ctx, candidates, args.Prompt)
		if err != nil {
			return nil, err
		}

		result, err := engine.Merge(doc, updates)
		if err != nil {
			return nil, err
		}
		if err := saveDocument(result.Document); err != nil {
			return nil, err
		}

		resp := types.UpdateTasksResponse{
			Updated:  result.Updated,
			Added:    result.Added,
			Repaired: len(result.Repaired),
			Message:  fmt.Sprintf("updated %d tasks, added %d, restored %d completed subtasks", len(result.Updated), len(result.Added), len(result.Repaired)),
		}
		return textResult(resp.Message, resp), nil
	}
}

// listTasksHandler returns a filtered summary listing.
func listTasksHandler() mcpsdk.ToolHandlerFor[types.ListTasksParams, types.ListTasksResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.ListTasksParams]) (*mcpsdk.CallToolResultFor[types.ListTasksResponse], error) {
		args := params.Arguments

		doc, err := loadDocument()
		if err != nil {
			return nil, err
		}

		tasks := doc.Tasks
		if from, ok := engine.ParseIDFilter(args.From); ok {
			tasks = engine.FilterTasksFromID(tasks, from)
		}

		resp := types.ListTasksResponse{Tasks: []types.TaskSummary{}}
		for _, t := range tasks {
			if args.Status != "" && string(t.Status) != args.Status {
				continue
			}
			resp.Tasks = append(resp.Tasks, types.TaskSummary{
				ID:           t.ID,
				Title:        t.Title,
				Status:       t.Status,
				Priority:     t.Priority,
				Dependencies: t.Dependencies,
				SubtaskCount: len(t.Subtasks),
			})
		}
		resp.Count = len(resp.Tasks)
		return textResult(fmt.Sprintf("%d tasks", resp.Count), resp), nil
	}
}
