package types

import "github.com/taskforge-ai/taskforge/models"

// MCP Tool Parameter Types

// ExpandTaskParams for expanding one task into generated subtasks.
type ExpandTaskParams struct {
	ID    int  `json:"id" mcp:"Task ID to expand (required)"`
	Count int  `json:"count,omitempty" mcp:"Requested subtask count; 0 defers to the complexity report or the default"`
	Force bool `json:"force,omitempty" mcp:"Discard and replace any existing subtasks instead of skipping"`
}

// ExpandTaskResponse reports the outcome of a single expansion.
type ExpandTaskResponse struct {
	TaskID       models.ID `json:"taskId"`
	SubtaskCount int       `json:"subtaskCount"`
	Skipped      bool      `json:"skipped"`
	Message      string    `json:"message,omitempty"`
}

// ExpandAllParams for batch expansion over eligible tasks.
type ExpandAllParams struct {
	Count int  `json:"count,omitempty" mcp:"Requested subtask count applied to every expanded task"`
	Force bool `json:"force,omitempty" mcp:"Also expand tasks that already have subtasks, replacing them"`
}

// TaskExpansionResult is one per-task success inside a batch.
type TaskExpansionResult struct {
	TaskID       models.ID `json:"taskId"`
	SubtaskCount int       `json:"subtaskCount"`
}

// TaskExpansionFailure is one per-task failure inside a batch.
type TaskExpansionFailure struct {
	TaskID models.ID `json:"taskId"`
	Reason string    `json:"reason"`
}

// ExpandAllResponse aggregates the batch outcome. The batch never aborts
// early; zero eligible tasks is reported as success with a message.
type ExpandAllResponse struct {
	Results  []TaskExpansionResult  `json:"results"`
	Failures []TaskExpansionFailure `json:"failures"`
	Message  string                 `json:"message,omitempty"`
}

// UpdateTasksParams for merging generator-produced task replacements.
type UpdateTasksParams struct {
	From   string `json:"from" mcp:"Task ID to update from; numeric, fractional tolerated (required)"`
	Prompt string `json:"prompt" mcp:"Context describing the change to apply to the matched tasks (required)"`
}

// UpdateTasksResponse reports which tasks a merge touched.
type UpdateTasksResponse struct {
	Updated  []models.ID `json:"updated"`
	Added    []models.ID `json:"added"`
	Repaired int         `json:"repaired"`
	Message  string      `json:"message,omitempty"`
}

// ListTasksParams for listing and filtering tasks.
type ListTasksParams struct {
	Status string `json:"status,omitempty" mcp:"Filter by status: pending, in-progress, done, completed, deferred, cancelled, blocked"`
	From   string `json:"from,omitempty" mcp:"Only tasks with numeric ID >= this value"`
}

// TaskSummary is the compact task shape returned by list-tasks.
type TaskSummary struct {
	ID           models.ID           `json:"id"`
	Title        string              `json:"title"`
	Status       models.TaskStatus   `json:"status"`
	Priority     models.TaskPriority `json:"priority,omitempty"`
	Dependencies []models.ID         `json:"dependencies,omitempty"`
	SubtaskCount int                 `json:"subtaskCount"`
}

// ListTasksResponse wraps the filtered listing.
type ListTasksResponse struct {
	Tasks []TaskSummary `json:"tasks"`
	Count int           `json:"count"`
}
