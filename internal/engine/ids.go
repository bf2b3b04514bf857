// Package engine implements the task graph reconciliation core: identifier
// allocation, completion protection, merge of untrusted update batches, and
// subtask expansion. Every operation takes and returns explicit document
// values; there is no ambient state.
package engine

import (
	"strconv"
	"strings"

	"github.com/taskforge-ai/taskforge/models"
)

// NextTaskID returns the next available global task identifier.
func NextTaskID(doc models.Document) models.ID {
	var max models.ID
	for _, t := range doc.Tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}

// NextSubtaskID returns the next available subtask identifier within one
// parent: count + 1. Used whenever subtasks are appended rather than
// wholesale replaced.
func NextSubtaskID(existing []models.Subtask) models.ID {
	return models.ID(len(existing) + 1)
}

// RenumberSubtasks reassigns every element's id to its 1-based position.
// Upstream generators supply their own, untrustworthy ids; renumbering
// after any replace or reorder guarantees the contiguous 1..N invariant.
func RenumberSubtasks(subtasks []models.Subtask) []models.Subtask {
	return RenumberSubtasksFrom(subtasks, 1)
}

// RenumberSubtasksFrom renumbers sequentially starting at start.
func RenumberSubtasksFrom(subtasks []models.Subtask, start models.ID) []models.Subtask {
	out := make([]models.Subtask, len(subtasks))
	for i, st := range subtasks {
		st.ID = start + models.ID(i)
		out[i] = st
	}
	return out
}

// ParseIDFilter parses a task id used for range filtering ("from ID X").
// IDs are parsed as floating point to tolerate fractional or decimal
// values; the second return is false for non-numeric input, which callers
// treat as "excluded from the filter" rather than an error.
func ParseIDFilter(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FilterTasksFromID returns the tasks whose numeric id is >= from,
// preserving document order.
func FilterTasksFromID(tasks []models.Task, from float64) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if float64(t.ID) >= from {
			out = append(out, t)
		}
	}
	return out
}
