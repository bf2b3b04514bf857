package engine

import "github.com/taskforge-ai/taskforge/models"

// IsProtected reports whether a subtask holds verified-complete work.
// True iff status is exactly "done" or "completed" (case-sensitive).
//
// The generator producing replacement content cannot be trusted to know
// which work is already complete; reconciliation consults this predicate
// to repair replacements. Force-overwrite expansion deliberately does not:
// there the caller asked for a from-scratch regeneration.
func IsProtected(st models.Subtask) bool {
	return st.Status == models.StatusDone || st.Status == models.StatusCompleted
}

// ProtectedSubtasks returns the protected subset of a list, preserving
// order and original positions via the returned indices.
func ProtectedSubtasks(subtasks []models.Subtask) (protected []models.Subtask, indices []int) {
	for i, st := range subtasks {
		if IsProtected(st) {
			protected = append(protected, st)
			indices = append(indices, i)
		}
	}
	return protected, indices
}
