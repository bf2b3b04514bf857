package engine

import (
	"sort"

	"github.com/taskforge-ai/taskforge/models"
	"github.com/taskforge-ai/taskforge/types"
)

// RepairedSubtask records a protected subtask that a replacement task had
// dropped and the merge restored.
type RepairedSubtask struct {
	TaskID    models.ID `json:"taskId"`
	SubtaskID models.ID `json:"subtaskId"`
	Title     string    `json:"title"`
}

// MergeResult is the outcome of merging an update batch into a document.
type MergeResult struct {
	Document models.Document
	Updated  []models.ID
	Added    []models.ID
	Repaired []RepairedSubtask
}

// Merge applies a batch of externally-produced task replacements to the
// document without disturbing unrelated tasks or protected subtasks.
//
// Each update replaces the existing task with the same id wholesale
// (field-for-field, not a deep merge). Updates referring to ids absent
// from the document are appended and the list re-sorted by numeric id.
// Tasks not named in the batch are returned bit-for-bit unchanged, in
// their original positions.
//
// Replacement tasks are not trusted: protected (done/completed) subtasks
// of the original that the replacement dropped are reinserted at their
// original position, and every replaced subtask list is renumbered to the
// contiguous 1..N form. An empty batch succeeds as a no-op.
func Merge(doc models.Document, updates []models.Task) (MergeResult, error) {
	result := MergeResult{Document: doc.Clone()}
	if len(updates) == 0 {
		return result, nil
	}

	index := make(map[models.ID]models.Task, len(updates))
	order := make([]models.ID, 0, len(updates))
	for _, u := range updates {
		if u.ID < 1 {
			return MergeResult{}, types.ValidationError("update batch contains a task without a valid id (title: %q)", u.Title)
		}
		if u.Title == "" {
			return MergeResult{}, types.ValidationError("update for task %d has no title", u.ID)
		}
		if _, dup := index[u.ID]; !dup {
			order = append(order, u.ID)
		}
		index[u.ID] = u.Clone()
	}

	merged := make([]models.Task, 0, len(doc.Tasks))
	for _, existing := range doc.Tasks {
		update, ok := index[existing.ID]
		if !ok {
			merged = append(merged, existing.Clone())
			continue
		}
		delete(index, existing.ID)

		replacement, repaired := repairProtected(existing, update)
		replacement = normalizeReplacement(replacement)
		merged = append(merged, replacement)
		result.Updated = append(result.Updated, existing.ID)
		result.Repaired = append(result.Repaired, repaired...)
	}

	// Unconsumed updates are new tasks: append, then sort by numeric id.
	// Sorting only happens on append so that positions of tasks outside
	// the batch stay stable otherwise.
	if len(index) > 0 {
		for _, id := range order {
			update, ok := index[id]
			if !ok {
				continue
			}
			merged = append(merged, normalizeReplacement(update))
			result.Added = append(result.Added, id)
		}
		sort.SliceStable(merged, func(i, j int) bool { return merged[i].ID < merged[j].ID })
	}

	if err := validateDependencies(merged); err != nil {
		return MergeResult{}, err
	}

	result.Document.Tasks = merged
	return result, nil
}

// repairProtected enforces the completion guard on a wholesale task
// replacement. A protected original subtask whose content is missing from
// the replacement is reinserted at its original position; the resulting
// list is renumbered.
func repairProtected(original, replacement models.Task) (models.Task, []RepairedSubtask) {
	out := replacement.Clone()
	var repaired []RepairedSubtask

	protected, indices := ProtectedSubtasks(original.Subtasks)
	for i, st := range protected {
		if containsSubtaskContent(out.Subtasks, st) {
			continue
		}
		pos := indices[i]
		if pos > len(out.Subtasks) {
			pos = len(out.Subtasks)
		}
		out.Subtasks = append(out.Subtasks, models.Subtask{})
		copy(out.Subtasks[pos+1:], out.Subtasks[pos:])
		out.Subtasks[pos] = st
		repaired = append(repaired, RepairedSubtask{TaskID: original.ID, SubtaskID: st.ID, Title: st.Title})
	}

	out.Subtasks = RenumberSubtasks(out.Subtasks)
	return out, repaired
}

// containsSubtaskContent reports whether the list carries a subtask with
// the same content. IDs are ignored: replacement lists get renumbered, so
// identity is the work itself, not the positional id.
func containsSubtaskContent(list []models.Subtask, want models.Subtask) bool {
	for _, st := range list {
		if st.Title == want.Title && st.Description == want.Description &&
			st.Details == want.Details && st.Status == want.Status {
			return true
		}
	}
	return false
}

// normalizeReplacement fills generator-omitted defaults on a task that is
// entering the document and renumbers its subtask list. Renumbering here
// keeps appended tasks under the same contiguity rule as replaced ones.
func normalizeReplacement(t models.Task) models.Task {
	if t.Status == "" {
		t.Status = models.StatusPending
	}
	if t.Dependencies == nil {
		t.Dependencies = []models.ID{}
	}
	t.Subtasks = RenumberSubtasks(t.Subtasks)
	for i := range t.Subtasks {
		if t.Subtasks[i].Status == "" {
			t.Subtasks[i].Status = models.StatusPending
		}
	}
	return t
}

// validateDependencies rejects documents whose tasks reference ids that do
// not exist after the merge.
func validateDependencies(tasks []models.Task) error {
	known := make(map[models.ID]bool, len(tasks))
	for _, t := range tasks {
		known[t.ID] = true
	}
	for _, t := range tasks {
		for _, dep := range t.Dependencies {
			if !known[dep] {
				return types.ValidationError("task %d depends on unknown task %d", t.ID, dep)
			}
		}
	}
	return nil
}
