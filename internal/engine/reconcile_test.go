package engine

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/taskforge-ai/taskforge/models"
	"github.com/taskforge-ai/taskforge/types"
)

func baseDocument() models.Document {
	return models.Document{Tasks: []models.Task{
		{ID: 1, Title: "one", Status: models.StatusPending, Dependencies: []models.ID{}, Subtasks: []models.Subtask{}},
		{ID: 2, Title: "two", Status: models.StatusInProgress, Dependencies: []models.ID{1}, Subtasks: []models.Subtask{
			{ID: 1, Title: "keep me", Status: models.StatusDone},
			{ID: 2, Title: "mutable", Status: models.StatusPending},
		}},
		{ID: 3, Title: "three", Status: models.StatusPending, Dependencies: []models.ID{}, Subtasks: []models.Subtask{}},
	}}
}

func TestMerge_EmptyBatchIsNoOp(t *testing.T) {
	doc := baseDocument()
	res, err := Merge(doc, nil)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if !reflect.DeepEqual(res.Document, doc) {
		t.Error("empty batch changed the document")
	}
}

func TestMerge_WholesaleReplacement(t *testing.T) {
	doc := baseDocument()
	res, err := Merge(doc, []models.Task{{
		ID: 1, Title: "one rewritten", Description: "new", Status: models.StatusInProgress,
	}})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	got := res.Document.Task(1)
	if got.Title != "one rewritten" || got.Description != "new" || got.Status != models.StatusInProgress {
		t.Errorf("replacement not wholesale: %+v", got)
	}
	if len(res.Updated) != 1 || res.Updated[0] != 1 {
		t.Errorf("Updated = %v", res.Updated)
	}
}

func TestMerge_UnaffectedTaskInvariance(t *testing.T) {
	doc := baseDocument()
	res, err := Merge(doc, []models.Task{{ID: 1, Title: "changed", Status: models.StatusPending}})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	for _, id := range []models.ID{2, 3} {
		before, _ := json.Marshal(doc.Task(id))
		after, _ := json.Marshal(res.Document.Task(id))
		if string(before) != string(after) {
			t.Errorf("task %d changed by a batch that did not name it:\n before %s\n after  %s", id, before, after)
		}
	}
	// positions preserved too
	if res.Document.Tasks[1].ID != 2 || res.Document.Tasks[2].ID != 3 {
		t.Error("merge reordered tasks outside the batch")
	}
}

func TestMerge_Idempotence(t *testing.T) {
	doc := baseDocument()
	updates := []models.Task{
		{ID: 1, Title: "updated one", Status: models.StatusPending},
		{ID: 3, Title: "updated three", Status: models.StatusDeferred},
	}
	once, err := Merge(doc, updates)
	if err != nil {
		t.Fatalf("first merge: %v", err)
	}
	twice, err := Merge(once.Document, updates)
	if err != nil {
		t.Fatalf("second merge: %v", err)
	}
	if !reflect.DeepEqual(once.Document, twice.Document) {
		t.Error("merging the same batch twice diverged from merging once")
	}
}

func TestMerge_AppendsUnknownIDsAndSorts(t *testing.T) {
	doc := baseDocument()
	res, err := Merge(doc, []models.Task{
		{ID: 10, Title: "ten", Status: models.StatusPending},
		{ID: 5, Title: "five", Status: models.StatusPending},
	})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	ids := make([]models.ID, len(res.Document.Tasks))
	for i, task := range res.Document.Tasks {
		ids[i] = task.ID
	}
	want := []models.ID{1, 2, 3, 5, 10}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
	if len(res.Added) != 2 {
		t.Errorf("Added = %v", res.Added)
	}
}

// The documented gap scenario from the source system: an update replaces a
// task and silently drops its done subtask. The engine no longer trusts
// the generator here — the merge restores the protected subtask at its
// original position.
func TestMerge_RepairsDroppedProtectedSubtask(t *testing.T) {
	doc := models.Document{Tasks: []models.Task{{
		ID: 7, Title: "seven", Status: models.StatusInProgress, Dependencies: []models.ID{},
		Subtasks: []models.Subtask{{ID: 1, Title: "finished work", Status: models.StatusDone}},
	}}}

	res, err := Merge(doc, []models.Task{{ID: 7, Title: "new", Status: models.StatusInProgress, Subtasks: []models.Subtask{}}})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	got := res.Document.Task(7)
	if got.Title != "new" {
		t.Errorf("replacement title not applied: %q", got.Title)
	}
	if len(got.Subtasks) != 1 {
		t.Fatalf("protected subtask not restored: %+v", got.Subtasks)
	}
	want := models.Subtask{ID: 1, Title: "finished work", Status: models.StatusDone}
	if !models.SubtasksEqual(got.Subtasks[0], want) {
		t.Errorf("restored subtask = %+v, want %+v", got.Subtasks[0], want)
	}
	if len(res.Repaired) != 1 || res.Repaired[0].TaskID != 7 {
		t.Errorf("Repaired = %+v", res.Repaired)
	}
}

func TestMerge_ProtectedSubtaskKeptByGeneratorIsNotDuplicated(t *testing.T) {
	doc := baseDocument()
	res, err := Merge(doc, []models.Task{{
		ID: 2, Title: "two rewritten", Status: models.StatusInProgress,
		Subtasks: []models.Subtask{
			{ID: 1, Title: "keep me", Status: models.StatusDone},
			{ID: 2, Title: "fresh", Status: models.StatusPending},
		},
	}})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	got := res.Document.Task(2)
	if len(got.Subtasks) != 2 {
		t.Fatalf("subtasks = %+v", got.Subtasks)
	}
	if len(res.Repaired) != 0 {
		t.Errorf("no repair expected, got %+v", res.Repaired)
	}
}

func TestMerge_RenumbersReplacedSubtaskLists(t *testing.T) {
	doc := baseDocument()
	res, err := Merge(doc, []models.Task{{
		ID: 3, Title: "three", Status: models.StatusPending,
		Subtasks: []models.Subtask{
			{ID: 9, Title: "a"},
			{ID: 9, Title: "b"},
			{ID: 0, Title: "c"},
		},
	}})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	assertContiguous(t, res.Document.Task(3).Subtasks)
	// omitted statuses default to pending
	for _, st := range res.Document.Task(3).Subtasks {
		if st.Status != models.StatusPending {
			t.Errorf("subtask %d status = %q, want pending", st.ID, st.Status)
		}
	}
}

func TestMerge_RenumbersAppendedTaskSubtasks(t *testing.T) {
	doc := baseDocument()
	res, err := Merge(doc, []models.Task{{
		ID: 10, Title: "ten", Status: models.StatusPending,
		Subtasks: []models.Subtask{
			{ID: 9, Title: "a"},
			{ID: 9, Title: "b"},
			{ID: 0, Title: "c"},
		},
	}})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	got := res.Document.Task(10)
	if got == nil {
		t.Fatal("appended task missing")
	}
	assertContiguous(t, got.Subtasks)
	for _, st := range got.Subtasks {
		if st.Status != models.StatusPending {
			t.Errorf("subtask %d status = %q, want pending", st.ID, st.Status)
		}
	}
}

func TestMerge_RejectsInvalidUpdates(t *testing.T) {
	doc := baseDocument()

	_, err := Merge(doc, []models.Task{{ID: 0, Title: "no id"}})
	assertCode(t, err, types.CodeValidation)

	_, err = Merge(doc, []models.Task{{ID: 1, Title: ""}})
	assertCode(t, err, types.CodeValidation)

	_, err = Merge(doc, []models.Task{{ID: 1, Title: "bad dep", Dependencies: []models.ID{99}}})
	assertCode(t, err, types.CodeValidation)
}

func assertContiguous(t *testing.T, subs []models.Subtask) {
	t.Helper()
	for i, st := range subs {
		if int(st.ID) != i+1 {
			t.Fatalf("subtask ids not contiguous: %+v", subs)
		}
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var te *types.TaskError
	if !errors.As(err, &te) || te.Code != code {
		t.Fatalf("got %v, want code %s", err, code)
	}
}
