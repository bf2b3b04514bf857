package engine

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/taskforge-ai/taskforge/models"
	"github.com/taskforge-ai/taskforge/types"
)

// stubGenerator returns canned subtasks, or an error for task ids listed
// in failFor.
type stubGenerator struct {
	failFor map[models.ID]bool
	calls   int
}

func (g *stubGenerator) GenerateSubtasks(ctx context.Context, task models.Task, count int) ([]models.Subtask, error) {
	g.calls++
	if g.failFor[task.ID] {
		return nil, types.GeneratorError(fmt.Sprintf("completion failed for task %d", task.ID), nil)
	}
	subs := make([]models.Subtask, count)
	for i := range subs {
		subs[i] = models.Subtask{
			Title:       fmt.Sprintf("step %d of %s", i+1, task.Title),
			Description: "generated",
		}
	}
	return subs, nil
}

func TestTargetCount(t *testing.T) {
	task := models.Task{ID: 4, Title: "t", Status: models.StatusPending}
	report := &types.ComplexityReport{ComplexityAnalysis: []types.TaskComplexity{
		{ID: 4, ComplexityScore: 9},
		{ID: 5, ComplexityScore: 6},
		{ID: 6, ComplexityScore: 10},
	}}

	cases := []struct {
		name      string
		task      models.Task
		requested int
		report    *types.ComplexityReport
		want      int
	}{
		{"explicit request wins", task, 7, report, 7},
		{"high score clamps ceil(9/1.5)=6", task, 0, report, 6},
		{"score 10 gives ceil(10/1.5)=7", models.Task{ID: 6}, 0, report, 7},
		{"low score falls back to 3", models.Task{ID: 5}, 0, report, 3},
		{"no report entry uses default", models.Task{ID: 99}, 0, report, DefaultSubtaskCount},
		{"nil report uses default", task, 0, nil, DefaultSubtaskCount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TargetCount(tc.task, tc.requested, tc.report); got != tc.want {
				t.Errorf("TargetCount = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestApplyExpansion_SkipByDefault(t *testing.T) {
	task := models.Task{ID: 1, Title: "t", Status: models.StatusPending,
		Subtasks: []models.Subtask{{ID: 1, Title: "existing", Status: models.StatusPending}}}

	out, outcome := ApplyExpansion(task, []models.Subtask{{Title: "new"}}, false)
	if !outcome.Skipped || outcome.Added != 0 {
		t.Errorf("outcome = %+v, want skipped", outcome)
	}
	if !reflect.DeepEqual(out.Subtasks, task.Subtasks) {
		t.Error("skip changed the subtask list")
	}
}

func TestApplyExpansion_ForceReplacesEverything(t *testing.T) {
	// Force-overwrite deliberately does not exempt completed subtasks:
	// narrower protection than the merge path, by caller intent.
	task := models.Task{ID: 1, Title: "t", Status: models.StatusPending,
		Subtasks: []models.Subtask{{ID: 1, Title: "finished", Status: models.StatusDone}}}

	out, outcome := ApplyExpansion(task, []models.Subtask{{Title: "a"}, {Title: "b"}}, true)
	if outcome.Skipped || outcome.Added != 2 {
		t.Errorf("outcome = %+v", outcome)
	}
	if len(out.Subtasks) != 2 || out.Subtasks[0].Title != "a" {
		t.Errorf("subtasks = %+v", out.Subtasks)
	}
	assertContiguous(t, out.Subtasks)
}

func TestApplyExpansion_DefaultsStatusAndRenumbers(t *testing.T) {
	task := models.Task{ID: 3, Title: "t", Status: models.StatusPending}
	generated := []models.Subtask{
		{ID: 99, Title: "a"},
		{ID: 99, Title: "b", Status: models.StatusInProgress},
		{Title: "c"},
		{Title: "d"},
	}
	out, outcome := ApplyExpansion(task, generated, false)
	if outcome.Added != 4 {
		t.Fatalf("Added = %d, want 4", outcome.Added)
	}
	assertContiguous(t, out.Subtasks)
	if out.Subtasks[0].Status != models.StatusPending {
		t.Error("omitted status not defaulted to pending")
	}
	if out.Subtasks[1].Status != models.StatusInProgress {
		t.Error("generator-supplied status overwritten")
	}
}

func TestExpandTask_Scenario(t *testing.T) {
	// Spec scenario: expand pending task 3 with requestedCount=4.
	doc := models.Document{Tasks: []models.Task{
		{ID: 3, Title: "three", Status: models.StatusPending, Subtasks: []models.Subtask{}},
	}}
	gen := &stubGenerator{}

	out, outcome, err := ExpandTask(context.Background(), doc, 3, gen, ExpandOptions{Count: 4}, nil)
	if err != nil {
		t.Fatalf("ExpandTask failed: %v", err)
	}
	if outcome.Added != 4 {
		t.Fatalf("Added = %d, want 4", outcome.Added)
	}
	subs := out.Task(3).Subtasks
	if len(subs) != 4 {
		t.Fatalf("got %d subtasks, want 4", len(subs))
	}
	for i, st := range subs {
		if int(st.ID) != i+1 {
			t.Errorf("subtask %d has id %d", i, st.ID)
		}
		if st.Status != models.StatusPending {
			t.Errorf("subtask %d status = %q, want pending", i, st.Status)
		}
	}
	// input document untouched
	if len(doc.Task(3).Subtasks) != 0 {
		t.Error("ExpandTask mutated its input document")
	}
}

func TestExpandTask_SkipDoesNotCallGenerator(t *testing.T) {
	doc := models.Document{Tasks: []models.Task{
		{ID: 1, Title: "t", Status: models.StatusPending, Subtasks: []models.Subtask{{ID: 1, Title: "existing"}}},
	}}
	gen := &stubGenerator{}
	_, outcome, err := ExpandTask(context.Background(), doc, 1, gen, ExpandOptions{}, nil)
	if err != nil {
		t.Fatalf("ExpandTask failed: %v", err)
	}
	if !outcome.Skipped {
		t.Error("expected skip")
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times on a skip", gen.calls)
	}
}

func TestExpandTask_NotFound(t *testing.T) {
	_, _, err := ExpandTask(context.Background(), models.Document{}, 42, &stubGenerator{}, ExpandOptions{}, nil)
	assertCode(t, err, types.CodeNotFound)
}

type emptyGenerator struct{}

func (emptyGenerator) GenerateSubtasks(ctx context.Context, task models.Task, count int) ([]models.Subtask, error) {
	return nil, nil
}

func TestExpandTask_EmptyGenerationIsError(t *testing.T) {
	doc := models.Document{Tasks: []models.Task{{ID: 1, Title: "t", Status: models.StatusPending}}}
	_, _, err := ExpandTask(context.Background(), doc, 1, emptyGenerator{}, ExpandOptions{Count: 3}, nil)
	assertCode(t, err, types.CodeGenerator)
}
