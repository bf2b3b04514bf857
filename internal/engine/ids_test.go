package engine

import (
	"testing"

	"github.com/taskforge-ai/taskforge/models"
)

func TestNextTaskID(t *testing.T) {
	doc := models.Document{Tasks: []models.Task{{ID: 3}, {ID: 1}, {ID: 7}}}
	if got := NextTaskID(doc); got != 8 {
		t.Errorf("NextTaskID = %d, want 8", got)
	}
	if got := NextTaskID(models.Document{}); got != 1 {
		t.Errorf("NextTaskID on empty doc = %d, want 1", got)
	}
}

func TestNextSubtaskID(t *testing.T) {
	subs := []models.Subtask{{ID: 1}, {ID: 2}}
	if got := NextSubtaskID(subs); got != 3 {
		t.Errorf("NextSubtaskID = %d, want 3", got)
	}
	if got := NextSubtaskID(nil); got != 1 {
		t.Errorf("NextSubtaskID(nil) = %d, want 1", got)
	}
}

func TestRenumberSubtasksIgnoresGeneratorIDs(t *testing.T) {
	subs := []models.Subtask{
		{ID: 42, Title: "a"},
		{ID: 0, Title: "b"},
		{ID: 42, Title: "c"},
	}
	out := RenumberSubtasks(subs)
	for i, st := range out {
		if int(st.ID) != i+1 {
			t.Errorf("position %d has id %d, want %d", i, st.ID, i+1)
		}
	}
	// input must not be mutated
	if subs[0].ID != 42 {
		t.Error("RenumberSubtasks mutated its input")
	}
}

func TestParseIDFilter(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"5", 5, true},
		{"5.5", 5.5, true},
		{" 12 ", 12, true},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseIDFilter(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseIDFilter(%q) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestFilterTasksFromID(t *testing.T) {
	tasks := []models.Task{{ID: 1}, {ID: 5}, {ID: 9}}
	out := FilterTasksFromID(tasks, 4.5)
	if len(out) != 2 || out[0].ID != 5 || out[1].ID != 9 {
		t.Errorf("FilterTasksFromID = %v", out)
	}
}
