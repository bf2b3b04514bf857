package models

import (
	"encoding/json"
	"testing"
)

func TestIDUnmarshalTolerance(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want ID
	}{
		{"integer", `7`, 7},
		{"float", `7.0`, 7},
		{"string", `"7"`, 7},
		{"string float", `"7.4"`, 7},
		{"null", `null`, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var id ID
			if err := json.Unmarshal([]byte(tc.in), &id); err != nil {
				t.Fatalf("unmarshal %q: %v", tc.in, err)
			}
			if id != tc.want {
				t.Errorf("got %d, want %d", id, tc.want)
			}
		})
	}

	var id ID
	if err := json.Unmarshal([]byte(`"seven"`), &id); err == nil {
		t.Error("expected error for non-numeric id")
	}
}

func TestIDMarshalsAsInteger(t *testing.T) {
	b, err := json.Marshal(Subtask{ID: 3, Title: "x"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(raw["id"]) != "3" {
		t.Errorf("id marshaled as %s, want 3", raw["id"])
	}
}

func TestStatusIsTerminal(t *testing.T) {
	if !StatusDone.IsTerminal() || !StatusCompleted.IsTerminal() {
		t.Error("done and completed must be terminal")
	}
	for _, s := range []TaskStatus{StatusPending, StatusInProgress, StatusDeferred, StatusCancelled, StatusBlocked} {
		if s.IsTerminal() {
			t.Errorf("%s must not be terminal", s)
		}
	}
}

func TestTaskCloneIsDeep(t *testing.T) {
	orig := Task{
		ID:           1,
		Title:        "a",
		Status:       StatusPending,
		Dependencies: []ID{2, 3},
		Subtasks:     []Subtask{{ID: 1, Title: "s1"}},
	}
	c := orig.Clone()
	c.Dependencies[0] = 99
	c.Subtasks[0].Title = "mutated"
	if orig.Dependencies[0] != 2 {
		t.Error("clone shares dependencies slice")
	}
	if orig.Subtasks[0].Title != "s1" {
		t.Error("clone shares subtasks slice")
	}
}

func TestValidateStruct(t *testing.T) {
	ok := Task{ID: 1, Title: "valid", Status: StatusPending, Priority: PriorityMedium}
	if err := ValidateStruct(ok); err != nil {
		t.Errorf("valid task rejected: %v", err)
	}

	bad := Task{ID: 0, Title: "", Status: "nope"}
	if err := ValidateStruct(bad); err == nil {
		t.Error("invalid task accepted")
	}
}
