package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// TaskStatus represents the possible statuses of a task or subtask.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusDone       TaskStatus = "done"
	StatusCompleted  TaskStatus = "completed"
	StatusDeferred   TaskStatus = "deferred"
	StatusCancelled  TaskStatus = "cancelled"
	StatusBlocked    TaskStatus = "blocked"
)

// IsTerminal reports whether the status marks finished work.
// "done" and "completed" are equivalent terminal states.
func (s TaskStatus) IsTerminal() bool {
	return s == StatusDone || s == StatusCompleted
}

// TaskPriority represents the priority levels of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// ID is a numeric task identifier. Generators are untrusted and sometimes
// encode IDs as JSON strings or floats; ID tolerates both on unmarshal and
// always marshals back to a plain integer.
type ID int

// UnmarshalJSON accepts 7, 7.0 and "7".
func (id *ID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		*id = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", s, err)
	}
	*id = ID(int(math.Trunc(f)))
	return nil
}

// Subtask is a unit of work scoped to a parent task. Its ID is positional
// (1-based index within the parent's subtask list), never globally unique.
// It is addressed elsewhere as "parentID.subtaskID".
type Subtask struct {
	ID          ID         `json:"id" yaml:"id" validate:"min=0"`
	Title       string     `json:"title" yaml:"title" validate:"required"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Details     string     `json:"details,omitempty" yaml:"details,omitempty"`
	Status      TaskStatus `json:"status,omitempty" yaml:"status,omitempty" validate:"omitempty,oneof=pending in-progress done completed deferred cancelled blocked"`
}

// Task represents a unit of work in the document.
type Task struct {
	ID           ID           `json:"id" yaml:"id" validate:"required,min=1"`
	Title        string       `json:"title" yaml:"title" validate:"required"`
	Description  string       `json:"description,omitempty" yaml:"description,omitempty"`
	Details      string       `json:"details,omitempty" yaml:"details,omitempty"`
	TestStrategy string       `json:"testStrategy,omitempty" yaml:"testStrategy,omitempty"`
	Status       TaskStatus   `json:"status" yaml:"status" validate:"required,oneof=pending in-progress done completed deferred cancelled blocked"`
	Dependencies []ID         `json:"dependencies" yaml:"dependencies"`
	Priority     TaskPriority `json:"priority,omitempty" yaml:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Subtasks     []Subtask    `json:"subtasks" yaml:"subtasks"`
}

// Clone returns a deep copy of the task. Engine operations work on copies
// so that tasks not named in an update batch stay bit-for-bit unchanged.
func (t Task) Clone() Task {
	c := t
	if t.Dependencies != nil {
		c.Dependencies = make([]ID, len(t.Dependencies))
		copy(c.Dependencies, t.Dependencies)
	}
	if t.Subtasks != nil {
		c.Subtasks = make([]Subtask, len(t.Subtasks))
		copy(c.Subtasks, t.Subtasks)
	}
	return c
}

// DocumentMetadata carries bookkeeping about the last generation pass.
// It is informational only; engine correctness never depends on it.
type DocumentMetadata struct {
	GeneratedAt  string `json:"generatedAt,omitempty" yaml:"generatedAt,omitempty"`
	GenerationID string `json:"generationId,omitempty" yaml:"generationId,omitempty"`
	Source       string `json:"source,omitempty" yaml:"source,omitempty"`
	TaskCount    int    `json:"taskCount,omitempty" yaml:"taskCount,omitempty"`
}

// Document is the full persisted collection of tasks, the single source
// of truth. Derived per-task artifacts are regenerated from it, never
// hand-edited.
type Document struct {
	Tasks    []Task            `json:"tasks" yaml:"tasks" validate:"dive"`
	Metadata *DocumentMetadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	c := Document{Tasks: make([]Task, len(d.Tasks))}
	for i, t := range d.Tasks {
		c.Tasks[i] = t.Clone()
	}
	if d.Metadata != nil {
		m := *d.Metadata
		c.Metadata = &m
	}
	return c
}

// Task returns a pointer to the task with the given id, or nil.
func (d *Document) Task(id ID) *Task {
	for i := range d.Tasks {
		if d.Tasks[i].ID == id {
			return &d.Tasks[i]
		}
	}
	return nil
}

// SubtasksEqual reports deep equality of two subtasks, id included.
func SubtasksEqual(a, b Subtask) bool {
	return a == b
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct with validation tags.
func ValidateStruct(s interface{}) error {
	if validate == nil {
		validate = validator.New()
	}
	err := validate.Struct(s)
	if err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return nil
}

// MarshalIndented renders the document the way it is persisted on disk.
func (d Document) MarshalIndented() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
