// Package parser converts raw generator completions into typed task data.
// Completions are untrusted free text: the parser extracts the outermost
// JSON object or array span, tolerates markdown code fences, and returns a
// tagged result so downstream code never operates on malformed data.
package parser

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/taskforge-ai/taskforge/models"
)

// ErrNoJSON is the sentinel failure returned when the text contains no
// well-formed JSON block. Callers treat it identically to an empty
// completion.
var ErrNoJSON = errors.New("completion contains no well-formed JSON object or array")

// Kind tags what a completion parsed into.
type Kind int

const (
	KindNone Kind = iota
	KindTask
	KindTaskList
	KindSubtaskList
)

// Result is the tagged outcome of parsing one completion.
type Result struct {
	Kind     Kind
	Task     models.Task
	Tasks    []models.Task
	Subtasks []models.Subtask
}

// ExtractJSON returns the outermost {...} or [...] span of raw, with any
// markdown fences stripped. Returns ErrNoJSON when no valid span exists.
func ExtractJSON(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	span, ok := outermostSpan(s, '{', '}')
	if arr, arrOK := outermostSpan(s, '[', ']'); arrOK {
		if !ok || strings.Index(s, "[") < strings.Index(s, "{") {
			span, ok = arr, true
		}
	}
	if !ok || !gjson.Valid(span) {
		return "", ErrNoJSON
	}
	return span, nil
}

func outermostSpan(s string, open, close byte) (string, bool) {
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, close)
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// envelopes generators commonly wrap their output in
type taskEnvelope struct {
	Tasks []models.Task `json:"tasks"`
}

type subtaskEnvelope struct {
	Subtasks []models.Subtask `json:"subtasks"`
}

// ParseTasks extracts a task batch from a completion. Accepted shapes:
// a bare array of tasks, an object with a "tasks" key, or a single task
// object.
func ParseTasks(raw string) ([]models.Task, error) {
	span, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	if strings.HasPrefix(span, "[") {
		var tasks []models.Task
		if err := json.Unmarshal([]byte(span), &tasks); err != nil {
			return nil, ErrNoJSON
		}
		return tasks, nil
	}

	var env taskEnvelope
	if err := json.Unmarshal([]byte(span), &env); err == nil && len(env.Tasks) > 0 {
		return env.Tasks, nil
	}

	var single models.Task
	if err := json.Unmarshal([]byte(span), &single); err != nil || single.Title == "" {
		return nil, ErrNoJSON
	}
	return []models.Task{single}, nil
}

// ParseSubtasks extracts a subtask list from a completion. Accepted
// shapes: a bare array or an object with a "subtasks" key.
func ParseSubtasks(raw string) ([]models.Subtask, error) {
	span, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	if strings.HasPrefix(span, "[") {
		var subs []models.Subtask
		if err := json.Unmarshal([]byte(span), &subs); err != nil {
			return nil, ErrNoJSON
		}
		return subs, nil
	}

	var env subtaskEnvelope
	if err := json.Unmarshal([]byte(span), &env); err != nil || env.Subtasks == nil {
		return nil, ErrNoJSON
	}
	return env.Subtasks, nil
}

// Parse classifies a completion into the most specific shape it matches.
// Subtask lists are distinguished from task lists by the absence of the
// "tasks" envelope and of task-only fields.
func Parse(raw string) (Result, error) {
	if tasks, err := ParseTasks(raw); err == nil {
		if len(tasks) == 1 {
			return Result{Kind: KindTask, Task: tasks[0], Tasks: tasks}, nil
		}
		return Result{Kind: KindTaskList, Tasks: tasks}, nil
	}
	if subs, err := ParseSubtasks(raw); err == nil {
		return Result{Kind: KindSubtaskList, Subtasks: subs}, nil
	}
	return Result{}, ErrNoJSON
}
