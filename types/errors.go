package types

import (
	"errors"
	"fmt"
)

// Error codes for the structured error taxonomy. Validation and not-found
// errors fail fast; generator and persistence errors are caught at the
// boundary of each task-level operation and converted to this shape.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeGenerator       = "GENERATOR_ERROR"
	CodePersistence     = "PERSISTENCE_ERROR"
	CodeInvalidDocument = "INVALID_DOCUMENT"
	// CodeInternal labels failures that reached the boundary without a
	// taxonomy code. It carries no origin claim.
	CodeInternal = "INTERNAL_ERROR"
)

// TaskError provides structured error information for CLI and MCP responses.
type TaskError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	err     error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *TaskError) Unwrap() error { return e.err }

// NewTaskError creates a new structured error.
func NewTaskError(code string, message string, details map[string]interface{}) *TaskError {
	return &TaskError{Code: code, Message: message, Details: details}
}

// WrapTaskError creates a structured error that wraps an underlying cause.
func WrapTaskError(code string, message string, err error) *TaskError {
	return &TaskError{Code: code, Message: message, err: err}
}

// ValidationError reports malformed caller input. Never retried.
func ValidationError(format string, args ...interface{}) *TaskError {
	return NewTaskError(CodeValidation, fmt.Sprintf(format, args...), nil)
}

// NotFoundError reports a referenced task or subtask missing from the
// document. Aborts the single-task operation but never a batch.
func NotFoundError(format string, args ...interface{}) *TaskError {
	return NewTaskError(CodeNotFound, fmt.Sprintf(format, args...), nil)
}

// GeneratorError reports a failed, empty or unparseable completion.
func GeneratorError(message string, err error) *TaskError {
	return WrapTaskError(CodeGenerator, message, err)
}

// PersistenceError reports a document read/write failure. Always fatal to
// the operation; no partial writes are attempted.
func PersistenceError(message string, err error) *TaskError {
	return WrapTaskError(CodePersistence, message, err)
}

// Envelope is the uniform result shape returned by every public operation.
// Callers never receive a raw unhandled failure from the core.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *TaskError  `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Ok wraps data in a success envelope.
func Ok(data interface{}, message string) Envelope {
	return Envelope{Success: true, Data: data, Message: message}
}

// Fail wraps an error in a failure envelope, coercing unstructured errors
// so the shape stays uniform. Wrapped TaskErrors keep their code; anything
// else is labeled internal rather than guessed at.
func Fail(err error) Envelope {
	var te *TaskError
	if errors.As(err, &te) {
		return Envelope{Success: false, Error: te}
	}
	return Envelope{Success: false, Error: WrapTaskError(CodeInternal, err.Error(), err)}
}
