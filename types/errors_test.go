package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskErrorWrapping(t *testing.T) {
	cause := errors.New("disk full")
	err := PersistenceError("failed to save tasks", cause)

	assert.Equal(t, CodePersistence, err.Code)
	assert.Equal(t, "PERSISTENCE_ERROR: failed to save tasks", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestValidationAndNotFoundFormatting(t *testing.T) {
	v := ValidationError("count must be positive, got %d", -2)
	assert.Equal(t, CodeValidation, v.Code)
	assert.Contains(t, v.Message, "got -2")
	assert.Nil(t, v.Unwrap())

	nf := NotFoundError("task %d not found", 42)
	assert.Equal(t, CodeNotFound, nf.Code)
	assert.Contains(t, nf.Message, "task 42")
}

func TestEnvelopeOk(t *testing.T) {
	env := Ok(map[string]int{"count": 3}, "expanded 3 tasks")
	assert.True(t, env.Success)
	assert.Nil(t, env.Error)
	assert.Equal(t, "expanded 3 tasks", env.Message)
}

func TestEnvelopeFailKeepsStructuredErrors(t *testing.T) {
	env := Fail(GeneratorError("completion returned empty text", nil))
	require.NotNil(t, env.Error)
	assert.False(t, env.Success)
	assert.Equal(t, CodeGenerator, env.Error.Code)
}

func TestEnvelopeFailCoercesPlainErrors(t *testing.T) {
	env := Fail(errors.New("unexpected"))
	require.NotNil(t, env.Error)
	assert.False(t, env.Success)
	assert.Equal(t, CodeInternal, env.Error.Code)
	assert.Equal(t, "unexpected", env.Error.Message)
}

func TestEnvelopeFailUnwrapsNestedTaskErrors(t *testing.T) {
	wrapped := fmt.Errorf("while saving: %w", ValidationError("bad id"))
	env := Fail(wrapped)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeValidation, env.Error.Code)
}
