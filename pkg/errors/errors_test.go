package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasType_MatchesWrappedErrors(t *testing.T) {
	base := NewNotFoundError("rate record with id 7 not found")
	wrapped := fmt.Errorf("loading row: %w", base)

	assert.True(t, HasType(wrapped, ErrorTypeNotFound))
	assert.False(t, HasType(wrapped, ErrorTypeValidation))
	assert.False(t, HasType(stderrors.New("plain"), ErrorTypeNotFound))
}

func TestAppError_UnwrapExposesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NewExternalError("billing lookup failed", cause)

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "EXTERNAL")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestValidationError_HasNoCause(t *testing.T) {
	err := NewValidationError("email is required")

	assert.Nil(t, err.Unwrap())
	assert.Equal(t, "VALIDATION: email is required", err.Error())
}
