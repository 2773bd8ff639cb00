package apperr

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundCode(t *testing.T) {
	tests := []struct {
		entity string
		code   string
		msg    string
	}{
		{"student", "STUDENT_NOT_FOUND", "Student not found"},
		{"teacher payment", "TEACHER_PAYMENT_NOT_FOUND", "Teacher payment not found"},
	}
	for _, tt := range tests {
		e := NotFound(tt.entity)
		assert.Equal(t, http.StatusNotFound, e.Status)
		assert.Equal(t, tt.code, e.Code)
		assert.Equal(t, tt.msg, e.Message)
	}
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal(CodeDelete, "Failed to delete class", cause)

	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, cause, errors.Cause(err.Err))
	assert.Contains(t, fmt.Sprintf("%+v", err.Err), "TestInternalKeepsCause")
	assert.Nil(t, Internal(CodeServer, "x", nil).Err)
}

func TestOrInternal(t *testing.T) {
	assert.NoError(t, OrInternal(nil, CodeUpdate, "x"))

	rule := Rule(CodeClassFull, "full")
	assert.Same(t, rule, OrInternal(rule, CodeUpdate, "x"))

	wrapped := OrInternal(errors.Wrap(rule, "tx"), CodeUpdate, "x")
	assert.True(t, HasCode(wrapped, CodeClassFull))

	other := OrInternal(errors.New("boom"), CodeUpdate, "Failed to update")
	ae, ok := As(other)
	require.True(t, ok)
	assert.Equal(t, CodeUpdate, ae.Code)
	assert.Equal(t, http.StatusInternalServerError, ae.Status)
}
