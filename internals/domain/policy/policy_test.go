package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nojom_backend/internals/helpers/apperr"
)

func TestEnsureEnrollable(t *testing.T) {
	tests := []struct {
		name     string
		already  bool
		enrolled int64
		max      int
		wantCode string
	}{
		{name: "room left", enrolled: 1, max: 2},
		{name: "full", enrolled: 2, max: 2, wantCode: apperr.CodeClassFull},
		{name: "over capacity", enrolled: 5, max: 2, wantCode: apperr.CodeClassFull},
		{name: "duplicate wins over full", already: true, enrolled: 2, max: 2, wantCode: apperr.CodeAlreadyEnrolled},
		{name: "duplicate", already: true, enrolled: 0, max: 2, wantCode: apperr.CodeAlreadyEnrolled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := EnsureEnrollable(tt.already, tt.enrolled, tt.max)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			ae, ok := apperr.As(err)
			require.True(t, ok)
			assert.Equal(t, 422, ae.Status)
			assert.Equal(t, tt.wantCode, ae.Code)
		})
	}
}

func TestDeleteGuards(t *testing.T) {
	assert.NoError(t, EnsureClassDeletable(0))
	assert.True(t, apperr.HasCode(EnsureClassDeletable(1), apperr.CodeClassHasStudents))

	assert.NoError(t, EnsureSubjectDeletable(0))
	assert.True(t, apperr.HasCode(EnsureSubjectDeletable(3), apperr.CodeSubjectInUse))

	assert.NoError(t, EnsureTeacherDeletable(0))
	assert.True(t, apperr.HasCode(EnsureTeacherDeletable(2), apperr.CodeTeacherHasClasses))
}

func TestEnsureCapacityFits(t *testing.T) {
	assert.NoError(t, EnsureCapacityFits(5, 5))
	err := EnsureCapacityFits(2, 3)
	require.True(t, apperr.HasCode(err, apperr.CodeValidation))
	ae, _ := apperr.As(err)
	assert.Contains(t, ae.Details.(map[string][]string), "max_students")
}
