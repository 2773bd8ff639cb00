package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nojom_backend/internals/models"
	"nojom_backend/internals/testutil"
)

func TestNewReferenceNumber(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 50; i++ {
		assert.Regexp(t, `^PAY-1710496800-[1-9]\d{3}$`, NewReferenceNumber(now))
	}
}

func TestReferenceTaken(t *testing.T) {
	db := testutil.NewDB(t)
	p := testutil.Payment(t, db, testutil.Student(t, db).ID, testutil.Class(t, db).ID)

	taken, err := ReferenceTaken(db, *p.ReferenceNumber, 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = ReferenceTaken(db, *p.ReferenceNumber, p.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	ref, err := UniqueReference(db, time.Now())
	require.NoError(t, err)
	assert.NotEqual(t, *p.ReferenceNumber, ref)
}

func TestRowsCarryClassName(t *testing.T) {
	sub := uint(4)
	rows := Rows([]models.Payment{
		{ID: 1, ClassID: 2, SubjectID: &sub, Amount: 10, PaymentMethod: models.PaymentMethodCash,
			Status: models.PaymentStatusCompleted, Class: &models.ClassModel{Name: "Algebra A"}},
		{ID: 2, ClassID: 3},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, "Algebra A", rows[0].ClassName)
	assert.Equal(t, "cash", rows[0].Method)
	assert.Equal(t, &sub, rows[0].SubjectID)
	assert.Empty(t, rows[1].ClassName)
}
