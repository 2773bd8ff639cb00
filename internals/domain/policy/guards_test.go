package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"nojom_backend/internals/helpers/apperr"
	"nojom_backend/internals/models"
	"nojom_backend/internals/testutil"
)

func inTx(t *testing.T, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	t.Helper()
	return db.Transaction(fn)
}

func TestGuardClassDeleteSeesEnrollmentInSameTx(t *testing.T) {
	db := testutil.NewDB(t)
	class := testutil.Class(t, db)
	student := testutil.Student(t, db)

	require.NoError(t, inTx(t, db, func(tx *gorm.DB) error { return GuardClassDelete(tx, class.ID) }))

	// an enrollment committed after an earlier check still blocks the delete
	testutil.Enroll(t, db, class.ID, student.ID)
	err := inTx(t, db, func(tx *gorm.DB) error {
		if err := GuardClassDelete(tx, class.ID); err != nil {
			return err
		}
		return tx.Delete(&models.ClassModel{}, class.ID).Error
	})
	assert.True(t, apperr.HasCode(err, apperr.CodeClassHasStudents))

	var n int64
	require.NoError(t, db.Model(&models.ClassModel{}).Where("id = ?", class.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)
	enrolled, err := CountEnrolled(db, class.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), enrolled)

	err = inTx(t, db, func(tx *gorm.DB) error { return GuardClassDelete(tx, 9999) })
	assert.True(t, apperr.HasCode(err, "CLASS_NOT_FOUND"))
}

func TestGuardCapacity(t *testing.T) {
	db := testutil.NewDB(t)
	class := testutil.Class(t, db, func(c *models.ClassModel) { c.MaxStudents = 4 })
	testutil.Enroll(t, db, class.ID, testutil.Student(t, db).ID, testutil.Student(t, db).ID)

	tests := []struct {
		name    string
		newMax  int
		wantErr bool
	}{
		{"below enrollment", 1, true},
		{"equal to enrollment", 2, false},
		{"above enrollment", 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := inTx(t, db, func(tx *gorm.DB) error { return GuardCapacity(tx, class.ID, tt.newMax) })
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			ae, ok := apperr.As(err)
			require.True(t, ok)
			assert.Equal(t, apperr.CodeValidation, ae.Code)
			assert.Contains(t, ae.Details, "max_students")
		})
	}
}

func TestGuardSubjectAndTeacherDelete(t *testing.T) {
	db := testutil.NewDB(t)
	class := testutil.Class(t, db)
	freeSubject := testutil.Subject(t, db)
	freeTeacher := testutil.Teacher(t, db)

	err := inTx(t, db, func(tx *gorm.DB) error { return GuardSubjectDelete(tx, class.SubjectID) })
	assert.True(t, apperr.HasCode(err, apperr.CodeSubjectInUse))
	err = inTx(t, db, func(tx *gorm.DB) error { return GuardTeacherDelete(tx, class.TeacherID) })
	assert.True(t, apperr.HasCode(err, apperr.CodeTeacherHasClasses))

	assert.NoError(t, inTx(t, db, func(tx *gorm.DB) error { return GuardSubjectDelete(tx, freeSubject.ID) }))
	assert.NoError(t, inTx(t, db, func(tx *gorm.DB) error { return GuardTeacherDelete(tx, freeTeacher.ID) }))

	err = inTx(t, db, func(tx *gorm.DB) error { return GuardTeacherDelete(tx, 9999) })
	assert.True(t, apperr.HasCode(err, "TEACHER_NOT_FOUND"))
}

func TestShareClassRefs(t *testing.T) {
	db := testutil.NewDB(t)
	subject := testutil.Subject(t, db)
	teacher := testutil.Teacher(t, db)

	assert.NoError(t, inTx(t, db, func(tx *gorm.DB) error { return ShareClassRefs(tx, subject.ID, teacher.ID) }))
	assert.NoError(t, inTx(t, db, func(tx *gorm.DB) error { return ShareClassRefs(tx, 0, 0) }))

	tests := []struct {
		name      string
		subjectID uint
		teacherID uint
		field     string
	}{
		{"missing subject", 9999, teacher.ID, "subject_id"},
		{"missing teacher", subject.ID, 9999, "teacher_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := inTx(t, db, func(tx *gorm.DB) error { return ShareClassRefs(tx, tt.subjectID, tt.teacherID) })
			ae, ok := apperr.As(err)
			require.True(t, ok)
			assert.Equal(t, apperr.CodeValidation, ae.Code)
			assert.Contains(t, ae.Details, tt.field)
		})
	}
}
