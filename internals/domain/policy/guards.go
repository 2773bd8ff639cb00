package policy

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nojom_backend/internals/helpers/apperr"
	"nojom_backend/internals/models"
)

// The guards below must run inside the transaction that performs the write.
// Each one locks the owning row first, so a concurrent enroll or class
// create waits until the check and the write have committed together.

func lockRow(tx *gorm.DB, dst any, id uint, entity, strength string) error {
	err := tx.Clauses(clause.Locking{Strength: strength}).First(dst, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(entity)
	}
	return err
}

// LockClass reads the class row FOR UPDATE.
func LockClass(tx *gorm.DB, classID uint) (*models.ClassModel, error) {
	var class models.ClassModel
	if err := lockRow(tx, &class, classID, "class", "UPDATE"); err != nil {
		return nil, err
	}
	return &class, nil
}

// GuardClassDelete refuses while students are enrolled.
func GuardClassDelete(tx *gorm.DB, classID uint) error {
	if _, err := LockClass(tx, classID); err != nil {
		return err
	}
	enrolled, err := CountEnrolled(tx, classID)
	if err != nil {
		return err
	}
	return EnsureClassDeletable(enrolled)
}

// GuardCapacity refuses a max_students below the current enrollment.
func GuardCapacity(tx *gorm.DB, classID uint, newMax int) error {
	if _, err := LockClass(tx, classID); err != nil {
		return err
	}
	enrolled, err := CountEnrolled(tx, classID)
	if err != nil {
		return err
	}
	return EnsureCapacityFits(newMax, enrolled)
}

func countClassesBy(tx *gorm.DB, column string, id uint) (int64, error) {
	var n int64
	err := tx.Model(&models.ClassModel{}).Where(column+" = ?", id).Count(&n).Error
	return n, err
}

// GuardSubjectDelete refuses while a class teaches the subject.
func GuardSubjectDelete(tx *gorm.DB, subjectID uint) error {
	if err := lockRow(tx, &models.Subject{}, subjectID, "subject", "UPDATE"); err != nil {
		return err
	}
	n, err := countClassesBy(tx, "subject_id", subjectID)
	if err != nil {
		return err
	}
	return EnsureSubjectDeletable(n)
}

// GuardTeacherDelete refuses while the teacher owns classes.
func GuardTeacherDelete(tx *gorm.DB, teacherID uint) error {
	if err := lockRow(tx, &models.Teacher{}, teacherID, "teacher", "UPDATE"); err != nil {
		return err
	}
	n, err := countClassesBy(tx, "teacher_id", teacherID)
	if err != nil {
		return err
	}
	return EnsureTeacherDeletable(n)
}

// ShareClassRefs holds FOR SHARE locks on the subject and teacher a class
// points at, blocking their delete guards until tx ends. Zero IDs are skipped.
func ShareClassRefs(tx *gorm.DB, subjectID, teacherID uint) error {
	if subjectID > 0 {
		if err := lockRow(tx, &models.Subject{}, subjectID, "subject", "SHARE"); err != nil {
			if apperr.HasCode(err, "SUBJECT_NOT_FOUND") {
				return apperr.Field("subject_id", "selected subject_id is invalid")
			}
			return err
		}
	}
	if teacherID > 0 {
		if err := lockRow(tx, &models.Teacher{}, teacherID, "teacher", "SHARE"); err != nil {
			if apperr.HasCode(err, "TEACHER_NOT_FOUND") {
				return apperr.Field("teacher_id", "selected teacher_id is invalid")
			}
			return err
		}
	}
	return nil
}
