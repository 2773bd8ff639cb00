package policy

import (
	"gorm.io/gorm"

	"nojom_backend/internals/models"
)

// Enroll attaches studentID to classID inside tx. The class row is locked so
// the capacity and duplicate checks cannot race with a concurrent enrollment.
func Enroll(tx *gorm.DB, classID, studentID uint) (*models.ClassModel, error) {
	class, err := LockClass(tx, classID)
	if err != nil {
		return nil, err
	}

	var dup int64
	if err := tx.Model(&models.ClassStudent{}).
		Where("class_id = ? AND student_id = ?", classID, studentID).
		Count(&dup).Error; err != nil {
		return nil, err
	}
	enrolled, err := CountEnrolled(tx, classID)
	if err != nil {
		return nil, err
	}
	if err := EnsureEnrollable(dup > 0, enrolled, class.MaxStudents); err != nil {
		return nil, err
	}

	if err := tx.Create(&models.ClassStudent{ClassID: classID, StudentID: studentID}).Error; err != nil {
		return nil, err
	}
	return class, nil
}

// Unenroll removes the join row; a missing enrollment is not an error.
func Unenroll(tx *gorm.DB, classID, studentID uint) (bool, error) {
	res := tx.Where("class_id = ? AND student_id = ?", classID, studentID).
		Delete(&models.ClassStudent{})
	return res.RowsAffected > 0, res.Error
}

func CountEnrolled(db *gorm.DB, classID uint) (int64, error) {
	var n int64
	err := db.Model(&models.ClassStudent{}).Where("class_id = ?", classID).Count(&n).Error
	return n, err
}
