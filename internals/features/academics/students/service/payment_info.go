package service

import (
	"gorm.io/gorm"

	"nojom_backend/internals/domain/aggregate"
	"nojom_backend/internals/models"
)

// PaymentInfo computes payment status for each student in ids for the month
// key. A subject counts as paid when a completed payment of that month names
// it directly or belongs to a class teaching it.
func PaymentInfo(db *gorm.DB, ids []uint, key aggregate.MonthKey) (map[uint]aggregate.StudentPaymentInfo, error) {
	out := make(map[uint]aggregate.StudentPaymentInfo, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var links []models.StudentSubject
	if err := db.Where("student_id IN ?", ids).Find(&links).Error; err != nil {
		return nil, err
	}
	subjects := map[uint][]uint{}
	for _, l := range links {
		subjects[l.StudentID] = append(subjects[l.StudentID], l.SubjectID)
	}

	var payments []models.Payment
	if err := db.Select("id", "student_id", "class_id", "subject_id", "status", "payment_month", "payment_year").
		Where("student_id IN ? AND status = ? AND payment_month = ? AND payment_year = ?",
			ids, models.PaymentStatusCompleted, key.Month, key.Year).
		Find(&payments).Error; err != nil {
		return nil, err
	}

	classIDs := make([]uint, 0, len(payments))
	byStudent := map[uint][]aggregate.PaymentRow{}
	for _, p := range payments {
		classIDs = append(classIDs, p.ClassID)
		byStudent[p.StudentID] = append(byStudent[p.StudentID], aggregate.PaymentRow{
			ID:           p.ID,
			StudentID:    p.StudentID,
			ClassID:      p.ClassID,
			SubjectID:    p.SubjectID,
			Status:       string(p.Status),
			PaymentMonth: p.PaymentMonth,
			PaymentYear:  p.PaymentYear,
		})
	}

	classSubject := map[uint]uint{}
	if len(classIDs) > 0 {
		var classes []models.ClassModel
		if err := db.Select("id", "subject_id").Where("id IN ?", classIDs).Find(&classes).Error; err != nil {
			return nil, err
		}
		for _, c := range classes {
			classSubject[c.ID] = c.SubjectID
		}
	}

	for _, id := range ids {
		covered := aggregate.CoveredSubjects(byStudent[id], classSubject, key)
		out[id] = aggregate.StudentPaymentInfoOf(subjects[id], covered)
	}
	return out, nil
}
