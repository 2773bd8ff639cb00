// Package service loads the raw rows the aggregation layer works on.
package service

import (
	"gorm.io/gorm"

	"nojom_backend/internals/domain/aggregate"
	"nojom_backend/internals/models"
)

// PaymentsIn returns every payment whose payment_date falls inside r.
func PaymentsIn(db *gorm.DB, r aggregate.DateRange) ([]aggregate.PaymentRow, error) {
	var rows []aggregate.PaymentRow
	err := db.Table("payments p").
		Select(`p.id, p.student_id, p.class_id, COALESCE(c.name, '') AS class_name, p.subject_id,
			p.amount, p.payment_method AS method, p.status, p.payment_month, p.payment_year, p.payment_date`).
		Joins("LEFT JOIN classes c ON c.id = p.class_id").
		Where("p.payment_date >= ? AND p.payment_date < ?", r.Start, r.UpperExclusive()).
		Order("p.id ASC").
		Scan(&rows).Error
	return rows, err
}

func Students(db *gorm.DB) ([]aggregate.StudentRow, error) {
	var rows []aggregate.StudentRow
	err := db.Model(&models.Student{}).
		Select("id, grade, status, created_at").
		Order("id ASC").
		Scan(&rows).Error
	return rows, err
}

const enrolledSubquery = "(SELECT COUNT(*) FROM class_student cs WHERE cs.class_id = c.id)"

func Classes(db *gorm.DB) ([]aggregate.ClassRow, error) {
	var rows []aggregate.ClassRow
	err := db.Table("classes c").
		Select(`c.id, c.name, c.subject_id, COALESCE(s.name_en, '') AS subject_name, c.status,
			c.max_students, ` + enrolledSubquery + ` AS current_students, c.created_at`).
		Joins("LEFT JOIN subjects s ON s.id = c.subject_id").
		Order("c.id ASC").
		Scan(&rows).Error
	return rows, err
}

func CapacityRows(db *gorm.DB) ([]aggregate.ClassCapacityRow, error) {
	var rows []aggregate.ClassCapacityRow
	err := db.Table("classes c").
		Select("c.id, c.name, c.max_students, " + enrolledSubquery + " AS current_students").
		Order("c.id ASC").
		Scan(&rows).Error
	return rows, err
}

// Teachers returns every teacher with its subjects, plus one row per class
// for ranking by classes created in a window.
func Teachers(db *gorm.DB) ([]aggregate.TeacherRow, []aggregate.TeacherClassRow, error) {
	var teachers []models.Teacher
	if err := db.Preload("Subjects", func(tx *gorm.DB) *gorm.DB { return tx.Order("subjects.id ASC") }).
		Order("id ASC").
		Find(&teachers).Error; err != nil {
		return nil, nil, err
	}
	rows := make([]aggregate.TeacherRow, 0, len(teachers))
	for _, t := range teachers {
		refs := make([]aggregate.SubjectRef, 0, len(t.Subjects))
		for _, s := range t.Subjects {
			refs = append(refs, aggregate.SubjectRef{ID: s.ID, Name: s.NameEn})
		}
		rows = append(rows, aggregate.TeacherRow{
			ID:        t.ID,
			FirstName: t.FirstName,
			LastName:  t.LastName,
			Email:     t.Email,
			Status:    string(t.Status),
			CreatedAt: t.CreatedAt,
			Subjects:  refs,
		})
	}

	var classes []aggregate.TeacherClassRow
	if err := db.Model(&models.ClassModel{}).
		Select("teacher_id, created_at").
		Order("id ASC").
		Scan(&classes).Error; err != nil {
		return nil, nil, err
	}
	return rows, classes, nil
}

func AttendanceRows(db *gorm.DB) ([]aggregate.AttendanceRow, error) {
	var rows []aggregate.AttendanceRow
	err := db.Model(&models.Student{}).
		Select("id, first_name, last_name, grade, attendance_rate").
		Order("id ASC").
		Scan(&rows).Error
	return rows, err
}
