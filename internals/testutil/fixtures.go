package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"nojom_backend/internals/models"
)

var seq atomic.Int64

func next() int64 { return seq.Add(1) }

func mustCreate(t testing.TB, db *gorm.DB, v any) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
}

func Subject(t testing.TB, db *gorm.DB, mutate ...func(*models.Subject)) models.Subject {
	t.Helper()
	n := next()
	s := models.Subject{
		NameEn:       fmt.Sprintf("Subject %d", n),
		NameAr:       fmt.Sprintf("مادة %d", n),
		Code:         fmt.Sprintf("SUB%d", n),
		GradeLevel:   "10",
		HoursPerWeek: 4,
		PricePerHour: 10,
		FeeAmount:    100,
		Status:       models.SubjectStatusActive,
	}
	for _, m := range mutate {
		m(&s)
	}
	mustCreate(t, db, &s)
	return s
}

func Teacher(t testing.TB, db *gorm.DB, mutate ...func(*models.Teacher)) models.Teacher {
	t.Helper()
	n := next()
	tc := models.Teacher{
		FirstName:         "Teacher",
		LastName:          fmt.Sprintf("No%d", n),
		Email:             fmt.Sprintf("teacher%d@example.com", n),
		Phone:             fmt.Sprintf("+97150%07d", n),
		Qualification:     "BSc",
		ExperienceYears:   3,
		HourlyRate:        50,
		MonthlyPercentage: 20,
		Status:            models.TeacherStatusActive,
	}
	for _, m := range mutate {
		m(&tc)
	}
	mustCreate(t, db, &tc)
	return tc
}

func Student(t testing.TB, db *gorm.DB, mutate ...func(*models.Student)) models.Student {
	t.Helper()
	n := next()
	s := models.Student{
		FirstName:  "Student",
		LastName:   fmt.Sprintf("No%d", n),
		Phone:      fmt.Sprintf("+96655%07d", n),
		Grade:      "10",
		JoinedDate: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Status:     models.StudentStatusActive,
	}
	for _, m := range mutate {
		m(&s)
	}
	mustCreate(t, db, &s)
	return s
}

// Class creates a class with a fresh subject and teacher unless mutate sets them.
func Class(t testing.TB, db *gorm.DB, mutate ...func(*models.ClassModel)) models.ClassModel {
	t.Helper()
	n := next()
	c := models.ClassModel{
		Name:         fmt.Sprintf("Class %d", n),
		GradeLevel:   "10",
		ScheduleDays: models.EncodeDays([]string{"monday", "wednesday"}),
		StartTime:    "16:00",
		EndTime:      "17:30",
		MaxStudents:  10,
		MonthlyFee:   200,
		Status:       models.ClassStatusActive,
	}
	for _, m := range mutate {
		m(&c)
	}
	if c.SubjectID == 0 {
		c.SubjectID = Subject(t, db).ID
	}
	if c.TeacherID == 0 {
		c.TeacherID = Teacher(t, db).ID
	}
	mustCreate(t, db, &c)
	return c
}

func Enroll(t testing.TB, db *gorm.DB, classID uint, studentIDs ...uint) {
	t.Helper()
	for _, sid := range studentIDs {
		mustCreate(t, db, &models.ClassStudent{ClassID: classID, StudentID: sid})
	}
}

func AttachSubjects(t testing.TB, db *gorm.DB, studentID uint, subjectIDs ...uint) {
	t.Helper()
	for _, sid := range subjectIDs {
		mustCreate(t, db, &models.StudentSubject{StudentID: studentID, SubjectID: sid})
	}
}

func Payment(t testing.TB, db *gorm.DB, studentID, classID uint, mutate ...func(*models.Payment)) models.Payment {
	t.Helper()
	n := next()
	ref := fmt.Sprintf("PAY-TEST-%d", n)
	p := models.Payment{
		StudentID:       studentID,
		ClassID:         classID,
		Amount:          100,
		PaymentMethod:   models.PaymentMethodCash,
		PaymentMonth:    1,
		PaymentYear:     2024,
		PaymentDate:     time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		Status:          models.PaymentStatusCompleted,
		ReferenceNumber: &ref,
	}
	for _, m := range mutate {
		m(&p)
	}
	mustCreate(t, db, &p)
	return p
}
