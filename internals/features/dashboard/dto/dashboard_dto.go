package dto

import (
	"time"

	"nojom_backend/internals/domain/aggregate"
	"nojom_backend/internals/models"
)

type RecentPayment struct {
	ID           uint      `json:"id"`
	StudentID    uint      `json:"student_id"`
	StudentName  string    `json:"student_name"`
	Amount       float64   `json:"amount"`
	PaymentMonth int       `json:"payment_month"`
	PaymentYear  int       `json:"payment_year"`
	PaymentDate  time.Time `json:"payment_date"`
	SubjectName  string    `json:"subject_name"`
}

// NewRecentPayment falls back to the class subject when the payment names none.
func NewRecentPayment(p models.Payment) RecentPayment {
	out := RecentPayment{
		ID:           p.ID,
		StudentID:    p.StudentID,
		Amount:       p.Amount,
		PaymentMonth: p.PaymentMonth,
		PaymentYear:  p.PaymentYear,
		PaymentDate:  p.PaymentDate,
	}
	if p.Student != nil {
		out.StudentName = p.Student.FullName()
	}
	switch {
	case p.Subject != nil:
		out.SubjectName = p.Subject.NameEn
	case p.Class != nil && p.Class.Subject != nil:
		out.SubjectName = p.Class.Subject.NameEn
	}
	return out
}

type Statistics struct {
	TotalStudents       int64                     `json:"total_students"`
	TotalTeachers       int64                     `json:"total_teachers"`
	TotalClasses        int64                     `json:"total_classes"`
	TotalSubjects       int64                     `json:"total_subjects"`
	MonthlyRevenue      float64                   `json:"monthly_revenue"`
	CurrentMonthRevenue float64                   `json:"current_month_revenue"`
	Last6MonthsRevenue  []aggregate.MonthRevenue  `json:"last_6_months_revenue"`
	YearToDate          aggregate.YearToDateStats `json:"year_to_date"`
	RecentPayments      []RecentPayment           `json:"recent_payments"`
	CapacityUtilization []aggregate.CapacityEntry `json:"capacity_utilization"`
}
