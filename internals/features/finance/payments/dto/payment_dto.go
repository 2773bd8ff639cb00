package dto

import (
	"strings"
	"time"

	helper "nojom_backend/internals/helpers"
	"nojom_backend/internals/models"
)

type CreatePaymentRequest struct {
	StudentID       uint     `json:"student_id" validate:"required,gt=0"`
	ClassID         uint     `json:"class_id" validate:"required,gt=0"`
	SubjectID       *uint    `json:"subject_id" validate:"omitempty,gt=0"`
	Amount          *float64 `json:"amount" validate:"required,min=0"`
	PaymentMethod   string   `json:"payment_method" validate:"required,payment_method"`
	PaymentMonth    int      `json:"payment_month" validate:"required,min=1,max=12"`
	PaymentYear     int      `json:"payment_year" validate:"required,min=2020,max=2030"`
	PaymentDate     string   `json:"payment_date" validate:"required,datetime=2006-01-02"`
	Status          string   `json:"status" validate:"required,oneof=completed pending failed"`
	ReferenceNumber *string  `json:"reference_number" validate:"omitempty,max=100"`
	Notes           *string  `json:"notes"`
}

func (r CreatePaymentRequest) ToModel(paid time.Time) models.Payment {
	return models.Payment{
		StudentID:       r.StudentID,
		ClassID:         r.ClassID,
		SubjectID:       r.SubjectID,
		Amount:          *r.Amount,
		PaymentMethod:   models.PaymentMethod(r.PaymentMethod),
		PaymentMonth:    r.PaymentMonth,
		PaymentYear:     r.PaymentYear,
		PaymentDate:     paid,
		Status:          models.PaymentStatus(r.Status),
		ReferenceNumber: helper.TrimmedOrNil(r.ReferenceNumber),
		Notes:           helper.TrimmedOrNil(r.Notes),
	}
}

type UpdatePaymentRequest struct {
	StudentID       *uint                     `json:"student_id" validate:"omitempty,gt=0"`
	ClassID         *uint                     `json:"class_id" validate:"omitempty,gt=0"`
	SubjectID       helper.PatchField[uint]   `json:"subject_id"`
	Amount          *float64                  `json:"amount" validate:"omitempty,min=0"`
	PaymentMethod   *string                   `json:"payment_method" validate:"omitempty,payment_method"`
	PaymentMonth    *int                      `json:"payment_month" validate:"omitempty,min=1,max=12"`
	PaymentYear     *int                      `json:"payment_year" validate:"omitempty,min=2020,max=2030"`
	PaymentDate     *string                   `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
	Status          *string                   `json:"status" validate:"omitempty,oneof=completed pending failed"`
	ReferenceNumber helper.PatchField[string] `json:"reference_number"`
	Notes           helper.PatchField[string] `json:"notes"`
}

func (r UpdatePaymentRequest) Apply(m *models.Payment, paid *time.Time) map[string]any {
	changes := map[string]any{}
	if r.StudentID != nil {
		m.StudentID = *r.StudentID
		changes["student_id"] = m.StudentID
	}
	if r.ClassID != nil {
		m.ClassID = *r.ClassID
		changes["class_id"] = m.ClassID
	}
	if v, ok := r.SubjectID.Get(); ok {
		m.SubjectID = v
		changes["subject_id"] = v
	}
	if r.Amount != nil {
		m.Amount = *r.Amount
		changes["amount"] = m.Amount
	}
	if r.PaymentMethod != nil {
		m.PaymentMethod = models.PaymentMethod(*r.PaymentMethod)
		changes["payment_method"] = m.PaymentMethod
	}
	if r.PaymentMonth != nil {
		m.PaymentMonth = *r.PaymentMonth
		changes["payment_month"] = m.PaymentMonth
	}
	if r.PaymentYear != nil {
		m.PaymentYear = *r.PaymentYear
		changes["payment_year"] = m.PaymentYear
	}
	if paid != nil {
		m.PaymentDate = *paid
		changes["payment_date"] = m.PaymentDate
	}
	if r.Status != nil {
		m.Status = models.PaymentStatus(*r.Status)
		changes["status"] = m.Status
	}
	if v, ok := r.ReferenceNumber.Get(); ok {
		m.ReferenceNumber = helper.TrimmedOrNil(v)
		changes["reference_number"] = m.ReferenceNumber
	}
	if v, ok := r.Notes.Get(); ok {
		m.Notes = helper.TrimmedOrNil(v)
		changes["notes"] = m.Notes
	}
	return changes
}

type ListPaymentQuery struct {
	StudentID     uint   `query:"student_id"`
	ClassID       uint   `query:"class_id"`
	SubjectID     uint   `query:"subject_id"`
	PaymentMethod string `query:"payment_method" validate:"omitempty,payment_method"`
	Status        string `query:"status" validate:"omitempty,oneof=completed pending failed"`
	Month         int    `query:"month" validate:"omitempty,min=1,max=12"`
	Year          int    `query:"year" validate:"omitempty,min=2020,max=2030"`
	StartDate     string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate       string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Search        string `query:"search"`
}

// Trimmed returns the search term without surrounding blanks.
func (q ListPaymentQuery) Trimmed() string { return strings.TrimSpace(q.Search) }

type StatisticsQuery struct {
	StartDate string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

var SortColumns = map[string]string{
	"payment_date": "payment_date",
	"amount":       "amount",
	"created_at":   "created_at",
	"status":       "status",
}
