package dto

import (
	"time"

	helper "nojom_backend/internals/helpers"
	"nojom_backend/internals/models"
)

type CreateTeacherPaymentRequest struct {
	TeacherID    uint     `json:"teacher_id" validate:"required,gt=0"`
	Amount       *float64 `json:"amount" validate:"required,min=0"`
	PaymentMonth int      `json:"payment_month" validate:"required,min=1,max=12"`
	PaymentYear  int      `json:"payment_year" validate:"required,min=2020,max=2030"`
	PaymentDate  string   `json:"payment_date" validate:"required,datetime=2006-01-02"`
	Notes        *string  `json:"notes"`
}

func (r CreateTeacherPaymentRequest) ToModel(paid time.Time) models.TeacherPayment {
	return models.TeacherPayment{
		TeacherID:    r.TeacherID,
		Amount:       *r.Amount,
		PaymentMonth: r.PaymentMonth,
		PaymentYear:  r.PaymentYear,
		PaymentDate:  paid,
		Notes:        helper.TrimmedOrNil(r.Notes),
	}
}

type UpdateTeacherPaymentRequest struct {
	Amount       *float64                  `json:"amount" validate:"omitempty,min=0"`
	PaymentMonth *int                      `json:"payment_month" validate:"omitempty,min=1,max=12"`
	PaymentYear  *int                      `json:"payment_year" validate:"omitempty,min=2020,max=2030"`
	PaymentDate  *string                   `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
	Notes        helper.PatchField[string] `json:"notes"`
}

func (r UpdateTeacherPaymentRequest) Apply(m *models.TeacherPayment, paid *time.Time) map[string]any {
	changes := map[string]any{}
	if r.Amount != nil {
		m.Amount = *r.Amount
		changes["amount"] = m.Amount
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
	if v, ok := r.Notes.Get(); ok {
		m.Notes = helper.TrimmedOrNil(v)
		changes["notes"] = m.Notes
	}
	return changes
}

type ListTeacherPaymentQuery struct {
	TeacherID uint `query:"teacher_id"`
	Month     int  `query:"month" validate:"omitempty,min=1,max=12"`
	Year      int  `query:"year" validate:"omitempty,min=2020,max=2030"`
}

var SortColumns = map[string]string{
	"payment_date": "payment_date",
	"amount":       "amount",
	"created_at":   "created_at",
}
