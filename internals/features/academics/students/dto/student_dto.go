package dto

import (
	"strings"
	"time"

	"nojom_backend/internals/domain/aggregate"
	helper "nojom_backend/internals/helpers"
	"nojom_backend/internals/models"
)

/* =========================================================
   CREATE
   ========================================================= */

type CreateStudentRequest struct {
	FirstName      string   `json:"first_name" validate:"required,max=255"`
	LastName       string   `json:"last_name" validate:"required,max=255"`
	Phone          string   `json:"phone" validate:"required,max=50"`
	Grade          string   `json:"grade" validate:"required,grade"`
	JoinedDate     string   `json:"joined_date" validate:"required,datetime=2006-01-02"`
	Notes          *string  `json:"notes"`
	AttendanceRate *float64 `json:"attendance_rate" validate:"omitempty,min=0,max=100"`
	Status         string   `json:"status" validate:"omitempty,oneof=active inactive"`
	SubjectIDs     []uint   `json:"subject_ids" validate:"omitempty,dive,gt=0"`
}

func (r *CreateStudentRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Grade = strings.TrimSpace(r.Grade)
	r.Notes = helper.TrimmedOrNil(r.Notes)
}

func (r CreateStudentRequest) ToModel(joined time.Time) models.Student {
	s := models.Student{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Phone:      r.Phone,
		Grade:      r.Grade,
		JoinedDate: joined,
		Notes:      r.Notes,
		Status:     models.StudentStatusActive,
	}
	if r.AttendanceRate != nil {
		s.AttendanceRate = *r.AttendanceRate
	}
	if r.Status != "" {
		s.Status = models.StudentStatus(r.Status)
	}
	return s
}

/* =========================================================
   UPDATE (PUT and PATCH are both partial)
   ========================================================= */

type UpdateStudentRequest struct {
	FirstName      *string                   `json:"first_name" validate:"omitempty,min=1,max=255"`
	LastName       *string                   `json:"last_name" validate:"omitempty,min=1,max=255"`
	Phone          *string                   `json:"phone" validate:"omitempty,min=1,max=50"`
	Grade          *string                   `json:"grade" validate:"omitempty,grade"`
	JoinedDate     *string                   `json:"joined_date" validate:"omitempty,datetime=2006-01-02"`
	Notes          helper.PatchField[string] `json:"notes"`
	AttendanceRate *float64                  `json:"attendance_rate" validate:"omitempty,min=0,max=100"`
	Status         *string                   `json:"status" validate:"omitempty,oneof=active inactive"`
	SubjectIDs     *[]uint                   `json:"subject_ids" validate:"omitempty,dive,gt=0"`
}

func (r *UpdateStudentRequest) Normalize() {
	helper.TrimPtr(r.FirstName)
	helper.TrimPtr(r.LastName)
	helper.TrimPtr(r.Phone)
	helper.TrimPtr(r.Grade)
}

// Apply copies present fields onto m and returns the changed columns.
func (r UpdateStudentRequest) Apply(m *models.Student, joined *time.Time) map[string]any {
	changes := map[string]any{}
	if r.FirstName != nil {
		m.FirstName = strings.TrimSpace(*r.FirstName)
		changes["first_name"] = m.FirstName
	}
	if r.LastName != nil {
		m.LastName = strings.TrimSpace(*r.LastName)
		changes["last_name"] = m.LastName
	}
	if r.Phone != nil {
		m.Phone = strings.TrimSpace(*r.Phone)
		changes["phone"] = m.Phone
	}
	if r.Grade != nil {
		m.Grade = strings.TrimSpace(*r.Grade)
		changes["grade"] = m.Grade
	}
	if joined != nil {
		m.JoinedDate = *joined
		changes["joined_date"] = m.JoinedDate
	}
	if v, ok := r.Notes.Get(); ok {
		m.Notes = helper.TrimmedOrNil(v)
		changes["notes"] = m.Notes
	}
	if r.AttendanceRate != nil {
		m.AttendanceRate = *r.AttendanceRate
		changes["attendance_rate"] = m.AttendanceRate
	}
	if r.Status != nil {
		m.Status = models.StudentStatus(*r.Status)
		changes["status"] = m.Status
	}
	return changes
}

/* =========================================================
   LIST
   ========================================================= */

type ListStudentQuery struct {
	Search        string `query:"search"`
	Grade         string `query:"grade" validate:"omitempty,grade"`
	Status        string `query:"status" validate:"omitempty,oneof=active inactive"`
	PaymentStatus string `query:"payment_status" validate:"omitempty,oneof=paid partial unpaid no_subjects"`
}

var SortColumns = map[string]string{
	"first_name":      "first_name",
	"last_name":       "last_name",
	"grade":           "grade",
	"joined_date":     "joined_date",
	"attendance_rate": "attendance_rate",
	"created_at":      "created_at",
}

var PaymentStatuses = []string{
	aggregate.PaymentStatusPaid,
	aggregate.PaymentStatusPartial,
	aggregate.PaymentStatusUnpaid,
	aggregate.PaymentStatusNoSubjects,
}

/* =========================================================
   RESPONSES
   ========================================================= */

// StudentItem is a student row enriched with its payment status for the current month.
type StudentItem struct {
	models.Student
	aggregate.StudentPaymentInfo
}

type StudentDetail struct {
	models.Student
	aggregate.StudentPaymentInfo
	MonthlyPayments []models.Payment `json:"monthly_payments"`
}

/* =========================================================
   CLASS MEMBERSHIP / IMPORT
   ========================================================= */

type JoinClassRequest struct {
	ClassID uint `json:"class_id" validate:"required,gt=0"`
}

type ImportRowError struct {
	Row    int                 `json:"row"`
	Errors map[string][]string `json:"errors"`
}

type ImportResult struct {
	Imported int              `json:"imported"`
	Failed   int              `json:"failed"`
	Errors   []ImportRowError `json:"errors"`
}

// ImportColumns are the header names read from the first sheet.
var ImportColumns = []string{"first_name", "last_name", "phone", "grade", "joined_date", "notes", "attendance_rate", "status"}
