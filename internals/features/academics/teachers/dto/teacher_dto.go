package dto

import (
	"strings"
	"time"

	helper "nojom_backend/internals/helpers"
	"nojom_backend/internals/models"
)

type CreateTeacherRequest struct {
	FirstName         string   `json:"first_name" validate:"required,max=255"`
	LastName          string   `json:"last_name" validate:"required,max=255"`
	Email             string   `json:"email" validate:"required,email,max=255"`
	Phone             string   `json:"phone" validate:"required,max=20"`
	Address           *string  `json:"address"`
	Qualification     string   `json:"qualification" validate:"required,max=255"`
	ExperienceYears   *int     `json:"experience_years" validate:"required,min=0"`
	HourlyRate        *float64 `json:"hourly_rate" validate:"required,min=0"`
	MonthlyPercentage *float64 `json:"monthly_percentage" validate:"omitempty,min=0,max=100"`
	JoinedDate        *string  `json:"joined_date" validate:"omitempty,datetime=2006-01-02"`
	Notes             *string  `json:"notes"`
	Status            string   `json:"status" validate:"required,oneof=active inactive"`
	SubjectIDs        []uint   `json:"subject_ids" validate:"required,min=1,dive,gt=0"`
}

func (r *CreateTeacherRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.Qualification = strings.TrimSpace(r.Qualification)
	r.Address = helper.TrimmedOrNil(r.Address)
	r.Notes = helper.TrimmedOrNil(r.Notes)
}

func (r CreateTeacherRequest) ToModel(joined *time.Time) models.Teacher {
	t := models.Teacher{
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Email:           r.Email,
		Phone:           r.Phone,
		Address:         r.Address,
		Qualification:   r.Qualification,
		ExperienceYears: *r.ExperienceYears,
		HourlyRate:      *r.HourlyRate,
		JoinedDate:      joined,
		Notes:           r.Notes,
		Status:          models.TeacherStatus(r.Status),
	}
	if r.MonthlyPercentage != nil {
		t.MonthlyPercentage = *r.MonthlyPercentage
	}
	return t
}

type UpdateTeacherRequest struct {
	FirstName         *string                   `json:"first_name" validate:"omitempty,min=1,max=255"`
	LastName          *string                   `json:"last_name" validate:"omitempty,min=1,max=255"`
	Email             *string                   `json:"email" validate:"omitempty,email,max=255"`
	Phone             *string                   `json:"phone" validate:"omitempty,min=1,max=20"`
	Address           helper.PatchField[string] `json:"address"`
	Qualification     *string                   `json:"qualification" validate:"omitempty,min=1,max=255"`
	ExperienceYears   *int                      `json:"experience_years" validate:"omitempty,min=0"`
	HourlyRate        *float64                  `json:"hourly_rate" validate:"omitempty,min=0"`
	MonthlyPercentage *float64                  `json:"monthly_percentage" validate:"omitempty,min=0,max=100"`
	JoinedDate        helper.PatchField[string] `json:"joined_date"`
	Notes             helper.PatchField[string] `json:"notes"`
	Status            *string                   `json:"status" validate:"omitempty,oneof=active inactive"`
	SubjectIDs        *[]uint                   `json:"subject_ids" validate:"omitempty,dive,gt=0"`
}

func (r *UpdateTeacherRequest) Normalize() {
	helper.TrimPtr(r.FirstName)
	helper.TrimPtr(r.LastName)
	helper.TrimPtr(r.Phone)
	helper.TrimPtr(r.Qualification)
	if r.Email != nil {
		*r.Email = strings.ToLower(strings.TrimSpace(*r.Email))
	}
}

// Apply copies present fields onto m and returns the changed columns.
// joined is only consulted when JoinedDate is present.
func (r UpdateTeacherRequest) Apply(m *models.Teacher, joined *time.Time) map[string]any {
	changes := map[string]any{}
	setStr := func(col string, src *string, dst *string, lower bool) {
		if src == nil {
			return
		}
		v := strings.TrimSpace(*src)
		if lower {
			v = strings.ToLower(v)
		}
		*dst = v
		changes[col] = v
	}
	setStr("first_name", r.FirstName, &m.FirstName, false)
	setStr("last_name", r.LastName, &m.LastName, false)
	setStr("email", r.Email, &m.Email, true)
	setStr("phone", r.Phone, &m.Phone, false)
	setStr("qualification", r.Qualification, &m.Qualification, false)

	if v, ok := r.Address.Get(); ok {
		m.Address = helper.TrimmedOrNil(v)
		changes["address"] = m.Address
	}
	if v, ok := r.Notes.Get(); ok {
		m.Notes = helper.TrimmedOrNil(v)
		changes["notes"] = m.Notes
	}
	if _, ok := r.JoinedDate.Get(); ok {
		m.JoinedDate = joined
		changes["joined_date"] = joined
	}
	if r.ExperienceYears != nil {
		m.ExperienceYears = *r.ExperienceYears
		changes["experience_years"] = m.ExperienceYears
	}
	if r.HourlyRate != nil {
		m.HourlyRate = *r.HourlyRate
		changes["hourly_rate"] = m.HourlyRate
	}
	if r.MonthlyPercentage != nil {
		m.MonthlyPercentage = *r.MonthlyPercentage
		changes["monthly_percentage"] = m.MonthlyPercentage
	}
	if r.Status != nil {
		m.Status = models.TeacherStatus(*r.Status)
		changes["status"] = m.Status
	}
	return changes
}

type ListTeacherQuery struct {
	Search    string `query:"search"`
	Status    string `query:"status" validate:"omitempty,oneof=active inactive"`
	SubjectID uint   `query:"subject_id"`
}

var SortColumns = map[string]string{
	"first_name":       "first_name",
	"last_name":        "last_name",
	"email":            "email",
	"experience_years": "experience_years",
	"hourly_rate":      "hourly_rate",
	"created_at":       "created_at",
}

type SuggestedPaymentQuery struct {
	Month int `query:"month" validate:"omitempty,min=1,max=12"`
	Year  int `query:"year" validate:"omitempty,min=2020,max=2030"`
}

type TeacherStatistics struct {
	TotalClasses  int64 `json:"total_classes"`
	ActiveClasses int64 `json:"active_classes"`
	TotalStudents int64 `json:"total_students"`
}

type SuggestedPayment struct {
	TeacherID         uint                   `json:"teacher_id"`
	Month             int                    `json:"month"`
	Year              int                    `json:"year"`
	CollectedAmount   float64                `json:"collected_amount"`
	MonthlyPercentage float64                `json:"monthly_percentage"`
	SuggestedAmount   float64                `json:"suggested_amount"`
	AlreadyPaid       bool                   `json:"already_paid"`
	ExistingPayment   *models.TeacherPayment `json:"existing_payment"`
}
