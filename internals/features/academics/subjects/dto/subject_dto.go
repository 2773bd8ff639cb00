package dto

import (
	"strings"

	helper "nojom_backend/internals/helpers"
	"nojom_backend/internals/models"
)

type CreateSubjectRequest struct {
	NameEn        string   `json:"name_en" validate:"required,max=255"`
	NameAr        string   `json:"name_ar" validate:"required,max=255"`
	Code          string   `json:"code" validate:"required,max=50"`
	DescriptionEn *string  `json:"description_en"`
	DescriptionAr *string  `json:"description_ar"`
	GradeLevel    string   `json:"grade_level" validate:"required,grade"`
	HoursPerWeek  int      `json:"hours_per_week" validate:"required,min=1,max=20"`
	PricePerHour  *float64 `json:"price_per_hour" validate:"required,min=0"`
	FeeAmount     *float64 `json:"fee_amount" validate:"omitempty,min=0"`
	Status        string   `json:"status" validate:"required,oneof=active inactive"`
}

func (r *CreateSubjectRequest) Normalize() {
	r.NameEn = strings.TrimSpace(r.NameEn)
	r.NameAr = strings.TrimSpace(r.NameAr)
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	r.DescriptionEn = helper.TrimmedOrNil(r.DescriptionEn)
	r.DescriptionAr = helper.TrimmedOrNil(r.DescriptionAr)
}

func (r CreateSubjectRequest) ToModel() models.Subject {
	s := models.Subject{
		NameEn:        r.NameEn,
		NameAr:        r.NameAr,
		Code:          r.Code,
		DescriptionEn: r.DescriptionEn,
		DescriptionAr: r.DescriptionAr,
		GradeLevel:    r.GradeLevel,
		HoursPerWeek:  r.HoursPerWeek,
		PricePerHour:  *r.PricePerHour,
		Status:        models.SubjectStatus(r.Status),
	}
	if r.FeeAmount != nil {
		s.FeeAmount = *r.FeeAmount
	}
	return s
}

type UpdateSubjectRequest struct {
	NameEn        *string                   `json:"name_en" validate:"omitempty,min=1,max=255"`
	NameAr        *string                   `json:"name_ar" validate:"omitempty,min=1,max=255"`
	Code          *string                   `json:"code" validate:"omitempty,min=1,max=50"`
	DescriptionEn helper.PatchField[string] `json:"description_en"`
	DescriptionAr helper.PatchField[string] `json:"description_ar"`
	GradeLevel    *string                   `json:"grade_level" validate:"omitempty,grade"`
	HoursPerWeek  *int                      `json:"hours_per_week" validate:"omitempty,min=1,max=20"`
	PricePerHour  *float64                  `json:"price_per_hour" validate:"omitempty,min=0"`
	FeeAmount     *float64                  `json:"fee_amount" validate:"omitempty,min=0"`
	Status        *string                   `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (r *UpdateSubjectRequest) Normalize() {
	helper.TrimPtr(r.NameEn)
	helper.TrimPtr(r.NameAr)
	helper.TrimPtr(r.GradeLevel)
	if r.Code != nil {
		*r.Code = strings.ToUpper(strings.TrimSpace(*r.Code))
	}
}

// Apply copies present fields onto m and returns the changed columns.
func (r UpdateSubjectRequest) Apply(m *models.Subject) map[string]any {
	changes := map[string]any{}
	if r.NameEn != nil {
		m.NameEn = strings.TrimSpace(*r.NameEn)
		changes["name_en"] = m.NameEn
	}
	if r.NameAr != nil {
		m.NameAr = strings.TrimSpace(*r.NameAr)
		changes["name_ar"] = m.NameAr
	}
	if r.Code != nil {
		m.Code = strings.ToUpper(strings.TrimSpace(*r.Code))
		changes["code"] = m.Code
	}
	if v, ok := r.DescriptionEn.Get(); ok {
		m.DescriptionEn = helper.TrimmedOrNil(v)
		changes["description_en"] = m.DescriptionEn
	}
	if v, ok := r.DescriptionAr.Get(); ok {
		m.DescriptionAr = helper.TrimmedOrNil(v)
		changes["description_ar"] = m.DescriptionAr
	}
	if r.GradeLevel != nil {
		m.GradeLevel = *r.GradeLevel
		changes["grade_level"] = m.GradeLevel
	}
	if r.HoursPerWeek != nil {
		m.HoursPerWeek = *r.HoursPerWeek
		changes["hours_per_week"] = m.HoursPerWeek
	}
	if r.PricePerHour != nil {
		m.PricePerHour = *r.PricePerHour
		changes["price_per_hour"] = m.PricePerHour
	}
	if r.FeeAmount != nil {
		m.FeeAmount = *r.FeeAmount
		changes["fee_amount"] = m.FeeAmount
	}
	if r.Status != nil {
		m.Status = models.SubjectStatus(*r.Status)
		changes["status"] = m.Status
	}
	return changes
}

type ListSubjectQuery struct {
	Search     string `query:"search"`
	GradeLevel string `query:"grade_level" validate:"omitempty,grade"`
	Status     string `query:"status" validate:"omitempty,oneof=active inactive"`
}

var SortColumns = map[string]string{
	"name_en":        "name_en",
	"name_ar":        "name_ar",
	"code":           "code",
	"grade_level":    "grade_level",
	"price_per_hour": "price_per_hour",
	"created_at":     "created_at",
}

type SubjectDetail struct {
	models.Subject
	Classes  []models.ClassModel `json:"classes"`
	Teachers []models.Teacher    `json:"teachers"`
}

type SubjectStatistics struct {
	TotalClasses  int64 `json:"total_classes"`
	ActiveClasses int64 `json:"active_classes"`
	TotalTeachers int64 `json:"total_teachers"`
	TotalStudents int64 `json:"total_students"`
}
