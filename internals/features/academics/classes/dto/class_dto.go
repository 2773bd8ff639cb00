package dto

import (
	"strings"

	"nojom_backend/internals/models"
)

type CreateClassRequest struct {
	Name         string   `json:"name" validate:"required,max=255"`
	SubjectID    uint     `json:"subject_id" validate:"required,gt=0"`
	TeacherID    uint     `json:"teacher_id" validate:"required,gt=0"`
	GradeLevel   string   `json:"grade_level" validate:"required,grade"`
	ScheduleDays []string `json:"schedule_days" validate:"required,min=1,dive,weekday"`
	StartTime    string   `json:"start_time" validate:"required,hhmm"`
	EndTime      string   `json:"end_time" validate:"required,hhmm"`
	MaxStudents  int      `json:"max_students" validate:"required,min=1,max=30"`
	MonthlyFee   *float64 `json:"monthly_fee" validate:"omitempty,min=0"`
	Status       string   `json:"status" validate:"required,oneof=active inactive completed"`
}

func (r *CreateClassRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.StartTime = strings.TrimSpace(r.StartTime)
	r.EndTime = strings.TrimSpace(r.EndTime)
}

func (r CreateClassRequest) ToModel() models.ClassModel {
	m := models.ClassModel{
		Name:         strings.TrimSpace(r.Name),
		SubjectID:    r.SubjectID,
		TeacherID:    r.TeacherID,
		GradeLevel:   r.GradeLevel,
		ScheduleDays: models.EncodeDays(r.ScheduleDays),
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		MaxStudents:  r.MaxStudents,
		Status:       models.ClassStatus(r.Status),
	}
	if r.MonthlyFee != nil {
		m.MonthlyFee = *r.MonthlyFee
	}
	return m
}

type UpdateClassRequest struct {
	Name         *string   `json:"name" validate:"omitempty,min=1,max=255"`
	SubjectID    *uint     `json:"subject_id" validate:"omitempty,gt=0"`
	TeacherID    *uint     `json:"teacher_id" validate:"omitempty,gt=0"`
	GradeLevel   *string   `json:"grade_level" validate:"omitempty,grade"`
	ScheduleDays *[]string `json:"schedule_days" validate:"omitempty,min=1,dive,weekday"`
	StartTime    *string   `json:"start_time" validate:"omitempty,hhmm"`
	EndTime      *string   `json:"end_time" validate:"omitempty,hhmm"`
	MaxStudents  *int      `json:"max_students" validate:"omitempty,min=1,max=30"`
	MonthlyFee   *float64  `json:"monthly_fee" validate:"omitempty,min=0"`
	Status       *string   `json:"status" validate:"omitempty,oneof=active inactive completed"`
}

func (r *UpdateClassRequest) Normalize() {
	if r.Name != nil {
		*r.Name = strings.TrimSpace(*r.Name)
	}
	if r.StartTime != nil {
		*r.StartTime = strings.TrimSpace(*r.StartTime)
	}
	if r.EndTime != nil {
		*r.EndTime = strings.TrimSpace(*r.EndTime)
	}
}

// Apply copies present fields onto m and returns the changed columns.
func (r UpdateClassRequest) Apply(m *models.ClassModel) map[string]any {
	changes := map[string]any{}
	if r.Name != nil {
		m.Name = strings.TrimSpace(*r.Name)
		changes["name"] = m.Name
	}
	if r.SubjectID != nil {
		m.SubjectID = *r.SubjectID
		changes["subject_id"] = m.SubjectID
	}
	if r.TeacherID != nil {
		m.TeacherID = *r.TeacherID
		changes["teacher_id"] = m.TeacherID
	}
	if r.GradeLevel != nil {
		m.GradeLevel = *r.GradeLevel
		changes["grade_level"] = m.GradeLevel
	}
	if r.ScheduleDays != nil {
		m.ScheduleDays = models.EncodeDays(*r.ScheduleDays)
		changes["schedule_days"] = m.ScheduleDays
	}
	if r.StartTime != nil {
		m.StartTime = *r.StartTime
		changes["start_time"] = m.StartTime
	}
	if r.EndTime != nil {
		m.EndTime = *r.EndTime
		changes["end_time"] = m.EndTime
	}
	if r.MaxStudents != nil {
		m.MaxStudents = *r.MaxStudents
		changes["max_students"] = m.MaxStudents
	}
	if r.MonthlyFee != nil {
		m.MonthlyFee = *r.MonthlyFee
		changes["monthly_fee"] = m.MonthlyFee
	}
	if r.Status != nil {
		m.Status = models.ClassStatus(*r.Status)
		changes["status"] = m.Status
	}
	return changes
}

type ListClassQuery struct {
	Search     string `query:"search"`
	SubjectID  uint   `query:"subject_id"`
	TeacherID  uint   `query:"teacher_id"`
	GradeLevel string `query:"grade_level" validate:"omitempty,grade"`
	Status     string `query:"status" validate:"omitempty,oneof=active inactive completed"`
}

var SortColumns = map[string]string{
	"name":         "name",
	"grade_level":  "grade_level",
	"start_time":   "start_time",
	"max_students": "max_students",
	"monthly_fee":  "monthly_fee",
	"created_at":   "created_at",
}

type EnrollmentRequest struct {
	StudentID uint `json:"student_id" validate:"required,gt=0"`
}

type ClassItem struct {
	models.ClassModel
	StudentsCount int64 `json:"students_count"`
}

type ClassStatistics struct {
	TotalStudents      int64   `json:"total_students"`
	AvailableSlots     int64   `json:"available_slots"`
	AttendanceRate     float64 `json:"attendance_rate"`
	CapacityPercentage float64 `json:"capacity_percentage"`
}
