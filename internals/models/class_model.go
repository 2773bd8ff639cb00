package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type ClassStatus string

const (
	ClassStatusActive    ClassStatus = "active"
	ClassStatusInactive  ClassStatus = "inactive"
	ClassStatusCompleted ClassStatus = "completed"
)

type ClassModel struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"column:name;size:255;not null" json:"name"`
	SubjectID    uint           `gorm:"column:subject_id;not null;index" json:"subject_id"`
	TeacherID    uint           `gorm:"column:teacher_id;not null;index" json:"teacher_id"`
	GradeLevel   string         `gorm:"column:grade_level;size:2;not null;index" json:"grade_level"`
	ScheduleDays datatypes.JSON `gorm:"column:schedule_days;not null" json:"schedule_days"`
	StartTime    string         `gorm:"column:start_time;size:5;not null" json:"start_time"`
	EndTime      string         `gorm:"column:end_time;size:5;not null" json:"end_time"`
	MaxStudents  int            `gorm:"column:max_students;not null" json:"max_students"`
	MonthlyFee   float64        `gorm:"column:monthly_fee;type:numeric(10,2);not null;default:0" json:"monthly_fee"`
	Status       ClassStatus    `gorm:"column:status;size:20;not null;default:active;index" json:"status"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Subject  *Subject  `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	Teacher  *Teacher  `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Students []Student `gorm:"many2many:class_student;joinForeignKey:ClassID;joinReferences:StudentID" json:"students,omitempty"`
}

func (ClassModel) TableName() string { return "classes" }

// Days decodes schedule_days; malformed content yields nil.
func (c ClassModel) Days() []string {
	var days []string
	if len(c.ScheduleDays) == 0 {
		return nil
	}
	if err := json.Unmarshal(c.ScheduleDays, &days); err != nil {
		return nil
	}
	return days
}

func EncodeDays(days []string) datatypes.JSON {
	if days == nil {
		days = []string{}
	}
	raw, _ := json.Marshal(days)
	return datatypes.JSON(raw)
}

type ClassStudent struct {
	ClassID   uint      `gorm:"column:class_id;primaryKey" json:"class_id"`
	StudentID uint      `gorm:"column:student_id;primaryKey;index" json:"student_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ClassStudent) TableName() string { return "class_student" }
