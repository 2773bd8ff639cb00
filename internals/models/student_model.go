package models

import "time"

type StudentStatus string

const (
	StudentStatusActive   StudentStatus = "active"
	StudentStatusInactive StudentStatus = "inactive"
)

type Student struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	FirstName      string        `gorm:"column:first_name;size:255;not null" json:"first_name"`
	LastName       string        `gorm:"column:last_name;size:255;not null" json:"last_name"`
	Phone          string        `gorm:"column:phone;size:50;not null;uniqueIndex" json:"phone"`
	Grade          string        `gorm:"column:grade;size:2;not null;index" json:"grade"`
	JoinedDate     time.Time     `gorm:"column:joined_date;type:date;not null" json:"joined_date"`
	Notes          *string       `gorm:"column:notes;type:text" json:"notes,omitempty"`
	AttendanceRate float64       `gorm:"column:attendance_rate;type:numeric(5,2);not null;default:0" json:"attendance_rate"`
	Status         StudentStatus `gorm:"column:status;size:20;not null;default:active" json:"status"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Subjects []Subject    `gorm:"many2many:student_subject;joinForeignKey:StudentID;joinReferences:SubjectID" json:"subjects,omitempty"`
	Classes  []ClassModel `gorm:"many2many:class_student;joinForeignKey:StudentID;joinReferences:ClassID" json:"classes,omitempty"`
	Payments []Payment    `gorm:"foreignKey:StudentID" json:"payments,omitempty"`
}

func (Student) TableName() string { return "students" }

func (s Student) FullName() string { return s.FirstName + " " + s.LastName }

// StudentSubject is the student_subject join row.
type StudentSubject struct {
	StudentID uint      `gorm:"column:student_id;primaryKey" json:"student_id"`
	SubjectID uint      `gorm:"column:subject_id;primaryKey;index" json:"subject_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (StudentSubject) TableName() string { return "student_subject" }
