package models

import "time"

type TeacherStatus string

const (
	TeacherStatusActive   TeacherStatus = "active"
	TeacherStatusInactive TeacherStatus = "inactive"
)

type Teacher struct {
	ID                uint          `gorm:"primaryKey" json:"id"`
	FirstName         string        `gorm:"column:first_name;size:255;not null" json:"first_name"`
	LastName          string        `gorm:"column:last_name;size:255;not null" json:"last_name"`
	Email             string        `gorm:"column:email;size:255;not null;uniqueIndex" json:"email"`
	Phone             string        `gorm:"column:phone;size:20;not null" json:"phone"`
	Address           *string       `gorm:"column:address;type:text" json:"address,omitempty"`
	Qualification     string        `gorm:"column:qualification;size:255;not null" json:"qualification"`
	ExperienceYears   int           `gorm:"column:experience_years;not null;default:0" json:"experience_years"`
	HourlyRate        float64       `gorm:"column:hourly_rate;type:numeric(10,2);not null;default:0" json:"hourly_rate"`
	MonthlyPercentage float64       `gorm:"column:monthly_percentage;type:numeric(5,2);not null;default:0" json:"monthly_percentage"`
	JoinedDate        *time.Time    `gorm:"column:joined_date;type:date" json:"joined_date,omitempty"`
	Notes             *string       `gorm:"column:notes;type:text" json:"notes,omitempty"`
	Status            TeacherStatus `gorm:"column:status;size:20;not null;default:active" json:"status"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Subjects []Subject        `gorm:"many2many:teacher_subject;joinForeignKey:TeacherID;joinReferences:SubjectID" json:"subjects,omitempty"`
	Classes  []ClassModel     `gorm:"foreignKey:TeacherID" json:"classes,omitempty"`
	Payments []TeacherPayment `gorm:"foreignKey:TeacherID" json:"payments,omitempty"`
}

func (Teacher) TableName() string { return "teachers" }

func (t Teacher) FullName() string { return t.FirstName + " " + t.LastName }

type TeacherSubject struct {
	TeacherID uint      `gorm:"column:teacher_id;primaryKey" json:"teacher_id"`
	SubjectID uint      `gorm:"column:subject_id;primaryKey;index" json:"subject_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (TeacherSubject) TableName() string { return "teacher_subject" }
