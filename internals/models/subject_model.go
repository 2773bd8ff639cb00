package models

import "time"

type SubjectStatus string

const (
	SubjectStatusActive   SubjectStatus = "active"
	SubjectStatusInactive SubjectStatus = "inactive"
)

type Subject struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	NameEn        string        `gorm:"column:name_en;size:255;not null" json:"name_en"`
	NameAr        string        `gorm:"column:name_ar;size:255;not null" json:"name_ar"`
	Code          string        `gorm:"column:code;size:50;not null;uniqueIndex" json:"code"`
	DescriptionEn *string       `gorm:"column:description_en;type:text" json:"description_en,omitempty"`
	DescriptionAr *string       `gorm:"column:description_ar;type:text" json:"description_ar,omitempty"`
	GradeLevel    string        `gorm:"column:grade_level;size:2;not null;index" json:"grade_level"`
	HoursPerWeek  int           `gorm:"column:hours_per_week;not null;default:1" json:"hours_per_week"`
	PricePerHour  float64       `gorm:"column:price_per_hour;type:numeric(10,2);not null;default:0" json:"price_per_hour"`
	FeeAmount     float64       `gorm:"column:fee_amount;type:numeric(10,2);not null;default:0" json:"fee_amount"`
	Status        SubjectStatus `gorm:"column:status;size:20;not null;default:active" json:"status"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Subject) TableName() string { return "subjects" }
