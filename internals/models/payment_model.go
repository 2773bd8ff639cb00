package models

import "time"

type PaymentMethod string

const (
	PaymentMethodCash          PaymentMethod = "cash"
	PaymentMethodBankTransfer  PaymentMethod = "bank_transfer"
	PaymentMethodCheck         PaymentMethod = "check"
	PaymentMethodMobilePayment PaymentMethod = "mobile_payment"
)

type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type Payment struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	StudentID       uint          `gorm:"column:student_id;not null;index" json:"student_id"`
	ClassID         uint          `gorm:"column:class_id;not null;index" json:"class_id"`
	SubjectID       *uint         `gorm:"column:subject_id;index" json:"subject_id,omitempty"`
	Amount          float64       `gorm:"column:amount;type:numeric(10,2);not null" json:"amount"`
	PaymentMethod   PaymentMethod `gorm:"column:payment_method;size:20;not null" json:"payment_method"`
	PaymentMonth    int           `gorm:"column:payment_month;not null;index:idx_payments_period" json:"payment_month"`
	PaymentYear     int           `gorm:"column:payment_year;not null;index:idx_payments_period" json:"payment_year"`
	PaymentDate     time.Time     `gorm:"column:payment_date;type:date;not null;index" json:"payment_date"`
	Status          PaymentStatus `gorm:"column:status;size:20;not null;default:completed;index" json:"status"`
	ReferenceNumber *string       `gorm:"column:reference_number;size:100;uniqueIndex" json:"reference_number,omitempty"`
	Notes           *string       `gorm:"column:notes;type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Student *Student    `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Class   *ClassModel `gorm:"foreignKey:ClassID" json:"class,omitempty"`
	Subject *Subject    `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
}

func (Payment) TableName() string { return "payments" }

type TeacherPayment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TeacherID    uint      `gorm:"column:teacher_id;not null;uniqueIndex:uq_teacher_payment_period" json:"teacher_id"`
	Amount       float64   `gorm:"column:amount;type:numeric(10,2);not null" json:"amount"`
	PaymentMonth int       `gorm:"column:payment_month;not null;uniqueIndex:uq_teacher_payment_period" json:"payment_month"`
	PaymentYear  int       `gorm:"column:payment_year;not null;uniqueIndex:uq_teacher_payment_period" json:"payment_year"`
	PaymentDate  time.Time `gorm:"column:payment_date;type:date;not null" json:"payment_date"`
	Notes        *string   `gorm:"column:notes;type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Teacher *Teacher `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
}

func (TeacherPayment) TableName() string { return "teacher_payments" }
