package constants

import "strings"

// Grades accepted by students, subjects and classes.
var Grades = []string{"7", "8", "9", "10", "11", "12"}

func IsGrade(s string) bool {
	for _, g := range Grades {
		if g == s {
			return true
		}
	}
	return false
}

// Payment methods, ordered as they are offered to the UI.
var PaymentMethods = []string{"cash", "bank_transfer", "check", "mobile_payment"}

var paymentMethodLabels = map[string]string{
	"cash":           "Cash",
	"bank_transfer":  "Bank Transfer",
	"check":          "Check",
	"mobile_payment": "Mobile Payment",
}

func PaymentMethodLabel(m string) string {
	if l, ok := paymentMethodLabels[m]; ok {
		return l
	}
	return m
}

type WeekDay struct {
	Value   string `json:"value"`
	LabelEn string `json:"label_en"`
	LabelAr string `json:"label_ar"`
}

var WeekDays = []WeekDay{
	{Value: "monday", LabelEn: "Monday", LabelAr: "الإثنين"},
	{Value: "tuesday", LabelEn: "Tuesday", LabelAr: "الثلاثاء"},
	{Value: "wednesday", LabelEn: "Wednesday", LabelAr: "الأربعاء"},
	{Value: "thursday", LabelEn: "Thursday", LabelAr: "الخميس"},
	{Value: "friday", LabelEn: "Friday", LabelAr: "الجمعة"},
	{Value: "saturday", LabelEn: "Saturday", LabelAr: "السبت"},
	{Value: "sunday", LabelEn: "Sunday", LabelAr: "الأحد"},
}

func IsWeekDay(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, d := range WeekDays {
		if d.Value == s {
			return true
		}
	}
	return false
}

// Upload types accepted by POST /utilities/upload.
const (
	UploadStudentPhoto = "student_photo"
	UploadDocument     = "document"
	UploadOther        = "other"
)

func IsUploadType(s string) bool {
	switch s {
	case UploadStudentPhoto, UploadDocument, UploadOther:
		return true
	}
	return false
}
