package controller_test

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"nojom_backend/internals/helpers/clock"
	"nojom_backend/internals/helpers/spreadsheet"
	"nojom_backend/internals/models"
	"nojom_backend/internals/testutil"
	"nojom_backend/internals/testutil/apptest"
)

func paidOn(month int, amount float64, status models.PaymentStatus, method models.PaymentMethod) func(*models.Payment) {
	return func(p *models.Payment) {
		p.Amount = amount
		p.Status = status
		p.PaymentMethod = method
		p.PaymentMonth = month
		p.PaymentYear = 2024
		p.PaymentDate = time.Date(2024, time.Month(month), 10, 0, 0, 0, 0, time.UTC)
	}
}

func TestFinancialSummary(t *testing.T) {
	db := testutil.NewDB(t)
	app := apptest.NewApp(t, db, clock.NewFixed(2024, 6, 1))
	token := apptest.Token(t, db)

	class := testutil.Class(t, db)
	student := testutil.Student(t, db)
	testutil.Payment(t, db, student.ID, class.ID, paidOn(1, 100, models.PaymentStatusCompleted, models.PaymentMethodCash))
	testutil.Payment(t, db, student.ID, class.ID, paidOn(2, 200, models.PaymentStatusPending, models.PaymentMethodCash))
	testutil.Payment(t, db, student.ID, class.ID, paidOn(3, 300, models.PaymentStatusCompleted, models.PaymentMethodBankTransfer))
	// outside the window
	testutil.Payment(t, db, student.ID, class.ID, paidOn(5, 900, models.PaymentStatusCompleted, models.PaymentMethodCash))

	res := apptest.Do(t, app, http.MethodGet,
		"/api/reports/financial-summary?start_date=2024-01-01&end_date=2024-03-31", nil, token)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))

	data := res.Data()
	assert.Equal(t, 400.0, data["total_revenue"])
	assert.Equal(t, map[string]any{"start_date": "2024-01-01", "end_date": "2024-03-31"}, data["period"])

	trend := data["monthly_trend"].([]any)
	require.Len(t, trend, 2)
	assert.Equal(t, map[string]any{"year": 2024.0, "month": 1.0, "total": 100.0}, trend[0])
	assert.Equal(t, map[string]any{"year": 2024.0, "month": 3.0, "total": 300.0}, trend[1])

	methods := data["revenue_by_method"].([]any)
	assert.Len(t, methods, 2)

	byClass := data["revenue_by_class"].([]any)
	require.Len(t, byClass, 1)
	assert.Equal(t, class.Name, byClass[0].(map[string]any)["class_name"])
	assert.Equal(t, 400.0, byClass[0].(map[string]any)["total"])
}

func TestReportQueryValidation(t *testing.T) {
	db := testutil.NewDB(t)
	app := apptest.NewApp(t, db, clock.NewFixed(2024, 6, 1))
	token := apptest.Token(t, db)

	tests := []struct {
		name  string
		query string
		field string
	}{
		{"end before start", "start_date=2024-03-01&end_date=2024-02-01", "end_date"},
		{"missing start", "end_date=2024-02-01", "start_date"},
		{"malformed end", "start_date=2024-01-01&end_date=March", "end_date"},
		{"unknown format", "start_date=2024-01-01&end_date=2024-02-01&format=pdf", "format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := apptest.Do(t, app, http.MethodGet, "/api/reports/attendance?"+tt.query, nil, token)
			assert.Equal(t, http.StatusUnprocessableEntity, res.Status)
			assert.Equal(t, "VALIDATION_ERROR", res.ErrorCode())
			details := res.Body["error"].(map[string]any)["details"].(map[string]any)
			assert.Contains(t, details, tt.field)
		})
	}
}

func TestReportsExportXLSX(t *testing.T) {
	db := testutil.NewDB(t)
	app := apptest.NewApp(t, db, clock.NewFixed(2024, 6, 1))
	token := apptest.Token(t, db)

	class := testutil.Class(t, db)
	student := testutil.Student(t, db)
	testutil.Enroll(t, db, class.ID, student.ID)
	testutil.Payment(t, db, student.ID, class.ID)

	for _, slug := range []string{
		"financial-summary", "student-enrollment", "class-performance", "teacher-performance", "attendance",
	} {
		t.Run(slug, func(t *testing.T) {
			res := apptest.Do(t, app, http.MethodGet,
				"/api/reports/"+slug+"?start_date=2024-01-01&end_date=2024-12-31&format=xlsx", nil, token)
			require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
			assert.Equal(t, spreadsheet.ContentTypeXLSX, res.Header.Get("Content-Type"))
			assert.Equal(t, `attachment; filename="`+slug+`_2024-01-01_2024-12-31.xlsx"`,
				res.Header.Get("Content-Disposition"))

			book, err := excelize.OpenReader(bytes.NewReader(res.Raw))
			require.NoError(t, err)
			defer book.Close()
			assert.NotEmpty(t, book.GetSheetList())
		})
	}
}

func TestEnrollmentAndAttendanceReports(t *testing.T) {
	db := testutil.NewDB(t)
	app := apptest.NewApp(t, db, clock.NewFixed(2024, 6, 1))
	token := apptest.Token(t, db)

	rate := func(r float64, grade string) func(*models.Student) {
		return func(s *models.Student) {
			s.AttendanceRate = r
			s.Grade = grade
		}
	}
	testutil.Student(t, db, rate(90, "10"))
	testutil.Student(t, db, rate(70, "10"))
	poor := testutil.Student(t, db, rate(40, "11"))

	res := apptest.Do(t, app, http.MethodGet,
		"/api/reports/attendance?start_date=2000-01-01&end_date=2100-01-01", nil, token)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	data := res.Data()
	overall := data["overall_attendance"].(map[string]any)
	assert.Equal(t, 66.67, overall["average_attendance"])

	poorList := data["poor_attendance_students"].([]any)
	require.Len(t, poorList, 1)
	assert.Equal(t, float64(poor.ID), poorList[0].(map[string]any)["id"])

	res = apptest.Do(t, app, http.MethodGet,
		"/api/reports/student-enrollment?start_date=2000-01-01&end_date=2100-01-01", nil, token)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	data = res.Data()
	assert.Equal(t, 3.0, data["total_students"])
	assert.Equal(t, 3.0, data["new_students"])
	grades := data["students_by_grade"].([]any)
	require.Len(t, grades, 2)
	assert.Equal(t, map[string]any{"grade": "10", "count": 2.0}, grades[0])
}
