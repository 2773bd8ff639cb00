package controller_test

import (
	"fmt"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nojom_backend/internals/helpers/clock"
	"nojom_backend/internals/models"
	"nojom_backend/internals/testutil"
	"nojom_backend/internals/testutil/apptest"
)

var generatedRef = regexp.MustCompile(`^PAY-\d+-\d{4}$`)

func TestCreatePayment(t *testing.T) {
	db := testutil.NewDB(t)
	app := apptest.NewApp(t, db, clock.NewFixed(2024, 3, 15))
	token := apptest.Token(t, db)

	class := testutil.Class(t, db)
	student := testutil.Student(t, db)
	taken := testutil.Payment(t, db, student.ID, class.ID)

	valid := func() map[string]any {
		return map[string]any{
			"student_id":     student.ID,
			"class_id":       class.ID,
			"amount":         150,
			"payment_method": "bank_transfer",
			"payment_month":  3,
			"payment_year":   2024,
			"payment_date":   "2024-03-10",
			"status":         "completed",
		}
	}

	res := apptest.Do(t, app, http.MethodPost, "/api/payments", valid(), token)
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	data := res.Data()
	assert.Regexp(t, generatedRef, data["reference_number"])
	assert.Equal(t, 150.0, data["amount"])
	assert.NotNil(t, data["student"])

	tests := []struct {
		name   string
		mutate func(map[string]any)
		field  string
	}{
		{"duplicate reference", func(b map[string]any) { b["reference_number"] = *taken.ReferenceNumber }, "reference_number"},
		{"unknown student", func(b map[string]any) { b["student_id"] = 9999 }, "student_id"},
		{"unknown class", func(b map[string]any) { b["class_id"] = 9999 }, "class_id"},
		{"bad method", func(b map[string]any) { b["payment_method"] = "crypto" }, "payment_method"},
		{"month out of range", func(b map[string]any) { b["payment_month"] = 13 }, "payment_month"},
		{"year out of range", func(b map[string]any) { b["payment_year"] = 2019 }, "payment_year"},
		{"negative amount", func(b map[string]any) { b["amount"] = -1 }, "amount"},
		{"missing amount", func(b map[string]any) { delete(b, "amount") }, "amount"},
		{"unknown status", func(b map[string]any) { b["status"] = "refunded" }, "status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := valid()
			tt.mutate(body)
			res := apptest.Do(t, app, http.MethodPost, "/api/payments", body, token)
			assert.Equal(t, http.StatusUnprocessableEntity, res.Status)
			details := res.Body["error"].(map[string]any)["details"].(map[string]any)
			assert.Contains(t, details, tt.field)
		})
	}

	body := valid()
	body["amount"] = 0
	res = apptest.Do(t, app, http.MethodPost, "/api/payments", body, token)
	assert.Equal(t, http.StatusCreated, res.Status, "zero amount is allowed")
}

func TestUpdatePayment(t *testing.T) {
	db := testutil.NewDB(t)
	app := apptest.NewApp(t, db, clock.NewFixed(2024, 3, 15))
	token := apptest.Token(t, db)

	class := testutil.Class(t, db)
	student := testutil.Student(t, db)
	p := testutil.Payment(t, db, student.ID, class.ID, func(p *models.Payment) { p.Status = models.PaymentStatusPending })
	other := testutil.Payment(t, db, student.ID, class.ID)
	path := fmt.Sprintf("/api/payments/%d", p.ID)

	res := apptest.Do(t, app, http.MethodPatch, path, map[string]any{"status": "completed", "amount": 120}, token)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))

	var got models.Payment
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, models.PaymentStatusCompleted, got.Status)
	assert.Equal(t, 120.0, got.Amount)
	assert.Equal(t, *p.ReferenceNumber, *got.ReferenceNumber)

	// keeping its own reference is not a conflict
	res = apptest.Do(t, app, http.MethodPut, path, map[string]any{"reference_number": *p.ReferenceNumber}, token)
	assert.Equal(t, http.StatusOK, res.Status, string(res.Raw))

	res = apptest.Do(t, app, http.MethodPut, path, map[string]any{"reference_number": *other.ReferenceNumber}, token)
	assert.Equal(t, http.StatusUnprocessableEntity, res.Status)

	res = apptest.Do(t, app, http.MethodPatch, "/api/payments/9999", map[string]any{"amount": 1}, token)
	assert.Equal(t, http.StatusNotFound, res.Status)
	assert.Equal(t, "PAYMENT_NOT_FOUND", res.ErrorCode())
}

func TestListPaymentsFilters(t *testing.T) {
	db := testutil.NewDB(t)
	app := apptest.NewApp(t, db, clock.NewFixed(2024, 3, 15))
	token := apptest.Token(t, db)

	class := testutil.Class(t, db)
	a := testutil.Student(t, db)
	b := testutil.Student(t, db)
	on := func(day int) func(*models.Payment) {
		return func(p *models.Payment) { p.PaymentDate = time.Date(2024, time.February, day, 0, 0, 0, 0, time.UTC) }
	}
	testutil.Payment(t, db, a.ID, class.ID, on(1))
	testutil.Payment(t, db, a.ID, class.ID, on(15), func(p *models.Payment) { p.Status = models.PaymentStatusPending })
	testutil.Payment(t, db, b.ID, class.ID, on(28))

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"all", "", 3},
		{"by student", fmt.Sprintf("student_id=%d", a.ID), 2},
		{"by status", "status=pending", 1},
		{"end date is inclusive", "start_date=2024-02-15&end_date=2024-02-28", 2},
		{"by method", "payment_method=check", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := apptest.Do(t, app, http.MethodGet, "/api/payments?"+tt.query, nil, token)
			require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
			assert.Len(t, res.List(), tt.want)
		})
	}

	res := apptest.Do(t, app, http.MethodGet, "/api/payments", nil, token)
	require.Len(t, res.List(), 3)
	latest := res.List()[0].(map[string]any)
	assert.Equal(t, float64(b.ID), latest["student_id"], "newest payment_date first")
}

func TestPaymentSummaries(t *testing.T) {
	db := testutil.NewDB(t)
	app := apptest.NewApp(t, db, clock.NewFixed(2024, 3, 15))
	token := apptest.Token(t, db)

	class := testutil.Class(t, db, func(c *models.ClassModel) { c.MonthlyFee = 200 })
	a := testutil.Student(t, db)
	b := testutil.Student(t, db)
	testutil.Enroll(t, db, class.ID, a.ID, b.ID)
	testutil.Payment(t, db, a.ID, class.ID, func(p *models.Payment) { p.Amount = 200 })
	testutil.Payment(t, db, a.ID, class.ID, func(p *models.Payment) {
		p.Amount = 50
		p.Status = models.PaymentStatusPending
	})

	res := apptest.Do(t, app, http.MethodGet, fmt.Sprintf("/api/payments/student/%d", a.ID), nil, token)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	summary := res.Data()["summary"].(map[string]any)
	assert.Equal(t, 200.0, summary["total_paid"])
	assert.Equal(t, 1.0, summary["pending_payments_count"])
	assert.Equal(t, 50.0, summary["pending_amount"])

	res = apptest.Do(t, app, http.MethodGet, fmt.Sprintf("/api/payments/class/%d", class.ID), nil, token)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	summary = res.Data()["summary"].(map[string]any)
	assert.Equal(t, 200.0, summary["total_collected"])
	assert.Equal(t, 400.0, summary["expected_revenue"])
	assert.Equal(t, 50.0, summary["collection_rate"])
	assert.Equal(t, 2.0, summary["total_students"])

	res = apptest.Do(t, app, http.MethodGet, "/api/payments/class/9999", nil, token)
	assert.Equal(t, "CLASS_NOT_FOUND", res.ErrorCode())
}

func TestPaymentStatistics(t *testing.T) {
	db := testutil.NewDB(t)
	app := apptest.NewApp(t, db, clock.NewFixed(2024, 3, 15))
	token := apptest.Token(t, db)

	class := testutil.Class(t, db)
	s := testutil.Student(t, db)
	testutil.Payment(t, db, s.ID, class.ID, func(p *models.Payment) { p.Amount = 100 })
	testutil.Payment(t, db, s.ID, class.ID, func(p *models.Payment) {
		p.Amount = 70
		p.PaymentMethod = models.PaymentMethodCheck
	})
	testutil.Payment(t, db, s.ID, class.ID, func(p *models.Payment) {
		p.Amount = 30
		p.Status = models.PaymentStatusPending
	})

	res := apptest.Do(t, app, http.MethodGet, "/api/payments/statistics", nil, token)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	data := res.Data()
	assert.Equal(t, 3.0, data["total_payments"])
	assert.Equal(t, 2.0, data["completed_payments"])
	assert.Equal(t, 1.0, data["pending_payments"])
	assert.Equal(t, 170.0, data["total_amount"])
	assert.Len(t, data["payment_methods"], 2)

	res = apptest.Do(t, app, http.MethodGet, "/api/payments/statistics?start_date=2025-01-01", nil, token)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, 0.0, res.Data()["total_payments"])
}

func TestDeletePayment(t *testing.T) {
	db := testutil.NewDB(t)
	app := apptest.NewApp(t, db, clock.NewFixed(2024, 3, 15))
	token := apptest.Token(t, db)

	p := testutil.Payment(t, db, testutil.Student(t, db).ID, testutil.Class(t, db).ID)
	res := apptest.Do(t, app, http.MethodDelete, fmt.Sprintf("/api/payments/%d", p.ID), nil, token)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))

	res = apptest.Do(t, app, http.MethodGet, fmt.Sprintf("/api/payments/%d", p.ID), nil, token)
	assert.Equal(t, http.StatusNotFound, res.Status)
}
