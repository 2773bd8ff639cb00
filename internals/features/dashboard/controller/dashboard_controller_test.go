package controller_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nojom_backend/internals/helpers/clock"
	"nojom_backend/internals/models"
	"nojom_backend/internals/testutil"
	"nojom_backend/internals/testutil/apptest"
)

func forMonth(year, month int, amount float64) func(*models.Payment) {
	return func(p *models.Payment) {
		p.PaymentYear = year
		p.PaymentMonth = month
		p.Amount = amount
		p.PaymentDate = time.Date(year, time.Month(month), 5, 0, 0, 0, 0, time.UTC)
	}
}

func TestDashboardStatistics(t *testing.T) {
	db := testutil.NewDB(t)
	app := apptest.NewApp(t, db, clock.NewFixed(2024, 3, 15))
	token := apptest.Token(t, db)

	subject := testutil.Subject(t, db, func(s *models.Subject) { s.NameEn = "Physics" })
	class := testutil.Class(t, db, func(c *models.ClassModel) {
		c.SubjectID = subject.ID
		c.MaxStudents = 10
	})
	s1 := testutil.Student(t, db)
	s2 := testutil.Student(t, db)
	testutil.Enroll(t, db, class.ID, s1.ID, s2.ID)

	testutil.Payment(t, db, s1.ID, class.ID, forMonth(2023, 11, 100))
	testutil.Payment(t, db, s1.ID, class.ID, forMonth(2023, 12, 300))
	testutil.Payment(t, db, s1.ID, class.ID, forMonth(2024, 2, 200))
	testutil.Payment(t, db, s2.ID, class.ID, forMonth(2024, 3, 300))
	last := testutil.Payment(t, db, s2.ID, class.ID, forMonth(2024, 3, 50),
		func(p *models.Payment) { p.Status = models.PaymentStatusPending })

	res := apptest.Do(t, app, http.MethodGet, "/api/dashboard/statistics", nil, token)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	data := res.Data()

	assert.Equal(t, 2.0, data["total_students"])
	assert.Equal(t, 1.0, data["total_teachers"])
	assert.Equal(t, 1.0, data["total_classes"])
	assert.Equal(t, 1.0, data["total_subjects"])
	assert.Equal(t, 300.0, data["current_month_revenue"])
	assert.Equal(t, 300.0, data["monthly_revenue"])

	series := data["last_6_months_revenue"].([]any)
	require.Len(t, series, 6)
	want := []struct {
		year, month int
		revenue     float64
	}{
		{2023, 10, 0}, {2023, 11, 100}, {2023, 12, 300},
		{2024, 1, 0}, {2024, 2, 200}, {2024, 3, 300},
	}
	for i, w := range want {
		got := series[i].(map[string]any)
		assert.Equal(t, float64(w.year), got["year"], "entry %d", i)
		assert.Equal(t, float64(w.month), got["month_number"], "entry %d", i)
		assert.Equal(t, w.revenue, got["revenue"], "entry %d", i)
	}
	assert.Equal(t, "March", series[5].(map[string]any)["month"])

	ytd := data["year_to_date"].(map[string]any)
	assert.Equal(t, 500.0, ytd["total_revenue"])
	assert.Equal(t, 166.67, ytd["average_monthly"])
	assert.Equal(t, 25.0, ytd["growth_percentage"])

	recent := data["recent_payments"].([]any)
	require.Len(t, recent, 5)
	first := recent[0].(map[string]any)
	assert.Equal(t, float64(last.ID), first["id"])
	assert.Equal(t, "Physics", first["subject_name"])
	assert.NotEmpty(t, first["student_name"])

	capacity := data["capacity_utilization"].([]any)
	require.Len(t, capacity, 1)
	assert.Equal(t, 20.0, capacity[0].(map[string]any)["utilization_rate"])
	assert.Equal(t, 2.0, capacity[0].(map[string]any)["current_students"])
}

func TestDashboardEmpty(t *testing.T) {
	db := testutil.NewDB(t)
	app := apptest.NewApp(t, db, clock.NewFixed(2024, 1, 31))
	token := apptest.Token(t, db)

	res := apptest.Do(t, app, http.MethodGet, "/api/dashboard/statistics", nil, token)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	data := res.Data()

	assert.Len(t, data["last_6_months_revenue"], 6)
	assert.Equal(t, []any{}, data["recent_payments"])
	ytd := data["year_to_date"].(map[string]any)
	assert.Equal(t, 0.0, ytd["growth_percentage"])
}

func TestDashboardRequiresToken(t *testing.T) {
	db := testutil.NewDB(t)
	app := apptest.NewApp(t, db, clock.NewFixed(2024, 1, 31))

	res := apptest.Do(t, app, http.MethodGet, "/api/dashboard/statistics", nil, "")
	assert.Equal(t, http.StatusUnauthorized, res.Status)
}
