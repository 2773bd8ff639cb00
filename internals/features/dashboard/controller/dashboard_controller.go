package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nojom_backend/internals/domain/aggregate"
	dashboardDTO "nojom_backend/internals/features/dashboard/dto"
	reportService "nojom_backend/internals/features/reports/service"
	helper "nojom_backend/internals/helpers"
	"nojom_backend/internals/helpers/apperr"
	"nojom_backend/internals/helpers/clock"
	"nojom_backend/internals/models"
)

const (
	revenueWindow  = 6
	recentPayments = 10
)

type DashboardController struct {
	DB    *gorm.DB
	Clock clock.Clock
}

func NewDashboardController(db *gorm.DB, clk clock.Clock) *DashboardController {
	return &DashboardController{DB: db, Clock: clk}
}

func failed(err error) error {
	return apperr.Internal(apperr.CodeServer, "Failed to load dashboard statistics", err)
}

// GET /api/dashboard/statistics
func (h *DashboardController) Statistics(c *fiber.Ctx) error {
	now := h.Clock.Now()
	var out dashboardDTO.Statistics

	counts := []struct {
		model any
		dst   *int64
	}{
		{&models.Student{}, &out.TotalStudents},
		{&models.Teacher{}, &out.TotalTeachers},
		{&models.ClassModel{}, &out.TotalClasses},
		{&models.Subject{}, &out.TotalSubjects},
	}
	for _, cnt := range counts {
		if err := h.DB.Model(cnt.model).Count(cnt.dst).Error; err != nil {
			return failed(err)
		}
	}

	totals, err := h.completedTotals(now.Year())
	if err != nil {
		return failed(err)
	}
	current := aggregate.Round2(totals[aggregate.MonthOf(now)])
	out.MonthlyRevenue = current
	out.CurrentMonthRevenue = current
	out.Last6MonthsRevenue = aggregate.MonthlyRevenueSeries(now, revenueWindow, totals)
	out.YearToDate = aggregate.YearToDate(now,
		aggregate.SumYear(totals, now.Year()),
		aggregate.SumYear(totals, now.Year()-1))

	var latest []models.Payment
	if err := h.DB.Preload("Student").Preload("Subject").Preload("Class.Subject").
		Order("created_at DESC").Order("id DESC").
		Limit(recentPayments).
		Find(&latest).Error; err != nil {
		return failed(err)
	}
	out.RecentPayments = make([]dashboardDTO.RecentPayment, 0, len(latest))
	for _, p := range latest {
		out.RecentPayments = append(out.RecentPayments, dashboardDTO.NewRecentPayment(p))
	}

	capacity, err := reportService.CapacityRows(h.DB)
	if err != nil {
		return failed(err)
	}
	out.CapacityUtilization = aggregate.CapacityUtilization(capacity)

	return helper.JsonOK(c, out)
}

// completedTotals sums completed payments per (year, month) for year and the
// year before, which covers the trailing window and the growth comparison.
func (h *DashboardController) completedTotals(year int) (map[aggregate.MonthKey]float64, error) {
	var rows []aggregate.PeriodTotal
	err := h.DB.Model(&models.Payment{}).
		Select("payment_year AS year, payment_month AS month, SUM(amount) AS total").
		Where("status = ? AND payment_year IN ?", models.PaymentStatusCompleted, []int{year - 1, year}).
		Group("payment_year, payment_month").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return aggregate.TotalsByMonth(rows), nil
}
