package controller

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nojom_backend/internals/domain/aggregate"
	reportDTO "nojom_backend/internals/features/reports/dto"
	reportService "nojom_backend/internals/features/reports/service"
	helper "nojom_backend/internals/helpers"
	"nojom_backend/internals/helpers/apperr"
	"nojom_backend/internals/helpers/spreadsheet"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

func reportFailed(name string, err error) error {
	return apperr.Internal(apperr.CodeReport, "Failed to generate "+name+" report", err)
}

func (h *ReportController) parse(c *fiber.Ctx) (reportDTO.ReportQuery, aggregate.DateRange, error) {
	var q reportDTO.ReportQuery
	if err := helper.ParseQuery(c, &q); err != nil {
		return q, aggregate.DateRange{}, err
	}
	r, err := q.Range()
	return q, r, err
}

// render answers with JSON, or with an xlsx workbook when format=xlsx.
func render(c *fiber.Ctx, q reportDTO.ReportQuery, slug, name string, body any, sheets func() []spreadsheet.Sheet) error {
	if !q.WantsXLSX() {
		return helper.JsonOK(c, body)
	}
	data, err := spreadsheet.Write(sheets())
	if err != nil {
		return reportFailed(name, err)
	}
	c.Set(fiber.HeaderContentType, spreadsheet.ContentTypeXLSX)
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s_%s_%s.xlsx"`, slug, q.StartDate, q.EndDate))
	return c.Send(data)
}

// GET /api/reports/financial-summary?start_date=&end_date=
func (h *ReportController) FinancialSummary(c *fiber.Ctx) error {
	q, r, err := h.parse(c)
	if err != nil {
		return err
	}
	rows, err := reportService.PaymentsIn(h.DB, r)
	if err != nil {
		return reportFailed("financial", err)
	}
	rep := aggregate.FinancialSummary(rows)
	return render(c, q, "financial-summary", "financial",
		reportDTO.FinancialSummaryResponse{Period: reportDTO.PeriodOf(q), FinancialSummaryReport: rep},
		func() []spreadsheet.Sheet { return reportService.FinancialSheets(q.StartDate, q.EndDate, rep) })
}

// GET /api/reports/student-enrollment?start_date=&end_date=
func (h *ReportController) StudentEnrollment(c *fiber.Ctx) error {
	q, r, err := h.parse(c)
	if err != nil {
		return err
	}
	rows, err := reportService.Students(h.DB)
	if err != nil {
		return reportFailed("student enrollment", err)
	}
	rep := aggregate.Enrollment(rows, r)
	return render(c, q, "student-enrollment", "student enrollment",
		reportDTO.EnrollmentResponse{Period: reportDTO.PeriodOf(q), EnrollmentReport: rep},
		func() []spreadsheet.Sheet { return reportService.EnrollmentSheets(q.StartDate, q.EndDate, rep) })
}

// GET /api/reports/class-performance?start_date=&end_date=
func (h *ReportController) ClassPerformance(c *fiber.Ctx) error {
	q, r, err := h.parse(c)
	if err != nil {
		return err
	}
	rows, err := reportService.Classes(h.DB)
	if err != nil {
		return reportFailed("class performance", err)
	}
	rep := aggregate.ClassPerformance(rows, r)
	return render(c, q, "class-performance", "class performance",
		reportDTO.ClassPerformanceResponse{Period: reportDTO.PeriodOf(q), ClassPerformanceReport: rep},
		func() []spreadsheet.Sheet { return reportService.ClassPerformanceSheets(q.StartDate, q.EndDate, rep) })
}

// GET /api/reports/teacher-performance?start_date=&end_date=
func (h *ReportController) TeacherPerformance(c *fiber.Ctx) error {
	q, r, err := h.parse(c)
	if err != nil {
		return err
	}
	teachers, classes, err := reportService.Teachers(h.DB)
	if err != nil {
		return reportFailed("teacher performance", err)
	}
	rep := aggregate.TeacherPerformance(teachers, classes, r)
	return render(c, q, "teacher-performance", "teacher performance",
		reportDTO.TeacherPerformanceResponse{Period: reportDTO.PeriodOf(q), TeacherPerformanceReport: rep},
		func() []spreadsheet.Sheet { return reportService.TeacherPerformanceSheets(q.StartDate, q.EndDate, rep) })
}

// GET /api/reports/attendance?start_date=&end_date=
// Attendance rates are stored per student, so the window only labels the report.
func (h *ReportController) Attendance(c *fiber.Ctx) error {
	q, _, err := h.parse(c)
	if err != nil {
		return err
	}
	rows, err := reportService.AttendanceRows(h.DB)
	if err != nil {
		return reportFailed("attendance", err)
	}
	rep := aggregate.Attendance(rows)
	return render(c, q, "attendance", "attendance",
		reportDTO.AttendanceResponse{Period: reportDTO.PeriodOf(q), AttendanceReport: rep},
		func() []spreadsheet.Sheet { return reportService.AttendanceSheets(q.StartDate, q.EndDate, rep) })
}
