package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	reportController "nojom_backend/internals/features/reports/controller"
)

func ReportRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := reportController.NewReportController(db)

	g := r.Group("/reports")
	g.Get("/financial-summary", ctrl.FinancialSummary)
	g.Get("/student-enrollment", ctrl.StudentEnrollment)
	g.Get("/class-performance", ctrl.ClassPerformance)
	g.Get("/teacher-performance", ctrl.TeacherPerformance)
	g.Get("/attendance", ctrl.Attendance)
}
