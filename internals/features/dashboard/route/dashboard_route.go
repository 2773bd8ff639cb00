package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dashboardController "nojom_backend/internals/features/dashboard/controller"
	"nojom_backend/internals/helpers/clock"
)

func DashboardRoutes(r fiber.Router, db *gorm.DB, clk clock.Clock) {
	ctrl := dashboardController.NewDashboardController(db, clk)
	r.Get("/dashboard/statistics", ctrl.Statistics)
}
