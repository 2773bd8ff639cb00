package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentController "nojom_backend/internals/features/finance/payments/controller"
	"nojom_backend/internals/helpers/clock"
)

func PaymentRoutes(r fiber.Router, db *gorm.DB, clk clock.Clock) {
	ctrl := paymentController.NewPaymentController(db, clk)

	g := r.Group("/payments")
	g.Get("/", ctrl.List)
	g.Post("/", ctrl.Create)
	g.Get("/statistics", ctrl.Statistics)
	g.Get("/student/:studentId", ctrl.StudentPayments)
	g.Get("/class/:classId", ctrl.ClassPayments)
	g.Get("/:id", ctrl.Show)
	g.Put("/:id", ctrl.Update)
	g.Patch("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
}
