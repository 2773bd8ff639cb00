package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	tpController "nojom_backend/internals/features/finance/teacher_payments/controller"
)

func TeacherPaymentRoutes(r fiber.Router, db *gorm.DB) {
	ctl := tpController.NewTeacherPaymentController(db)
	g := r.Group("/teacher-payments")

	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Get("/:id", ctl.Show)
	g.Put("/:id", ctl.Update)
	g.Patch("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
