package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	teacherController "nojom_backend/internals/features/academics/teachers/controller"
	"nojom_backend/internals/helpers/clock"
)

func TeacherRoutes(r fiber.Router, db *gorm.DB, clk clock.Clock) {
	ctl := teacherController.NewTeacherController(db, clk)
	teachers := r.Group("/teachers")

	teachers.Get("/", ctl.List)
	teachers.Post("/", ctl.Create)
	teachers.Get("/:id", ctl.Show)
	teachers.Put("/:id", ctl.Update)
	teachers.Patch("/:id", ctl.Update)
	teachers.Delete("/:id", ctl.Delete)
	teachers.Get("/:id/statistics", ctl.Statistics)
	teachers.Get("/:id/payments/suggested", ctl.SuggestedPayment)
}
