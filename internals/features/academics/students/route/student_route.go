package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentController "nojom_backend/internals/features/academics/students/controller"
	"nojom_backend/internals/helpers/clock"
	"nojom_backend/internals/middlewares"
)

// StudentRoutes mounts /students on an authenticated router.
func StudentRoutes(r fiber.Router, db *gorm.DB, clk clock.Clock) {
	ctl := studentController.NewStudentController(db, clk)
	students := r.Group("/students")

	students.Get("/", ctl.List)
	students.Post("/", ctl.Create)
	students.Post("/import", middlewares.UploadRateLimiter(), ctl.Import) // before /:id
	students.Get("/:id", ctl.Show)
	students.Put("/:id", ctl.Update)
	students.Patch("/:id", ctl.Update)
	students.Delete("/:id", ctl.Delete)

	students.Get("/:id/payments", ctl.Payments)
	students.Get("/:id/classes", ctl.Classes)
	students.Post("/:id/classes", ctl.JoinClass)
}
