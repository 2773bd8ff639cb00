package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	subjectController "nojom_backend/internals/features/academics/subjects/controller"
)

func SubjectRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := subjectController.NewSubjectController(db)

	g := r.Group("/subjects")
	g.Get("/", ctrl.List)
	g.Post("/", ctrl.Create)
	g.Get("/grade/:grade", ctrl.ByGrade)
	g.Get("/:id", ctrl.Show)
	g.Put("/:id", ctrl.Update)
	g.Patch("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
	g.Get("/:id/statistics", ctrl.Statistics)
}
