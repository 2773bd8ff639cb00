package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classController "nojom_backend/internals/features/academics/classes/controller"
)

func ClassRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := classController.NewClassController(db)

	g := r.Group("/classes")
	g.Get("/", ctrl.List)
	g.Post("/", ctrl.Create)
	g.Get("/:id", ctrl.Show)
	g.Put("/:id", ctrl.Update)
	g.Patch("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
	g.Post("/:id/students", ctrl.AddStudent)
	g.Delete("/:id/students", ctrl.RemoveStudent)
	g.Get("/:id/statistics", ctrl.Statistics)
}
