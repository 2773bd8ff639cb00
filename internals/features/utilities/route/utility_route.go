package route

import (
	"github.com/gofiber/fiber/v2"

	utilityController "nojom_backend/internals/features/utilities/controller"
	"nojom_backend/internals/helpers/storage"
	"nojom_backend/internals/middlewares"
)

func UtilityRoutes(r fiber.Router, store storage.Storage) {
	ctrl := utilityController.NewUtilityController(store)

	g := r.Group("/utilities")
	g.Get("/grades", ctrl.Grades)
	g.Get("/payment-methods", ctrl.PaymentMethods)
	g.Get("/week-days", ctrl.WeekDays)
	g.Post("/upload", middlewares.UploadRateLimiter(), ctrl.Upload)
}
