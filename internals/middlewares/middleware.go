package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"nojom_backend/internals/middlewares/logger"
)

// SetupMiddlewares installs the app-wide chain. The request logger renders
// errors itself so the logged status matches the response.
func SetupMiddlewares(app *fiber.App) {
	app.Use(logger.RequestID())
	app.Use(logger.LoggerMiddleware())
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
}
