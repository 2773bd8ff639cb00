package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nojom_backend/internals/features/users/auth/controller"
	"nojom_backend/internals/helpers/clock"
	"nojom_backend/internals/middlewares"
)

// AuthPublicRoutes registers login, register and refresh under /auth.
func AuthPublicRoutes(router fiber.Router, db *gorm.DB, clk clock.Clock) {
	ac := controller.NewAuthController(db, clk)
	auth := router.Group("/auth")

	auth.Post("/login", middlewares.LoginRateLimiter(), ac.Login)
	auth.Post("/register", middlewares.RegisterRateLimiter(), ac.Register)
	auth.Post("/refresh", ac.Refresh)
}

// AuthProtectedRoutes expects router to already carry the auth middleware.
func AuthProtectedRoutes(router fiber.Router, db *gorm.DB, clk clock.Clock) {
	ac := controller.NewAuthController(db, clk)
	auth := router.Group("/auth")

	auth.Post("/logout", ac.Logout)
	auth.Get("/user", ac.Me)
}
