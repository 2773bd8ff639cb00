package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nojom_backend/internals/features/users/auth/dto"
	authRepo "nojom_backend/internals/features/users/auth/repository"
	"nojom_backend/internals/features/users/auth/service"
	helper "nojom_backend/internals/helpers"
	"nojom_backend/internals/helpers/apperr"
	"nojom_backend/internals/helpers/clock"
	authMw "nojom_backend/internals/middlewares/auth"
)

type AuthController struct {
	DB    *gorm.DB
	Clock clock.Clock
}

func NewAuthController(db *gorm.DB, clk clock.Clock) *AuthController {
	return &AuthController{DB: db, Clock: clk}
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return err
	}
	user, pair, err := service.Login(ac.DB, req.Email, req.Password, ac.Clock.Now())
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Login successful", dto.AuthResponse{
		User:      dto.NewUserResponse(*user),
		TokenPair: pair,
	})
}

// POST /api/auth/register
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return err
	}
	user, pair, err := service.Register(ac.DB, req.Name, req.Email, req.Password, ac.Clock.Now())
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "User registered successfully", dto.AuthResponse{
		User:      dto.NewUserResponse(*user),
		TokenPair: pair,
	})
}

// POST /api/auth/refresh
func (ac *AuthController) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return err
	}
	pair, err := service.Refresh(ac.DB, req.RefreshToken, ac.Clock.Now())
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Token refreshed", pair)
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if len(c.Body()) > 0 {
		_ = c.BodyParser(&req)
	}
	token, _ := c.Locals(authMw.LocAccessToken).(string)
	exp, ok := c.Locals(authMw.LocTokenExp).(time.Time)
	if !ok {
		exp = ac.Clock.Now().Add(time.Hour)
	}
	if err := service.Logout(ac.DB, token, exp, req.RefreshToken); err != nil {
		return err
	}
	return helper.JsonMessage(c, "Logged out successfully")
}

// GET /api/auth/user
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := authMw.UserID(c)
	if err != nil {
		return err
	}
	user, err := authRepo.FindUserByID(ac.DB, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("user")
	}
	if err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to load user", err)
	}
	return helper.JsonOK(c, dto.NewUserResponse(*user))
}
