package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tkaraca/menubook-backend/internal/middleware"
	"github.com/tkaraca/menubook-backend/internal/models"
	"github.com/tkaraca/menubook-backend/internal/service"
	"github.com/tkaraca/menubook-backend/pkg/utils"
)

type AuthHandler struct {
	authService *service.AuthService
	validator   *utils.Validator
}

func NewAuthHandler(authService *service.AuthService, validator *utils.Validator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
	}
}

// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	resp, err := h.authService.Register(req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(resp, "Registration successful"))
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(resp, "Login successful"))
}

// POST /api/v1/auth/logout — destroys the web session when one is attached.
// Bearer tokens are stateless; clients discard them.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if p := middleware.PrincipalFrom(c); p != nil && p.SessionID != "" {
		if err := h.authService.DestroySession(p.SessionID); err != nil {
			return err
		}
		c.Cookie(&fiber.Cookie{
			Name:    middleware.SessionCookie,
			Value:   "",
			Expires: time.Now().Add(-time.Hour),
		})
	}
	return c.JSON(models.SuccessResponse(nil, "Logged out"))
}

// POST /api/v1/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req models.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	if err := h.authService.ForgotPassword(req.Email); err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(nil, "If the address exists, a reset email has been sent"))
}

// POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req models.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	if err := h.authService.ResetPassword(req.Token, req.NewPassword); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}
	return c.JSON(models.SuccessResponse(nil, "Password updated"))
}
