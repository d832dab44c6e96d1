package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tkaraca/menubook-backend/internal/middleware"
	"github.com/tkaraca/menubook-backend/internal/models"
	"github.com/tkaraca/menubook-backend/internal/service"
	"github.com/tkaraca/menubook-backend/pkg/utils"
)

type UserHandler struct {
	userService *service.UserService
	validator   *utils.Validator
}

func NewUserHandler(userService *service.UserService, validator *utils.Validator) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator,
	}
}

// GET /api/v1/profile
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	p := middleware.PrincipalFrom(c)

	user, err := h.userService.GetUserByID(p.UserID)
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(user, ""))
}

// PUT /api/v1/profile
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	p := middleware.PrincipalFrom(c)

	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	user, err := h.userService.UpdateProfile(p.UserID, req)
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(user, "Profile updated successfully"))
}

// POST /api/v1/profile/password
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	p := middleware.PrincipalFrom(c)

	var req models.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	if err := h.userService.ChangePassword(p.UserID, req); err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(nil, "Password changed successfully"))
}
