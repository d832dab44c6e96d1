package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tkaraca/menubook-backend/internal/middleware"
	"github.com/tkaraca/menubook-backend/internal/models"
	"github.com/tkaraca/menubook-backend/internal/service"
	"github.com/tkaraca/menubook-backend/pkg/utils"
)

// AdminHandler covers the admin user-management API.
type AdminHandler struct {
	userService *service.UserService
	validator   *utils.Validator
}

func NewAdminHandler(userService *service.UserService, validator *utils.Validator) *AdminHandler {
	return &AdminHandler{
		userService: userService,
		validator:   validator,
	}
}

// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.ListUsers()
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(users, ""))
}

// POST /api/v1/admin/users
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req models.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	user, err := h.userService.CreateUser(req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(user, "User created successfully"))
}

// PUT /api/v1/admin/users/:id
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	user, err := h.userService.UpdateUser(id, req)
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(user, "User updated successfully"))
}

// DELETE /api/v1/admin/users/:id — admins cannot delete themselves.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if p := middleware.PrincipalFrom(c); p != nil && p.UserID == id {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Cannot delete your own account"))
	}

	if err := h.userService.DeleteUser(id); err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(nil, "User deleted successfully"))
}
