package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tkaraca/menubook-backend/internal/models"
	"github.com/tkaraca/menubook-backend/internal/service"
	"github.com/tkaraca/menubook-backend/pkg/utils"
)

type EventHandler struct {
	menuService *service.MenuService
	validator   *utils.Validator
}

func NewEventHandler(menuService *service.MenuService, validator *utils.Validator) *EventHandler {
	return &EventHandler{
		menuService: menuService,
		validator:   validator,
	}
}

// GET /api/v1/events
func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	var filters models.MenuFilters
	if err := c.QueryParser(&filters); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid query parameters"))
	}
	if err := h.validator.Struct(filters); err != nil {
		return validationFailed(c, err)
	}

	menus, err := h.menuService.GetAllMenus(filters)
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(menus, ""))
}

// GET /api/v1/events/:id
func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	menu, err := h.menuService.GetMenuByID(id)
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(menu, ""))
}

// GET /api/v1/events/year/:year
func (h *EventHandler) GetEventsByYear(c *fiber.Ctx) error {
	year, err := parseYearParam(c, "year")
	if err != nil {
		return err
	}

	menus, err := h.menuService.GetMenusByYear(year)
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(menus, ""))
}

// GET /api/v1/stats
func (h *EventHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.menuService.GetMenuStats()
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(stats, ""))
}

// POST /api/v1/events
func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req models.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	menu, err := h.menuService.CreateMenu(req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(menu, "Event created successfully"))
}

// PUT /api/v1/events/:id
func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	menu, err := h.menuService.UpdateMenu(id, req)
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(menu, "Event updated successfully"))
}

// DELETE /api/v1/events/:id
func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.menuService.DeleteMenu(id); err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(nil, "Event deleted successfully"))
}
