package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tkaraca/menubook-backend/internal/models"
	"github.com/tkaraca/menubook-backend/pkg/utils"
)

// parseIDParam enforces the positive-integer rule for id path parameters.
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name+" parameter")
	}
	return uint(id), nil
}

// parseYearParam bounds year path parameters to [1900, 2100].
func parseYearParam(c *fiber.Ctx, name string) (int, error) {
	raw := c.Params(name)
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1900 || year > 2100 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Year must be between 1900 and 2100")
	}
	return year, nil
}

// validationFailed writes the structured validation-failure response and
// stops the request.
func validationFailed(c *fiber.Ctx, err error) error {
	if fields := utils.Fields(err); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ValidationErrorResponse(fields))
	}
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
}
