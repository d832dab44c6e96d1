package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/tkaraca/menubook-backend/internal/models"
	"github.com/tkaraca/menubook-backend/pkg/database"
)

type HealthHandler struct {
	db      *gorm.DB
	started time.Time
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{
		db:      db,
		started: time.Now(),
	}
}

// GET /health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(models.SuccessResponse(fiber.Map{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	}, ""))
}

// GET /health/db
func (h *HealthHandler) HealthDB(c *fiber.Ctx) error {
	if err := database.Ping(h.db); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse("Database unreachable"))
	}
	return c.JSON(models.SuccessResponse(fiber.Map{"database": "ok"}, ""))
}
