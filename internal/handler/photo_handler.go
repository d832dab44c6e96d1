package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tkaraca/menubook-backend/internal/models"
	"github.com/tkaraca/menubook-backend/internal/service"
	"github.com/tkaraca/menubook-backend/pkg/utils"
)

type PhotoHandler struct {
	photoService *service.PhotoService
	validator    *utils.Validator
}

func NewPhotoHandler(photoService *service.PhotoService, validator *utils.Validator) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
		validator:    validator,
	}
}

// GET /api/v1/events/:id/photos
func (h *PhotoHandler) GetEventPhotos(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	photos, err := h.photoService.GetEventPhotos(eventID)
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(photos, ""))
}

// POST /api/v1/events/:id/photos
// Accepts multipart form uploads ("photo" field) and base64 JSON bodies.
func (h *PhotoHandler) UploadPhoto(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if strings.HasPrefix(c.Get("Content-Type"), "multipart/form-data") {
		return h.uploadMultipart(c, eventID)
	}
	return h.uploadBase64(c, eventID)
}

func (h *PhotoHandler) uploadMultipart(c *fiber.Ctx, eventID uint) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid form data"))
	}

	files := form.File["photo"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("No files uploaded"))
	}

	caption := c.FormValue("caption")

	uploaded := make([]models.PhotoResponse, 0, len(files))
	for _, file := range files {
		photo, err := h.photoService.UploadMultipart(eventID, file, caption)
		if err != nil {
			return err
		}
		uploaded = append(uploaded, *photo)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(uploaded, "Photos uploaded successfully"))
}

func (h *PhotoHandler) uploadBase64(c *fiber.Ctx, eventID uint) error {
	var req models.UploadPhotoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	photo, err := h.photoService.UploadBase64(eventID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(photo, "Photo uploaded successfully"))
}

// PUT /api/v1/photos/:photoId
func (h *PhotoHandler) UpdatePhoto(c *fiber.Ctx) error {
	photoID, err := parseIDParam(c, "photoId")
	if err != nil {
		return err
	}

	var req models.UpdatePhotoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	photo, err := h.photoService.UpdatePhoto(photoID, req)
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(photo, "Photo updated successfully"))
}

// DELETE /api/v1/photos/:photoId
func (h *PhotoHandler) DeletePhoto(c *fiber.Ctx) error {
	photoID, err := parseIDParam(c, "photoId")
	if err != nil {
		return err
	}

	if err := h.photoService.DeletePhoto(photoID); err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(nil, "Photo deleted successfully"))
}
