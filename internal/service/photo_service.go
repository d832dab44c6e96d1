package service

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tkaraca/menubook-backend/internal/models"
	"github.com/tkaraca/menubook-backend/internal/repository"
	"github.com/tkaraca/menubook-backend/pkg/storage"
	"github.com/tkaraca/menubook-backend/pkg/utils"
)

var supportedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type PhotoService struct {
	photoRepo      *repository.PhotoRepository
	eventRepo      *repository.EventRepository
	storage        storage.Storage
	maxUploadBytes int64
}

func NewPhotoService(
	photoRepo *repository.PhotoRepository,
	eventRepo *repository.EventRepository,
	storage storage.Storage,
	maxUploadBytes int64,
) *PhotoService {
	return &PhotoService{
		photoRepo:      photoRepo,
		eventRepo:      eventRepo,
		storage:        storage,
		maxUploadBytes: maxUploadBytes,
	}
}

func (s *PhotoService) toResponse(photo *models.Photo) *models.PhotoResponse {
	return &models.PhotoResponse{
		ID:           photo.ID,
		EventID:      photo.EventID,
		FileName:     photo.FileName,
		OriginalName: photo.OriginalName,
		Caption:      photo.Caption,
		TakenAt:      photo.TakenAt,
		FileSize:     photo.FileSize,
		MimeType:     photo.MimeType,
		URL:          s.storage.PublicURL(photo.Path),
		CreatedAt:    photo.CreatedAt,
	}
}

func (s *PhotoService) GetEventPhotos(eventID uint) ([]models.PhotoResponse, error) {
	if _, err := s.eventRepo.GetByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	photos, err := s.photoRepo.GetByEventID(eventID)
	if err != nil {
		return nil, err
	}

	out := make([]models.PhotoResponse, 0, len(photos))
	for i := range photos {
		out = append(out, *s.toResponse(&photos[i]))
	}
	return out, nil
}

// UploadMultipart stores one multipart file for the event.
func (s *PhotoService) UploadMultipart(eventID uint, file *multipart.FileHeader, caption string) (*models.PhotoResponse, error) {
	mimeType := file.Header.Get("Content-Type")
	if _, ok := supportedImageTypes[mimeType]; !ok {
		return nil, ErrUnsupportedMedia
	}
	if file.Size > s.maxUploadBytes {
		return nil, ErrPayloadTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return s.store(eventID, file.Filename, mimeType, caption, nil, src, file.Size)
}

// UploadBase64 decodes a JSON payload carrying the image as base64.
func (s *PhotoService) UploadBase64(eventID uint, req models.UploadPhotoRequest) (*models.PhotoResponse, error) {
	if _, ok := supportedImageTypes[req.MimeType]; !ok {
		return nil, ErrUnsupportedMedia
	}

	// Reject before decoding: base64 inflates by 4/3.
	if int64(len(req.Data)) > s.maxUploadBytes*4/3+4 {
		return nil, ErrPayloadTooLarge
	}

	raw := req.Data
	if i := strings.Index(raw, ";base64,"); i >= 0 {
		raw = raw[i+len(";base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	if int64(len(data)) > s.maxUploadBytes {
		return nil, ErrPayloadTooLarge
	}

	var takenAt *time.Time
	if req.TakenAt != "" {
		t, err := utils.ParseDate(req.TakenAt)
		if err != nil {
			return nil, err
		}
		takenAt = &t
	}

	return s.store(eventID, req.FileName, req.MimeType, req.Caption, takenAt,
		bytes.NewReader(data), int64(len(data)))
}

func (s *PhotoService) store(
	eventID uint,
	originalName, mimeType, caption string,
	takenAt *time.Time,
	src io.Reader,
	size int64,
) (*models.PhotoResponse, error) {
	if _, err := s.eventRepo.GetByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	ext := supportedImageTypes[mimeType]
	if e := strings.ToLower(path.Ext(originalName)); e != "" {
		ext = e
	}
	fileName := uuid.NewString() + ext
	key := fmt.Sprintf("events/%d/%s", eventID, fileName)

	if err := s.storage.Upload(key, src, size, mimeType); err != nil {
		return nil, err
	}

	photo := &models.Photo{
		EventID:      eventID,
		FileName:     fileName,
		OriginalName: originalName,
		Caption:      caption,
		TakenAt:      takenAt,
		FileSize:     size,
		MimeType:     mimeType,
		Path:         key,
	}

	if err := s.photoRepo.Create(photo); err != nil {
		_ = s.storage.Delete(key)
		return nil, err
	}

	return s.toResponse(photo), nil
}

func (s *PhotoService) UpdatePhoto(photoID uint, req models.UpdatePhotoRequest) (*models.PhotoResponse, error) {
	photo, err := s.photoRepo.GetByID(photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Caption != nil {
		photo.Caption = *req.Caption
	}
	if req.TakenAt != nil {
		t, err := utils.ParseDate(*req.TakenAt)
		if err != nil {
			return nil, err
		}
		photo.TakenAt = &t
	}

	if err := s.photoRepo.Update(photo); err != nil {
		return nil, err
	}
	return s.toResponse(photo), nil
}

// DeletePhoto removes the stored object first, then the row. The parent
// event is untouched.
func (s *PhotoService) DeletePhoto(photoID uint) error {
	photo, err := s.photoRepo.GetByID(photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.storage.Delete(photo.Path); err != nil {
		return fmt.Errorf("failed to delete stored photo: %w", err)
	}
	return s.photoRepo.Delete(photo.ID)
}
