package models

import (
	"time"
)

// Photo is a media attachment owned by an Event. The payload lives on the
// storage backend; Path is the storage key.
type Photo struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	EventID      uint       `json:"event_id" gorm:"not null;index"`
	FileName     string     `json:"file_name" gorm:"not null"`
	OriginalName string     `json:"original_name"`
	Caption      string     `json:"caption"`
	TakenAt      *time.Time `json:"taken_at,omitempty"`
	FileSize     int64      `json:"file_size"`
	MimeType     string     `json:"mime_type"`
	Path         string     `json:"path"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Base64 JSON upload body. Multipart uploads go through the form parser
// instead.
type UploadPhotoRequest struct {
	FileName string `json:"file_name" validate:"required,max=255"`
	MimeType string `json:"mime_type" validate:"required,supported_image"`
	Caption  string `json:"caption" validate:"max=1000"`
	TakenAt  string `json:"taken_at" validate:"omitempty,event_date"`
	Data     string `json:"data" validate:"required"`
}

type UpdatePhotoRequest struct {
	Caption *string `json:"caption" validate:"omitempty,max=1000"`
	TakenAt *string `json:"taken_at" validate:"omitempty,event_date"`
}

type PhotoResponse struct {
	ID           uint       `json:"id"`
	EventID      uint       `json:"event_id"`
	FileName     string     `json:"file_name"`
	OriginalName string     `json:"original_name,omitempty"`
	Caption      string     `json:"caption,omitempty"`
	TakenAt      *time.Time `json:"taken_at,omitempty"`
	FileSize     int64      `json:"file_size"`
	MimeType     string     `json:"mime_type"`
	URL          string     `json:"url"`
	CreatedAt    time.Time  `json:"created_at"`
}
