package models

import (
	"time"
)

// Sort directions accepted by the menu listing.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Event is a calendar occurrence (e.g. a yearly dinner) with its menu record.
type Event struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	Type          string    `json:"type"`
	Location      string    `json:"location"`
	Date          time.Time `json:"date" gorm:"not null;index"`
	Description   string    `json:"description"`
	MenuTitle     string    `json:"menu_title"`
	MenuImageFile string    `json:"menu_image_file"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Photos []Photo `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

type EventRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	Type          string `json:"type" validate:"max=100"`
	Location      string `json:"location" validate:"max=200"`
	Date          string `json:"date" validate:"required,event_date"`
	Description   string `json:"description" validate:"max=5000"`
	MenuTitle     string `json:"menu_title" validate:"max=200"`
	MenuImageFile string `json:"menu_image_file" validate:"max=255"`
}

type UpdateEventRequest struct {
	Name          *string `json:"name" validate:"omitempty,max=200"`
	Type          *string `json:"type" validate:"omitempty,max=100"`
	Location      *string `json:"location" validate:"omitempty,max=200"`
	Date          *string `json:"date" validate:"omitempty,event_date"`
	Description   *string `json:"description" validate:"omitempty,max=5000"`
	MenuTitle     *string `json:"menu_title" validate:"omitempty,max=200"`
	MenuImageFile *string `json:"menu_image_file" validate:"omitempty,max=255"`
}

// MenuFilters are the normalized query parameters of the menu listing.
type MenuFilters struct {
	Sort   string `query:"sort" validate:"omitempty,oneof=asc desc"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int    `query:"offset" validate:"omitempty,min=0"`
	Year   int    `query:"year" validate:"omitempty,min=1900,max=2100"`
}

// MenuResponse is the display projection of an Event.
type MenuResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Location     string    `json:"location"`
	Date         time.Time `json:"date"`
	Year         int       `json:"year"`
	Description  string    `json:"description"`
	MenuTitle    string    `json:"menu_title"`
	MenuImageURL string    `json:"menu_image_url,omitempty"`
	PhotoCount   int       `json:"photo_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MenuStats summarizes the catalog.
type MenuStats struct {
	TotalEvents int   `json:"total_events"`
	Years       []int `json:"years"`
	NewestYear  int   `json:"newest_year,omitempty"`
	OldestYear  int   `json:"oldest_year,omitempty"`
}
