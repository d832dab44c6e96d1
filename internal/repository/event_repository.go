package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/tkaraca/menubook-backend/internal/models"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(event *models.Event) (*models.Event, error) {
	if err := r.db.Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

func (r *EventRepository) GetByID(id uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// List returns events ordered by date. Year narrows to the calendar-year
// window [Jan 1 year, Jan 1 year+1) in UTC.
func (r *EventRepository) List(filters models.MenuFilters) ([]models.Event, error) {
	q := r.db.Model(&models.Event{})

	if filters.Year != 0 {
		start := time.Date(filters.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(1, 0, 0)
		q = q.Where("date >= ? AND date < ?", start, end)
	}

	order := "date DESC"
	if filters.Sort == models.SortAsc {
		order = "date ASC"
	}
	q = q.Order(order)

	if filters.Limit > 0 {
		q = q.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		q = q.Offset(filters.Offset)
	}

	var events []models.Event
	err := q.Find(&events).Error
	return events, err
}

func (r *EventRepository) Update(event *models.Event) error {
	return r.db.Save(event).Error
}

func (r *EventRepository) Delete(id uint) error {
	return r.db.Delete(&models.Event{}, id).Error
}

func (r *EventRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Event{}).Count(&count).Error
	return count, err
}

// Dates returns every event date ascending; the service derives year stats
// from them without dialect-specific date extraction.
func (r *EventRepository) Dates() ([]time.Time, error) {
	var dates []time.Time
	err := r.db.Model(&models.Event{}).Order("date ASC").Pluck("date", &dates).Error
	return dates, err
}

func (r *EventRepository) PhotoCount(eventID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Photo{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}
