package repository

import (
	"gorm.io/gorm"

	"github.com/tkaraca/menubook-backend/internal/models"
)

type PhotoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

func (r *PhotoRepository) Create(photo *models.Photo) error {
	return r.db.Create(photo).Error
}

func (r *PhotoRepository) GetByID(id uint) (*models.Photo, error) {
	var photo models.Photo
	if err := r.db.First(&photo, id).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *PhotoRepository) GetByEventID(eventID uint) ([]models.Photo, error) {
	var photos []models.Photo
	err := r.db.Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&photos).Error
	return photos, err
}

func (r *PhotoRepository) Update(photo *models.Photo) error {
	return r.db.Save(photo).Error
}

func (r *PhotoRepository) Delete(id uint) error {
	return r.db.Delete(&models.Photo{}, id).Error
}
