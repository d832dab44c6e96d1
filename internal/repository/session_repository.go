package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/tkaraca/menubook-backend/internal/models"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(session *models.Session) error {
	return r.db.Create(session).Error
}

func (r *SessionRepository) GetByID(id string) (*models.Session, error) {
	var session models.Session
	if err := r.db.Where("id = ?", id).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Session{}).Error
}

func (r *SessionRepository) DeleteByUserID(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Session{}).Error
}

// DeleteExpired removes sessions whose expiry is at or before now.
func (r *SessionRepository) DeleteExpired(now time.Time) error {
	return r.db.Where("expires_at <= ?", now).Delete(&models.Session{}).Error
}
