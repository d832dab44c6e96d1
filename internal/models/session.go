package models

import (
	"time"
)

// Session backs the cookie-based web login. ID is the opaque cookie value.
// UserID is nullable so anonymous sessions can carry flash data; rows are
// cascade-deleted with their user.
type Session struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    *uint     `json:"user_id" gorm:"index"`
	User      *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
	Data      []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
