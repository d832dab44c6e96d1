package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tkaraca/menubook-backend/internal/models"
	"github.com/tkaraca/menubook-backend/internal/repository"
	"github.com/tkaraca/menubook-backend/pkg/bcrypt"
)

func newUserService(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	return NewUserService(repository.NewUserRepository(db), repository.NewSessionRepository(db)), db
}

func seedUser(t *testing.T, db *gorm.DB, username, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.HashPassword(password)
	require.NoError(t, err)
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: hash,
		Role:     models.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestChangePasswordWrongCurrentLeavesHashUntouched(t *testing.T) {
	svc, db := newUserService(t)
	user := seedUser(t, db, "ivy", "password123")
	originalHash := user.Password

	err := svc.ChangePassword(user.ID, models.ChangePasswordRequest{
		CurrentPassword: "not-the-password",
		NewPassword:     "newpassword1",
	})
	assert.ErrorIs(t, err, ErrWrongPassword)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, originalHash, stored.Password)
}

func TestChangePasswordSuccess(t *testing.T) {
	svc, db := newUserService(t)
	user := seedUser(t, db, "jack", "password123")

	require.NoError(t, svc.ChangePassword(user.ID, models.ChangePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "newpassword1",
	}))

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.NoError(t, bcrypt.ComparePassword(stored.Password, "newpassword1"))
}

func TestUpdateProfileDuplicateEmail(t *testing.T) {
	svc, db := newUserService(t)
	seedUser(t, db, "kate", "password123")
	user := seedUser(t, db, "liam", "password123")

	taken := "kate@example.com"
	_, err := svc.UpdateProfile(user.ID, models.UpdateProfileRequest{Email: &taken})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestAdminCreateUserNormalizesUsername(t *testing.T) {
	svc, _ := newUserService(t)

	user, err := svc.CreateUser(models.CreateUserRequest{
		Username: "Morgan",
		Email:    "morgan@example.com",
		Password: "password123",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, "morgan", user.Username)
	assert.True(t, user.IsAdmin())
}

func TestDeleteUserRemovesSessions(t *testing.T) {
	svc, db := newUserService(t)
	user := seedUser(t, db, "nina", "password123")

	session := &models.Session{ID: "sess-nina", UserID: &user.ID}
	require.NoError(t, db.Create(session).Error)

	require.NoError(t, svc.DeleteUser(user.ID))

	var sessions int64
	require.NoError(t, db.Model(&models.Session{}).Count(&sessions).Error)
	assert.Zero(t, sessions)

	assert.ErrorIs(t, svc.DeleteUser(user.ID), ErrNotFound)
}
