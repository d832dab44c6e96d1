package service

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tkaraca/menubook-backend/internal/models"
	"github.com/tkaraca/menubook-backend/internal/repository"
	"github.com/tkaraca/menubook-backend/pkg/bcrypt"
	jwtpkg "github.com/tkaraca/menubook-backend/pkg/jwt"
)

// PasswordResetMailer delivers the reset link. Satisfied by email.EmailService.
type PasswordResetMailer interface {
	SendPasswordResetEmail(to, name, resetURL string) error
}

type AuthService struct {
	userRepo        *repository.UserRepository
	sessionRepo     *repository.SessionRepository
	tokens          *jwtpkg.TokenManager
	mailer          PasswordResetMailer
	sessionLifetime time.Duration
	resetURLBase    string
}

func NewAuthService(
	userRepo *repository.UserRepository,
	sessionRepo *repository.SessionRepository,
	tokens *jwtpkg.TokenManager,
	mailer PasswordResetMailer,
	sessionLifetime time.Duration,
	resetURLBase string,
) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		sessionRepo:     sessionRepo,
		tokens:          tokens,
		mailer:          mailer,
		sessionLifetime: sessionLifetime,
		resetURLBase:    resetURLBase,
	}
}

func (s *AuthService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	username := models.NormalizeUsername(req.Username)

	exists, err := s.userRepo.UsernameExists(username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateUsername
	}

	exists, err = s.userRepo.EmailExists(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  username,
		Email:     req.Email,
		Password:  hashedPassword,
		Role:      models.RoleUser,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

// Login verifies credentials and issues a bearer token. Username matching is
// case-insensitive via normalization.
func (s *AuthService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.Authenticate(req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("token generation failed: %w", err)
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

// Authenticate resolves credentials to a user without issuing anything.
// Shared by the token login and the session (view) login.
func (s *AuthService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(models.NormalizeUsername(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.ComparePassword(user.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// CreateSession starts a cookie-backed web session for the user. Expired
// rows are swept opportunistically so the table does not grow unbounded.
func (s *AuthService) CreateSession(userID uint) (*models.Session, error) {
	_ = s.sessionRepo.DeleteExpired(time.Now())

	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    &userID,
		ExpiresAt: time.Now().Add(s.sessionLifetime),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// ResolveSession loads the user behind a session id. Expired or dangling
// sessions are deleted on touch and reported as ErrNotFound.
func (s *AuthService) ResolveSession(sessionID string) (*models.User, error) {
	session, err := s.sessionRepo.GetByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if session.Expired(time.Now()) || session.UserID == nil {
		_ = s.sessionRepo.Delete(session.ID)
		return nil, ErrNotFound
	}

	user, err := s.userRepo.GetByID(*session.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = s.sessionRepo.Delete(session.ID)
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) DestroySession(sessionID string) error {
	return s.sessionRepo.Delete(sessionID)
}

// ForgotPassword emails a short-lived reset token. It deliberately succeeds
// for unknown addresses so the endpoint cannot be used to probe accounts.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil
	}

	token, err := s.tokens.GenerateResetToken(user.Email)
	if err != nil {
		return err
	}

	resetURL := s.resetURLBase + "?token=" + url.QueryEscape(token)
	return s.mailer.SendPasswordResetEmail(user.Email, user.FullName(), resetURL)
}

func (s *AuthService) ResetPassword(token, newPassword string) error {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return errors.New("invalid or expired token")
	}

	purpose, _ := claims["purpose"].(string)
	if purpose != jwtpkg.PurposePasswordReset {
		return errors.New("invalid token claims")
	}
	email, ok := claims["sub"].(string)
	if !ok {
		return errors.New("invalid token claims")
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return errors.New("invalid or expired token")
	}

	hashedPassword, err := bcrypt.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(user.ID, hashedPassword)
}
