package service

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pixelforge/pixelforge-backend/internal/models"
	"github.com/pixelforge/pixelforge-backend/pkg/apperror"
	"github.com/pixelforge/pixelforge-backend/pkg/bcrypt"
	"github.com/pixelforge/pixelforge-backend/pkg/jwt"
)

type AuthService struct {
	users  UserStore
	mailer Mailer
	tokens *jwt.Manager
	logger *zap.Logger
}

func NewAuthService(users UserStore, mailer Mailer, tokens *jwt.Manager, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		mailer: mailer,
		tokens: tokens,
		logger: logger,
	}
}

func (s *AuthService) Register(req models.RegisterRequest) (*models.AuthResult, error) {
	exists, err := s.users.EmailExists(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.NewValidation("User already exists")
	}

	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:          req.Name,
		Email:         req.Email,
		Password:      hashedPassword,
		CreditBalance: models.DefaultCreditBalance,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	// Best effort; registration does not wait on mail delivery.
	go func() {
		if err := s.mailer.SendWelcomeEmail(user.Email, user.Name); err != nil {
			s.logger.Warn("welcome email failed", zap.Uint("user_id", user.ID), zap.Error(err))
		}
	}()

	return &models.AuthResult{Token: token, User: *user}, nil
}

func (s *AuthService) Login(req models.LoginRequest) (*models.AuthResult, error) {
	user, err := s.users.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewUnauthorized("Invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.ComparePassword(user.Password, req.Password); err != nil {
		return nil, apperror.NewUnauthorized("Invalid credentials")
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &models.AuthResult{Token: token, User: *user}, nil
}
