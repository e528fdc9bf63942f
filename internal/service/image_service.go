package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pixelforge/pixelforge-backend/internal/models"
	"github.com/pixelforge/pixelforge-backend/internal/repository"
	"github.com/pixelforge/pixelforge-backend/pkg/apperror"
)

type ImageService struct {
	users       UserStore
	generations GenerationStore
	generator   ImageGenerator
	storage     ObjectStorage
	logger      *zap.Logger
}

func NewImageService(
	users UserStore,
	generations GenerationStore,
	generator ImageGenerator,
	storage ObjectStorage,
	logger *zap.Logger,
) *ImageService {
	return &ImageService{
		users:       users,
		generations: generations,
		generator:   generator,
		storage:     storage,
		logger:      logger,
	}
}

// Generate renders an image for the prompt, spends one credit and stores the
// result. The credit is deducted only after the provider call succeeds, and
// the deduction itself guards against the balance going negative.
func (s *ImageService) Generate(ctx context.Context, userID uint, prompt string) (*models.GenerationResult, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFound("User not found")
		}
		return nil, err
	}
	if user.CreditBalance < 1 {
		return nil, apperror.NewValidation("No Credit Balance")
	}

	image, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("image generation failed",
			zap.Uint("user_id", userID), zap.Error(err))
		return nil, apperror.NewGateway("Error generating image", err)
	}

	balance, err := s.users.SpendCredit(userID)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientCredits) {
			return nil, apperror.NewValidation("No Credit Balance")
		}
		return nil, err
	}

	key := "generations/" + uuid.NewString() + ".png"
	url, err := s.storage.Upload(ctx, key, image, "image/png")
	if err != nil {
		s.logger.Error("generated image upload failed",
			zap.Uint("user_id", userID), zap.String("key", key), zap.Error(err))
		return nil, apperror.NewInternal(err)
	}

	gen := &models.Generation{
		UserID:   userID,
		Prompt:   prompt,
		ImageURL: url,
	}
	if err := s.generations.Create(gen); err != nil {
		return nil, err
	}

	return &models.GenerationResult{ImageURL: url, CreditBalance: balance}, nil
}

// History lists the user's generations, newest first.
func (s *ImageService) History(userID uint) ([]models.Generation, error) {
	return s.generations.GetByUser(userID)
}
