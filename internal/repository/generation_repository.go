package repository

import (
	"gorm.io/gorm"

	"github.com/pixelforge/pixelforge-backend/internal/models"
)

type GenerationRepository struct {
	db *gorm.DB
}

func NewGenerationRepository(db *gorm.DB) *GenerationRepository {
	return &GenerationRepository{
		db: db,
	}
}

func (r *GenerationRepository) Create(gen *models.Generation) error {
	return r.db.Create(gen).Error
}

func (r *GenerationRepository) GetByUser(userID uint) ([]models.Generation, error) {
	var generations []models.Generation
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&generations).Error
	return generations, err
}
