package models

import "time"

// Generation records one image produced for a user.
type Generation struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Prompt    string    `json:"prompt" gorm:"not null"`
	ImageURL  string    `json:"image_url" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

type GenerateImageRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

// GenerationResult is returned after a successful generation.
type GenerationResult struct {
	ImageURL      string `json:"image_url"`
	CreditBalance int    `json:"credit_balance"`
}
