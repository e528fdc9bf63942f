package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/pixelforge/pixelforge-backend/internal/models"
)

// ErrInsufficientCredits is returned when a credit spend finds no balance
// left to deduct.
var ErrInsufficientCredits = errors.New("insufficient credit balance")

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// SpendCredit deducts one credit and returns the new balance. The deduction
// is conditional on the balance staying non-negative, so concurrent spends
// cannot push a user below zero.
func (r *UserRepository) SpendCredit(userID uint) (int, error) {
	var balance int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ? AND credit_balance >= ?", userID, 1).
			UpdateColumn("credit_balance", gorm.Expr("credit_balance - ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientCredits
		}

		var user models.User
		if err := tx.Select("credit_balance").First(&user, userID).Error; err != nil {
			return err
		}
		balance = user.CreditBalance
		return nil
	})
	return balance, err
}
