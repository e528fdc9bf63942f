package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/pixelforge/pixelforge-backend/internal/models"
)

// ErrAlreadyProcessed is returned when settlement finds the transaction
// already marked paid.
var ErrAlreadyProcessed = errors.New("transaction already processed")

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{
		db: db,
	}
}

func (r *TransactionRepository) Create(txn *models.Transaction) error {
	return r.db.Create(txn).Error
}

func (r *TransactionRepository) GetByReceipt(receipt string) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.db.Where("receipt = ?", receipt).First(&txn).Error
	return &txn, err
}

// Settle marks the transaction paid and credits the user inside a single DB
// transaction, returning the new balance. The conditional update on the
// payment flag is the sole gate: zero affected rows means another call got
// there first, and no credit is granted.
func (r *TransactionRepository) Settle(transactionID, userID uint, credits int) (int, error) {
	var balance int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Transaction{}).
			Where("id = ? AND payment = ?", transactionID, false).
			Update("payment", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyProcessed
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			UpdateColumn("credit_balance", gorm.Expr("credit_balance + ?", credits)).Error; err != nil {
			return err
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
