package service

import (
	"context"

	"github.com/pixelforge/pixelforge-backend/internal/models"
	"github.com/pixelforge/pixelforge-backend/pkg/payment"
)

// UserStore is the user persistence surface the services consume.
type UserStore interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	EmailExists(email string) (bool, error)
	SpendCredit(userID uint) (int, error)
}

// TransactionStore is the purchase-ledger persistence surface.
type TransactionStore interface {
	Create(txn *models.Transaction) error
	GetByReceipt(receipt string) (*models.Transaction, error)
	Settle(transactionID, userID uint, credits int) (int, error)
}

// GenerationStore persists generated-image records.
type GenerationStore interface {
	Create(gen *models.Generation) error
	GetByUser(userID uint) ([]models.Generation, error)
}

// PaymentGateway is the external payment processor.
type PaymentGateway interface {
	CreateOrder(amount int64, currency, receipt string) (*payment.Order, error)
	FetchOrder(orderID string) (*payment.Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

// Mailer sends transactional email.
type Mailer interface {
	SendWelcomeEmail(email, name string) error
	SendPaymentReceipt(email, name, plan string, credits, amount int, currency string) error
}

// ImageGenerator renders an image for a prompt.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

// ObjectStorage stores generated images and returns their public URL.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
