package service

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pixelforge/pixelforge-backend/internal/models"
	"github.com/pixelforge/pixelforge-backend/internal/repository"
	"github.com/pixelforge/pixelforge-backend/pkg/apperror"
	"github.com/pixelforge/pixelforge-backend/pkg/payment"
)

type PaymentService struct {
	gateway      PaymentGateway
	users        UserStore
	transactions TransactionStore
	mailer       Mailer
	currency     string
	logger       *zap.Logger
}

func NewPaymentService(
	gateway PaymentGateway,
	users UserStore,
	transactions TransactionStore,
	mailer Mailer,
	currency string,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		gateway:      gateway,
		users:        users,
		transactions: transactions,
		mailer:       mailer,
		currency:     currency,
		logger:       logger,
	}
}

// CreateOrder opens a gateway order for the plan. The ledger row is written
// before the gateway call so its receipt can reconcile the callback; on
// gateway failure the row stays unpaid and grants nothing.
func (s *PaymentService) CreateOrder(userID uint, planID string) (*payment.Order, error) {
	plan, ok := models.PlanByID(planID)
	if !ok {
		return nil, apperror.New(apperror.CodeNotFound, "Plan not found", http.StatusBadRequest)
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFound("User not found")
		}
		return nil, err
	}

	txn := &models.Transaction{
		UserID:  user.ID,
		Plan:    plan.Name,
		Credits: plan.Credits,
		Amount:  plan.Amount,
		Receipt: uuid.NewString(),
	}
	if err := s.transactions.Create(txn); err != nil {
		return nil, err
	}

	order, err := s.gateway.CreateOrder(int64(plan.Amount)*100, s.currency, txn.Receipt)
	if err != nil {
		s.logger.Error("gateway order creation failed",
			zap.Uint("user_id", user.ID),
			zap.String("receipt", txn.Receipt),
			zap.Error(err))
		return nil, apperror.NewGateway("Error creating payment order", err)
	}

	s.logger.Info("payment order created",
		zap.Uint("user_id", user.ID),
		zap.String("order_id", order.ID),
		zap.String("plan", plan.Name))
	return order, nil
}

// VerifyPayment reconciles a gateway checkout callback with the ledger.
// Every precondition fails closed; the signature check runs before any
// state is read, and credit is granted at most once per transaction.
func (s *PaymentService) VerifyPayment(userID uint, cb models.PaymentCallback) (int, error) {
	if cb.OrderID == "" || cb.PaymentID == "" || cb.Signature == "" {
		return 0, apperror.NewValidation("Missing payment details")
	}

	if !s.gateway.VerifySignature(cb.OrderID, cb.PaymentID, cb.Signature) {
		s.logger.Warn("payment signature mismatch",
			zap.Uint("user_id", userID),
			zap.String("order_id", cb.OrderID))
		return 0, apperror.NewIntegrity("Invalid payment signature")
	}

	order, err := s.gateway.FetchOrder(cb.OrderID)
	if err != nil {
		s.logger.Error("gateway order fetch failed",
			zap.String("order_id", cb.OrderID), zap.Error(err))
		return 0, apperror.NewGateway("Error fetching payment order", err)
	}
	if order == nil || order.ID == "" {
		return 0, apperror.NewNotFound("Order not found")
	}
	if order.Status != "paid" {
		return 0, apperror.New(apperror.CodeValidation, "Payment not completed", http.StatusBadRequest)
	}

	txn, err := s.transactions.GetByReceipt(order.Receipt)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperror.NewNotFound("Transaction not found")
		}
		return 0, err
	}
	if txn.Payment {
		return 0, apperror.NewConflict("Transaction already processed")
	}

	user, err := s.users.GetByID(txn.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperror.NewNotFound("User not found")
		}
		return 0, err
	}

	balance, err := s.transactions.Settle(txn.ID, user.ID, txn.Credits)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyProcessed) {
			return 0, apperror.NewConflict("Transaction already processed")
		}
		return 0, err
	}

	s.logger.Info("payment settled",
		zap.Uint("user_id", user.ID),
		zap.String("order_id", order.ID),
		zap.Int("credits", txn.Credits),
		zap.Int("balance", balance))

	go func() {
		if err := s.mailer.SendPaymentReceipt(user.Email, user.Name, txn.Plan, txn.Credits, txn.Amount, s.currency); err != nil {
			s.logger.Warn("payment receipt email failed", zap.Uint("user_id", user.ID), zap.Error(err))
		}
	}()

	return balance, nil
}
