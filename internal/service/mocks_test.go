package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/pixelforge/pixelforge-backend/internal/models"
	"github.com/pixelforge/pixelforge-backend/internal/repository"
	"github.com/pixelforge/pixelforge-backend/pkg/payment"
)

var errMockGateway = errors.New("mock gateway error")

// mockUserStore is an in-memory UserStore.
type mockUserStore struct {
	mu        sync.Mutex
	seq       uint
	users     map[uint]*models.User
	createErr error
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: map[uint]*models.User{}}
}

func (m *mockUserStore) add(user *models.User) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	user.ID = m.seq
	m.users[user.ID] = user
	return user
}

func (m *mockUserStore) Create(user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.add(user)
	return nil
}

func (m *mockUserStore) GetByID(id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *mockUserStore) GetByEmail(email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserStore) EmailExists(email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserStore) SpendCredit(userID uint) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	if user.CreditBalance < 1 {
		return 0, repository.ErrInsufficientCredits
	}
	user.CreditBalance--
	return user.CreditBalance, nil
}

func (m *mockUserStore) balance(userID uint) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.users[userID]; ok {
		return user.CreditBalance
	}
	return -1
}

// mockTransactionStore is an in-memory TransactionStore backed by the same
// user store so Settle mirrors the real single-transaction semantics.
type mockTransactionStore struct {
	mu        sync.Mutex
	seq       uint
	byID      map[uint]*models.Transaction
	users     *mockUserStore
	createErr error
}

func newMockTransactionStore(users *mockUserStore) *mockTransactionStore {
	return &mockTransactionStore{byID: map[uint]*models.Transaction{}, users: users}
}

func (m *mockTransactionStore) Create(txn *models.Transaction) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	txn.ID = m.seq
	copied := *txn
	m.byID[txn.ID] = &copied
	return nil
}

func (m *mockTransactionStore) GetByReceipt(receipt string) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, txn := range m.byID {
		if txn.Receipt == receipt {
			copied := *txn
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTransactionStore) Settle(transactionID, userID uint, credits int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	txn, ok := m.byID[transactionID]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	if txn.Payment {
		return 0, repository.ErrAlreadyProcessed
	}
	txn.Payment = true

	m.users.mu.Lock()
	defer m.users.mu.Unlock()
	user, ok := m.users.users[userID]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	user.CreditBalance += credits
	return user.CreditBalance, nil
}

func (m *mockTransactionStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

func (m *mockTransactionStore) get(id uint) *models.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	if txn, ok := m.byID[id]; ok {
		copied := *txn
		return &copied
	}
	return nil
}

// mockGateway simulates the payment processor: it remembers created orders
// and verifies signatures with a fixed secret.
type mockGateway struct {
	mu        sync.Mutex
	secret    string
	seq       int
	orders    map[string]*payment.Order
	createErr error
	fetchErr  error
}

func newMockGateway(secret string) *mockGateway {
	return &mockGateway{secret: secret, orders: map[string]*payment.Order{}}
}

func (m *mockGateway) CreateOrder(amount int64, currency, receipt string) (*payment.Order, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	order := &payment.Order{
		ID:       fmt.Sprintf("order_%03d", m.seq),
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}
	m.orders[order.ID] = order
	copied := *order
	return &copied, nil
}

func (m *mockGateway) FetchOrder(orderID string) (*payment.Order, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[orderID]
	if !ok {
		return nil, nil
	}
	copied := *order
	return &copied, nil
}

func (m *mockGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return payment.VerifySignature(orderID, paymentID, signature, m.secret)
}

func (m *mockGateway) markPaid(orderID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if order, ok := m.orders[orderID]; ok {
		order.Status = "paid"
	}
}

// mockMailer counts sends.
type mockMailer struct {
	mu       sync.Mutex
	welcomes int
	receipts int
}

func (m *mockMailer) SendWelcomeEmail(email, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.welcomes++
	return nil
}

func (m *mockMailer) SendPaymentReceipt(email, name, plan string, credits, amount int, currency string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receipts++
	return nil
}

// mockGenerator returns a fixed image.
type mockGenerator struct {
	image      []byte
	err        error
	lastPrompt string
	calls      int
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	m.calls++
	m.lastPrompt = prompt
	if m.err != nil {
		return nil, m.err
	}
	return m.image, nil
}

// mockObjectStorage remembers uploads and serves deterministic URLs.
type mockObjectStorage struct {
	mu      sync.Mutex
	uploads map[string][]byte
	err     error
}

func newMockObjectStorage() *mockObjectStorage {
	return &mockObjectStorage{uploads: map[string][]byte{}}
}

func (m *mockObjectStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads[key] = data
	return "https://cdn.test/" + key, nil
}
