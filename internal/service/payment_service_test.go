package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/pixelforge/pixelforge-backend/internal/models"
	"github.com/pixelforge/pixelforge-backend/pkg/apperror"
)

const gatewaySecret = "test-key-secret"

func signCallback(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

type paymentFixture struct {
	users        *mockUserStore
	transactions *mockTransactionStore
	gateway      *mockGateway
	mailer       *mockMailer
	service      *PaymentService
}

func newPaymentFixture() *paymentFixture {
	users := newMockUserStore()
	transactions := newMockTransactionStore(users)
	gateway := newMockGateway(gatewaySecret)
	mailer := &mockMailer{}
	svc := NewPaymentService(gateway, users, transactions, mailer, "INR", zap.NewNop())
	return &paymentFixture{
		users:        users,
		transactions: transactions,
		gateway:      gateway,
		mailer:       mailer,
		service:      svc,
	}
}

func domainStatus(t *testing.T, err error) (int, string) {
	t.Helper()
	var domainErr *apperror.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError, got %v", err)
	}
	return domainErr.HTTPStatus, domainErr.Message
}

func TestCreateOrder_WritesLedgerBeforeGateway(t *testing.T) {
	f := newPaymentFixture()
	user := f.users.add(&models.User{Name: "U", Email: "u@example.com", CreditBalance: 0})

	order, err := f.service.CreateOrder(user.ID, "Basic")
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	if f.transactions.count() != 1 {
		t.Fatalf("expected exactly one ledger entry, got %d", f.transactions.count())
	}
	txn := f.transactions.get(1)
	if txn.Payment {
		t.Error("new ledger entry must start unpaid")
	}
	if txn.Credits != 100 || txn.Amount != 10 || txn.Plan != "Basic Plan" {
		t.Errorf("ledger entry does not match catalog: %+v", txn)
	}
	if txn.UserID != user.ID {
		t.Errorf("ledger entry owned by %d, want %d", txn.UserID, user.ID)
	}

	if order.Receipt != txn.Receipt {
		t.Errorf("order receipt %q does not match ledger receipt %q", order.Receipt, txn.Receipt)
	}
	if order.Amount != 1000 {
		t.Errorf("gateway amount should be in minor units: got %d, want 1000", order.Amount)
	}
	if order.Currency != "INR" {
		t.Errorf("unexpected currency %q", order.Currency)
	}
}

func TestCreateOrder_UnknownPlan(t *testing.T) {
	f := newPaymentFixture()
	user := f.users.add(&models.User{Name: "U", Email: "u@example.com"})

	_, err := f.service.CreateOrder(user.ID, "Premium")
	if err == nil {
		t.Fatal("expected error for unknown plan")
	}
	status, message := domainStatus(t, err)
	if status != http.StatusBadRequest || message != "Plan not found" {
		t.Errorf("got %d %q", status, message)
	}
	if f.transactions.count() != 0 {
		t.Error("unknown plan must not create a ledger entry")
	}
}

func TestCreateOrder_UnknownUser(t *testing.T) {
	f := newPaymentFixture()

	_, err := f.service.CreateOrder(99, "Basic")
	if err == nil {
		t.Fatal("expected error for unknown user")
	}
	status, message := domainStatus(t, err)
	if status != http.StatusNotFound || message != "User not found" {
		t.Errorf("got %d %q", status, message)
	}
}

func TestCreateOrder_GatewayFailureLeavesOrphanUnpaid(t *testing.T) {
	f := newPaymentFixture()
	user := f.users.add(&models.User{Name: "U", Email: "u@example.com"})
	f.gateway.createErr = errMockGateway

	_, err := f.service.CreateOrder(user.ID, "Basic")
	if err == nil {
		t.Fatal("expected gateway error")
	}
	status, message := domainStatus(t, err)
	if status != http.StatusInternalServerError || message != "Error creating payment order" {
		t.Errorf("got %d %q", status, message)
	}

	// The ledger row stays, unpaid, and never grants credit.
	if f.transactions.count() != 1 {
		t.Fatalf("expected the orphaned ledger entry to remain, got %d rows", f.transactions.count())
	}
	if f.transactions.get(1).Payment {
		t.Error("orphaned entry must stay unpaid")
	}
}

// completedPurchase drives a full order + client-side payment, returning a
// correctly signed callback for it.
func completedPurchase(t *testing.T, f *paymentFixture, userID uint, planID string) models.PaymentCallback {
	t.Helper()
	order, err := f.service.CreateOrder(userID, planID)
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	f.gateway.markPaid(order.ID)

	paymentID := "pay_" + order.ID
	return models.PaymentCallback{
		OrderID:   order.ID,
		PaymentID: paymentID,
		Signature: signCallback(order.ID, paymentID, gatewaySecret),
	}
}

func TestVerifyPayment_CreditsExactlyOnce(t *testing.T) {
	f := newPaymentFixture()
	user := f.users.add(&models.User{Name: "U", Email: "u@example.com", CreditBalance: 0})
	cb := completedPurchase(t, f, user.ID, "Basic")

	balance, err := f.service.VerifyPayment(user.ID, cb)
	if err != nil {
		t.Fatalf("VerifyPayment failed: %v", err)
	}
	if balance != 100 {
		t.Errorf("expected balance 100, got %d", balance)
	}
	if f.users.balance(user.ID) != 100 {
		t.Errorf("stored balance is %d, want 100", f.users.balance(user.ID))
	}
	if !f.transactions.get(1).Payment {
		t.Error("ledger entry not marked paid")
	}
}

func TestVerifyPayment_ReplayIsRejected(t *testing.T) {
	f := newPaymentFixture()
	user := f.users.add(&models.User{Name: "U", Email: "u@example.com", CreditBalance: 0})
	cb := completedPurchase(t, f, user.ID, "Basic")

	if _, err := f.service.VerifyPayment(user.ID, cb); err != nil {
		t.Fatalf("first verification failed: %v", err)
	}

	_, err := f.service.VerifyPayment(user.ID, cb)
	if err == nil {
		t.Fatal("replayed callback accepted")
	}
	status, message := domainStatus(t, err)
	if status != http.StatusBadRequest || message != "Transaction already processed" {
		t.Errorf("got %d %q", status, message)
	}
	if f.users.balance(user.ID) != 100 {
		t.Errorf("replay changed the balance to %d", f.users.balance(user.ID))
	}
}

func TestVerifyPayment_TamperedSignature(t *testing.T) {
	f := newPaymentFixture()
	user := f.users.add(&models.User{Name: "U", Email: "u@example.com", CreditBalance: 0})
	cb := completedPurchase(t, f, user.ID, "Basic")

	tampered := []byte(cb.Signature)
	if tampered[0] == '0' {
		tampered[0] = '1'
	} else {
		tampered[0] = '0'
	}
	cb.Signature = string(tampered)

	_, err := f.service.VerifyPayment(user.ID, cb)
	if err == nil {
		t.Fatal("tampered signature accepted")
	}
	status, message := domainStatus(t, err)
	if status != http.StatusBadRequest || message != "Invalid payment signature" {
		t.Errorf("got %d %q", status, message)
	}
	if f.users.balance(user.ID) != 0 {
		t.Error("tampered callback mutated the balance")
	}
	if f.transactions.get(1).Payment {
		t.Error("tampered callback mutated the ledger")
	}
}

func TestVerifyPayment_MissingFields(t *testing.T) {
	f := newPaymentFixture()
	user := f.users.add(&models.User{Name: "U", Email: "u@example.com"})
	valid := completedPurchase(t, f, user.ID, "Basic")

	tests := []struct {
		name string
		cb   models.PaymentCallback
	}{
		{"missing signature", models.PaymentCallback{OrderID: valid.OrderID, PaymentID: valid.PaymentID}},
		{"missing order id", models.PaymentCallback{PaymentID: valid.PaymentID, Signature: valid.Signature}},
		{"missing payment id", models.PaymentCallback{OrderID: valid.OrderID, Signature: valid.Signature}},
		{"empty", models.PaymentCallback{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.VerifyPayment(user.ID, tt.cb)
			if err == nil {
				t.Fatal("incomplete callback accepted")
			}
			status, message := domainStatus(t, err)
			if status != http.StatusBadRequest || message != "Missing payment details" {
				t.Errorf("got %d %q", status, message)
			}
		})
	}

	if f.users.balance(user.ID) != models.DefaultCreditBalance {
		t.Error("incomplete callbacks mutated the balance")
	}
}

func TestVerifyPayment_IncompleteOrder(t *testing.T) {
	f := newPaymentFixture()
	user := f.users.add(&models.User{Name: "U", Email: "u@example.com", CreditBalance: 0})

	order, err := f.service.CreateOrder(user.ID, "Basic")
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	// Gateway never confirmed the payment; status stays "created".
	cb := models.PaymentCallback{
		OrderID:   order.ID,
		PaymentID: "pay_1",
		Signature: signCallback(order.ID, "pay_1", gatewaySecret),
	}

	_, err = f.service.VerifyPayment(user.ID, cb)
	if err == nil {
		t.Fatal("unpaid order accepted")
	}
	status, message := domainStatus(t, err)
	if status != http.StatusBadRequest || message != "Payment not completed" {
		t.Errorf("got %d %q", status, message)
	}
	if f.users.balance(user.ID) != 0 {
		t.Error("incomplete order mutated the balance")
	}
}

func TestVerifyPayment_UnknownOrder(t *testing.T) {
	f := newPaymentFixture()
	user := f.users.add(&models.User{Name: "U", Email: "u@example.com"})

	cb := models.PaymentCallback{
		OrderID:   "order_missing",
		PaymentID: "pay_1",
		Signature: signCallback("order_missing", "pay_1", gatewaySecret),
	}

	_, err := f.service.VerifyPayment(user.ID, cb)
	if err == nil {
		t.Fatal("unknown order accepted")
	}
	status, message := domainStatus(t, err)
	if status != http.StatusNotFound || message != "Order not found" {
		t.Errorf("got %d %q", status, message)
	}
}

func TestVerifyPayment_GatewayFetchFailure(t *testing.T) {
	f := newPaymentFixture()
	user := f.users.add(&models.User{Name: "U", Email: "u@example.com"})
	cb := completedPurchase(t, f, user.ID, "Basic")
	f.gateway.fetchErr = errMockGateway

	_, err := f.service.VerifyPayment(user.ID, cb)
	if err == nil {
		t.Fatal("gateway fetch failure ignored")
	}
	status, _ := domainStatus(t, err)
	if status != http.StatusInternalServerError {
		t.Errorf("got status %d, want 500", status)
	}
}

func TestVerifyPayment_BasicPlanScenario(t *testing.T) {
	// Plan "Basic" (100 credits, amount 10) ordered by a user with balance 0:
	// after the verified callback the balance is 100 and the entry is paid.
	f := newPaymentFixture()
	user := f.users.add(&models.User{Name: "U", Email: "u@example.com", CreditBalance: 0})

	cb := completedPurchase(t, f, user.ID, "Basic")
	balance, err := f.service.VerifyPayment(user.ID, cb)
	if err != nil {
		t.Fatalf("VerifyPayment failed: %v", err)
	}
	if balance != 100 {
		t.Errorf("balance = %d, want 100", balance)
	}
	if txn := f.transactions.get(1); !txn.Payment {
		t.Error("ledger entry not paid")
	}
}
