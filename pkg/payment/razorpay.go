package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// Order is the subset of the gateway order record the service consumes.
// Amount is in minor currency units.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// RazorpayService wraps the gateway SDK for order creation, order fetch and
// checkout signature verification.
type RazorpayService struct {
	client    *razorpay.Client
	keySecret string
}

func NewRazorpayService(keyID, keySecret string) *RazorpayService {
	return &RazorpayService{
		client:    razorpay.NewClient(keyID, keySecret),
		keySecret: keySecret,
	}
}

// CreateOrder opens a gateway order. amount is in minor currency units and
// receipt reconnects the eventual callback to the local ledger row.
func (s *RazorpayService) CreateOrder(amount int64, currency, receipt string) (*Order, error) {
	data := map[string]interface{}{
		"amount":          amount,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}

	body, err := s.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("order creation failed: %w", err)
	}
	return orderFromMap(body), nil
}

// FetchOrder loads the authoritative order record from the gateway.
func (s *RazorpayService) FetchOrder(orderID string) (*Order, error) {
	body, err := s.client.Order.Fetch(orderID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("order fetch failed: %w", err)
	}
	return orderFromMap(body), nil
}

// VerifySignature checks a checkout completion signature against the
// configured key secret.
func (s *RazorpayService) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifySignature(orderID, paymentID, signature, s.keySecret)
}

// VerifySignature recomputes the gateway checkout signature,
// hex(HMAC-SHA256("<orderID>|<paymentID>", secret)), and compares it in
// constant time with the supplied one.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func orderFromMap(body map[string]interface{}) *Order {
	order := &Order{}
	if v, ok := body["id"].(string); ok {
		order.ID = v
	}
	if v, ok := body["currency"].(string); ok {
		order.Currency = v
	}
	if v, ok := body["receipt"].(string); ok {
		order.Receipt = v
	}
	if v, ok := body["status"].(string); ok {
		order.Status = v
	}
	order.Amount = toInt64(body["amount"])
	return order
}

// toInt64 normalizes the numeric types the SDK's JSON decoding can yield.
func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case json.Number:
		i, _ := n.Int64()
		return i
	default:
		return 0
	}
}
