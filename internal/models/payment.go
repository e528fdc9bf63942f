package models

type PurchaseRequest struct {
	PlanID string `json:"planId" validate:"required"`
}

// PaymentCallback carries the completion fields the gateway hands to the
// client after checkout.
type PaymentCallback struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// VerifyPaymentRequest accepts both payload shapes the frontend sends:
// {response:{razorpay_*}} or the razorpay_* fields at the top level.
type VerifyPaymentRequest struct {
	Response        *PaymentCallback `json:"response"`
	PaymentCallback
}

// Callback returns the nested payload when present, otherwise the flat one.
func (r *VerifyPaymentRequest) Callback() PaymentCallback {
	if r.Response != nil {
		return *r.Response
	}
	return r.PaymentCallback
}
