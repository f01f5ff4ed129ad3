package interfaces

import "context"

// CheckoutRequest is the data the gateway needs to open a checkout preference
// for one payment.
type CheckoutRequest struct {
	PaymentID   string
	Amount      float64
	Description string
	PayerEmail  string
}

// CheckoutPreference is the gateway's answer: the preference id (echoed back
// later as external_reference on webhooks) and the redirect URL for the payer.
type CheckoutPreference struct {
	ID        string
	InitPoint string
}

// IPaymentGateway abstracts the external payment provider (Mercado Pago).
//
// CreatePreference does not retry; recovery policy belongs to the caller.
type IPaymentGateway interface {
	CreatePreference(ctx context.Context, req CheckoutRequest) (CheckoutPreference, error)
}
