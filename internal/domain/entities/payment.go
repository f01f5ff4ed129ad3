package entities

import "time"

// PaymentStatus represents the payment lifecycle state.
//
// A payment starts PENDING and only moves forward: webhook notifications (or the
// gateway failure path) take it to PAID or FAIL. No FAIL->PAID recovery exists.

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFail    PaymentStatus = "FAIL"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFail:
		return true
	}
	return false
}

// PaymentMethod is the closed set of accepted payment methods.
//
// Only CREDIT_CARD triggers the Mercado Pago checkout flow; PIX payments stay
// PENDING until confirmed by an external process.

type PaymentMethod string

const (
	PaymentMethodPix        PaymentMethod = "PIX"
	PaymentMethodCreditCard PaymentMethod = "CREDIT_CARD"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodPix, PaymentMethodCreditCard:
		return true
	}
	return false
}

// Payment is the charge request tracked by this service.
//
// Storage model (DynamoDB):
//   - PK: id
//
// ExternalPaymentID is the Mercado Pago preference id, set at most once after a
// successful gateway call and never cleared.

type Payment struct {
	ID                string        `json:"id"`
	CPF               string        `json:"cpf"`
	Description       string        `json:"description"`
	Amount            float64       `json:"amount"`
	PaymentMethod     PaymentMethod `json:"paymentMethod"`
	Status            PaymentStatus `json:"status"`
	ExternalPaymentID string        `json:"externalPaymentId,omitempty"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

// NewPayment builds a payment in its initial state. Status is always PENDING at
// construction; id and timestamps are supplied by the caller so the use case
// controls both.
func NewPayment(id, cpf, description string, amount float64, method PaymentMethod, now time.Time) Payment {
	return Payment{
		ID:            id,
		CPF:           cpf,
		Description:   description,
		Amount:        amount,
		PaymentMethod: method,
		Status:        PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// PaymentUpdate carries the fields a partial update may change. Nil means
// "leave untouched".
type PaymentUpdate struct {
	Status            *PaymentStatus
	ExternalPaymentID *string
}

// PaymentFilter narrows list queries. Empty fields are ignored; supplied fields
// are ANDed.
type PaymentFilter struct {
	CPF           string
	PaymentMethod PaymentMethod
}
