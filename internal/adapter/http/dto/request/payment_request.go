package request

import (
	"strings"

	"pagamentos_api/internal/domain/entities"
)

// CreatePaymentRequest is the POST /api/payment payload. Field-level rules
// (cpf digits, minimum amount, method enum) are enforced by the use case so
// they live in one place.
type CreatePaymentRequest struct {
	CPF           string  `json:"cpf"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod"`
}

func (r CreatePaymentRequest) ResolveCPF() string {
	return strings.TrimSpace(r.CPF)
}

func (r CreatePaymentRequest) ResolveMethod() entities.PaymentMethod {
	return entities.PaymentMethod(strings.TrimSpace(r.PaymentMethod))
}

// UpdatePaymentRequest is the PUT /api/payment/:id payload. Only status is
// externally updatable.
type UpdatePaymentRequest struct {
	Status *string `json:"status"`
}

func (r UpdatePaymentRequest) ResolveStatus() *entities.PaymentStatus {
	if r.Status == nil {
		return nil
	}
	s := entities.PaymentStatus(strings.TrimSpace(*r.Status))
	return &s
}

// WebhookNotification is the Mercado Pago notification envelope. Only the
// "payment" type is processed; external_reference echoes our payment id.
type WebhookNotification struct {
	Type string      `json:"type"`
	Data WebhookData `json:"data"`
}

type WebhookData struct {
	ExternalReference string `json:"external_reference"`
	Status            string `json:"status"`
}
