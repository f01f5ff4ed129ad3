package response

import (
	"time"

	"pagamentos_api/internal/domain/entities"
)

type PaymentResponse struct {
	ID                string    `json:"id"`
	CPF               string    `json:"cpf"`
	Description       string    `json:"description"`
	Amount            float64   `json:"amount"`
	PaymentMethod     string    `json:"paymentMethod"`
	Status            string    `json:"status"`
	ExternalPaymentID string    `json:"externalPaymentId,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                p.ID,
		CPF:               p.CPF,
		Description:       p.Description,
		Amount:            p.Amount,
		PaymentMethod:     string(p.PaymentMethod),
		Status:            string(p.Status),
		ExternalPaymentID: p.ExternalPaymentID,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func FromPayments(payments []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, FromPayment(p))
	}
	return out
}
