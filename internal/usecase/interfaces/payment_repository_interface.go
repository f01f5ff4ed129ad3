package interfaces

import (
	"context"

	"pagamentos_api/internal/domain/entities"
)

// IPaymentRepository abstracts DynamoDB persistence for Payment.
//
// GetByID returns a zero-value Payment (empty ID) when the id is unknown;
// Update does the same when the conditional check fails. Callers translate
// that into their own not-found errors.

type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	Update(ctx context.Context, id string, fields entities.PaymentUpdate) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	List(ctx context.Context, filter entities.PaymentFilter) ([]entities.Payment, error)
}
