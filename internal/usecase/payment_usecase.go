package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"pagamentos_api/internal/domain/entities"
	"pagamentos_api/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrInvalidPaymentID      = errors.New("invalid payment id")
	ErrInvalidCPF            = errors.New("cpf must contain exactly 11 digits")
	ErrInvalidDescription    = errors.New("invalid description")
	ErrInvalidAmount         = errors.New("amount must be at least 0.01")
	ErrInvalidPaymentMethod  = errors.New("invalid payment method")
	ErrInvalidPaymentStatus  = errors.New("invalid payment status")
	ErrNoUpdatableFields     = errors.New("no updatable fields supplied")
	ErrPaymentGatewayFailure = errors.New("payment gateway failure")
	ErrGatewayNotConfigured  = errors.New("payment gateway not configured")
)

var cpfPattern = regexp.MustCompile(`^\d{11}$`)

const minAmount = 0.01

// CreatePaymentCommand carries the fields accepted at payment creation.
type CreatePaymentCommand struct {
	CPF           string
	Description   string
	Amount        float64
	PaymentMethod entities.PaymentMethod
}

// UpdatePaymentCommand carries the externally updatable fields. Only status is
// exposed; external_payment_id is written exclusively by the create flow.
type UpdatePaymentCommand struct {
	Status *entities.PaymentStatus
}

// IPaymentUseCase exposes the payment lifecycle operations.

type IPaymentUseCase interface {
	Create(ctx context.Context, cmd CreatePaymentCommand) (entities.Payment, error)
	Update(ctx context.Context, id string, cmd UpdatePaymentCommand) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	List(ctx context.Context, filter entities.PaymentFilter) ([]entities.Payment, error)
}

type PaymentUseCase struct {
	repo    interfaces.IPaymentRepository
	gateway interfaces.IPaymentGateway
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(repo interfaces.IPaymentRepository, gateway interfaces.IPaymentGateway) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, gateway: gateway}
}

// Create persists a new PENDING payment and, for credit card, opens a Mercado
// Pago checkout preference for it.
//
// The returned payment is the record as persisted before the gateway call: a
// successful card flow sets external_payment_id moments later, and callers
// observe it by re-fetching. If the gateway (or the follow-up write) fails the
// stored payment is moved to FAIL and the creation reports the failure.
func (u *PaymentUseCase) Create(ctx context.Context, cmd CreatePaymentCommand) (entities.Payment, error) {
	if err := validateCreateCommand(cmd); err != nil {
		log.Printf("[payment][usecase] create rejected err=%v", err)
		return entities.Payment{}, err
	}
	if cmd.PaymentMethod == entities.PaymentMethodCreditCard && u.gateway == nil {
		log.Printf("[payment][usecase] gateway not configured; refusing card payment")
		return entities.Payment{}, ErrGatewayNotConfigured
	}

	now := time.Now().UTC()
	p := entities.NewPayment(uuid.NewString(), cmd.CPF, strings.TrimSpace(cmd.Description), cmd.Amount, cmd.PaymentMethod, now)

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[payment][usecase] repository create failed payment_id=%s err=%v", p.ID, err)
		return entities.Payment{}, err
	}
	log.Printf("[payment][usecase] payment created payment_id=%s method=%s", created.ID, created.PaymentMethod)

	if cmd.PaymentMethod != entities.PaymentMethodCreditCard {
		return created, nil
	}

	pref, err := u.gateway.CreatePreference(ctx, interfaces.CheckoutRequest{
		PaymentID:   created.ID,
		Amount:      created.Amount,
		Description: created.Description,
		// Placeholder contact policy: the CPF doubles as a synthetic payer email.
		PayerEmail: created.CPF + "@example.com",
	})
	if err == nil {
		_, err = u.repo.Update(ctx, created.ID, entities.PaymentUpdate{ExternalPaymentID: &pref.ID})
		if err == nil {
			log.Printf("[payment][usecase] preference recorded payment_id=%s external_payment_id=%s", created.ID, pref.ID)
			return created, nil
		}
		log.Printf("[payment][usecase] recording preference failed payment_id=%s err=%v", created.ID, err)
	} else {
		log.Printf("[payment][usecase] gateway failed payment_id=%s err=%v", created.ID, err)
	}

	// Single compensating write, then re-raise. The FAIL record stays behind for
	// callers that re-fetch by id.
	fail := entities.PaymentStatusFail
	if _, uerr := u.repo.Update(ctx, created.ID, entities.PaymentUpdate{Status: &fail}); uerr != nil {
		log.Printf("[payment][usecase] marking payment FAIL failed payment_id=%s err=%v", created.ID, uerr)
	}
	return entities.Payment{}, fmt.Errorf("%w: %v", ErrPaymentGatewayFailure, err)
}

func (u *PaymentUseCase) Update(ctx context.Context, id string, cmd UpdatePaymentCommand) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}
	if cmd.Status == nil {
		return entities.Payment{}, ErrNoUpdatableFields
	}
	if !cmd.Status.Valid() {
		return entities.Payment{}, ErrInvalidPaymentStatus
	}

	updated, err := u.repo.Update(ctx, id, entities.PaymentUpdate{Status: cmd.Status})
	if err != nil {
		log.Printf("[payment][usecase] update failed payment_id=%s err=%v", id, err)
		return entities.Payment{}, err
	}
	if updated.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	log.Printf("[payment][usecase] payment updated payment_id=%s status=%s", updated.ID, updated.Status)
	return updated, nil
}

func (u *PaymentUseCase) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (u *PaymentUseCase) List(ctx context.Context, filter entities.PaymentFilter) ([]entities.Payment, error) {
	if filter.PaymentMethod != "" && !filter.PaymentMethod.Valid() {
		return nil, ErrInvalidPaymentMethod
	}
	return u.repo.List(ctx, filter)
}

func validateCreateCommand(cmd CreatePaymentCommand) error {
	if !cpfPattern.MatchString(cmd.CPF) {
		return ErrInvalidCPF
	}
	if strings.TrimSpace(cmd.Description) == "" {
		return ErrInvalidDescription
	}
	if cmd.Amount < minAmount {
		return ErrInvalidAmount
	}
	if !cmd.PaymentMethod.Valid() {
		return ErrInvalidPaymentMethod
	}
	return nil
}
