package handlers

import (
	"errors"
	"log"
	"net/http"

	request "pagamentos_api/internal/adapter/http/dto/request"
	response "pagamentos_api/internal/adapter/http/dto/response"
	"pagamentos_api/internal/adapter/persistence/repository"
	"pagamentos_api/internal/domain/entities"
	"pagamentos_api/internal/usecase"
	"pagamentos_api/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidPaymentPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)

// PaymentHandler handles HTTP requests for payments.

type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// CreatePayment godoc
// @Summary  Create a payment
// @Tags     payments
// @Accept   json
// @Produce  json
// @Param    payment body request.CreatePaymentRequest true "payment to create"
// @Success  201 {object} response.PaymentResponse
// @Failure  400 {object} pkg.HTTPError
// @Router   /payment [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var payload request.CreatePaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[payment][handler] create invalid payload err=%v", err)
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}

	created, err := h.usecase.Create(c.Request.Context(), usecase.CreatePaymentCommand{
		CPF:           payload.ResolveCPF(),
		Description:   payload.Description,
		Amount:        payload.Amount,
		PaymentMethod: payload.ResolveMethod(),
	})
	if err != nil {
		log.Printf("[payment][handler] create failed err=%v", err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] create success payment_id=%s method=%s", created.ID, created.PaymentMethod)

	c.JSON(http.StatusCreated, response.FromPayment(created))
}

// UpdatePayment godoc
// @Summary  Update a payment status
// @Tags     payments
// @Accept   json
// @Produce  json
// @Param    id      path string                        true "payment id"
// @Param    payment body request.UpdatePaymentRequest true "fields to update"
// @Success  200 {object} response.PaymentResponse
// @Failure  400 {object} pkg.HTTPError
// @Failure  404 {object} pkg.HTTPError
// @Router   /payment/{id} [put]
func (h *PaymentHandler) UpdatePayment(c *gin.Context) {
	id := c.Param("id")

	var payload request.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[payment][handler] update invalid payload payment_id=%s err=%v", id, err)
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}

	updated, err := h.usecase.Update(c.Request.Context(), id, usecase.UpdatePaymentCommand{
		Status: payload.ResolveStatus(),
	})
	if err != nil {
		log.Printf("[payment][handler] update failed payment_id=%s err=%v", id, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] update success payment_id=%s status=%s", updated.ID, updated.Status)

	c.JSON(http.StatusOK, response.FromPayment(updated))
}

// GetPayment godoc
// @Summary  Get a payment by id
// @Tags     payments
// @Produce  json
// @Param    id path string true "payment id"
// @Success  200 {object} response.PaymentResponse
// @Failure  404 {object} pkg.HTTPError
// @Router   /payment/{id} [get]
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id := c.Param("id")

	p, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[payment][handler] get failed payment_id=%s err=%v", id, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayment(p))
}

// ListPayments godoc
// @Summary  List payments
// @Tags     payments
// @Produce  json
// @Param    cpf           query string false "filter by cpf"
// @Param    paymentMethod query string false "filter by payment method"
// @Success  200 {array} response.PaymentResponse
// @Router   /payment [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	filter := entities.PaymentFilter{
		CPF:           c.Query("cpf"),
		PaymentMethod: entities.PaymentMethod(c.Query("paymentMethod")),
	}

	payments, err := h.usecase.List(c.Request.Context(), filter)
	if err != nil {
		log.Printf("[payment][handler] list failed err=%v", err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayments(payments))
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidCPF),
		errors.Is(err, usecase.ErrInvalidDescription),
		errors.Is(err, usecase.ErrInvalidAmount),
		errors.Is(err, usecase.ErrInvalidPaymentMethod),
		errors.Is(err, usecase.ErrInvalidPaymentStatus),
		errors.Is(err, usecase.ErrInvalidPaymentID),
		errors.Is(err, usecase.ErrNoUpdatableFields):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, repository.ErrPaymentIDConflict):
		return pkg.NewDomainErrorSimple("PAYMENT_ALREADY_EXISTS", "Payment already exists", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentGatewayFailure):
		return pkg.NewDomainErrorSimple("PAYMENT_GATEWAY_FAILURE", "Payment gateway failure", http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
