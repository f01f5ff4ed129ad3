package handlers

import (
	"log"
	"net/http"

	request "pagamentos_api/internal/adapter/http/dto/request"
	"pagamentos_api/internal/domain/entities"
	"pagamentos_api/internal/usecase"

	"github.com/gin-gonic/gin"
)

// WebhookHandler processes Mercado Pago payment notifications.
//
// The endpoint always answers 200: Mercado Pago retries on non-2xx, and this
// service deliberately treats notifications as fire-and-forget, logging and
// swallowing every processing failure. Notifications may arrive out of order
// or duplicated; status is last-write-wins.

type WebhookHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewWebhookHandler(uc usecase.IPaymentUseCase) *WebhookHandler {
	return &WebhookHandler{usecase: uc}
}

// HandleMercadoPago godoc
// @Summary  Mercado Pago webhook
// @Tags     webhooks
// @Accept   json
// @Success  200
// @Router   /payment/webhook/mercadopago [post]
func (h *WebhookHandler) HandleMercadoPago(c *gin.Context) {
	defer c.Status(http.StatusOK)

	var notification request.WebhookNotification
	if err := c.ShouldBindJSON(&notification); err != nil {
		log.Printf("[webhook][handler] malformed notification err=%v", err)
		return
	}

	if notification.Type != "payment" {
		log.Printf("[webhook][handler] ignoring notification type=%q", notification.Type)
		return
	}

	paymentID := notification.Data.ExternalReference
	if paymentID == "" {
		log.Printf("[webhook][handler] notification without external_reference; ignoring")
		return
	}

	status := mapGatewayStatus(notification.Data.Status)
	_, err := h.usecase.Update(c.Request.Context(), paymentID, usecase.UpdatePaymentCommand{Status: &status})
	if err != nil {
		log.Printf("[webhook][handler] update failed payment_id=%s gateway_status=%q err=%v", paymentID, notification.Data.Status, err)
		return
	}
	log.Printf("[webhook][handler] payment updated payment_id=%s status=%s", paymentID, status)
}

// mapGatewayStatus translates Mercado Pago's status vocabulary into ours.
// Anything unrecognized stays PENDING.
func mapGatewayStatus(gatewayStatus string) entities.PaymentStatus {
	switch gatewayStatus {
	case "approved":
		return entities.PaymentStatusPaid
	case "rejected", "cancelled":
		return entities.PaymentStatusFail
	default:
		return entities.PaymentStatusPending
	}
}
