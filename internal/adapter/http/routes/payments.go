package routes

import (
	"pagamentos_api/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const PathPayments = "/payment"

func addPaymentRoutes(rg *gin.RouterGroup, paymentHandler *handlers.PaymentHandler, webhookHandler *handlers.WebhookHandler) {
	payment := rg.Group(PathPayments)
	{
		payment.POST("", paymentHandler.CreatePayment)
		payment.GET("", paymentHandler.ListPayments)
		payment.GET("/:id", paymentHandler.GetPayment)
		payment.PUT("/:id", paymentHandler.UpdatePayment)

		// Mercado Pago posts status notifications here; the URL is handed to the
		// gateway as notification_url when a preference is created.
		payment.POST("/webhook/mercadopago", webhookHandler.HandleMercadoPago)
	}
}
