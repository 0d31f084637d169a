package routes

import (
	"payhub/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPayments = "/payments"
	PathWebhooks = "/webhooks"
)

func addPaymentRoutes(rg *gin.RouterGroup, paymentHandler *handlers.PaymentHandler, webhookHandler *handlers.WebhookHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("", paymentHandler.CreatePayment)
		payments.GET("", paymentHandler.ListUserPayments)
		payments.GET("/:id", paymentHandler.GetPayment)
		payments.POST("/:id/refund", paymentHandler.RefundPayment)
		payments.POST("/:id/cancel", paymentHandler.CancelPayment)
	}

	webhooks := rg.Group(PathWebhooks)
	{
		webhooks.POST("/:provider", webhookHandler.HandleProviderWebhook)
	}
}
