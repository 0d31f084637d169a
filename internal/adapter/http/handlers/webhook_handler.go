package handlers

import (
	"errors"
	"log"
	"net/http"

	response "payhub/internal/adapter/http/dto/response"
	"payhub/internal/domain/entities"
	"payhub/internal/usecase"
	"payhub/internal/usecase/interfaces"
	"payhub/pkg"

	"github.com/gin-gonic/gin"
)

// WebhookHandler receives provider notifications on /webhooks/:provider.
// The response is only positive after the event is durably applied or
// resolved as a safe duplicate.
type WebhookHandler struct {
	usecase usecase.IWebhookUseCase
}

func NewWebhookHandler(uc usecase.IWebhookUseCase) *WebhookHandler {
	return &WebhookHandler{usecase: uc}
}

func (h *WebhookHandler) HandleProviderWebhook(c *gin.Context) {
	providerID := c.Param("provider")

	payload, err := c.GetRawData()
	if err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request body", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	sig := interfaces.WebhookSignature{
		Signature: firstNonEmpty(c.GetHeader("Stripe-Signature"), c.GetHeader("X-Signature")),
		RequestID: c.GetHeader("X-Request-ID"),
	}

	p, err := h.usecase.Process(c.Request.Context(), providerID, payload, sig)
	if err != nil {
		log.Printf("[webhook][handler] process failed provider=%s err=%v", providerID, err)
		appErr := mapWebhookError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[webhook][handler] process success provider=%s payment_id=%s status=%s", providerID, p.ID, p.Status)

	c.JSON(http.StatusOK, response.FromPayment(p))
}

func mapWebhookError(err error) *pkg.AppError {
	if interfaces.IsInvalidWebhookError(err) {
		return pkg.NewDomainError("INVALID_WEBHOOK", "Webhook rejected", err, http.StatusBadRequest)
	}
	if interfaces.IsCommunicationError(err) {
		return pkg.NewDomainError("PROVIDER_UNAVAILABLE", "Provider lookup failed, delivery will be retried", err, http.StatusBadGateway)
	}

	switch {
	case errors.Is(err, usecase.ErrUnknownProvider):
		return pkg.NewDomainErrorSimple("UNKNOWN_PROVIDER", "Unknown payment provider", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentNotFound), errors.Is(err, usecase.ErrInvalidExternalReference):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "No payment matches the referenced transaction", http.StatusNotFound)
	case errors.Is(err, entities.ErrInvalidTransition), errors.Is(err, usecase.ErrPaymentConflict):
		return pkg.NewDomainErrorSimple("PAYMENT_CONFLICT", "Event not applicable to current payment state", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
