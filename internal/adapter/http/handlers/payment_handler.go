package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	request "payhub/internal/adapter/http/dto/request"
	response "payhub/internal/adapter/http/dto/response"
	"payhub/internal/domain/entities"
	"payhub/internal/usecase"
	"payhub/internal/usecase/interfaces"
	"payhub/pkg"

	"github.com/gin-gonic/gin"
)

// UserIDHeader identifies the caller. Authentication itself lives at the edge
// proxy; by the time a request reaches payhub the header is trusted.
const UserIDHeader = "X-User-ID"

var errMissingUserHeader = pkg.NewDomainErrorSimple("MISSING_USER", "Missing "+UserIDHeader+" header", http.StatusUnauthorized)

// PaymentHandler handles HTTP requests for the payment lifecycle.
type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// CreatePayment creates a payment for the calling user and dispatches the
// capture to the provider selected by the method field.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	userID := strings.TrimSpace(c.GetHeader(UserIDHeader))
	if userID == "" {
		c.JSON(errMissingUserHeader.HTTPStatus, errMissingUserHeader.ToHTTPError())
		return
	}

	var payload request.PaymentCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[payment][handler] create invalid payload user_id=%s err=%v", userID, err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	in, err := payload.ToInput()
	if err != nil {
		log.Printf("[payment][handler] create invalid input user_id=%s err=%v", userID, err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	created, err := h.usecase.CreatePayment(c.Request.Context(), userID, in)
	if err != nil {
		log.Printf("[payment][handler] create failed user_id=%s err=%v", userID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] create success payment_id=%s status=%s", created.ID, created.Status)

	c.JSON(http.StatusCreated, response.FromPayment(created))
}

// GetPayment returns one payment by id.
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id := c.Param("id")

	p, err := h.usecase.GetPayment(c.Request.Context(), id)
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayment(p))
}

// ListUserPayments returns every payment owned by the calling user.
func (h *PaymentHandler) ListUserPayments(c *gin.Context) {
	userID := strings.TrimSpace(c.GetHeader(UserIDHeader))
	if userID == "" {
		c.JSON(errMissingUserHeader.HTTPStatus, errMissingUserHeader.ToHTTPError())
		return
	}

	payments, err := h.usecase.ListUserPayments(c.Request.Context(), userID)
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayments(payments))
}

// RefundPayment reverses a completed payment through its provider.
func (h *PaymentHandler) RefundPayment(c *gin.Context) {
	id := c.Param("id")
	log.Printf("[payment][handler] refund start payment_id=%s", id)

	refunded, err := h.usecase.RefundPayment(c.Request.Context(), id)
	if err != nil {
		log.Printf("[payment][handler] refund failed payment_id=%s err=%v", id, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] refund success payment_id=%s", refunded.ID)

	c.JSON(http.StatusOK, response.FromPayment(refunded))
}

// CancelPayment withdraws a still-pending payment.
func (h *PaymentHandler) CancelPayment(c *gin.Context) {
	id := c.Param("id")

	canceled, err := h.usecase.CancelPayment(c.Request.Context(), id)
	if err != nil {
		log.Printf("[payment][handler] cancel failed payment_id=%s err=%v", id, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayment(canceled))
}

func mapPaymentError(err error) *pkg.AppError {
	if rejection, ok := interfaces.AsRejectionError(err); ok {
		return pkg.NewDomainError("PAYMENT_REJECTED", rejection.Reason, err, http.StatusUnprocessableEntity)
	}
	if interfaces.IsCommunicationError(err) {
		return pkg.NewDomainError("PROVIDER_UNAVAILABLE", "Payment provider temporarily unavailable, retry later", err, http.StatusBadGateway)
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidUserID),
		errors.Is(err, usecase.ErrInvalidPaymentID),
		errors.Is(err, usecase.ErrInvalidPaymentAmount),
		errors.Is(err, usecase.ErrInvalidPaymentCurrency),
		errors.Is(err, usecase.ErrUnsupportedPaymentMethod):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUserNotFound):
		return pkg.NewDomainErrorSimple("USER_NOT_FOUND", "User not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentNotRefundable):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_REFUNDABLE", "Payment is not in a refundable state", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentNotCancelable):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_CANCELABLE", "Payment is not in a cancelable state", http.StatusConflict)
	case errors.Is(err, entities.ErrInvalidTransition), errors.Is(err, usecase.ErrPaymentConflict):
		return pkg.NewDomainErrorSimple("PAYMENT_CONFLICT", "Payment state changed, reload and retry", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
