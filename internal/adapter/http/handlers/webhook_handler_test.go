package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"payhub/internal/adapter/http/handlers/mocks"
	"payhub/internal/domain/entities"
	"payhub/internal/usecase"
	"payhub/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func setupWebhookRouter(uc usecase.IWebhookUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewWebhookHandler(uc)

	r := gin.New()
	r.POST("/webhooks/:provider", h.HandleProviderWebhook)
	return r
}

func TestHandleProviderWebhook(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)

	t.Run("applied event returns the payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc := mocks.NewMockIWebhookUseCase(ctrl)
		uc.EXPECT().Process(gomock.Any(), "stripe", payload, interfaces.WebhookSignature{Signature: "t=1,v1=abc", RequestID: ""}).
			Return(entities.Payment{ID: "pay-1", Status: entities.PaymentStatusCompleted}, nil)

		router := setupWebhookRouter(uc)
		req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", bytes.NewBuffer(payload))
		req.Header.Set("Stripe-Signature", "t=1,v1=abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("mercado pago signature headers are forwarded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc := mocks.NewMockIWebhookUseCase(ctrl)
		uc.EXPECT().Process(gomock.Any(), "mercadopago", payload, interfaces.WebhookSignature{Signature: "ts=1,v1=abc", RequestID: "req-1"}).
			Return(entities.Payment{ID: "pay-1", Status: entities.PaymentStatusCompleted}, nil)

		router := setupWebhookRouter(uc)
		req := httptest.NewRequest(http.MethodPost, "/webhooks/mercadopago", bytes.NewBuffer(payload))
		req.Header.Set("X-Signature", "ts=1,v1=abc")
		req.Header.Set("X-Request-ID", "req-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("invalid signature maps to 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc := mocks.NewMockIWebhookUseCase(ctrl)
		uc.EXPECT().Process(gomock.Any(), "mercadopago", gomock.Any(), gomock.Any()).
			Return(entities.Payment{}, &interfaces.InvalidWebhookError{Provider: "mercadopago", Err: errors.New("signature mismatch")})

		router := setupWebhookRouter(uc)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhooks/mercadopago", bytes.NewBuffer(payload)))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown provider maps to 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc := mocks.NewMockIWebhookUseCase(ctrl)
		uc.EXPECT().Process(gomock.Any(), "acme", gomock.Any(), gomock.Any()).
			Return(entities.Payment{}, usecase.ErrUnknownProvider)

		router := setupWebhookRouter(uc)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhooks/acme", bytes.NewBuffer(payload)))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown reference maps to 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc := mocks.NewMockIWebhookUseCase(ctrl)
		uc.EXPECT().Process(gomock.Any(), "stripe", gomock.Any(), gomock.Any()).
			Return(entities.Payment{}, usecase.ErrPaymentNotFound)

		router := setupWebhookRouter(uc)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhooks/stripe", bytes.NewBuffer(payload)))

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("non-applicable event maps to 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc := mocks.NewMockIWebhookUseCase(ctrl)
		uc.EXPECT().Process(gomock.Any(), "stripe", gomock.Any(), gomock.Any()).
			Return(entities.Payment{}, entities.ErrInvalidTransition)

		router := setupWebhookRouter(uc)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhooks/stripe", bytes.NewBuffer(payload)))

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("provider lookup outage maps to 502", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc := mocks.NewMockIWebhookUseCase(ctrl)
		uc.EXPECT().Process(gomock.Any(), "mercadopago", gomock.Any(), gomock.Any()).
			Return(entities.Payment{}, &interfaces.ProviderCommunicationError{Provider: "mercadopago", Err: errors.New("timeout")})

		router := setupWebhookRouter(uc)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhooks/mercadopago", bytes.NewBuffer(payload)))

		if w.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", w.Code)
		}
	})
}
