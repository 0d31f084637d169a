package usecase

import (
	"context"
	"errors"
	"testing"

	"payhub/internal/domain/entities"
	"payhub/internal/usecase/interfaces"
	mock_interfaces "payhub/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestWebhookProcess(t *testing.T) {
	t.Run("decoded event is forwarded to the payment orchestrator", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		providers := mock_interfaces.NewMockIProviderResolver(ctrl)
		provider := mock_interfaces.NewMockIPaymentProvider(ctrl)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		userRepo := mock_interfaces.NewMockIUserRepository(ctrl)

		payload := []byte(`{"id":"evt_1"}`)
		sig := interfaces.WebhookSignature{Signature: "t=1,v1=abc"}
		event := interfaces.ProviderEvent{ExternalReference: "pi_123", Outcome: interfaces.OutcomeConfirmed}

		providers.EXPECT().ForProvider("stripe").Return(provider, nil)
		provider.EXPECT().DecodeWebhook(gomock.Any(), payload, sig).Return(event, nil)

		processing := entities.Payment{ID: "pay-1", Status: entities.PaymentStatusProcessing, ExternalReference: "pi_123"}
		repo.EXPECT().GetByExternalReference(gomock.Any(), "pi_123").Return(processing, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), entities.PaymentStatusProcessing).
			DoAndReturn(func(_ context.Context, p entities.Payment, _ entities.PaymentStatus) (entities.Payment, error) {
				return p, nil
			})

		uc := NewWebhookUseCase(providers, NewPaymentUseCase(repo, userRepo, providers))

		p, err := uc.Process(context.Background(), "Stripe", payload, sig)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Status != entities.PaymentStatusCompleted {
			t.Fatalf("expected completed, got %s", p.Status)
		}
	})

	t.Run("unknown provider id is refused", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		providers := mock_interfaces.NewMockIProviderResolver(ctrl)
		providers.EXPECT().ForProvider("acme").Return(nil, errors.New("unknown payment provider id: acme"))

		uc := NewWebhookUseCase(providers, nil)

		_, err := uc.Process(context.Background(), "acme", nil, interfaces.WebhookSignature{})
		if !errors.Is(err, ErrUnknownProvider) {
			t.Fatalf("expected ErrUnknownProvider, got %v", err)
		}
	})

	t.Run("decode failure never reaches the orchestrator", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		providers := mock_interfaces.NewMockIProviderResolver(ctrl)
		provider := mock_interfaces.NewMockIPaymentProvider(ctrl)

		decodeErr := &interfaces.InvalidWebhookError{Provider: "mercadopago", Err: errors.New("signature mismatch")}

		providers.EXPECT().ForProvider("mercadopago").Return(provider, nil)
		provider.EXPECT().DecodeWebhook(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(interfaces.ProviderEvent{}, decodeErr)

		// A nil payment usecase would panic if Process forwarded anyway.
		uc := NewWebhookUseCase(providers, nil)

		_, err := uc.Process(context.Background(), "mercadopago", []byte("{}"), interfaces.WebhookSignature{})
		if !interfaces.IsInvalidWebhookError(err) {
			t.Fatalf("expected an invalid webhook error, got %v", err)
		}
	})
}
