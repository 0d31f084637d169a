package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"payhub/internal/domain/entities"
	"payhub/internal/usecase/interfaces"
)

var ErrUnknownProvider = errors.New("unknown payment provider")

// IWebhookUseCase is the inbound reconciliation boundary: it resolves the
// adapter for a provider id, decodes the raw delivery and forwards the neutral
// event to the orchestrator.
type IWebhookUseCase interface {
	Process(ctx context.Context, providerID string, payload []byte, sig interfaces.WebhookSignature) (entities.Payment, error)
}

type WebhookUseCase struct {
	providers interfaces.IProviderResolver
	payments  IPaymentUseCase
}

var _ IWebhookUseCase = (*WebhookUseCase)(nil)

func NewWebhookUseCase(providers interfaces.IProviderResolver, payments IPaymentUseCase) *WebhookUseCase {
	return &WebhookUseCase{providers: providers, payments: payments}
}

func (u *WebhookUseCase) Process(ctx context.Context, providerID string, payload []byte, sig interfaces.WebhookSignature) (entities.Payment, error) {
	providerID = strings.ToLower(strings.TrimSpace(providerID))
	if u.providers == nil {
		return entities.Payment{}, errors.New("payment providers not configured")
	}
	provider, err := u.providers.ForProvider(providerID)
	if err != nil {
		log.Printf("[webhook][usecase] unknown provider provider=%q", providerID)
		return entities.Payment{}, ErrUnknownProvider
	}

	event, err := provider.DecodeWebhook(ctx, payload, sig)
	if err != nil {
		// Unauthenticated or malformed deliveries stop here; payment state is
		// never touched on a decode failure.
		log.Printf("[webhook][usecase] decode failed provider=%s err=%v", providerID, err)
		return entities.Payment{}, err
	}
	log.Printf("[webhook][usecase] event decoded provider=%s ref=%s outcome=%s", providerID, event.ExternalReference, event.Outcome)

	return u.payments.ConfirmPayment(ctx, event)
}
