package interfaces

import (
	"context"
	"time"

	"payhub/internal/domain/entities"
)

// EventOutcome is the provider-neutral result carried by a decoded webhook.
type EventOutcome string

const (
	OutcomeConfirmed EventOutcome = "confirmed"
	OutcomeDeclined  EventOutcome = "declined"
	OutcomeRefunded  EventOutcome = "refunded"
)

// WebhookSignature carries the transport headers a provider needs to
// authenticate a webhook delivery (Stripe-Signature, Mercado Pago
// x-signature/x-request-id).
type WebhookSignature struct {
	Signature string
	RequestID string
}

// ProviderEvent is a provider webhook translated into neutral terms. Reason is
// only populated for declined outcomes.
type ProviderEvent struct {
	ExternalReference string
	Outcome           EventOutcome
	Reason            string
	OccurredAt        time.Time
}

// IPaymentProvider abstracts one external payment network (Stripe, Mercado
// Pago wallet, Mercado Pago PIX).
//
// Capture submits the payment for processing and returns the provider
// transaction id on acceptance. It is called at most once per payment record
// and must fail fast without internal retries; retry policy belongs to the
// orchestrator's caller. Acceptance does not imply settled funds.
//
// Refund reverses a previously captured payment identified by its external
// reference. Only meaningful for completed payments; the orchestrator enforces
// that precondition.
//
// DecodeWebhook authenticates and parses a raw delivery. Failures surface as
// *InvalidWebhookError and must never mutate payment state.
//
// Capture and Refund report failures as *ProviderCommunicationError
// (transient) or *ProviderRejectionError (permanent); the orchestrator's
// retry-vs-fail policy hangs on that distinction.
type IPaymentProvider interface {
	ID() string
	Capture(ctx context.Context, p entities.Payment) (string, error)
	Refund(ctx context.Context, p entities.Payment) error
	DecodeWebhook(ctx context.Context, payload []byte, sig WebhookSignature) (ProviderEvent, error)
}

// IProviderResolver routes a payment (by method) or a webhook (by provider id)
// to the matching integration. Adding a provider means registering it here;
// the orchestrator does not change.
type IProviderResolver interface {
	ForMethod(method entities.PaymentMethod) (IPaymentProvider, error)
	ForProvider(providerID string) (IPaymentProvider, error)
}
