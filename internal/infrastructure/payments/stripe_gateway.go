package payments

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"payhub/internal/domain/entities"
	"payhub/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
	srefund "github.com/stripe/stripe-go/v79/refund"
	"github.com/stripe/stripe-go/v79/webhook"
)

var ErrMissingStripeAPIKey = errors.New("missing STRIPE_API_KEY")

var centsPerUnit = decimal.NewFromInt(100)

// StripeGateway captures card payments as Stripe PaymentIntents.
//
// The external reference stored on the payment is the PaymentIntent id
// (pi_...); Stripe webhooks carry it back on payment_intent.* and charge
// events.
type StripeGateway struct {
	webhookSecret string
}

var _ interfaces.IPaymentProvider = (*StripeGateway)(nil)

func NewStripeGateway(apiKey, webhookSecret string) (*StripeGateway, error) {
	if apiKey == "" {
		log.Printf("[payment][stripe] missing STRIPE_API_KEY")
		return nil, ErrMissingStripeAPIKey
	}
	stripe.Key = apiKey
	log.Printf("[payment][stripe] client initialized")
	return &StripeGateway{webhookSecret: webhookSecret}, nil
}

func (g *StripeGateway) ID() string { return ProviderStripe }

func (g *StripeGateway) Capture(ctx context.Context, p entities.Payment) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(p.Amount.Mul(centsPerUnit).IntPart()),
		Currency: stripe.String(strings.ToLower(p.Currency)),
	}
	if p.Description != "" {
		params.Description = stripe.String(p.Description)
	}
	params.AddMetadata("payment_id", p.ID)
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		log.Printf("[payment][stripe] capture failed payment_id=%s err=%v", p.ID, err)
		return "", g.classify(err)
	}
	log.Printf("[payment][stripe] capture accepted payment_id=%s intent=%s", p.ID, intent.ID)
	return intent.ID, nil
}

func (g *StripeGateway) Refund(ctx context.Context, p entities.Payment) error {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(p.ExternalReference),
	}
	params.Context = ctx

	if _, err := srefund.New(params); err != nil {
		log.Printf("[payment][stripe] refund failed payment_id=%s intent=%s err=%v", p.ID, p.ExternalReference, err)
		return g.classify(err)
	}
	log.Printf("[payment][stripe] refund accepted payment_id=%s intent=%s", p.ID, p.ExternalReference)
	return nil
}

func (g *StripeGateway) DecodeWebhook(_ context.Context, payload []byte, sig interfaces.WebhookSignature) (interfaces.ProviderEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, sig.Signature, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return interfaces.ProviderEvent{}, &interfaces.InvalidWebhookError{Provider: ProviderStripe, Err: err}
	}

	occurredAt := time.Unix(event.Created, 0).UTC()

	switch event.Type {
	case stripe.EventTypePaymentIntentSucceeded:
		intent, err := unmarshalIntent(event.Data.Raw)
		if err != nil {
			return interfaces.ProviderEvent{}, err
		}
		return interfaces.ProviderEvent{
			ExternalReference: intent.ID,
			Outcome:           interfaces.OutcomeConfirmed,
			OccurredAt:        occurredAt,
		}, nil

	case stripe.EventTypePaymentIntentPaymentFailed:
		intent, err := unmarshalIntent(event.Data.Raw)
		if err != nil {
			return interfaces.ProviderEvent{}, err
		}
		reason := "card declined"
		if intent.LastPaymentError != nil && intent.LastPaymentError.Msg != "" {
			reason = intent.LastPaymentError.Msg
		}
		return interfaces.ProviderEvent{
			ExternalReference: intent.ID,
			Outcome:           interfaces.OutcomeDeclined,
			Reason:            reason,
			OccurredAt:        occurredAt,
		}, nil

	case stripe.EventTypeChargeRefunded:
		var charge stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
			return interfaces.ProviderEvent{}, &interfaces.InvalidWebhookError{Provider: ProviderStripe, Err: err}
		}
		if charge.PaymentIntent == nil || charge.PaymentIntent.ID == "" {
			return interfaces.ProviderEvent{}, &interfaces.InvalidWebhookError{Provider: ProviderStripe, Err: errors.New("charge event without payment intent")}
		}
		return interfaces.ProviderEvent{
			ExternalReference: charge.PaymentIntent.ID,
			Outcome:           interfaces.OutcomeRefunded,
			OccurredAt:        occurredAt,
		}, nil

	default:
		return interfaces.ProviderEvent{}, &interfaces.InvalidWebhookError{Provider: ProviderStripe, Err: errors.New("unhandled event type: " + string(event.Type))}
	}
}

func unmarshalIntent(raw json.RawMessage) (stripe.PaymentIntent, error) {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(raw, &intent); err != nil {
		return stripe.PaymentIntent{}, &interfaces.InvalidWebhookError{Provider: ProviderStripe, Err: err}
	}
	return intent, nil
}

// classify translates SDK failures into the transient/permanent split the
// orchestrator acts on. 5xx and transport-level failures are retryable;
// everything Stripe answers with a 4xx is a definitive denial.
func (g *StripeGateway) classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &interfaces.ProviderCommunicationError{Provider: ProviderStripe, Err: err}
	}

	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.HTTPStatusCode >= 500 || stripeErr.Type == stripe.ErrorTypeAPI {
			return &interfaces.ProviderCommunicationError{Provider: ProviderStripe, Err: err}
		}
		reason := stripeErr.Msg
		if reason == "" {
			reason = string(stripeErr.Code)
		}
		return &interfaces.ProviderRejectionError{Provider: ProviderStripe, Code: string(stripeErr.Code), Reason: reason}
	}

	return &interfaces.ProviderCommunicationError{Provider: ProviderStripe, Err: err}
}
