package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"payhub/internal/domain/entities"
	"payhub/internal/usecase/interfaces"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/refund"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")

// MercadoPagoGateway backs two payment methods with one SDK client: account
// money (wallet) and PIX (instant transfer). The external reference stored on
// the payment is the Mercado Pago payment id.
//
// Mercado Pago notifications are thin: the webhook only carries the payment
// id, so DecodeWebhook verifies the x-signature HMAC and then fetches the
// payment to resolve its outcome.
type MercadoPagoGateway struct {
	id              string
	paymentMethodID string
	payments        payment.Client
	refunds         refund.Client
	webhookSecret   string
	payerEmail      string
}

var _ interfaces.IPaymentProvider = (*MercadoPagoGateway)(nil)

func NewMercadoPagoWalletGateway(cfg *mpconfig.Config, webhookSecret, payerEmail string) *MercadoPagoGateway {
	return newMercadoPagoGateway(ProviderMercadoPago, "account_money", cfg, webhookSecret, payerEmail)
}

func NewMercadoPagoPixGateway(cfg *mpconfig.Config, webhookSecret, payerEmail string) *MercadoPagoGateway {
	return newMercadoPagoGateway(ProviderPix, "pix", cfg, webhookSecret, payerEmail)
}

func newMercadoPagoGateway(id, paymentMethodID string, cfg *mpconfig.Config, webhookSecret, payerEmail string) *MercadoPagoGateway {
	log.Printf("[payment][mercadopago] client initialized provider=%s method=%s", id, paymentMethodID)
	return &MercadoPagoGateway{
		id:              id,
		paymentMethodID: paymentMethodID,
		payments:        payment.NewClient(cfg),
		refunds:         refund.NewClient(cfg),
		webhookSecret:   webhookSecret,
		payerEmail:      payerEmail,
	}
}

func (g *MercadoPagoGateway) ID() string { return g.id }

func (g *MercadoPagoGateway) Capture(ctx context.Context, p entities.Payment) (string, error) {
	amount, _ := p.Amount.Float64()
	req := payment.Request{
		TransactionAmount: amount,
		Description:       p.Description,
		PaymentMethodID:   g.paymentMethodID,
		ExternalReference: p.ID,
	}
	if g.payerEmail != "" {
		req.Payer = &payment.PayerRequest{Email: g.payerEmail}
	}

	resp, err := g.payments.Create(ctx, req)
	if err != nil {
		log.Printf("[payment][mercadopago] capture failed payment_id=%s provider=%s err=%v", p.ID, g.id, err)
		return "", g.classify(err)
	}
	if resp.Status == "rejected" || resp.Status == "cancelled" {
		log.Printf("[payment][mercadopago] capture rejected payment_id=%s provider=%s detail=%s", p.ID, g.id, resp.StatusDetail)
		return "", &interfaces.ProviderRejectionError{Provider: g.id, Code: resp.StatusDetail, Reason: rejectionReason(resp.StatusDetail)}
	}
	log.Printf("[payment][mercadopago] capture accepted payment_id=%s provider=%s mp_id=%d status=%s", p.ID, g.id, resp.ID, resp.Status)
	return strconv.Itoa(resp.ID), nil
}

func (g *MercadoPagoGateway) Refund(ctx context.Context, p entities.Payment) error {
	mpID, err := strconv.Atoi(p.ExternalReference)
	if err != nil {
		return &interfaces.ProviderRejectionError{Provider: g.id, Reason: "malformed external reference: " + p.ExternalReference}
	}

	if _, err := g.refunds.Create(ctx, mpID); err != nil {
		log.Printf("[payment][mercadopago] refund failed payment_id=%s mp_id=%d err=%v", p.ID, mpID, err)
		return g.classify(err)
	}
	log.Printf("[payment][mercadopago] refund accepted payment_id=%s mp_id=%d", p.ID, mpID)
	return nil
}

// mpWebhookBody is the notification envelope Mercado Pago posts. Only the
// payment id travels in it; status is fetched afterwards.
type mpWebhookBody struct {
	Action string `json:"action"`
	Type   string `json:"type"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
	DateCreated string `json:"date_created"`
}

func (g *MercadoPagoGateway) DecodeWebhook(ctx context.Context, payload []byte, sig interfaces.WebhookSignature) (interfaces.ProviderEvent, error) {
	var body mpWebhookBody
	if err := json.Unmarshal(payload, &body); err != nil {
		return interfaces.ProviderEvent{}, &interfaces.InvalidWebhookError{Provider: g.id, Err: err}
	}
	if body.Type != "payment" || body.Data.ID == "" {
		return interfaces.ProviderEvent{}, &interfaces.InvalidWebhookError{Provider: g.id, Err: fmt.Errorf("unhandled notification type=%q", body.Type)}
	}

	if err := g.verifySignature(sig, body.Data.ID); err != nil {
		return interfaces.ProviderEvent{}, &interfaces.InvalidWebhookError{Provider: g.id, Err: err}
	}

	mpID, err := strconv.Atoi(body.Data.ID)
	if err != nil {
		return interfaces.ProviderEvent{}, &interfaces.InvalidWebhookError{Provider: g.id, Err: fmt.Errorf("malformed payment id %q", body.Data.ID)}
	}
	resp, err := g.payments.Get(ctx, mpID)
	if err != nil {
		return interfaces.ProviderEvent{}, g.classify(err)
	}

	outcome, reason, err := outcomeForStatus(resp.Status, resp.StatusDetail)
	if err != nil {
		return interfaces.ProviderEvent{}, &interfaces.InvalidWebhookError{Provider: g.id, Err: err}
	}

	occurredAt := time.Now().UTC()
	if ts, parseErr := time.Parse(time.RFC3339, body.DateCreated); parseErr == nil {
		occurredAt = ts.UTC()
	}

	return interfaces.ProviderEvent{
		ExternalReference: body.Data.ID,
		Outcome:           outcome,
		Reason:            reason,
		OccurredAt:        occurredAt,
	}, nil
}

// verifySignature checks the x-signature header per the Mercado Pago scheme:
// HMAC-SHA256 over "id:<data.id>;request-id:<x-request-id>;ts:<ts>;".
func (g *MercadoPagoGateway) verifySignature(sig interfaces.WebhookSignature, dataID string) error {
	if g.webhookSecret == "" {
		return errors.New("webhook secret not configured")
	}

	var ts, v1 string
	for _, part := range strings.Split(sig.Signature, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "ts":
			ts = value
		case "v1":
			v1 = value
		}
	}
	if ts == "" || v1 == "" {
		return errors.New("malformed x-signature header")
	}

	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", strings.ToLower(dataID), sig.RequestID, ts)
	mac := hmac.New(sha256.New, []byte(g.webhookSecret))
	mac.Write([]byte(manifest))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(v1)) {
		return errors.New("signature mismatch")
	}
	return nil
}

func outcomeForStatus(status, statusDetail string) (interfaces.EventOutcome, string, error) {
	switch status {
	case "approved":
		return interfaces.OutcomeConfirmed, "", nil
	case "rejected", "cancelled":
		return interfaces.OutcomeDeclined, rejectionReason(statusDetail), nil
	case "refunded":
		return interfaces.OutcomeRefunded, "", nil
	default:
		// pending/in_process notifications carry no outcome to reconcile yet;
		// the provider will notify again on the next status change.
		return "", "", fmt.Errorf("no reconcilable outcome for status %q", status)
	}
}

func rejectionReason(statusDetail string) string {
	if statusDetail == "" {
		return "rejected by provider"
	}
	return statusDetail
}

// classify mirrors the transient/permanent split: the SDK surfaces API errors
// as messages embedding the HTTP response, so 4xx markers mean a definitive
// denial and everything else is treated as retryable.
func (g *MercadoPagoGateway) classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &interfaces.ProviderCommunicationError{Provider: g.id, Err: err}
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"\"status\":400", "\"status\":401", "\"status\":403", "\"status\":404", "\"error\":\"bad_request\"", "\"error\":\"unauthorized\"", "cc_rejected"} {
		if strings.Contains(msg, marker) {
			return &interfaces.ProviderRejectionError{Provider: g.id, Reason: err.Error()}
		}
	}
	return &interfaces.ProviderCommunicationError{Provider: g.id, Err: err}
}
