package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod selects the external integration used to capture a payment.
//
//   - card             => Stripe (PaymentIntent)
//   - wallet           => Mercado Pago (account money)
//   - instant_transfer => Mercado Pago (PIX)
type PaymentMethod string

const (
	MethodCard            PaymentMethod = "card"
	MethodWallet          PaymentMethod = "wallet"
	MethodInstantTransfer PaymentMethod = "instant_transfer"
)

// PaymentStatus represents the payment lifecycle state.
//
// failed, canceled and refunded are terminal: no trigger moves a payment out
// of them. Transitions are applied exclusively through the lifecycle graph in
// payment_state.go.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusCompleted  PaymentStatus = "completed"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusCanceled   PaymentStatus = "canceled"
	PaymentStatusRefunded   PaymentStatus = "refunded"
)

// IsTerminal reports whether no further transition is legal from s.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusFailed || s == PaymentStatusCanceled || s == PaymentStatusRefunded
}

// Payment is the local ledger record for one capture attempt against an
// external provider. It is append-only from the business point of view:
// refunds and cancellations are additional transitions, never deletions.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (external_reference-index): external_reference
//   - GSI2 (user_id-index): user_id
//
// ExternalReference is the provider-assigned transaction id. It is absent
// until the provider accepts the capture and immutable afterwards; webhook
// reconciliation correlates on it.
type Payment struct {
	ID                string          `json:"id"`
	UserID            string          `json:"user_id"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	Method            PaymentMethod   `json:"method"`
	Description       string          `json:"description,omitempty"`
	Status            PaymentStatus   `json:"status"`
	ExternalReference string          `json:"external_reference,omitempty"`
	ErrorMessage      string          `json:"error_message,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	PaidAt            *time.Time      `json:"paid_at,omitempty"`
	CanceledAt        *time.Time      `json:"canceled_at,omitempty"`
	RefundedAt        *time.Time      `json:"refunded_at,omitempty"`
}
