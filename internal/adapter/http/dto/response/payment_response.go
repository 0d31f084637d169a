package response

import (
	"time"

	"payhub/internal/domain/entities"
)

type PaymentResponse struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	Amount            string     `json:"amount"`
	Currency          string     `json:"currency"`
	Method            string     `json:"method"`
	Description       string     `json:"description,omitempty"`
	Status            string     `json:"status"`
	ExternalReference string     `json:"external_reference,omitempty"`
	ErrorMessage      string     `json:"error_message,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	PaidAt            *time.Time `json:"paid_at,omitempty"`
	CanceledAt        *time.Time `json:"canceled_at,omitempty"`
	RefundedAt        *time.Time `json:"refunded_at,omitempty"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                p.ID,
		UserID:            p.UserID,
		Amount:            p.Amount.String(),
		Currency:          p.Currency,
		Method:            string(p.Method),
		Description:       p.Description,
		Status:            string(p.Status),
		ExternalReference: p.ExternalReference,
		ErrorMessage:      p.ErrorMessage,
		CreatedAt:         p.CreatedAt,
		PaidAt:            p.PaidAt,
		CanceledAt:        p.CanceledAt,
		RefundedAt:        p.RefundedAt,
	}
}

func FromPayments(ps []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromPayment(p))
	}
	return out
}
