package response

import (
	"testing"
	"time"

	"payhub/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func TestFromPayment(t *testing.T) {
	paidAt := time.Date(2026, 8, 10, 15, 0, 0, 0, time.UTC)
	p := entities.Payment{
		ID:                "pay-1",
		UserID:            "user-1",
		Amount:            decimal.RequireFromString("100.00"),
		Currency:          "BRL",
		Method:            entities.MethodCard,
		Status:            entities.PaymentStatusCompleted,
		ExternalReference: "pi_123",
		CreatedAt:         time.Now().UTC(),
		PaidAt:            &paidAt,
	}

	got := FromPayment(p)
	if got.Amount != "100" {
		t.Fatalf("expected decimal string amount, got %q", got.Amount)
	}
	if got.Status != "completed" || got.Method != "card" {
		t.Fatalf("unexpected response: %+v", got)
	}
	if got.PaidAt == nil || !got.PaidAt.Equal(paidAt) {
		t.Fatalf("expected paid_at %v, got %v", paidAt, got.PaidAt)
	}
}

func TestFromPaymentsNeverNil(t *testing.T) {
	if got := FromPayments(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
}
