package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"payhub/internal/domain/entities"
	"payhub/internal/usecase/interfaces"
	mock_interfaces "payhub/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

type paymentUseCaseMocks struct {
	repo      *mock_interfaces.MockIPaymentRepository
	userRepo  *mock_interfaces.MockIUserRepository
	providers *mock_interfaces.MockIProviderResolver
	provider  *mock_interfaces.MockIPaymentProvider
}

func newPaymentUseCase(t *testing.T) (*PaymentUseCase, paymentUseCaseMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := paymentUseCaseMocks{
		repo:      mock_interfaces.NewMockIPaymentRepository(ctrl),
		userRepo:  mock_interfaces.NewMockIUserRepository(ctrl),
		providers: mock_interfaces.NewMockIProviderResolver(ctrl),
		provider:  mock_interfaces.NewMockIPaymentProvider(ctrl),
	}
	m.provider.EXPECT().ID().Return("stripe").AnyTimes()
	return NewPaymentUseCase(m.repo, m.userRepo, m.providers), m
}

func validInput() CreatePaymentInput {
	return CreatePaymentInput{
		Amount:   decimal.RequireFromString("100.00"),
		Currency: "BRL",
		Method:   entities.MethodCard,
	}
}

func echoCreate(m paymentUseCaseMocks) {
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p entities.Payment) (entities.Payment, error) {
			return p, nil
		})
}

func TestCreatePayment(t *testing.T) {
	t.Run("capture accepted leaves the payment processing with the provider reference", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)

		m.providers.EXPECT().ForMethod(entities.MethodCard).Return(m.provider, nil)
		m.userRepo.EXPECT().GetByID(gomock.Any(), "user-1").Return(entities.User{ID: "user-1"}, nil)
		echoCreate(m)
		m.provider.EXPECT().Capture(gomock.Any(), gomock.Any()).Return("pi_123", nil)
		m.repo.EXPECT().GetByExternalReference(gomock.Any(), "pi_123").Return(entities.Payment{}, nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), entities.PaymentStatusPending).
			DoAndReturn(func(_ context.Context, p entities.Payment, _ entities.PaymentStatus) (entities.Payment, error) {
				return p, nil
			})

		p, err := uc.CreatePayment(context.Background(), "user-1", validInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Status != entities.PaymentStatusProcessing {
			t.Fatalf("expected processing, got %s", p.Status)
		}
		if p.ExternalReference != "pi_123" {
			t.Fatalf("expected external reference pi_123, got %q", p.ExternalReference)
		}
		if p.UserID != "user-1" || p.Currency != "BRL" {
			t.Fatalf("unexpected payment: %+v", p)
		}
	})

	t.Run("provider rejection persists the payment as failed and surfaces the rejection", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)

		rejection := &interfaces.ProviderRejectionError{Provider: "stripe", Code: "card_declined", Reason: "Your card was declined."}

		m.providers.EXPECT().ForMethod(entities.MethodCard).Return(m.provider, nil)
		m.userRepo.EXPECT().GetByID(gomock.Any(), "user-1").Return(entities.User{ID: "user-1"}, nil)
		echoCreate(m)
		m.provider.EXPECT().Capture(gomock.Any(), gomock.Any()).Return("", rejection)

		var persisted entities.Payment
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), entities.PaymentStatusPending).
			DoAndReturn(func(_ context.Context, p entities.Payment, _ entities.PaymentStatus) (entities.Payment, error) {
				persisted = p
				return p, nil
			})

		_, err := uc.CreatePayment(context.Background(), "user-1", validInput())
		if got, ok := interfaces.AsRejectionError(err); !ok || got.Code != "card_declined" {
			t.Fatalf("expected the rejection to surface, got %v", err)
		}
		if persisted.Status != entities.PaymentStatusFailed {
			t.Fatalf("expected failed persisted, got %s", persisted.Status)
		}
		if persisted.ErrorMessage != "Your card was declined." {
			t.Fatalf("expected rejection reason recorded, got %q", persisted.ErrorMessage)
		}
		if persisted.ExternalReference != "" {
			t.Fatalf("rejected capture must not carry an external reference, got %q", persisted.ExternalReference)
		}
	})

	t.Run("communication failure leaves the payment pending and surfaces as retryable", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)

		m.providers.EXPECT().ForMethod(entities.MethodCard).Return(m.provider, nil)
		m.userRepo.EXPECT().GetByID(gomock.Any(), "user-1").Return(entities.User{ID: "user-1"}, nil)
		echoCreate(m)
		m.provider.EXPECT().Capture(gomock.Any(), gomock.Any()).
			Return("", &interfaces.ProviderCommunicationError{Provider: "stripe", Err: errors.New("timeout")})

		_, err := uc.CreatePayment(context.Background(), "user-1", validInput())
		if !interfaces.IsCommunicationError(err) {
			t.Fatalf("expected a communication error, got %v", err)
		}
	})

	t.Run("external reference already bound to another payment is refused", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)

		m.providers.EXPECT().ForMethod(entities.MethodCard).Return(m.provider, nil)
		m.userRepo.EXPECT().GetByID(gomock.Any(), "user-1").Return(entities.User{ID: "user-1"}, nil)
		echoCreate(m)
		m.provider.EXPECT().Capture(gomock.Any(), gomock.Any()).Return("pi_123", nil)
		m.repo.EXPECT().GetByExternalReference(gomock.Any(), "pi_123").
			Return(entities.Payment{ID: "other-payment", ExternalReference: "pi_123"}, nil)

		_, err := uc.CreatePayment(context.Background(), "user-1", validInput())
		if !errors.Is(err, ErrExternalReferenceInUse) {
			t.Fatalf("expected ErrExternalReferenceInUse, got %v", err)
		}
	})

	t.Run("concurrent change between capture and persist is a conflict", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)

		m.providers.EXPECT().ForMethod(entities.MethodCard).Return(m.provider, nil)
		m.userRepo.EXPECT().GetByID(gomock.Any(), "user-1").Return(entities.User{ID: "user-1"}, nil)
		echoCreate(m)
		m.provider.EXPECT().Capture(gomock.Any(), gomock.Any()).Return("pi_123", nil)
		m.repo.EXPECT().GetByExternalReference(gomock.Any(), "pi_123").Return(entities.Payment{}, nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), entities.PaymentStatusPending).
			Return(entities.Payment{}, interfaces.ErrStatusConflict)

		_, err := uc.CreatePayment(context.Background(), "user-1", validInput())
		if !errors.Is(err, ErrPaymentConflict) {
			t.Fatalf("expected ErrPaymentConflict, got %v", err)
		}
	})

	t.Run("unknown user is refused before any provider call", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)

		m.providers.EXPECT().ForMethod(entities.MethodCard).Return(m.provider, nil)
		m.userRepo.EXPECT().GetByID(gomock.Any(), "user-missing").Return(entities.User{}, nil)

		_, err := uc.CreatePayment(context.Background(), "user-missing", validInput())
		if !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("input validation", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)

		in := validInput()
		in.Amount = decimal.Zero
		if _, err := uc.CreatePayment(context.Background(), "user-1", in); !errors.Is(err, ErrInvalidPaymentAmount) {
			t.Fatalf("expected ErrInvalidPaymentAmount, got %v", err)
		}

		in = validInput()
		in.Amount = decimal.RequireFromString("-1")
		if _, err := uc.CreatePayment(context.Background(), "user-1", in); !errors.Is(err, ErrInvalidPaymentAmount) {
			t.Fatalf("expected ErrInvalidPaymentAmount, got %v", err)
		}

		in = validInput()
		in.Currency = "REAL"
		if _, err := uc.CreatePayment(context.Background(), "user-1", in); !errors.Is(err, ErrInvalidPaymentCurrency) {
			t.Fatalf("expected ErrInvalidPaymentCurrency, got %v", err)
		}

		if _, err := uc.CreatePayment(context.Background(), " ", validInput()); !errors.Is(err, ErrInvalidUserID) {
			t.Fatalf("expected ErrInvalidUserID, got %v", err)
		}

		in = validInput()
		in.Method = entities.PaymentMethod("crypto")
		m.providers.EXPECT().ForMethod(in.Method).Return(nil, errors.New("no provider for method"))
		if _, err := uc.CreatePayment(context.Background(), "user-1", in); !errors.Is(err, ErrUnsupportedPaymentMethod) {
			t.Fatalf("expected ErrUnsupportedPaymentMethod, got %v", err)
		}
	})
}

func TestConfirmPayment(t *testing.T) {
	processing := func() entities.Payment {
		return entities.Payment{
			ID:                "pay-1",
			UserID:            "user-1",
			Amount:            decimal.RequireFromString("100.00"),
			Currency:          "BRL",
			Method:            entities.MethodCard,
			Status:            entities.PaymentStatusProcessing,
			ExternalReference: "pi_123",
			CreatedAt:         time.Now().UTC(),
		}
	}

	t.Run("confirmed event completes the payment and stamps paid_at", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)

		occurred := time.Date(2026, 8, 10, 15, 0, 0, 0, time.UTC)
		m.repo.EXPECT().GetByExternalReference(gomock.Any(), "pi_123").Return(processing(), nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), entities.PaymentStatusProcessing).
			DoAndReturn(func(_ context.Context, p entities.Payment, _ entities.PaymentStatus) (entities.Payment, error) {
				return p, nil
			})

		p, err := uc.ConfirmPayment(context.Background(), interfaces.ProviderEvent{
			ExternalReference: "pi_123",
			Outcome:           interfaces.OutcomeConfirmed,
			OccurredAt:        occurred,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Status != entities.PaymentStatusCompleted {
			t.Fatalf("expected completed, got %s", p.Status)
		}
		if p.PaidAt == nil || !p.PaidAt.Equal(occurred) {
			t.Fatalf("expected paid_at %v, got %v", occurred, p.PaidAt)
		}
	})

	t.Run("declined event without reason records a default message", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)

		m.repo.EXPECT().GetByExternalReference(gomock.Any(), "pi_123").Return(processing(), nil)

		var persisted entities.Payment
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), entities.PaymentStatusProcessing).
			DoAndReturn(func(_ context.Context, p entities.Payment, _ entities.PaymentStatus) (entities.Payment, error) {
				persisted = p
				return p, nil
			})

		_, err := uc.ConfirmPayment(context.Background(), interfaces.ProviderEvent{
			ExternalReference: "pi_123",
			Outcome:           interfaces.OutcomeDeclined,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if persisted.Status != entities.PaymentStatusFailed {
			t.Fatalf("expected failed, got %s", persisted.Status)
		}
		if persisted.ErrorMessage != "declined by provider" {
			t.Fatalf("expected default decline reason, got %q", persisted.ErrorMessage)
		}
	})

	t.Run("duplicate outcome is acknowledged without touching the record", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)

		completed := processing()
		paidAt := time.Now().UTC()
		completed.Status = entities.PaymentStatusCompleted
		completed.PaidAt = &paidAt

		m.repo.EXPECT().GetByExternalReference(gomock.Any(), "pi_123").Return(completed, nil)

		p, err := uc.ConfirmPayment(context.Background(), interfaces.ProviderEvent{
			ExternalReference: "pi_123",
			Outcome:           interfaces.OutcomeConfirmed,
		})
		if err != nil {
			t.Fatalf("expected duplicate to resolve as success, got %v", err)
		}
		if p.Status != entities.PaymentStatusCompleted {
			t.Fatalf("expected completed, got %s", p.Status)
		}
	})

	t.Run("unknown external reference is not found", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)

		m.repo.EXPECT().GetByExternalReference(gomock.Any(), "pi_unknown").Return(entities.Payment{}, nil)

		_, err := uc.ConfirmPayment(context.Background(), interfaces.ProviderEvent{
			ExternalReference: "pi_unknown",
			Outcome:           interfaces.OutcomeConfirmed,
		})
		if !errors.Is(err, ErrPaymentNotFound) {
			t.Fatalf("expected ErrPaymentNotFound, got %v", err)
		}
	})

	t.Run("lost race against the same outcome resolves as success", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)

		m.repo.EXPECT().GetByExternalReference(gomock.Any(), "pi_123").Return(processing(), nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), entities.PaymentStatusProcessing).
			Return(entities.Payment{}, interfaces.ErrStatusConflict)

		winner := processing()
		winner.Status = entities.PaymentStatusCompleted
		m.repo.EXPECT().GetByExternalReference(gomock.Any(), "pi_123").Return(winner, nil)

		p, err := uc.ConfirmPayment(context.Background(), interfaces.ProviderEvent{
			ExternalReference: "pi_123",
			Outcome:           interfaces.OutcomeConfirmed,
		})
		if err != nil {
			t.Fatalf("expected the duplicate race to resolve as success, got %v", err)
		}
		if p.Status != entities.PaymentStatusCompleted {
			t.Fatalf("expected completed, got %s", p.Status)
		}
	})

	t.Run("lost race against a different outcome is a conflict", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)

		m.repo.EXPECT().GetByExternalReference(gomock.Any(), "pi_123").Return(processing(), nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), entities.PaymentStatusProcessing).
			Return(entities.Payment{}, interfaces.ErrStatusConflict)

		winner := processing()
		winner.Status = entities.PaymentStatusFailed
		m.repo.EXPECT().GetByExternalReference(gomock.Any(), "pi_123").Return(winner, nil)

		_, err := uc.ConfirmPayment(context.Background(), interfaces.ProviderEvent{
			ExternalReference: "pi_123",
			Outcome:           interfaces.OutcomeConfirmed,
		})
		if !errors.Is(err, ErrPaymentConflict) {
			t.Fatalf("expected ErrPaymentConflict, got %v", err)
		}
	})

	t.Run("empty external reference is refused", func(t *testing.T) {
		uc, _ := newPaymentUseCase(t)

		_, err := uc.ConfirmPayment(context.Background(), interfaces.ProviderEvent{Outcome: interfaces.OutcomeConfirmed})
		if !errors.Is(err, ErrInvalidExternalReference) {
			t.Fatalf("expected ErrInvalidExternalReference, got %v", err)
		}
	})
}

func TestRefundPayment(t *testing.T) {
	completed := func() entities.Payment {
		paidAt := time.Now().UTC()
		return entities.Payment{
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
	}

	t.Run("completed payment is refunded through its provider", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)

		m.repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(completed(), nil)
		m.providers.EXPECT().ForMethod(entities.MethodCard).Return(m.provider, nil)
		m.provider.EXPECT().Refund(gomock.Any(), gomock.Any()).Return(nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), entities.PaymentStatusCompleted).
			DoAndReturn(func(_ context.Context, p entities.Payment, _ entities.PaymentStatus) (entities.Payment, error) {
				return p, nil
			})

		p, err := uc.RefundPayment(context.Background(), "pay-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Status != entities.PaymentStatusRefunded {
			t.Fatalf("expected refunded, got %s", p.Status)
		}
		if p.RefundedAt == nil {
			t.Fatalf("expected refunded_at stamped")
		}
	})

	t.Run("non-completed payment is not refundable", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)

		for _, status := range []entities.PaymentStatus{
			entities.PaymentStatusPending,
			entities.PaymentStatusProcessing,
			entities.PaymentStatusFailed,
			entities.PaymentStatusCanceled,
			entities.PaymentStatusRefunded,
		} {
			p := completed()
			p.Status = status
			m.repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(p, nil)

			if _, err := uc.RefundPayment(context.Background(), "pay-1"); !errors.Is(err, ErrPaymentNotRefundable) {
				t.Fatalf("status %s: expected ErrPaymentNotRefundable, got %v", status, err)
			}
		}
	})

	t.Run("provider refund rejection leaves the payment completed", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)

		rejection := &interfaces.ProviderRejectionError{Provider: "stripe", Code: "charge_already_refunded", Reason: "Charge has already been refunded."}

		m.repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(completed(), nil)
		m.providers.EXPECT().ForMethod(entities.MethodCard).Return(m.provider, nil)
		m.provider.EXPECT().Refund(gomock.Any(), gomock.Any()).Return(rejection)

		_, err := uc.RefundPayment(context.Background(), "pay-1")
		if _, ok := interfaces.AsRejectionError(err); !ok {
			t.Fatalf("expected the rejection to surface, got %v", err)
		}
	})

	t.Run("losing the write to a refund webhook still reports success", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)

		m.repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(completed(), nil)
		m.providers.EXPECT().ForMethod(entities.MethodCard).Return(m.provider, nil)
		m.provider.EXPECT().Refund(gomock.Any(), gomock.Any()).Return(nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), entities.PaymentStatusCompleted).
			Return(entities.Payment{}, interfaces.ErrStatusConflict)

		winner := completed()
		winner.Status = entities.PaymentStatusRefunded
		m.repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(winner, nil)

		p, err := uc.RefundPayment(context.Background(), "pay-1")
		if err != nil {
			t.Fatalf("expected the refund race to resolve as success, got %v", err)
		}
		if p.Status != entities.PaymentStatusRefunded {
			t.Fatalf("expected refunded, got %s", p.Status)
		}
	})

	t.Run("unknown payment is not found", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)

		m.repo.EXPECT().GetByID(gomock.Any(), "pay-missing").Return(entities.Payment{}, nil)

		if _, err := uc.RefundPayment(context.Background(), "pay-missing"); !errors.Is(err, ErrPaymentNotFound) {
			t.Fatalf("expected ErrPaymentNotFound, got %v", err)
		}
	})
}

func TestCancelPayment(t *testing.T) {
	pending := func() entities.Payment {
		return entities.Payment{
			ID:        "pay-1",
			UserID:    "user-1",
			Amount:    decimal.RequireFromString("50.00"),
			Currency:  "BRL",
			Method:    entities.MethodWallet,
			Status:    entities.PaymentStatusPending,
			CreatedAt: time.Now().UTC(),
		}
	}

	t.Run("pending payment cancels", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)

		m.repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(pending(), nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), entities.PaymentStatusPending).
			DoAndReturn(func(_ context.Context, p entities.Payment, _ entities.PaymentStatus) (entities.Payment, error) {
				return p, nil
			})

		p, err := uc.CancelPayment(context.Background(), "pay-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Status != entities.PaymentStatusCanceled {
			t.Fatalf("expected canceled, got %s", p.Status)
		}
		if p.CanceledAt == nil {
			t.Fatalf("expected canceled_at stamped")
		}
	})

	t.Run("dispatched payment is past cancellation", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)

		p := pending()
		p.Status = entities.PaymentStatusProcessing
		m.repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(p, nil)

		if _, err := uc.CancelPayment(context.Background(), "pay-1"); !errors.Is(err, ErrPaymentNotCancelable) {
			t.Fatalf("expected ErrPaymentNotCancelable, got %v", err)
		}
	})

	t.Run("losing the cancel race means the payment moved on", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)

		m.repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(pending(), nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), entities.PaymentStatusPending).
			Return(entities.Payment{}, interfaces.ErrStatusConflict)

		if _, err := uc.CancelPayment(context.Background(), "pay-1"); !errors.Is(err, ErrPaymentNotCancelable) {
			t.Fatalf("expected ErrPaymentNotCancelable, got %v", err)
		}
	})
}

func TestGetPayment(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)

		m.repo.EXPECT().GetByID(gomock.Any(), "pay-1").
			Return(entities.Payment{ID: "pay-1", Status: entities.PaymentStatusPending}, nil)

		p, err := uc.GetPayment(context.Background(), "pay-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ID != "pay-1" {
			t.Fatalf("expected pay-1, got %q", p.ID)
		}
	})

	t.Run("not found", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)

		m.repo.EXPECT().GetByID(gomock.Any(), "pay-missing").Return(entities.Payment{}, nil)

		if _, err := uc.GetPayment(context.Background(), "pay-missing"); !errors.Is(err, ErrPaymentNotFound) {
			t.Fatalf("expected ErrPaymentNotFound, got %v", err)
		}
	})

	t.Run("blank id", func(t *testing.T) {
		uc, _ := newPaymentUseCase(t)

		if _, err := uc.GetPayment(context.Background(), "  "); !errors.Is(err, ErrInvalidPaymentID) {
			t.Fatalf("expected ErrInvalidPaymentID, got %v", err)
		}
	})
}

func TestListUserPayments(t *testing.T) {
	uc, m := newPaymentUseCase(t)

	m.repo.EXPECT().ListByUserID(gomock.Any(), "user-1").
		Return([]entities.Payment{{ID: "pay-1"}, {ID: "pay-2"}}, nil)

	payments, err := uc.ListUserPayments(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(payments))
	}

	if _, err := uc.ListUserPayments(context.Background(), ""); !errors.Is(err, ErrInvalidUserID) {
		t.Fatalf("expected ErrInvalidUserID, got %v", err)
	}
}
