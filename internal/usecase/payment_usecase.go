package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"payhub/internal/domain/entities"
	"payhub/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrPaymentNotFound          = errors.New("payment not found")
	ErrUserNotFound             = errors.New("user not found")
	ErrInvalidUserID            = errors.New("invalid user id")
	ErrInvalidPaymentID         = errors.New("invalid payment id")
	ErrInvalidPaymentAmount     = errors.New("invalid payment amount")
	ErrInvalidPaymentCurrency   = errors.New("invalid payment currency")
	ErrInvalidExternalReference = errors.New("invalid external reference")
	ErrUnsupportedPaymentMethod = errors.New("unsupported payment method")
	ErrPaymentNotRefundable     = errors.New("payment is not refundable")
	ErrPaymentNotCancelable     = errors.New("payment is not cancelable")
	ErrExternalReferenceInUse   = errors.New("external reference already bound to another payment")
	ErrPaymentConflict          = errors.New("payment modified concurrently")
)

// providerCallTimeout bounds every blocking provider call. A deadline hit is
// classified by the adapter as a communication error.
const providerCallTimeout = 15 * time.Second

// CreatePaymentInput carries the immutable attributes of a new payment.
type CreatePaymentInput struct {
	Amount      decimal.Decimal
	Currency    string
	Method      entities.PaymentMethod
	Description string
}

// IPaymentUseCase orchestrates the payment lifecycle: capture dispatch,
// webhook reconciliation, refunds and cancellation.
//
// Each operation is one load-decide-persist unit. The repository's
// status-guarded Update serializes concurrent triggers on the same record;
// whoever arrives second sees the already-updated state and is either
// rejected or resolved as an idempotent no-op.
type IPaymentUseCase interface {
	CreatePayment(ctx context.Context, userID string, in CreatePaymentInput) (entities.Payment, error)
	GetPayment(ctx context.Context, id string) (entities.Payment, error)
	ListUserPayments(ctx context.Context, userID string) ([]entities.Payment, error)
	RefundPayment(ctx context.Context, id string) (entities.Payment, error)
	CancelPayment(ctx context.Context, id string) (entities.Payment, error)
	ConfirmPayment(ctx context.Context, event interfaces.ProviderEvent) (entities.Payment, error)
}

type PaymentUseCase struct {
	repo      interfaces.IPaymentRepository
	userRepo  interfaces.IUserRepository
	providers interfaces.IProviderResolver
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(repo interfaces.IPaymentRepository, userRepo interfaces.IUserRepository, providers interfaces.IProviderResolver) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, userRepo: userRepo, providers: providers}
}

// CreatePayment persists a new pending record, dispatches the capture to the
// provider matching the method and applies the resulting transition.
//
// Failure policy:
//   - permanent provider rejection => record persisted as failed, rejection
//     surfaced to the caller;
//   - transient communication failure => record left pending, error surfaced
//     as retryable. Resubmission is the caller's call and must be a brand-new
//     payment id, so no half-applied transition ever exists.
func (u *PaymentUseCase) CreatePayment(ctx context.Context, userID string, in CreatePaymentInput) (entities.Payment, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return entities.Payment{}, ErrInvalidUserID
	}
	if !in.Amount.IsPositive() {
		return entities.Payment{}, ErrInvalidPaymentAmount
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if len(currency) != 3 {
		return entities.Payment{}, ErrInvalidPaymentCurrency
	}
	if u.providers == nil {
		return entities.Payment{}, errors.New("payment providers not configured")
	}
	provider, err := u.providers.ForMethod(in.Method)
	if err != nil {
		return entities.Payment{}, ErrUnsupportedPaymentMethod
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return entities.Payment{}, err
	}
	if user.ID == "" {
		log.Printf("[payment][usecase] create rejected: user not found user_id=%s", userID)
		return entities.Payment{}, ErrUserNotFound
	}

	p := entities.Payment{
		ID:          uuid.NewString(),
		UserID:      userID,
		Amount:      in.Amount,
		Currency:    currency,
		Method:      in.Method,
		Description: strings.TrimSpace(in.Description),
		Status:      entities.PaymentStatusPending,
		CreatedAt:   time.Now().UTC(),
	}
	p, err = u.repo.Create(ctx, p)
	if err != nil {
		return entities.Payment{}, err
	}
	log.Printf("[payment][usecase] created payment_id=%s user_id=%s method=%s amount=%s %s", p.ID, userID, in.Method, in.Amount, currency)

	captureCtx, cancel := context.WithTimeout(ctx, providerCallTimeout)
	defer cancel()

	externalReference, err := provider.Capture(captureCtx, p)
	if err != nil {
		if rejection, ok := interfaces.AsRejectionError(err); ok {
			return u.failCapture(ctx, p, rejection, err)
		}
		// Transient or unclassified failure: the provider may or may not have
		// accepted the request, so the record stays pending and the caller
		// decides whether to resubmit as a new payment.
		log.Printf("[payment][usecase] capture unresolved payment_id=%s provider=%s err=%v", p.ID, provider.ID(), err)
		return entities.Payment{}, err
	}

	if existing, lookupErr := u.repo.GetByExternalReference(ctx, externalReference); lookupErr != nil {
		return entities.Payment{}, lookupErr
	} else if existing.ID != "" && existing.ID != p.ID {
		log.Printf("[payment][usecase] external reference collision payment_id=%s other_payment_id=%s ref=%s", p.ID, existing.ID, externalReference)
		return entities.Payment{}, ErrExternalReferenceInUse
	}

	if err := p.AcceptCapture(externalReference, time.Now().UTC()); err != nil {
		return entities.Payment{}, err
	}
	updated, err := u.repo.Update(ctx, p, entities.PaymentStatusPending)
	if err != nil {
		if errors.Is(err, interfaces.ErrStatusConflict) {
			log.Printf("[payment][usecase] capture accepted but record changed concurrently payment_id=%s ref=%s", p.ID, externalReference)
			return entities.Payment{}, ErrPaymentConflict
		}
		return entities.Payment{}, err
	}
	log.Printf("[payment][usecase] capture accepted payment_id=%s provider=%s ref=%s", updated.ID, provider.ID(), externalReference)
	return updated, nil
}

func (u *PaymentUseCase) failCapture(ctx context.Context, p entities.Payment, rejection *interfaces.ProviderRejectionError, cause error) (entities.Payment, error) {
	reason := rejection.Reason
	if reason == "" {
		reason = rejection.Error()
	}
	if applyErr := p.RejectCapture(reason, time.Now().UTC()); applyErr != nil {
		return entities.Payment{}, applyErr
	}
	if _, updateErr := u.repo.Update(ctx, p, entities.PaymentStatusPending); updateErr != nil {
		log.Printf("[payment][usecase] failed persisting capture rejection payment_id=%s err=%v", p.ID, updateErr)
		return entities.Payment{}, updateErr
	}
	log.Printf("[payment][usecase] capture rejected payment_id=%s reason=%q", p.ID, reason)
	return entities.Payment{}, cause
}

func (u *PaymentUseCase) GetPayment(ctx context.Context, id string) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (u *PaymentUseCase) ListUserPayments(ctx context.Context, userID string) ([]entities.Payment, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	return u.repo.ListByUserID(ctx, userID)
}

// ConfirmPayment reconciles a provider event against the record correlated by
// external reference. Replays of an outcome the record already reached are
// acknowledged as success without touching it; providers deliver at least
// once.
func (u *PaymentUseCase) ConfirmPayment(ctx context.Context, event interfaces.ProviderEvent) (entities.Payment, error) {
	ref := strings.TrimSpace(event.ExternalReference)
	if ref == "" {
		return entities.Payment{}, ErrInvalidExternalReference
	}
	trigger, err := triggerForOutcome(event.Outcome)
	if err != nil {
		return entities.Payment{}, err
	}

	p, err := u.repo.GetByExternalReference(ctx, ref)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		// A provider referencing a transaction we never recorded is an
		// operational anomaly, not something to retry.
		log.Printf("[payment][usecase] webhook for unknown reference ref=%s outcome=%s", ref, event.Outcome)
		return entities.Payment{}, ErrPaymentNotFound
	}

	if entities.IsDuplicateOutcome(p.Status, trigger) {
		log.Printf("[payment][usecase] duplicate provider event ignored payment_id=%s status=%s outcome=%s", p.ID, p.Status, event.Outcome)
		return p, nil
	}

	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	previous := p.Status
	switch trigger {
	case entities.TriggerConfirmed:
		err = p.Confirm(occurredAt)
	case entities.TriggerDeclined:
		reason := event.Reason
		if reason == "" {
			reason = "declined by provider"
		}
		err = p.Decline(reason, occurredAt)
	case entities.TriggerRefunded:
		err = p.MarkRefunded(occurredAt)
	}
	if err != nil {
		return entities.Payment{}, err
	}

	updated, err := u.repo.Update(ctx, p, previous)
	if errors.Is(err, interfaces.ErrStatusConflict) {
		// Lost the race to a concurrent transition. If the winner already
		// applied this same outcome the event is a safe duplicate.
		current, getErr := u.repo.GetByExternalReference(ctx, ref)
		if getErr != nil {
			return entities.Payment{}, getErr
		}
		if current.ID != "" && entities.IsDuplicateOutcome(current.Status, trigger) {
			return current, nil
		}
		return entities.Payment{}, ErrPaymentConflict
	}
	if err != nil {
		return entities.Payment{}, err
	}
	log.Printf("[payment][usecase] provider event applied payment_id=%s outcome=%s status=%s", updated.ID, event.Outcome, updated.Status)
	return updated, nil
}

// RefundPayment reverses a completed payment through its provider. A refund
// the provider rejects or fails to acknowledge leaves the payment completed;
// a rejected refund is not a failed payment.
func (u *PaymentUseCase) RefundPayment(ctx context.Context, id string) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	if p.Status != entities.PaymentStatusCompleted {
		return entities.Payment{}, ErrPaymentNotRefundable
	}
	if u.providers == nil {
		return entities.Payment{}, errors.New("payment providers not configured")
	}
	provider, err := u.providers.ForMethod(p.Method)
	if err != nil {
		return entities.Payment{}, ErrUnsupportedPaymentMethod
	}

	refundCtx, cancel := context.WithTimeout(ctx, providerCallTimeout)
	defer cancel()

	if err := provider.Refund(refundCtx, p); err != nil {
		log.Printf("[payment][usecase] refund not applied payment_id=%s provider=%s err=%v", p.ID, provider.ID(), err)
		return entities.Payment{}, err
	}

	if err := p.MarkRefunded(time.Now().UTC()); err != nil {
		return entities.Payment{}, err
	}
	updated, err := u.repo.Update(ctx, p, entities.PaymentStatusCompleted)
	if errors.Is(err, interfaces.ErrStatusConflict) {
		// A provider-initiated refund webhook can land between our provider
		// call and the write. The reversal happened either way.
		current, getErr := u.repo.GetByID(ctx, id)
		if getErr != nil {
			return entities.Payment{}, getErr
		}
		if current.Status == entities.PaymentStatusRefunded {
			return current, nil
		}
		return entities.Payment{}, ErrPaymentConflict
	}
	if err != nil {
		return entities.Payment{}, err
	}
	log.Printf("[payment][usecase] refunded payment_id=%s ref=%s", updated.ID, updated.ExternalReference)
	return updated, nil
}

// CancelPayment withdraws a pending payment. Once capture has been dispatched
// the record is past cancellation and only the provider outcome decides it.
func (u *PaymentUseCase) CancelPayment(ctx context.Context, id string) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	if p.Status != entities.PaymentStatusPending {
		return entities.Payment{}, ErrPaymentNotCancelable
	}

	if err := p.Cancel(time.Now().UTC()); err != nil {
		return entities.Payment{}, err
	}
	updated, err := u.repo.Update(ctx, p, entities.PaymentStatusPending)
	if errors.Is(err, interfaces.ErrStatusConflict) {
		return entities.Payment{}, ErrPaymentNotCancelable
	}
	if err != nil {
		return entities.Payment{}, err
	}
	log.Printf("[payment][usecase] canceled payment_id=%s", updated.ID)
	return updated, nil
}

func triggerForOutcome(outcome interfaces.EventOutcome) (entities.PaymentTrigger, error) {
	switch outcome {
	case interfaces.OutcomeConfirmed:
		return entities.TriggerConfirmed, nil
	case interfaces.OutcomeDeclined:
		return entities.TriggerDeclined, nil
	case interfaces.OutcomeRefunded:
		return entities.TriggerRefunded, nil
	default:
		return "", errors.New("unknown provider event outcome: " + string(outcome))
	}
}
