package entities

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTransition = errors.New("invalid payment status transition")

// PaymentTrigger is an event that may advance a payment along its lifecycle.
type PaymentTrigger string

const (
	TriggerCaptureAccepted PaymentTrigger = "capture_accepted"
	TriggerCaptureRejected PaymentTrigger = "capture_rejected"
	TriggerConfirmed       PaymentTrigger = "confirmed"
	TriggerDeclined        PaymentTrigger = "declined"
	TriggerRefunded        PaymentTrigger = "refunded"
	TriggerCanceled        PaymentTrigger = "canceled"
)

// transitions is the complete lifecycle graph. A (status, trigger) pair absent
// from it is illegal and leaves the record untouched.
var transitions = map[PaymentStatus]map[PaymentTrigger]PaymentStatus{
	PaymentStatusPending: {
		TriggerCaptureAccepted: PaymentStatusProcessing,
		TriggerCaptureRejected: PaymentStatusFailed,
		TriggerCanceled:        PaymentStatusCanceled,
	},
	PaymentStatusProcessing: {
		TriggerConfirmed:       PaymentStatusCompleted,
		TriggerDeclined:        PaymentStatusFailed,
		TriggerCaptureRejected: PaymentStatusFailed,
	},
	PaymentStatusCompleted: {
		TriggerRefunded: PaymentStatusRefunded,
	},
}

// NextStatus resolves the status trigger leads to from current, or
// ErrInvalidTransition when the pair is not in the lifecycle graph.
func NextStatus(current PaymentStatus, trigger PaymentTrigger) (PaymentStatus, error) {
	next, ok := transitions[current][trigger]
	if !ok {
		return "", fmt.Errorf("%w: %s on %s", ErrInvalidTransition, trigger, current)
	}
	return next, nil
}

// IsDuplicateOutcome reports whether trigger restates the outcome the payment
// already reached. Providers deliver webhooks at least once, so these replays
// are acknowledged as success without touching the record.
func IsDuplicateOutcome(current PaymentStatus, trigger PaymentTrigger) bool {
	switch {
	case current == PaymentStatusCompleted && trigger == TriggerConfirmed:
		return true
	case current == PaymentStatusFailed && trigger == TriggerDeclined:
		return true
	case current == PaymentStatusRefunded && trigger == TriggerRefunded:
		return true
	}
	return false
}

// AcceptCapture records provider acceptance of the capture request and pins
// the provider transaction id. Acceptance does not mean funds settled.
func (p *Payment) AcceptCapture(externalReference string, at time.Time) error {
	if err := p.apply(TriggerCaptureAccepted, at); err != nil {
		return err
	}
	p.ExternalReference = externalReference
	return nil
}

// RejectCapture records a permanent provider denial of the capture request.
func (p *Payment) RejectCapture(reason string, at time.Time) error {
	if err := p.apply(TriggerCaptureRejected, at); err != nil {
		return err
	}
	p.ErrorMessage = reason
	return nil
}

// Confirm records provider settlement of a processing payment.
func (p *Payment) Confirm(at time.Time) error {
	return p.apply(TriggerConfirmed, at)
}

// Decline records a provider decline of a processing payment.
func (p *Payment) Decline(reason string, at time.Time) error {
	if err := p.apply(TriggerDeclined, at); err != nil {
		return err
	}
	p.ErrorMessage = reason
	return nil
}

// MarkRefunded records a reversal of a completed payment.
func (p *Payment) MarkRefunded(at time.Time) error {
	return p.apply(TriggerRefunded, at)
}

// Cancel withdraws a payment that was never dispatched to a provider.
func (p *Payment) Cancel(at time.Time) error {
	return p.apply(TriggerCanceled, at)
}

// apply advances the payment along the lifecycle graph and stamps the
// timestamp the transition requires. The receiver is modified only when the
// transition is legal.
func (p *Payment) apply(trigger PaymentTrigger, at time.Time) error {
	next, err := NextStatus(p.Status, trigger)
	if err != nil {
		return err
	}

	at = at.UTC()
	switch next {
	case PaymentStatusCompleted:
		p.PaidAt = &at
	case PaymentStatusRefunded:
		p.RefundedAt = &at
	case PaymentStatusCanceled:
		p.CanceledAt = &at
	}
	p.Status = next
	return nil
}
