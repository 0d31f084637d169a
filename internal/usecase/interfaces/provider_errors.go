package interfaces

import (
	"errors"
	"fmt"
)

// ProviderCommunicationError marks a transient provider failure (timeout,
// 5xx, network). The payment record keeps its last persisted status and the
// caller may retry with a new orchestration call.
type ProviderCommunicationError struct {
	Provider string
	Err      error
}

func (e *ProviderCommunicationError) Error() string {
	return fmt.Sprintf("provider %s communication failure: %v", e.Provider, e.Err)
}

func (e *ProviderCommunicationError) Unwrap() error { return e.Err }

// ProviderRejectionError marks a permanent provider-side denial (invalid
// request, insufficient funds, fraud block). Retrying the same request is
// pointless.
type ProviderRejectionError struct {
	Provider string
	Code     string
	Reason   string
}

func (e *ProviderRejectionError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("provider %s rejected payment: %s (%s)", e.Provider, e.Reason, e.Code)
	}
	return fmt.Sprintf("provider %s rejected payment: %s", e.Provider, e.Reason)
}

// InvalidWebhookError marks a webhook delivery whose signature or payload
// could not be validated. Deliveries failing this way never reach the state
// machine.
type InvalidWebhookError struct {
	Provider string
	Err      error
}

func (e *InvalidWebhookError) Error() string {
	return fmt.Sprintf("provider %s webhook rejected: %v", e.Provider, e.Err)
}

func (e *InvalidWebhookError) Unwrap() error { return e.Err }

func IsCommunicationError(err error) bool {
	var target *ProviderCommunicationError
	return errors.As(err, &target)
}

func AsRejectionError(err error) (*ProviderRejectionError, bool) {
	var target *ProviderRejectionError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

func IsInvalidWebhookError(err error) bool {
	var target *InvalidWebhookError
	return errors.As(err, &target)
}
