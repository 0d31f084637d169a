package interfaces

import (
	"context"
	"errors"

	"payhub/internal/domain/entities"
)

// ErrStatusConflict is returned by Update when the stored record no longer
// holds the status the caller loaded. Whoever loses the race reloads and
// re-decides against the fresher state.
var ErrStatusConflict = errors.New("payment status conflict")

// IPaymentRepository is the durable store for payment records. Lookups return
// a zero-value Payment (ID == "") when the key does not exist; use cases map
// that to their not-found errors.
//
// Update is a status-guarded write: it only persists when the stored record
// still holds expectedStatus. That guard is what serializes concurrent
// locally-triggered and webhook-triggered transitions on the same record.
type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	GetByExternalReference(ctx context.Context, externalReference string) (entities.Payment, error)
	ListByUserID(ctx context.Context, userID string) ([]entities.Payment, error)
	Update(ctx context.Context, p entities.Payment, expectedStatus entities.PaymentStatus) (entities.Payment, error)
}
