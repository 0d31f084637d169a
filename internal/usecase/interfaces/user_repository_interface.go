package interfaces

import (
	"context"

	"payhub/internal/domain/entities"
)

// IUserRepository resolves payment owners. User lifecycle is owned by the
// accounts service; payhub only reads, and only at payment creation.
//
// GetByID returns a zero-value User (ID == "") when the id does not exist.
type IUserRepository interface {
	GetByID(ctx context.Context, id string) (entities.User, error)
}
