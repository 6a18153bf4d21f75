package applications

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an application does not exist or belongs to
// another user.
var ErrNotFound = errors.New("application not found")

// Repo abstracts application persistence.
type Repo interface {
	Create(ctx context.Context, app Application) error
	GetByID(ctx context.Context, userID, appID string) (Application, error)
	ListByUser(ctx context.Context, userID string) ([]Application, error)
}
