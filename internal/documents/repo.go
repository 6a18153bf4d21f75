package documents

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a document does not exist or belongs to
// another user.
var ErrNotFound = errors.New("document not found")

// Repo abstracts document persistence.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, userID, documentID string) (Document, error)
	ListByUser(ctx context.Context, userID string) ([]Document, error)
	LatestByUser(ctx context.Context, userID string) (Document, error)
	Delete(ctx context.Context, userID, documentID string) error
}
