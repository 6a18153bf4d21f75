package profiles

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("profile not found")
	ErrEmailTaken = errors.New("email already registered")
)

// Repo defines persistence operations for profiles.
type Repo interface {
	Create(ctx context.Context, profile Profile) error
	GetByID(ctx context.Context, userID string) (Profile, error)
	GetByEmail(ctx context.Context, email string) (Profile, error)
	Update(ctx context.Context, profile Profile) error

	// AppendDocumentRef records that a document now belongs to the user's
	// associated-document set. Fails with ErrNotFound if the profile is
	// missing.
	AppendDocumentRef(ctx context.Context, userID, documentID string) error

	// RemoveDocumentRef drops a deleted document from the user's
	// associated-document set.
	RemoveDocumentRef(ctx context.Context, userID, documentID string) error
}
