package documents

import (
	"context"
	"errors"
	"io"

	"autofill-backend/internal/profiles"
	"autofill-backend/internal/shared/storage/object"
)

// ErrInvalidInput marks caller-correctable validation failures.
var ErrInvalidInput = errors.New("invalid input")

// Service contains business logic for stored documents.
type Service struct {
	Repo     Repo
	Profiles profiles.Repo
	Store    object.ObjectStore
}

func NewService(repo Repo, profs profiles.Repo, store object.ObjectStore) *Service {
	return &Service{Repo: repo, Profiles: profs, Store: store}
}

// List returns the user's documents, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Document, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID)
}

// Get returns one document with its extracted text and fields.
func (s *Service) Get(ctx context.Context, userID, documentID string) (Document, error) {
	if userID == "" || documentID == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, documentID)
}

// Latest returns the user's most recently uploaded document.
func (s *Service) Latest(ctx context.Context, userID string) (Document, error) {
	if userID == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.LatestByUser(ctx, userID)
}

// OpenImage streams the original upload bytes for a document.
func (s *Service) OpenImage(ctx context.Context, userID, documentID string) (io.ReadCloser, Document, error) {
	doc, err := s.Get(ctx, userID, documentID)
	if err != nil {
		return nil, Document{}, err
	}
	rc, err := s.Store.Open(ctx, doc.StorageKey)
	if err != nil {
		return nil, Document{}, err
	}
	return rc, doc, nil
}

// Delete removes the document row, prunes it from the owner's
// associated-document set, and drops the stored payload. The payload delete
// is best effort; the row is the source of truth.
func (s *Service) Delete(ctx context.Context, userID, documentID string) error {
	doc, err := s.Get(ctx, userID, documentID)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, userID, documentID); err != nil {
		return err
	}
	if err := s.Profiles.RemoveDocumentRef(ctx, userID, documentID); err != nil && !errors.Is(err, profiles.ErrNotFound) {
		return err
	}
	_ = s.Store.Delete(ctx, doc.StorageKey)
	return nil
}
