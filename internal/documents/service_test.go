package documents

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"autofill-backend/internal/profiles"
)

type memStore struct {
	objects map[string][]byte
}

func (s *memStore) Save(ctx context.Context, userID, fileName string, r io.Reader) (string, int64, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, "", err
	}
	key := userID + "/" + fileName
	s.objects[key] = data
	return key, int64(len(data)), "image/jpeg", nil
}

func (s *memStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, errors.New("missing object")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStore) Delete(ctx context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func TestDeleteCascadesToProfileDocumentSet(t *testing.T) {
	ctx := context.Background()
	profRepo := profiles.NewMemoryRepo()
	docRepo := NewMemoryRepo()
	store := &memStore{objects: map[string][]byte{"u1/a.jpg": []byte("x")}}
	svc := NewService(docRepo, profRepo, store)

	if err := profRepo.Create(ctx, profiles.Profile{ID: "u1", Email: "ram@example.com"}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	doc := Document{ID: "d1", UserID: "u1", FileName: "a.jpg", StorageKey: "u1/a.jpg", CreatedAt: time.Now().UTC()}
	if err := docRepo.Create(ctx, doc); err != nil {
		t.Fatalf("seed document: %v", err)
	}
	if err := profRepo.AppendDocumentRef(ctx, "u1", "d1"); err != nil {
		t.Fatalf("append ref: %v", err)
	}

	if err := svc.Delete(ctx, "u1", "d1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if refs := profRepo.DocumentRefs("u1"); len(refs) != 0 {
		t.Fatalf("deleted document still in associated set: %v", refs)
	}
	if _, err := docRepo.GetByID(ctx, "u1", "d1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if _, ok := store.objects["u1/a.jpg"]; ok {
		t.Fatalf("payload not removed from store")
	}
}

func TestDeleteUnknownDocument(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepo(), profiles.NewMemoryRepo(), &memStore{objects: map[string][]byte{}})

	if err := svc.Delete(ctx, "u1", "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
