package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"autofill-backend/internal/documents"
	"autofill-backend/internal/llm"
	"autofill-backend/internal/profiles"
	"autofill-backend/internal/recognize"
)

type memStore struct {
	objects map[string][]byte
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (s *memStore) Save(ctx context.Context, userID, fileName string, r io.Reader) (string, int64, string, error) {
	if s.saveErr != nil {
		return "", 0, "", s.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, "", err
	}
	key := fmt.Sprintf("%s/%s", userID, fileName)
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

type fakeRecognizer struct {
	text string
	err  error
}

func (f *fakeRecognizer) RecognizeImage(ctx context.Context, data []byte) (string, error) {
	return f.text, f.err
}

type fakeLLM struct {
	raw string
	err error
}

func (f *fakeLLM) ExtractFields(ctx context.Context, text string) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.raw), nil
}

func newFixture(t *testing.T, rec *fakeRecognizer, client *fakeLLM) (*Service, *memStore, *documents.MemoryRepo, profiles.Profile) {
	t.Helper()
	profRepo := profiles.NewMemoryRepo()
	docRepo := documents.NewMemoryRepo()
	store := newMemStore()

	prof := profiles.Profile{ID: "u1", Email: "ram@example.com", CandidateName: "Ram Singh"}
	if err := profRepo.Create(context.Background(), prof); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return NewService(docRepo, profRepo, store, rec, client), store, docRepo, prof
}

func TestUploadHappyPath(t *testing.T) {
	svc, store, docRepo, prof := newFixture(t,
		&fakeRecognizer{text: "Name: Ram Singh\nFather: Shyam Lal"},
		&fakeLLM{raw: `{"name":"Ram Singh","father_name":"Shyam Lal","dob":null}`},
	)

	doc, err := svc.Upload(context.Background(), prof.ID, "marksheet.jpg", strings.NewReader("jpegbytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if doc.ID == "" || doc.UserID != prof.ID {
		t.Fatalf("bad document identity: %+v", doc)
	}
	if doc.ExtractedText == "" {
		t.Fatalf("extracted text missing")
	}
	if v := doc.Fields["father_name"]; v == nil || *v != "Shyam Lal" {
		t.Fatalf("fields not normalized: %+v", doc.Fields)
	}
	if _, ok := doc.Fields["dob"]; !ok {
		t.Fatalf("null field dropped")
	}

	stored, err := docRepo.GetByID(context.Background(), prof.ID, doc.ID)
	if err != nil {
		t.Fatalf("document not persisted: %v", err)
	}
	if _, ok := store.objects[stored.StorageKey]; !ok {
		t.Fatalf("payload not in store")
	}
}

func TestUploadRejectsMissingOwnerAndFile(t *testing.T) {
	svc, _, _, _ := newFixture(t, &fakeRecognizer{}, &fakeLLM{raw: `{}`})

	if _, err := svc.Upload(context.Background(), "", "a.jpg", strings.NewReader("x")); !errors.Is(err, ErrMissingOwner) {
		t.Fatalf("expected ErrMissingOwner, got %v", err)
	}
	if _, err := svc.Upload(context.Background(), "u1", "", strings.NewReader("x")); !errors.Is(err, ErrNoFile) {
		t.Fatalf("expected ErrNoFile, got %v", err)
	}
	if _, err := svc.Upload(context.Background(), "u1", "a.jpg", strings.NewReader("")); !errors.Is(err, ErrNoFile) {
		t.Fatalf("expected ErrNoFile for empty payload, got %v", err)
	}
}

func TestUploadUnknownUser(t *testing.T) {
	svc, _, _, _ := newFixture(t, &fakeRecognizer{}, &fakeLLM{raw: `{}`})

	if _, err := svc.Upload(context.Background(), "ghost", "a.jpg", strings.NewReader("x")); !errors.Is(err, profiles.ErrNotFound) {
		t.Fatalf("expected profile ErrNotFound, got %v", err)
	}
}

func TestUploadRecognizerOutageLeavesNothingBehind(t *testing.T) {
	svc, store, docRepo, prof := newFixture(t,
		&fakeRecognizer{err: recognize.ErrUnavailable},
		&fakeLLM{raw: `{}`},
	)

	_, err := svc.Upload(context.Background(), prof.ID, "a.jpg", strings.NewReader("x"))
	if !errors.Is(err, recognize.ErrUnavailable) {
		t.Fatalf("expected recognize.ErrUnavailable, got %v", err)
	}
	if len(store.objects) != 0 {
		t.Fatalf("payload left in store after failure")
	}
	if docs, _ := docRepo.ListByUser(context.Background(), prof.ID); len(docs) != 0 {
		t.Fatalf("document persisted after failure")
	}
}

func TestUploadMalformedExtraction(t *testing.T) {
	svc, store, docRepo, prof := newFixture(t,
		&fakeRecognizer{text: "some text"},
		&fakeLLM{raw: `["not","an","object"]`},
	)

	_, err := svc.Upload(context.Background(), prof.ID, "a.jpg", strings.NewReader("x"))
	var malformed *llm.MalformedOutputError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedOutputError, got %v", err)
	}
	if len(store.objects) != 0 {
		t.Fatalf("payload left in store after malformed extraction")
	}
	if docs, _ := docRepo.ListByUser(context.Background(), prof.ID); len(docs) != 0 {
		t.Fatalf("document persisted after malformed extraction")
	}
}

type failingRefRepo struct {
	*profiles.MemoryRepo
}

func (r *failingRefRepo) AppendDocumentRef(ctx context.Context, userID, documentID string) error {
	return errors.New("profiles store down")
}

func TestUploadProfileLinkFailureKeepsDocumentReachable(t *testing.T) {
	profRepo := profiles.NewMemoryRepo()
	docRepo := documents.NewMemoryRepo()
	store := newMemStore()

	prof := profiles.Profile{ID: "u1", Email: "ram@example.com", CandidateName: "Ram Singh"}
	if err := profRepo.Create(context.Background(), prof); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	svc := NewService(docRepo, &failingRefRepo{profRepo}, store,
		&fakeRecognizer{text: "some text"},
		&fakeLLM{raw: `{"name":"Ram Singh"}`},
	)

	_, err := svc.Upload(context.Background(), prof.ID, "a.jpg", strings.NewReader("x"))
	var linkErr *ProfileLinkError
	if !errors.As(err, &linkErr) {
		t.Fatalf("expected ProfileLinkError, got %v", err)
	}
	if linkErr.DocumentID == "" {
		t.Fatalf("document id missing from link error: %v", linkErr)
	}

	doc, err := docRepo.GetByID(context.Background(), prof.ID, linkErr.DocumentID)
	if err != nil {
		t.Fatalf("orphaned document must stay reachable: %v", err)
	}
	if _, ok := store.objects[doc.StorageKey]; !ok {
		t.Fatalf("payload removed; orphaned document must stay cleanable")
	}
}

func TestUploadLLMOutage(t *testing.T) {
	svc, _, _, prof := newFixture(t,
		&fakeRecognizer{text: "some text"},
		&fakeLLM{err: llm.ErrUnavailable},
	)

	if _, err := svc.Upload(context.Background(), prof.ID, "a.jpg", strings.NewReader("x")); !errors.Is(err, llm.ErrUnavailable) {
		t.Fatalf("expected llm.ErrUnavailable, got %v", err)
	}
}
