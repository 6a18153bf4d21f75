package extraction

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"autofill-backend/internal/documents"
	"autofill-backend/internal/llm"
	"autofill-backend/internal/profiles"
	"autofill-backend/internal/recognize"
	"autofill-backend/internal/schema"
	"autofill-backend/internal/shared/metrics"
	"autofill-backend/internal/shared/storage/object"
	"autofill-backend/internal/shared/telemetry"
)

// Service runs the upload pipeline: store the payload, recognize its text,
// extract canonical fields, and persist the document.
type Service struct {
	Documents  documents.Repo
	Profiles   profiles.Repo
	Store      object.ObjectStore
	Recognizer recognize.Recognizer
	LLM        llm.Client
}

func NewService(docs documents.Repo, profs profiles.Repo, store object.ObjectStore, rec recognize.Recognizer, client llm.Client) *Service {
	return &Service{
		Documents:  docs,
		Profiles:   profs,
		Store:      store,
		Recognizer: rec,
		LLM:        client,
	}
}

// Upload ingests one scanned document for a user. On extraction failure
// nothing is persisted; the stored payload is removed again so a retry
// starts clean.
func (s *Service) Upload(ctx context.Context, userID, fileName string, body io.Reader) (documents.Document, error) {
	if strings.TrimSpace(userID) == "" {
		return documents.Document{}, ErrMissingOwner
	}
	if body == nil || strings.TrimSpace(fileName) == "" {
		return documents.Document{}, ErrNoFile
	}
	metrics.IncExtractionStarted()

	doc, err := s.upload(ctx, userID, fileName, body)
	if err != nil {
		metrics.IncExtractionFailed()
		return documents.Document{}, err
	}
	metrics.IncExtractionCompleted()
	return doc, nil
}

func (s *Service) upload(ctx context.Context, userID, fileName string, body io.Reader) (documents.Document, error) {
	if _, err := s.Profiles.GetByID(ctx, userID); err != nil {
		return documents.Document{}, err
	}

	storageKey, sizeBytes, contentType, err := s.Store.Save(ctx, userID, fileName, body)
	if err != nil {
		return documents.Document{}, err
	}
	if sizeBytes == 0 {
		_ = s.Store.Delete(ctx, storageKey)
		return documents.Document{}, ErrNoFile
	}

	rc, err := s.Store.Open(ctx, storageKey)
	if err != nil {
		return documents.Document{}, err
	}
	raw, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return documents.Document{}, err
	}

	text, err := recognize.TextFromBytes(ctx, s.Recognizer, raw, contentType, fileName)
	if err != nil {
		_ = s.Store.Delete(ctx, storageKey)
		return documents.Document{}, err
	}

	rawFields, err := s.LLM.ExtractFields(ctx, text)
	if err != nil {
		_ = s.Store.Delete(ctx, storageKey)
		return documents.Document{}, err
	}
	record, err := schema.ParseRecord(rawFields)
	if err != nil {
		_ = s.Store.Delete(ctx, storageKey)
		return documents.Document{}, &llm.MalformedOutputError{Raw: string(rawFields)}
	}

	doc := documents.Document{
		ID:            uuid.NewString(),
		UserID:        userID,
		FileName:      fileName,
		ContentType:   contentType,
		SizeBytes:     sizeBytes,
		StorageKey:    storageKey,
		ExtractedText: text,
		Fields:        record,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.Documents.Create(ctx, doc); err != nil {
		_ = s.Store.Delete(ctx, storageKey)
		return documents.Document{}, err
	}
	if err := s.Profiles.AppendDocumentRef(ctx, userID, doc.ID); err != nil {
		telemetry.Error("append document ref failed", map[string]any{
			"user_id":     userID,
			"document_id": doc.ID,
			"error":       err.Error(),
		})
		// The document row stays so the orphan can be found and cleaned up.
		return documents.Document{}, &ProfileLinkError{DocumentID: doc.ID, Err: err}
	}
	return doc, nil
}
