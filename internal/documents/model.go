package documents

import (
	"time"

	"autofill-backend/internal/schema"
)

// Document is one scanned upload together with everything derived from it.
type Document struct {
	ID            string                 `json:"id"`
	UserID        string                 `json:"userId"`
	FileName      string                 `json:"fileName"`
	ContentType   string                 `json:"contentType"`
	SizeBytes     int64                  `json:"sizeBytes"`
	StorageKey    string                 `json:"-"`
	ExtractedText string                 `json:"extractedText"`
	Fields        schema.CanonicalRecord `json:"fields"`
	CreatedAt     time.Time              `json:"createdAt"`
}
