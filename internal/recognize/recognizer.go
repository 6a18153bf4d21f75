package recognize

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when the recognition backend cannot be reached
// or refuses the request. Callers may surface it as an upstream outage.
var ErrUnavailable = errors.New("recognition service unavailable")

// ErrUnsupportedType is returned for payloads that are neither a readable
// image nor a PDF.
var ErrUnsupportedType = errors.New("unsupported document type")

// Recognizer converts a scanned image payload into plain text.
type Recognizer interface {
	RecognizeImage(ctx context.Context, data []byte) (string, error)
}
