package extraction

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFile is returned when the upload contains no readable payload.
	ErrNoFile = errors.New("no file provided")

	// ErrMissingOwner is returned when the upload has no resolvable user.
	ErrMissingOwner = errors.New("missing document owner")
)

// ProfileLinkError reports that the document was persisted but could not be
// added to the owner's associated-document set. The document stays reachable
// by its ID so it can be cleaned up or re-linked.
type ProfileLinkError struct {
	DocumentID string
	Err        error
}

func (e *ProfileLinkError) Error() string {
	return fmt.Sprintf("link document %s to profile: %v", e.DocumentID, e.Err)
}

func (e *ProfileLinkError) Unwrap() error { return e.Err }
