package profiles

import (
	"context"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu      sync.RWMutex
	data    map[string]Profile
	docRefs map[string][]string // userID -> document IDs, append order
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data:    make(map[string]Profile),
		docRefs: make(map[string][]string),
	}
}

// Create stores a new profile, enforcing email uniqueness.
func (r *MemoryRepo) Create(ctx context.Context, profile Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.data {
		if strings.EqualFold(existing.Email, profile.Email) {
			return ErrEmailTaken
		}
	}
	r.data[profile.ID] = profile
	return nil
}

// GetByID returns a profile by user ID.
func (r *MemoryRepo) GetByID(ctx context.Context, userID string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.data[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return profile, nil
}

// GetByEmail returns a profile by email, case-insensitive.
func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, profile := range r.data {
		if strings.EqualFold(profile.Email, email) {
			return profile, nil
		}
	}
	return Profile{}, ErrNotFound
}

// Update overwrites an existing profile.
func (r *MemoryRepo) Update(ctx context.Context, profile Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[profile.ID]; !ok {
		return ErrNotFound
	}
	r.data[profile.ID] = profile
	return nil
}

// AppendDocumentRef adds a document to the user's associated-document set.
func (r *MemoryRepo) AppendDocumentRef(ctx context.Context, userID, documentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[userID]; !ok {
		return ErrNotFound
	}
	r.docRefs[userID] = append(r.docRefs[userID], documentID)
	return nil
}

// RemoveDocumentRef prunes a deleted document from the user's set.
func (r *MemoryRepo) RemoveDocumentRef(ctx context.Context, userID, documentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[userID]; !ok {
		return ErrNotFound
	}
	refs := r.docRefs[userID]
	kept := refs[:0]
	for _, id := range refs {
		if id != documentID {
			kept = append(kept, id)
		}
	}
	r.docRefs[userID] = kept
	return nil
}

// DocumentRefs returns the user's associated document IDs in append order.
func (r *MemoryRepo) DocumentRefs(userID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.docRefs[userID]...)
}

var _ Repo = (*MemoryRepo)(nil)
