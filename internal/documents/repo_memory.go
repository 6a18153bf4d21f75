package documents

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repo used for local development and tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Document
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Document)}
}

func (r *MemoryRepo) Create(ctx context.Context, doc Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[doc.ID] = doc
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, documentID string) (Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.data[documentID]
	if !ok || doc.UserID != userID {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Document
	for _, doc := range r.data {
		if doc.UserID == userID {
			out = append(out, doc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) LatestByUser(ctx context.Context, userID string) (Document, error) {
	list, err := r.ListByUser(ctx, userID)
	if err != nil {
		return Document{}, err
	}
	if len(list) == 0 {
		return Document{}, ErrNotFound
	}
	return list[0], nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, documentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.data[documentID]
	if !ok || doc.UserID != userID {
		return ErrNotFound
	}
	delete(r.data, documentID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
