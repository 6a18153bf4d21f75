package applications

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repo used for local development and tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Application
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Application)}
}

func (r *MemoryRepo) Create(ctx context.Context, app Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[app.ID] = app
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, appID string) (Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.data[appID]
	if !ok || app.UserID != userID {
		return Application{}, ErrNotFound
	}
	return app, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Application
	for _, app := range r.data {
		if app.UserID == userID {
			out = append(out, app)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
