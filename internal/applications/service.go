package applications

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidInput marks caller-correctable validation failures.
var ErrInvalidInput = errors.New("invalid input")

// Service contains business logic for submitted applications.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Record persists the outcome of a completed automation run. Fields holds
// exactly the values written into the form, not the full merged data set.
func (s *Service) Record(ctx context.Context, userID, formType string, fields map[string]string) (Application, error) {
	if userID == "" || formType == "" {
		return Application{}, ErrInvalidInput
	}
	app := Application{
		ID:          uuid.NewString(),
		UserID:      userID,
		FormType:    formType,
		Fields:      fields,
		Status:      StatusSubmitted,
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, app); err != nil {
		return Application{}, err
	}
	return app, nil
}

// List returns the user's applications, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Application, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID)
}

// Get returns one application.
func (s *Service) Get(ctx context.Context, userID, appID string) (Application, error) {
	if userID == "" || appID == "" {
		return Application{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, appID)
}
