package automation

import (
	"context"
	"errors"
	"sync"
	"time"

	"autofill-backend/internal/applications"
	"autofill-backend/internal/documents"
	"autofill-backend/internal/merge"
	"autofill-backend/internal/profiles"
	"autofill-backend/internal/reporter"
	"autofill-backend/internal/shared/metrics"
	"autofill-backend/internal/shared/telemetry"
)

// Result is the synchronous run outcome returned to the caller.
type Result struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Service runs form automation for a user: merge data, drive the browser,
// record the outcome. Runs for the same user and form type are serialized
// in-process; a second request while one is active is rejected.
type Service struct {
	Profiles     profiles.Repo
	Documents    documents.Repo
	Applications *applications.Service
	Sessions     SessionFactory
	Reporter     reporter.Reporter
	Config       Config

	locks runLocks
}

func NewService(
	profs profiles.Repo,
	docs documents.Repo,
	apps *applications.Service,
	sessions SessionFactory,
	rep reporter.Reporter,
	cfg Config,
) *Service {
	if rep == nil {
		rep = reporter.Nop{}
	}
	return &Service{
		Profiles:     profs,
		Documents:    docs,
		Applications: apps,
		Sessions:     sessions,
		Reporter:     rep,
		Config:       cfg,
	}
}

// Run executes one automation run for the user and blocks until it finishes.
func (s *Service) Run(ctx context.Context, userID string) (Result, error) {
	key := userID + "|" + s.Config.FormType
	if !s.locks.acquire(key) {
		return Result{}, ErrRunInProgress
	}
	defer s.locks.release(key)

	profile, err := s.Profiles.GetByID(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	doc, err := s.Documents.LatestByUser(ctx, userID)
	if err != nil && !errors.Is(err, documents.ErrNotFound) {
		return Result{}, err
	}
	data := merge.Build(profile, doc)

	metrics.IncRunStarted()
	started := time.Now()
	telemetry.Info("automation run started", map[string]any{
		"user_id":   userID,
		"form_type": s.Config.FormType,
	})

	written, err := s.run(ctx, data)
	elapsed := time.Since(started)
	metrics.ObserveRunDurationMs(float64(elapsed.Milliseconds()))
	if err != nil {
		metrics.IncRunFailed()
		telemetry.Error("automation run failed", map[string]any{
			"user_id":     userID,
			"form_type":   s.Config.FormType,
			"duration_ms": elapsed.Milliseconds(),
			"error":       err.Error(),
		})
		if repErr := s.Reporter.RunFailed(s.Config.FormType, userID, err); repErr != nil {
			telemetry.Error("reporter notify failed", map[string]any{"error": repErr.Error()})
		}
		return Result{}, err
	}

	if _, err := s.Applications.Record(ctx, userID, s.Config.FormType, written); err != nil {
		metrics.IncRunFailed()
		runErr := newRunError(StageRecording, KindSubmission, "", err)
		if repErr := s.Reporter.RunFailed(s.Config.FormType, userID, runErr); repErr != nil {
			telemetry.Error("reporter notify failed", map[string]any{"error": repErr.Error()})
		}
		return Result{}, runErr
	}

	metrics.IncRunCompleted()
	telemetry.Info("automation run completed", map[string]any{
		"user_id":     userID,
		"form_type":   s.Config.FormType,
		"duration_ms": elapsed.Milliseconds(),
		"fields":      len(written),
	})
	if repErr := s.Reporter.RunCompleted(s.Config.FormType, userID, len(written)); repErr != nil {
		telemetry.Error("reporter notify failed", map[string]any{"error": repErr.Error()})
	}
	return Result{
		Status:  "success",
		Message: "form automation completed successfully",
	}, nil
}

func (s *Service) run(ctx context.Context, data merge.Data) (map[string]string, error) {
	session, err := s.Sessions(ctx)
	if err != nil {
		return nil, newRunError(StageStarting, KindLocator, "", err)
	}
	defer session.Close()

	driver := NewDriver(s.Config, session)
	return driver.Run(ctx, data)
}

// runLocks serializes runs per key. In-process only; a multi-instance
// deployment needs an external lock.
type runLocks struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func (l *runLocks) acquire(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.active == nil {
		l.active = make(map[string]struct{})
	}
	if _, busy := l.active[key]; busy {
		return false
	}
	l.active[key] = struct{}{}
	return true
}

func (l *runLocks) release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.active, key)
}
