package automation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autofill-backend/internal/applications"
	"autofill-backend/internal/documents"
	"autofill-backend/internal/profiles"
	"autofill-backend/internal/schema"
)

type failingAppRepo struct {
	applications.Repo
	createErr error
}

func (r *failingAppRepo) Create(ctx context.Context, app applications.Application) error {
	if r.createErr != nil {
		return r.createErr
	}
	return r.Repo.Create(ctx, app)
}

func newTestService(t *testing.T, appRepo applications.Repo, factory SessionFactory) (*Service, string) {
	t.Helper()
	profRepo := profiles.NewMemoryRepo()
	docRepo := documents.NewMemoryRepo()

	prof := profiles.Profile{
		ID:            "u1",
		Email:         "ram@example.com",
		CandidateName: "Ram Singh",
		FatherName:    "Shyam Lal",
		MotherName:    "Sita Devi",
		Gender:        "Male",
		DOB:           "01/01/2000",
		MobileNumber:  "9876543210",
	}
	require.NoError(t, profRepo.Create(context.Background(), prof))

	svc := NewService(
		profRepo,
		docRepo,
		applications.NewService(appRepo),
		factory,
		nil,
		testConfig(),
	)
	return svc, prof.ID
}

func fakeFactory(session *fakeSession) SessionFactory {
	return func(ctx context.Context) (Session, error) {
		return session, nil
	}
}

func TestServiceRunRecordsApplication(t *testing.T) {
	appRepo := applications.NewMemoryRepo()
	session := newFakeSession()
	svc, userID := newTestService(t, appRepo, fakeFactory(session))

	result, err := svc.Run(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "success", result.Status)
	assert.True(t, session.closed)

	apps, err := appRepo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "SSC OTR", apps[0].FormType)
	assert.Equal(t, applications.StatusSubmitted, apps[0].Status)
	assert.Equal(t, "Ram Singh", apps[0].Fields[schema.CandidateName])
	// Contact details ride along from the profile.
	assert.Equal(t, "ram@example.com", apps[0].Fields[schema.EmailID])
}

func TestServiceRunUnknownUser(t *testing.T) {
	svc, _ := newTestService(t, applications.NewMemoryRepo(), fakeFactory(newFakeSession()))

	_, err := svc.Run(context.Background(), "ghost")
	assert.ErrorIs(t, err, profiles.ErrNotFound)
}

func TestServiceRunSinkFailureIsSubmissionFailure(t *testing.T) {
	appRepo := &failingAppRepo{Repo: applications.NewMemoryRepo(), createErr: errors.New("db down")}
	svc, userID := newTestService(t, appRepo, fakeFactory(newFakeSession()))

	_, err := svc.Run(context.Background(), userID)
	var runErr *RunError
	require.ErrorAs(t, err, &runErr)
	assert.Equal(t, KindSubmission, runErr.Kind)
	assert.Equal(t, StageRecording, runErr.Stage)
}

func TestServiceRunSerializedPerUserAndForm(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	var once sync.Once
	blockingFactory := func(ctx context.Context) (Session, error) {
		once.Do(func() { close(started) })
		<-release
		return newFakeSession(), nil
	}
	svc, userID := newTestService(t, applications.NewMemoryRepo(), blockingFactory)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = svc.Run(context.Background(), userID)
	}()

	<-started
	_, err := svc.Run(context.Background(), userID)
	assert.ErrorIs(t, err, ErrRunInProgress)

	close(release)
	wg.Wait()

	// After the first run finishes the lock is free again.
	done := make(chan error, 1)
	go func() {
		_, err := svc.Run(context.Background(), userID)
		done <- err
	}()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("second run did not complete")
	}
}
