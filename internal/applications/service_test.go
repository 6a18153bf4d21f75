package applications

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRecordPersistsExactFields(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	fields := map[string]string{
		"candidateName": "Ram Singh",
		"fatherName":    "Shyam Lal",
	}
	app, err := svc.Record(context.Background(), "u1", "SSC OTR", fields)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if app.Status != StatusSubmitted {
		t.Fatalf("status: %q", app.Status)
	}
	if app.FormType != "SSC OTR" {
		t.Fatalf("form type: %q", app.FormType)
	}
	if len(app.Fields) != 2 || app.Fields["fatherName"] != "Shyam Lal" {
		t.Fatalf("fields altered: %+v", app.Fields)
	}
	if app.SubmittedAt.IsZero() {
		t.Fatalf("submitted_at not set")
	}
}

func TestRecordRequiresIdentityAndForm(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	if _, err := svc.Record(context.Background(), "", "SSC OTR", nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Record(context.Background(), "u1", "", nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestListNewestFirstAndScoped(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	old := Application{ID: "a1", UserID: "u1", FormType: "SSC OTR", Status: StatusSubmitted, SubmittedAt: time.Now().Add(-time.Hour)}
	recent := Application{ID: "a2", UserID: "u1", FormType: "SSC OTR", Status: StatusSubmitted, SubmittedAt: time.Now()}
	other := Application{ID: "a3", UserID: "u2", FormType: "SSC OTR", Status: StatusSubmitted, SubmittedAt: time.Now()}
	for _, app := range []Application{old, recent, other} {
		if err := repo.Create(context.Background(), app); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	apps, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(apps) != 2 || apps[0].ID != "a2" || apps[1].ID != "a1" {
		t.Fatalf("unexpected order: %+v", apps)
	}

	if _, err := svc.Get(context.Background(), "u1", "a3"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-user get not blocked: %v", err)
	}
}
