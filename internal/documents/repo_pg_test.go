package documents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoGetByIDDecodesFields(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	repo := &PGRepo{DB: db}

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "file_name", "content_type", "size_bytes", "storage_key",
		"extracted_text", "fields", "created_at",
	}).AddRow(
		"d1", "u1", "marksheet.jpg", "image/jpeg", int64(1024), "u1/abc-marksheet.jpg",
		"Name: Ram Singh", []byte(`{"name":"Ram Singh","father_name":null}`), time.Now().UTC(),
	)
	mock.ExpectQuery(`SELECT (.+) FROM documents WHERE id = \$1 AND user_id = \$2`).
		WithArgs("d1", "u1").
		WillReturnRows(rows)

	doc, err := repo.GetByID(context.Background(), "u1", "d1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	name := doc.Fields["name"]
	if name == nil || *name != "Ram Singh" {
		t.Fatalf("fields not decoded: %+v", doc.Fields)
	}
	if father, ok := doc.Fields["father_name"]; !ok || father != nil {
		t.Fatalf("null field lost: %+v", doc.Fields)
	}
}

func TestPGRepoGetByIDScopedToUser(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	repo := &PGRepo{DB: db}

	mock.ExpectQuery(`SELECT (.+) FROM documents WHERE id = \$1 AND user_id = \$2`).
		WithArgs("d1", "intruder").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.GetByID(context.Background(), "intruder", "d1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoDeleteNotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	repo := &PGRepo{DB: db}

	mock.ExpectExec(`DELETE FROM documents WHERE id = \$1 AND user_id = \$2`).
		WithArgs("missing", "u1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "u1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
