package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"autofill-backend/internal/schema"
)

// PGRepo implements Repo using Postgres. Extracted fields are stored as JSONB.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = `
id, user_id, file_name, content_type, size_bytes, storage_key,
extracted_text, fields, created_at`

func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	fieldsJSON, err := json.Marshal(doc.Fields)
	if err != nil {
		return fmt.Errorf("encode fields: %w", err)
	}

	const query = `
INSERT INTO documents (
    id, user_id, file_name, content_type, size_bytes, storage_key,
    extracted_text, fields, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.UserID,
		doc.FileName,
		doc.ContentType,
		doc.SizeBytes,
		doc.StorageKey,
		doc.ExtractedText,
		fieldsJSON,
		doc.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, documentID string) (Document, error) {
	const query = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1 AND user_id = $2`
	return scanDocument(r.DB.QueryRowContext(ctx, query, documentID, userID))
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Document, error) {
	const query = `SELECT ` + documentColumns + ` FROM documents WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		doc, err := scanDocumentRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (r *PGRepo) LatestByUser(ctx context.Context, userID string) (Document, error) {
	const query = `SELECT ` + documentColumns + ` FROM documents WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`
	return scanDocument(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *PGRepo) Delete(ctx context.Context, userID, documentID string) error {
	const query = `DELETE FROM documents WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, documentID, userID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row *sql.Row) (Document, error) {
	doc, err := scanFrom(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	return doc, err
}

func scanDocumentRows(rows *sql.Rows) (Document, error) {
	return scanFrom(rows)
}

func scanFrom(s rowScanner) (Document, error) {
	var doc Document
	var fieldsJSON []byte
	err := s.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.FileName,
		&doc.ContentType,
		&doc.SizeBytes,
		&doc.StorageKey,
		&doc.ExtractedText,
		&fieldsJSON,
		&doc.CreatedAt,
	)
	if err != nil {
		return Document{}, err
	}
	if len(fieldsJSON) > 0 {
		var fields schema.CanonicalRecord
		if err := json.Unmarshal(fieldsJSON, &fields); err != nil {
			return Document{}, fmt.Errorf("decode fields: %w", err)
		}
		doc.Fields = fields
	}
	return doc, nil
}

var _ Repo = (*PGRepo)(nil)
