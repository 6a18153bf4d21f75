package applications

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. Submitted field values are stored
// as JSONB.
type PGRepo struct {
	DB *sql.DB
}

const applicationColumns = `id, user_id, form_type, form_data, status, submitted_at`

func (r *PGRepo) Create(ctx context.Context, app Application) error {
	formJSON, err := json.Marshal(app.Fields)
	if err != nil {
		return fmt.Errorf("encode form data: %w", err)
	}

	const query = `
INSERT INTO applications (id, user_id, form_type, form_data, status, submitted_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.DB.ExecContext(
		ctx,
		query,
		app.ID,
		app.UserID,
		app.FormType,
		formJSON,
		app.Status,
		app.SubmittedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, appID string) (Application, error) {
	const query = `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1 AND user_id = $2`
	row := r.DB.QueryRowContext(ctx, query, appID, userID)
	app, err := scanApplication(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Application{}, ErrNotFound
	}
	return app, err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Application, error) {
	const query = `SELECT ` + applicationColumns + ` FROM applications WHERE user_id = $1 ORDER BY submitted_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		app, err := scanApplication(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

func scanApplication(scan func(dest ...any) error) (Application, error) {
	var app Application
	var formJSON []byte
	err := scan(
		&app.ID,
		&app.UserID,
		&app.FormType,
		&formJSON,
		&app.Status,
		&app.SubmittedAt,
	)
	if err != nil {
		return Application{}, err
	}
	if len(formJSON) > 0 {
		if err := json.Unmarshal(formJSON, &app.Fields); err != nil {
			return Application{}, fmt.Errorf("decode form data: %w", err)
		}
	}
	return app, nil
}

var _ Repo = (*PGRepo)(nil)
