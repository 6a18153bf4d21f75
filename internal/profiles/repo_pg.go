package profiles

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// PGRepo implements Repo using Postgres. The associated-document set is the
// documents table keyed by user_id; AppendDocumentRef only verifies ownership
// and bumps updated_at, since the document row itself is the reference.
type PGRepo struct {
	DB *sql.DB
}

const profileColumns = `
id, email, candidate_name, has_changed_name, changed_name, gender, dob,
father_name, mother_name, has_aadhaar, aadhaar_number, education_board,
roll_number, year_of_passing, highest_qualification, mobile_number,
created_at, updated_at`

// Create inserts a new profile.
func (r *PGRepo) Create(ctx context.Context, profile Profile) error {
	const query = `
INSERT INTO profiles (
    id, email, candidate_name, has_changed_name, changed_name, gender, dob,
    father_name, mother_name, has_aadhaar, aadhaar_number, education_board,
    roll_number, year_of_passing, highest_qualification, mobile_number,
    created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		profile.ID,
		strings.ToLower(profile.Email),
		profile.CandidateName,
		profile.HasChangedName,
		profile.ChangedName,
		profile.Gender,
		profile.DOB,
		profile.FatherName,
		profile.MotherName,
		profile.HasAadhaar,
		profile.AadhaarNumber,
		profile.EducationBoard,
		profile.RollNumber,
		profile.YearOfPassing,
		profile.HighestQualification,
		profile.MobileNumber,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil && strings.Contains(err.Error(), "profiles_email_key") {
		return ErrEmailTaken
	}
	return err
}

// GetByID returns a profile by user ID.
func (r *PGRepo) GetByID(ctx context.Context, userID string) (Profile, error) {
	const query = `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, userID))
}

// GetByEmail returns a profile by email.
func (r *PGRepo) GetByEmail(ctx context.Context, email string) (Profile, error) {
	const query = `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, strings.ToLower(email)))
}

// Update overwrites the mutable fields of an existing profile.
func (r *PGRepo) Update(ctx context.Context, profile Profile) error {
	const query = `
UPDATE profiles SET
    candidate_name = $2,
    has_changed_name = $3,
    changed_name = $4,
    gender = $5,
    dob = $6,
    father_name = $7,
    mother_name = $8,
    has_aadhaar = $9,
    aadhaar_number = $10,
    education_board = $11,
    roll_number = $12,
    year_of_passing = $13,
    highest_qualification = $14,
    mobile_number = $15,
    updated_at = $16
WHERE id = $1`

	res, err := r.DB.ExecContext(
		ctx,
		query,
		profile.ID,
		profile.CandidateName,
		profile.HasChangedName,
		profile.ChangedName,
		profile.Gender,
		profile.DOB,
		profile.FatherName,
		profile.MotherName,
		profile.HasAadhaar,
		profile.AadhaarNumber,
		profile.EducationBoard,
		profile.RollNumber,
		profile.YearOfPassing,
		profile.HighestQualification,
		profile.MobileNumber,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendDocumentRef verifies the profile exists and bumps updated_at.
func (r *PGRepo) AppendDocumentRef(ctx context.Context, userID, documentID string) error {
	const query = `UPDATE profiles SET updated_at = NOW() WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, userID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveDocumentRef verifies the profile exists and bumps updated_at; the
// deleted document row was the reference itself.
func (r *PGRepo) RemoveDocumentRef(ctx context.Context, userID, documentID string) error {
	const query = `UPDATE profiles SET updated_at = NOW() WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, userID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) scanOne(row *sql.Row) (Profile, error) {
	var p Profile
	err := row.Scan(
		&p.ID,
		&p.Email,
		&p.CandidateName,
		&p.HasChangedName,
		&p.ChangedName,
		&p.Gender,
		&p.DOB,
		&p.FatherName,
		&p.MotherName,
		&p.HasAadhaar,
		&p.AadhaarNumber,
		&p.EducationBoard,
		&p.RollNumber,
		&p.YearOfPassing,
		&p.HighestQualification,
		&p.MobileNumber,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	return p, nil
}

var _ Repo = (*PGRepo)(nil)
