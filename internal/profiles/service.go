package profiles

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidInput marks caller-correctable validation failures.
var ErrInvalidInput = errors.New("invalid input")

// Service contains business logic for profiles.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Register creates a profile from sign-up data.
func (s *Service) Register(ctx context.Context, profile Profile) (Profile, error) {
	profile.Email = strings.ToLower(strings.TrimSpace(profile.Email))
	if profile.Email == "" || strings.TrimSpace(profile.CandidateName) == "" {
		return Profile{}, ErrInvalidInput
	}

	now := time.Now().UTC()
	profile.ID = uuid.NewString()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	if err := s.Repo.Create(ctx, profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// Get returns the profile for a user.
func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	if userID == "" {
		return Profile{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID)
}

// PartialUpdate applies non-nil fields of the patch to the stored profile.
// Email is immutable here; identity changes go through support channels.
type PartialUpdate struct {
	CandidateName        *string
	HasChangedName       *bool
	ChangedName          *string
	Gender               *string
	DOB                  *string
	FatherName           *string
	MotherName           *string
	HasAadhaar           *bool
	AadhaarNumber        *string
	EducationBoard       *string
	RollNumber           *string
	YearOfPassing        *string
	HighestQualification *string
	MobileNumber         *string
}

// Update applies a partial update and returns the new profile state.
func (s *Service) Update(ctx context.Context, userID string, patch PartialUpdate) (Profile, error) {
	if userID == "" {
		return Profile{}, ErrInvalidInput
	}

	profile, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	applyString(&profile.CandidateName, patch.CandidateName)
	applyString(&profile.ChangedName, patch.ChangedName)
	applyString(&profile.Gender, patch.Gender)
	applyString(&profile.DOB, patch.DOB)
	applyString(&profile.FatherName, patch.FatherName)
	applyString(&profile.MotherName, patch.MotherName)
	applyString(&profile.AadhaarNumber, patch.AadhaarNumber)
	applyString(&profile.EducationBoard, patch.EducationBoard)
	applyString(&profile.RollNumber, patch.RollNumber)
	applyString(&profile.YearOfPassing, patch.YearOfPassing)
	applyString(&profile.HighestQualification, patch.HighestQualification)
	applyString(&profile.MobileNumber, patch.MobileNumber)
	if patch.HasChangedName != nil {
		profile.HasChangedName = *patch.HasChangedName
	}
	if patch.HasAadhaar != nil {
		profile.HasAadhaar = *patch.HasAadhaar
	}
	profile.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}
