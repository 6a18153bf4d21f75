package profiles

import "time"

// Profile is the long-lived registration record for one user. Credential
// secrets are issued and checked elsewhere; this record never carries them.
type Profile struct {
	ID                   string    `json:"id"`
	Email                string    `json:"email"`
	CandidateName        string    `json:"candidateName"`
	HasChangedName       bool      `json:"hasChangedName"`
	ChangedName          string    `json:"changedName"`
	Gender               string    `json:"gender"`
	DOB                  string    `json:"dob"`
	FatherName           string    `json:"fatherName"`
	MotherName           string    `json:"motherName"`
	HasAadhaar           bool      `json:"hasAadhaar"`
	AadhaarNumber        string    `json:"aadhaarNumber"`
	EducationBoard       string    `json:"educationBoard"`
	RollNumber           string    `json:"rollNumber"`
	YearOfPassing        string    `json:"yearOfPassing"`
	HighestQualification string    `json:"highestQualification"`
	MobileNumber         string    `json:"mobileNumber"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}
